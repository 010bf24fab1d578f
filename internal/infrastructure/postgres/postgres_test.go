package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Runs only against a live database: TEST_DATABASE_URL=postgres://... go test ./...
func TestPostgresRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := Connect(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	base := decimal.NewFromInt(30)
	catalog := NewCatalog(pool)
	product := domain.Product{ID: "pg-" + uuid.NewString(), Name: "Bowl", BasePrice: &base}
	if err := catalog.Upsert(ctx, product); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := catalog.Get(ctx, product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Bowl" || !got.StartingPrice().Equal(base) {
		t.Errorf("unexpected product: %+v", got)
	}
	if _, err := catalog.Get(ctx, "missing-"+uuid.NewString()); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	sink := NewOrderSink(pool)
	err = sink.Submit(ctx, domain.SubmittedLine{
		ID:          uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
		Line:        domain.OrderLine{ProductID: product.ID, Quantity: 2, UnitPrice: base, Total: base.Mul(decimal.NewFromInt(2))},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
}
