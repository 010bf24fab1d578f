package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderSink struct {
	db *pgxpool.Pool
}

func NewOrderSink(db *pgxpool.Pool) *OrderSink {
	return &OrderSink{db: db}
}

func (s *OrderSink) Submit(ctx context.Context, sub domain.SubmittedLine) error {
	payload, err := json.Marshal(sub.Line)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO order_lines (id, session_id, product_id, quantity, unit_price, total, payload, submitted_at)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7, $8)
	`,
		sub.ID,
		sub.SessionID,
		sub.Line.ProductID,
		sub.Line.Quantity,
		sub.Line.UnitPrice.StringFixed(2),
		sub.Line.Total.StringFixed(2),
		payload,
		sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}
