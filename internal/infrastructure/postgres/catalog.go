package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog stores each product definition as one JSONB document.
type Catalog struct {
	db *pgxpool.Pool
}

func NewCatalog(db *pgxpool.Pool) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	var doc []byte
	err := c.db.QueryRow(ctx, `SELECT document FROM products WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query product %s: %w", id, err)
	}
	var p domain.Product
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return &p, nil
}

func (c *Catalog) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.db.Query(ctx, `SELECT document FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p domain.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert writes a product document, replacing any previous version.
func (c *Catalog) Upsert(ctx context.Context, p domain.Product) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(ctx, `
		INSERT INTO products (id, document, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`, p.ID, doc)
	return err
}
