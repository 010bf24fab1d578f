package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/yaml"
)

// FileCatalog serves one product document (JSON or YAML) per file in Dir.
type FileCatalog struct {
	Dir string
}

func NewFileCatalog(dir string) *FileCatalog {
	return &FileCatalog{Dir: dir}
}

func (c *FileCatalog) List(ctx context.Context) ([]domain.Product, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", c.Dir, err)
	}
	var products []domain.Product
	for _, e := range entries {
		if e.IsDir() || !yaml.IsDocument(e.Name()) {
			continue
		}
		p, err := yaml.LoadProduct(filepath.Join(c.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (c *FileCatalog) Get(ctx context.Context, id string) (*domain.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
}
