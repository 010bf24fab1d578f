package engine

import (
	"context"
	"errors"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	internal "github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/catalog"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/yaml"
	"github.com/Victor-armando18/menu-customizer/internal/usecase"
	"go.uber.org/zap"
)

// LoadProduct reads a product definition from a .json, .yaml or .yml file.
func LoadProduct(path string) (*Product, error) {
	p, err := yaml.LoadProduct(path)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func LoadSelection(path string) (Snapshot, error) {
	return yaml.LoadSnapshot(path)
}

func NewSelection(p *Product) *Selection { return selection.New(p) }

// Restore rebuilds a selection from its snapshot.
func Restore(p *Product, snap Snapshot) (*Selection, error) {
	return selection.Restore(p, snap)
}

func Price(p *Product, s *Selection) Quote { return internal.QuoteSelection(p, s) }

func Validate(p *Product, s *Selection) []Violation { return internal.Validate(p, s) }

func Assemble(p *Product, s *Selection) (OrderLine, error) { return internal.Assemble(p, s) }

// Options configures Diagnose. An empty RulesVersion skips merchant rules.
type Options struct {
	RulesDir     string
	RulesVersion string
	Logger       *zap.Logger
}

// Diagnose quotes a snapshot the way the service does, merchant rules included,
// and tries to assemble it. Nothing is submitted.
func Diagnose(ctx context.Context, p *Product, snap Snapshot, opts Options) (*Report, error) {
	svcOpts := usecase.Options{RulesVersion: opts.RulesVersion, Logger: opts.Logger}
	if opts.RulesVersion != "" {
		svcOpts.Loader = infrastructure.NewFileRuleLoader(opts.RulesDir)
		svcOpts.Executor = infrastructure.NewJsonLogicExecutor()
	}
	svc := usecase.NewCustomizationService(catalog.NewMemoryCatalog(*p), nil, svcOpts)

	if snap.ProductID == "" {
		snap.ProductID = p.ID
	}
	res, err := svc.Quote(ctx, usecase.QuoteRequest{Selection: snap})
	if err != nil {
		return nil, err
	}
	report := &Report{
		Quote:        res.Quote,
		Violations:   res.Violations,
		Annotations:  res.Annotations,
		RulesVersion: res.RulesVersion,
		ServerDelta:  res.ServerDelta,
	}

	sel, err := selection.Restore(p, res.Selection)
	if err != nil {
		return nil, err
	}
	switch line, err := internal.Assemble(p, sel); {
	case err == nil && res.Valid:
		report.Line = &line
	case err == nil:
		report.AssembleErr = "blocked by merchant rules"
	case errors.Is(err, domain.ErrNoValidPrice):
		report.AssembleErr = "product has no valid price and cannot be ordered"
	default:
		report.AssembleErr = err.Error()
	}
	return report, nil
}
