package interfaces

import (
	"context"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
)

var ErrRuleExecutionFailed = domain.ErrRuleExecutionFailed

// RulePackLoader loads versioned merchant rule packs (from disk, network, etc.).
type RulePackLoader interface {
	Load(ctx context.Context, version string) (*domain.RulePackDefinition, error)
}

// RuleExecutor evaluates one JsonLogic rule, with custom operators.
type RuleExecutor interface {
	Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (interface{}, error)
	RegisterCustomOperator(name string, logic func(args ...interface{}) interface{})
}

// ProductCatalog is the read-only source of product definitions.
type ProductCatalog interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

// OrderSink receives assembled order lines. Persistence, payment and any
// server-side repricing happen behind it.
type OrderSink interface {
	Submit(ctx context.Context, line domain.SubmittedLine) error
}
