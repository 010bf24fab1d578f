package engine

import (
	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"github.com/shopspring/decimal"
)

// Context carries the running state of one pricing pass.
type Context struct {
	Product     *domain.Product
	Selection   *selection.Selection
	UnitPrice   decimal.Decimal
	Ingredients IngredientCost
	Log         []ExecutionStep
}

// PhaseExecutor computes the amount one phase adds to the unit price.
type PhaseExecutor interface {
	Execute(ctx *Context) (amount decimal.Decimal, action string)
}

// PhaseFunc adapts a plain function to PhaseExecutor.
type PhaseFunc func(ctx *Context) (decimal.Decimal, string)

func (f PhaseFunc) Execute(ctx *Context) (decimal.Decimal, string) { return f(ctx) }
