package engine

import (
	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"github.com/shopspring/decimal"
)

// Phase binds an executor to its pipeline slot.
type Phase struct {
	Name     PipelinePhase
	RuleID   string
	Executor PhaseExecutor
}

type Engine struct {
	Phases []Phase
}

// Run folds every phase into ctx.UnitPrice in order and logs each contribution.
func (e *Engine) Run(ctx *Context) {
	for _, p := range e.Phases {
		amount, action := p.Executor.Execute(ctx)
		ctx.UnitPrice = ctx.UnitPrice.Add(amount)
		ctx.Log = append(ctx.Log, ExecutionStep{
			Phase:  p.Name,
			RuleID: p.RuleID,
			Action: action,
			Amount: amount,
		})
	}
}

// Default is the pricing pipeline every quote runs through.
var Default = &Engine{Phases: []Phase{
	{Name: Baseline, RuleID: "price.start", Executor: PhaseFunc(startingPrice)},
	{Name: BasePhase, RuleID: "bases.price", Executor: PhaseFunc(basePrice)},
	{Name: Variations, RuleID: "variations.flat", Executor: PhaseFunc(variationsPrice)},
	{Name: Addons, RuleID: "addons.linear", Executor: groupPrice(domain.GroupAddons)},
	{Name: Ingredients, RuleID: "ingredients.tiered", Executor: PhaseFunc(ingredientsPrice)},
	{Name: Toppings, RuleID: "toppings.linear", Executor: groupPrice(domain.GroupToppings)},
	{Name: Sauces, RuleID: "sauces.linear", Executor: groupPrice(domain.GroupSauces)},
}}

// Quote prices one unit of the selection and the line total. It has no side effects.
func (e *Engine) Quote(p *domain.Product, s *selection.Selection) Quote {
	ctx := &Context{Product: p, Selection: s, UnitPrice: decimal.Zero}
	e.Run(ctx)

	qty := decimal.NewFromInt(int64(s.Quantity()))
	total := ctx.UnitPrice.Mul(qty)
	ctx.Log = append(ctx.Log, ExecutionStep{
		Phase:  Totals,
		RuleID: "totals.quantity",
		Action: "unitPrice x " + qty.String(),
		Amount: total,
	})

	return Quote{
		ProductID:     p.ID,
		StartingPrice: p.StartingPrice(),
		UnitPrice:     ctx.UnitPrice,
		Quantity:      s.Quantity(),
		Total:         total,
		Ingredients:   ctx.Ingredients,
		ExecutionLog:  ctx.Log,
	}
}

// QuoteSelection runs the default pipeline.
func QuoteSelection(p *domain.Product, s *selection.Selection) Quote {
	return Default.Quote(p, s)
}

// ComputeUnitPrice returns the price of one unit of the customized product.
func ComputeUnitPrice(p *domain.Product, s *selection.Selection) decimal.Decimal {
	return Default.Quote(p, s).UnitPrice
}
