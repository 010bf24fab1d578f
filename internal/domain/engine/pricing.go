package engine

import (
	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"github.com/shopspring/decimal"
)

func startingPrice(ctx *Context) (decimal.Decimal, string) {
	if ctx.Product.DiscountPrice != nil && !ctx.Product.DiscountPrice.IsNegative() {
		return *ctx.Product.DiscountPrice, "discountPrice"
	}
	return domain.Coerce(ctx.Product.BasePrice), "basePrice"
}

func basePrice(ctx *Context) (decimal.Decimal, string) {
	b, ok := ctx.Selection.Base()
	if !ok {
		return decimal.Zero, "none"
	}
	return b.UnitPrice(), b.ID
}

func variationsPrice(ctx *Context) (decimal.Decimal, string) {
	sum := decimal.Zero
	for _, e := range ctx.Selection.Entries(domain.GroupVariations) {
		if v, ok := ctx.Product.Variation(e.ID); ok {
			sum = sum.Add(domain.Coerce(v.Price))
		}
	}
	return sum, "flat"
}

// groupPrice charges price x quantity for every selected option of a group.
func groupPrice(kind domain.GroupKind) PhaseExecutor {
	return PhaseFunc(func(ctx *Context) (decimal.Decimal, string) {
		g, err := ctx.Product.Group(kind)
		if err != nil {
			return decimal.Zero, "skipped"
		}
		sum := decimal.Zero
		for _, e := range ctx.Selection.Entries(kind) {
			o, ok := g.Option(e.ID)
			if !ok {
				continue
			}
			sum = sum.Add(o.UnitPrice().Mul(decimal.NewFromInt(int64(e.Quantity))))
		}
		return sum, "linear"
	})
}

func ingredientsPrice(ctx *Context) (decimal.Decimal, string) {
	ctx.Ingredients = IngredientTier(ctx.Product, ctx.Selection)
	return ctx.Ingredients.TotalCost, "tiered"
}

// IngredientTier charges ingredients beyond the free allowance. Ingredients consume
// free units in first-touch order, so the customer's selection order is bill-affecting.
func IngredientTier(p *domain.Product, s *selection.Selection) IngredientCost {
	g, _ := p.Group(domain.GroupIngredients)
	freeLimit := g.FreeAllowance
	remaining := freeLimit

	cost := IngredientCost{TotalCost: decimal.Zero}
	selected := 0
	for _, e := range s.Entries(domain.GroupIngredients) {
		o, ok := g.Option(e.ID)
		if !ok {
			continue
		}
		selected += e.Quantity
		free := min(e.Quantity, remaining)
		paid := e.Quantity - free
		remaining -= free

		unit := o.UnitPrice()
		if !unit.IsPositive() {
			unit = g.ExcessPrice
		}
		lineCost := unit.Mul(decimal.NewFromInt(int64(paid)))
		cost.TotalCost = cost.TotalCost.Add(lineCost)
		cost.Breakdown = append(cost.Breakdown, IngredientLine{
			ID:           o.ID,
			Name:         o.Name,
			Quantity:     e.Quantity,
			FreeQuantity: free,
			PaidQuantity: paid,
			UnitPrice:    unit,
			Cost:         lineCost,
		})
	}
	cost.FreeCount = min(selected, freeLimit)
	cost.PaidCount = max(0, selected-freeLimit)
	return cost
}
