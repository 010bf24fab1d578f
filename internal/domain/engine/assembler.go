package engine

import (
	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
)

// Assemble turns a valid selection into the order line handed to the order sink.
func Assemble(p *domain.Product, s *selection.Selection) (domain.OrderLine, error) {
	if !p.HasValidPrice() {
		return domain.OrderLine{}, domain.ErrNoValidPrice
	}
	if vs := Validate(p, s); len(vs) > 0 {
		return domain.OrderLine{}, &ValidationError{Violations: vs}
	}

	q := QuoteSelection(p, s)
	line := domain.OrderLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		BasePrice:   domain.Coerce(p.BasePrice),
		Quantity:    q.Quantity,
		UnitPrice:   q.UnitPrice,
		Total:       q.Total,
	}

	if b, ok := s.Base(); ok {
		line.Bases = []domain.LineOption{{ID: b.ID, Name: b.Name, Price: b.UnitPrice()}}
	}
	for _, e := range s.Entries(domain.GroupVariations) {
		if v, ok := p.Variation(e.ID); ok {
			line.Variations = append(line.Variations, domain.LineOption{ID: v.ID, Name: v.Name, Price: domain.Coerce(v.Price)})
		}
	}
	line.Addons = quantified(p, s, domain.GroupAddons)
	line.Toppings = quantified(p, s, domain.GroupToppings)
	line.Sauces = quantified(p, s, domain.GroupSauces)
	ingredients, _ := p.Group(domain.GroupIngredients)
	for _, il := range q.Ingredients.Breakdown {
		lo := domain.LineOption{
			ID:           il.ID,
			Name:         il.Name,
			Quantity:     il.Quantity,
			FreeQuantity: il.FreeQuantity,
		}
		if o, ok := ingredients.Option(il.ID); ok {
			lo.Price = o.UnitPrice()
		}
		if il.PaidQuantity > 0 {
			paid := il.UnitPrice
			lo.PaidUnitPrice = &paid
		}
		line.Ingredients = append(line.Ingredients, lo)
	}
	return line, nil
}

func quantified(p *domain.Product, s *selection.Selection, kind domain.GroupKind) []domain.LineOption {
	g, err := p.Group(kind)
	if err != nil {
		return nil
	}
	var out []domain.LineOption
	for _, e := range s.Entries(kind) {
		o, ok := g.Option(e.ID)
		if !ok {
			continue
		}
		out = append(out, domain.LineOption{ID: o.ID, Name: o.Name, Price: o.UnitPrice(), Quantity: e.Quantity})
	}
	return out
}
