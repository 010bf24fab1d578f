package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func price(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func intp(v int) *int { return &v }

func TestCardinality(t *testing.T) {
	cases := []struct {
		name    string
		c       Cardinality
		total   int
		wantIDs []string
	}{
		{"exactly one satisfied", Cardinality{Kind: ExactlyOne}, 1, nil},
		{"exactly one missing", Cardinality{Kind: ExactlyOne}, 0, []string{"bases.min"}},
		{"exactly one too many", Cardinality{Kind: ExactlyOne}, 2, []string{"bases.max"}},
		{"at most one empty", Cardinality{Kind: AtMostOne}, 0, nil},
		{"range below min", Cardinality{Kind: Range, Min: 2, Max: 4}, 1, []string{"bases.min"}},
		{"range above max", Cardinality{Kind: Range, Min: 0, Max: 4}, 5, []string{"bases.max"}},
		{"range open ended", Cardinality{Kind: Range, Min: 1, Max: NoMax}, 100, nil},
		{"unbounded", Cardinality{Kind: Unbounded}, 1000, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.Check(GroupBases, tc.total)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %d violations, got %+v", len(tc.wantIDs), got)
			}
			for i, id := range tc.wantIDs {
				if got[i].RuleID != id {
					t.Errorf("violation %d: expected %s, got %s", i, id, got[i].RuleID)
				}
			}
		})
	}

	t.Run("allows respects max only", func(t *testing.T) {
		c := Cardinality{Kind: Range, Min: 3, Max: 2}
		if !c.Allows(0) || !c.Allows(2) || c.Allows(3) {
			t.Error("unexpected Allows result for range max 2")
		}
	})
}

func TestProductGroupDefaults(t *testing.T) {
	p := &Product{ID: "pizza"}

	toppings, _ := p.Group(GroupToppings)
	if _, max := toppings.Policy.Bounds(); max != DefaultMaxToppings {
		t.Errorf("expected topping max %d, got %d", DefaultMaxToppings, max)
	}
	if !toppings.CeilingOnIncrement {
		t.Error("toppings must reject increments past the ceiling")
	}

	sauces, _ := p.Group(GroupSauces)
	if _, max := sauces.Policy.Bounds(); max != DefaultMaxSauces {
		t.Errorf("expected sauce max %d, got %d", DefaultMaxSauces, max)
	}

	ingredients, _ := p.Group(GroupIngredients)
	if ingredients.CeilingOnIncrement {
		t.Error("ingredients may be over-selected")
	}
	if ingredients.FreeAllowance != DefaultFreeIngredients {
		t.Errorf("expected free allowance %d, got %d", DefaultFreeIngredients, ingredients.FreeAllowance)
	}
	if !ingredients.ExcessPrice.Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected excess price 6, got %s", ingredients.ExcessPrice)
	}

	addons, _ := p.Group(GroupAddons)
	if addons.Policy.Kind != Unbounded || addons.CeilingOnIncrement {
		t.Error("addons are unbounded")
	}

	if _, err := p.Group("drinks"); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("expected ErrUnknownGroup, got %v", err)
	}
}

func TestProductOverrides(t *testing.T) {
	p := &Product{
		MaxIngredientSelection:       intp(3),
		DefaultIngredientExcessPrice: price(2.5),
		MinToppingSelection:          intp(1),
		MaxToppingSelection:          intp(2),
	}
	ing, _ := p.Group(GroupIngredients)
	if ing.FreeAllowance != 3 || !ing.ExcessPrice.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("ingredient overrides not applied: %+v", ing)
	}
	top, _ := p.Group(GroupToppings)
	if min, max := top.Policy.Bounds(); min != 1 || max != 2 {
		t.Errorf("expected topping bounds 1..2, got %d..%d", min, max)
	}
}

func TestProductPricing(t *testing.T) {
	t.Run("discount wins when valid", func(t *testing.T) {
		p := &Product{BasePrice: price(50), DiscountPrice: price(40)}
		if !p.StartingPrice().Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected 40, got %s", p.StartingPrice())
		}
	})

	t.Run("negative discount is ignored", func(t *testing.T) {
		p := &Product{BasePrice: price(50), DiscountPrice: price(-1)}
		if !p.StartingPrice().Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50, got %s", p.StartingPrice())
		}
	})

	t.Run("valid price", func(t *testing.T) {
		if (&Product{}).HasValidPrice() {
			t.Error("product without prices must not be priceable")
		}
		if (&Product{BasePrice: price(-3)}).HasValidPrice() {
			t.Error("negative base price is not valid")
		}
		if !(&Product{DiscountPrice: price(0)}).HasValidPrice() {
			t.Error("zero discount price is valid")
		}
	})

	t.Run("missing option price coerces to zero", func(t *testing.T) {
		if !(Option{ID: "x"}).UnitPrice().IsZero() {
			t.Error("expected zero")
		}
		if !(Option{ID: "x", Price: price(-2)}).UnitPrice().IsZero() {
			t.Error("expected zero for negative price")
		}
	})
}

func TestOffering(t *testing.T) {
	off := false
	p := &Product{
		ID: "burger",
		Toppings: []Option{
			{ID: "bacon"},
			{ID: "egg", IsAvailable: &off},
		},
	}
	got := p.Offering()
	if len(got.Toppings) != 1 || got.Toppings[0].ID != "bacon" {
		t.Errorf("expected only bacon, got %+v", got.Toppings)
	}
	if len(p.Toppings) != 2 {
		t.Error("Offering must not mutate the product")
	}
}
