package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GroupKind names a modifier group of a product.
type GroupKind string

const (
	GroupBases       GroupKind = "bases"
	GroupVariations  GroupKind = "variations"
	GroupAddons      GroupKind = "addons"
	GroupIngredients GroupKind = "ingredients"
	GroupToppings    GroupKind = "toppings"
	GroupSauces      GroupKind = "sauces"
)

// Groups lists every modifier group in pricing order.
var Groups = []GroupKind{GroupBases, GroupVariations, GroupAddons, GroupIngredients, GroupToppings, GroupSauces}

// ParseGroup accepts a group name as it appears in requests and rule packs.
func ParseGroup(s string) (GroupKind, error) {
	for _, g := range Groups {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

// singular is used in violation messages: "select at least 2 topping(s)".
func (g GroupKind) singular() string {
	switch g {
	case GroupBases:
		return "base"
	case GroupVariations:
		return "variation"
	case GroupAddons:
		return "addon"
	case GroupIngredients:
		return "ingredient"
	case GroupToppings:
		return "topping"
	case GroupSauces:
		return "sauce"
	}
	return string(g)
}

// CardinalityKind is the shape of a group's selection policy.
type CardinalityKind string

const (
	ExactlyOne CardinalityKind = "exactlyOne"
	AtMostOne  CardinalityKind = "atMostOne"
	Range      CardinalityKind = "range"
	Unbounded  CardinalityKind = "unbounded"
)

// NoMax marks a Range without an upper bound.
const NoMax = -1

// Cardinality bounds the total quantity selected in a group.
type Cardinality struct {
	Kind CardinalityKind
	Min  int
	Max  int
}

// Bounds returns the effective min and max (NoMax when open-ended).
func (c Cardinality) Bounds() (int, int) {
	switch c.Kind {
	case ExactlyOne:
		return 1, 1
	case AtMostOne:
		return 0, 1
	case Range:
		return c.Min, c.Max
	}
	return 0, NoMax
}

// Allows reports whether a group total of n would satisfy the upper bound.
func (c Cardinality) Allows(n int) bool {
	_, max := c.Bounds()
	return max == NoMax || n <= max
}

// Violation describes one broken cardinality constraint.
type Violation struct {
	RuleID  string    `json:"ruleId"`
	Group   GroupKind `json:"group,omitempty"`
	Message string    `json:"message"`
}

// Check returns the violations of a group total against the policy.
func (c Cardinality) Check(g GroupKind, total int) []Violation {
	min, max := c.Bounds()
	var out []Violation
	if total < min {
		out = append(out, Violation{
			RuleID:  string(g) + ".min",
			Group:   g,
			Message: fmt.Sprintf("select at least %d %s(s)", min, g.singular()),
		})
	}
	if max != NoMax && total > max {
		out = append(out, Violation{
			RuleID:  string(g) + ".max",
			Group:   g,
			Message: fmt.Sprintf("select at most %d %s(s)", max, g.singular()),
		})
	}
	return out
}

// ModifierGroup is the uniform view over the six product categories.
type ModifierGroup struct {
	Kind    GroupKind
	Options []Option
	Policy  Cardinality
	// Quantified groups carry a per-option count; the rest are on/off.
	Quantified bool
	// CeilingOnIncrement rejects increments past Policy's max at the mutation site.
	CeilingOnIncrement bool
	// FreeAllowance and ExcessPrice drive tiered pricing; zero allowance disables it.
	FreeAllowance int
	ExcessPrice   decimal.Decimal
}

// Option finds an option of the group by id, available or not.
func (g ModifierGroup) Option(id string) (Option, bool) {
	for _, o := range g.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Group builds the modifier group of the given kind with the product's defaults applied.
func (p *Product) Group(kind GroupKind) (ModifierGroup, error) {
	switch kind {
	case GroupBases:
		return ModifierGroup{Kind: kind, Options: p.Bases, Policy: Cardinality{Kind: AtMostOne}}, nil
	case GroupVariations:
		opts := make([]Option, 0, len(p.Variations))
		for _, v := range p.Variations {
			opts = append(opts, Option{ID: v.ID, Name: v.Name, Price: v.Price})
		}
		return ModifierGroup{Kind: kind, Options: opts, Policy: Cardinality{Kind: Unbounded}}, nil
	case GroupAddons:
		return ModifierGroup{Kind: kind, Options: p.Addons, Policy: Cardinality{Kind: Unbounded}, Quantified: true}, nil
	case GroupIngredients:
		return ModifierGroup{
			Kind:          kind,
			Options:       p.Ingredients,
			Policy:        Cardinality{Kind: Range, Min: intOr(p.MinIngredientSelection, 0), Max: NoMax},
			Quantified:    true,
			FreeAllowance: p.FreeIngredientLimit(),
			ExcessPrice:   p.IngredientExcessPrice(),
		}, nil
	case GroupToppings:
		return ModifierGroup{
			Kind:               kind,
			Options:            p.Toppings,
			Policy:             Cardinality{Kind: Range, Min: intOr(p.MinToppingSelection, 0), Max: intOr(p.MaxToppingSelection, DefaultMaxToppings)},
			Quantified:         true,
			CeilingOnIncrement: true,
		}, nil
	case GroupSauces:
		return ModifierGroup{
			Kind:               kind,
			Options:            p.Sauces,
			Policy:             Cardinality{Kind: Range, Min: intOr(p.MinSauceSelection, 0), Max: intOr(p.MaxSauceSelection, DefaultMaxSauces)},
			Quantified:         true,
			CeilingOnIncrement: true,
		}, nil
	}
	return ModifierGroup{}, fmt.Errorf("%w: %q", ErrUnknownGroup, kind)
}

// Offered returns the options of a group that may be presented to the customer.
func (p *Product) Offered(kind GroupKind) []Option {
	g, err := p.Group(kind)
	if err != nil {
		return nil
	}
	var out []Option
	for _, o := range g.Options {
		if o.Available() {
			out = append(out, o)
		}
	}
	return out
}

// Offering returns a copy of the product with unavailable options removed, as
// presented to customers.
func (p *Product) Offering() Product {
	out := *p
	out.Bases = p.Offered(GroupBases)
	out.Ingredients = p.Offered(GroupIngredients)
	out.Toppings = p.Offered(GroupToppings)
	out.Sauces = p.Offered(GroupSauces)
	out.Addons = p.Offered(GroupAddons)
	return out
}
