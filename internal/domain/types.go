package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Defaults applied when a product leaves a cardinality or price field unset.
const (
	DefaultFreeIngredients       = 5
	DefaultMaxToppings           = 5
	DefaultMaxSauces             = 12
	DefaultIngredientExcessPrice = 6
)

// Option is a selectable modifier of a product (base, ingredient, topping, sauce or addon).
type Option struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Price       *decimal.Decimal `json:"price,omitempty" yaml:"price,omitempty"`
	IsAvailable *bool            `json:"isAvailable,omitempty" yaml:"isAvailable,omitempty"`
}

// Available reports whether the option may be offered. A missing flag counts as available.
func (o Option) Available() bool {
	return o.IsAvailable == nil || *o.IsAvailable
}

// UnitPrice returns the option price, coerced to zero when missing or negative.
func (o Option) UnitPrice() decimal.Decimal {
	return Coerce(o.Price)
}

// Variation is the legacy binary modifier: toggled on or off, never multiplied.
type Variation struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Price *decimal.Decimal `json:"price,omitempty" yaml:"price,omitempty"`
}

// Product is the read-only definition a customization session is opened for.
type Product struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty" yaml:"basePrice,omitempty"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty" yaml:"discountPrice,omitempty"`

	Bases       []Option    `json:"bases,omitempty" yaml:"bases,omitempty"`
	Ingredients []Option    `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Toppings    []Option    `json:"toppings,omitempty" yaml:"toppings,omitempty"`
	Sauces      []Option    `json:"sauces,omitempty" yaml:"sauces,omitempty"`
	Addons      []Option    `json:"addons,omitempty" yaml:"addons,omitempty"`
	Variations  []Variation `json:"variations,omitempty" yaml:"variations,omitempty"`

	MinIngredientSelection       *int             `json:"minIngredientSelection,omitempty" yaml:"minIngredientSelection,omitempty"`
	MaxIngredientSelection       *int             `json:"maxIngredientSelection,omitempty" yaml:"maxIngredientSelection,omitempty"`
	DefaultIngredientExcessPrice *decimal.Decimal `json:"defaultIngredientExcessPrice,omitempty" yaml:"defaultIngredientExcessPrice,omitempty"`
	MinToppingSelection          *int             `json:"minToppingSelection,omitempty" yaml:"minToppingSelection,omitempty"`
	MaxToppingSelection          *int             `json:"maxToppingSelection,omitempty" yaml:"maxToppingSelection,omitempty"`
	MinSauceSelection            *int             `json:"minSauceSelection,omitempty" yaml:"minSauceSelection,omitempty"`
	MaxSauceSelection            *int             `json:"maxSauceSelection,omitempty" yaml:"maxSauceSelection,omitempty"`
}

// HasValidPrice reports whether either the base or the discount price is usable.
func (p *Product) HasValidPrice() bool {
	return valid(p.BasePrice) || valid(p.DiscountPrice)
}

// StartingPrice is the discount price when it is valid, the base price otherwise.
func (p *Product) StartingPrice() decimal.Decimal {
	if valid(p.DiscountPrice) {
		return *p.DiscountPrice
	}
	return Coerce(p.BasePrice)
}

func (p *Product) FreeIngredientLimit() int {
	return intOr(p.MaxIngredientSelection, DefaultFreeIngredients)
}

// IngredientExcessPrice is the per-unit fallback for paid ingredients without a price.
func (p *Product) IngredientExcessPrice() decimal.Decimal {
	if valid(p.DefaultIngredientExcessPrice) && p.DefaultIngredientExcessPrice.IsPositive() {
		return *p.DefaultIngredientExcessPrice
	}
	return decimal.NewFromInt(DefaultIngredientExcessPrice)
}

// Variation looks up a legacy variation by id.
func (p *Product) Variation(id string) (Variation, bool) {
	for _, v := range p.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Coerce turns a missing or negative price into zero.
func Coerce(d *decimal.Decimal) decimal.Decimal {
	if !valid(d) {
		return decimal.Zero
	}
	return *d
}

func valid(d *decimal.Decimal) bool {
	return d != nil && !d.IsNegative()
}

func intOr(v *int, def int) int {
	if v == nil || *v < 0 {
		return def
	}
	return *v
}

// LineOption is one resolved modifier inside an OrderLine.
type LineOption struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	Quantity      int              `json:"quantity,omitempty"`
	FreeQuantity  int              `json:"freeQuantity,omitempty"`
	PaidUnitPrice *decimal.Decimal `json:"paidUnitPrice,omitempty"`
}

// OrderLine is the normalized payload handed to the order sink. It is never mutated after assembly.
type OrderLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`

	Bases       []LineOption `json:"bases,omitempty"`
	Variations  []LineOption `json:"variations,omitempty"`
	Addons      []LineOption `json:"addons,omitempty"`
	Ingredients []LineOption `json:"ingredients,omitempty"`
	Toppings    []LineOption `json:"toppings,omitempty"`
	Sauces      []LineOption `json:"sauces,omitempty"`
}

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrUnknownGroup        = errors.New("unknown modifier group")
	ErrUnknownOption       = errors.New("unknown option")
	ErrOptionUnavailable   = errors.New("option is not available")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrNoValidPrice        = errors.New("product has no valid price")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionClosed       = errors.New("session is closed")
	ErrRuleExecutionFailed = errors.New("rule execution failed")
)
