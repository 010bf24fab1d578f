// Package engine exposes the menu customization engine to programs outside this
// module: load a product and a selection, then price, validate and assemble it.
package engine

import (
	"github.com/Victor-armando18/menu-customizer/internal/domain"
	internal "github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/model"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
)

type (
	Product   = domain.Product
	Option    = domain.Option
	Variation = domain.Variation
	OrderLine = domain.OrderLine
	Violation = domain.Violation
	GroupKind = domain.GroupKind
	RulePack  = domain.RulePackDefinition

	Snapshot = model.Snapshot
	Entry    = model.Entry

	Selection      = selection.Selection
	Quote          = internal.Quote
	ExecutionStep  = internal.ExecutionStep
	IngredientCost = internal.IngredientCost

	ValidationError = internal.ValidationError
)

const (
	Bases       = domain.GroupBases
	Variations  = domain.GroupVariations
	Addons      = domain.GroupAddons
	Ingredients = domain.GroupIngredients
	Toppings    = domain.GroupToppings
	Sauces      = domain.GroupSauces
)

var ErrNoValidPrice = domain.ErrNoValidPrice

// Report is the full diagnostic of one selection.
type Report struct {
	Quote        Quote          `json:"quote"`
	Violations   []Violation    `json:"violations"`
	Annotations  map[string]any `json:"annotations,omitempty"`
	RulesVersion string         `json:"rulesVersion,omitempty"`
	ServerDelta  bool           `json:"serverDelta"`
	// Line is set only when the selection could be assembled.
	Line        *OrderLine `json:"line,omitempty"`
	AssembleErr string     `json:"assembleError,omitempty"`
}
