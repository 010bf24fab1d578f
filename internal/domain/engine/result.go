package engine

import "github.com/shopspring/decimal"

// ExecutionStep records what one pricing phase contributed to the unit price.
type ExecutionStep struct {
	Phase  PipelinePhase   `json:"phase"`
	RuleID string          `json:"ruleId"`
	Action string          `json:"action"`
	Amount decimal.Decimal `json:"amount"`
}

// IngredientLine is the tier breakdown of one selected ingredient.
type IngredientLine struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	FreeQuantity int             `json:"freeQuantity"`
	PaidQuantity int             `json:"paidQuantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Cost         decimal.Decimal `json:"cost"`
}

type IngredientCost struct {
	FreeCount int              `json:"freeCount"`
	PaidCount int              `json:"paidCount"`
	TotalCost decimal.Decimal  `json:"totalCost"`
	Breakdown []IngredientLine `json:"perIngredientBreakdown"`
}

// Quote is the priced view of a selection.
type Quote struct {
	ProductID     string          `json:"productId"`
	StartingPrice decimal.Decimal `json:"startingPrice"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Ingredients   IngredientCost  `json:"ingredients"`
	ExecutionLog  []ExecutionStep `json:"executionLog"`
}
