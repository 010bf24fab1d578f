package engine

type PipelinePhase string

const (
	Baseline    PipelinePhase = "baseline"
	BasePhase   PipelinePhase = "base"
	Variations  PipelinePhase = "variations"
	Addons      PipelinePhase = "addons"
	Ingredients PipelinePhase = "ingredients"
	Toppings    PipelinePhase = "toppings"
	Sauces      PipelinePhase = "sauces"
	Totals      PipelinePhase = "totals"
)
