package domain

import "time"

// Rule-pack phases evaluated against selections. Guards returning true block the
// selection; annotation results are reported under the rule's output key.
const (
	AnnotationsPhase = "annotations"
	GuardsPhase      = "guards"
)

// RulePackDefinition is a versioned set of merchant rules loaded from disk.
type RulePackDefinition struct {
	Version     string       `json:"version" yaml:"version"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []RuleConfig `json:"rules" yaml:"rules"`
}

type RuleConfig struct {
	ID           string                 `json:"id" yaml:"id"`
	Phase        string                 `json:"phase" yaml:"phase"`
	Logic        map[string]interface{} `json:"logic" yaml:"logic"` // JsonLogic structure
	OutputKey    string                 `json:"output_key,omitempty" yaml:"output_key,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// SubmittedLine is an order line as recorded by an order sink.
type SubmittedLine struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
	Line        OrderLine `json:"line"`
}
