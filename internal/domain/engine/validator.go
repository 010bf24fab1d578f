package engine

import (
	"strings"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
)

// Validate checks every group total against its cardinality policy.
// An empty result means the selection may be submitted.
func Validate(p *domain.Product, s *selection.Selection) []domain.Violation {
	var out []domain.Violation
	for _, kind := range domain.Groups {
		g, err := p.Group(kind)
		if err != nil {
			continue
		}
		out = append(out, g.Policy.Check(kind, s.Total(kind))...)
	}
	return out
}

// ValidationError blocks submission of a selection with violations.
type ValidationError struct {
	Violations []domain.Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "invalid selection: " + strings.Join(msgs, "; ")
}

// Messages returns the human-readable text of each violation.
func Messages(vs []domain.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}
