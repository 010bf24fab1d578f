package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
	"github.com/Victor-armando18/menu-customizer/internal/domain/engine"
	"github.com/Victor-armando18/menu-customizer/internal/domain/selection"
	"go.uber.org/zap"
)

var ErrInvalidPatch = errors.New("invalid patch document")

type ruleOutcome struct {
	violations  []domain.Violation
	annotations map[string]any
}

// applyRules evaluates the merchant rule pack against a selection and its quote.
// Rules that fail to execute are logged and skipped.
func (s *CustomizationService) applyRules(ctx context.Context, p *domain.Product, sel *selection.Selection, q engine.Quote) (ruleOutcome, error) {
	var out ruleOutcome
	if s.loader == nil || s.executor == nil || s.rulesVersion == "" {
		return out, nil
	}
	pack, err := s.loader.Load(ctx, s.rulesVersion)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Warn("rule pack not found, serving without merchant rules", zap.String("version", s.rulesVersion))
			return out, nil
		}
		return out, fmt.Errorf("load rule pack %s: %w", s.rulesVersion, err)
	}

	data := ruleData(p, sel, q)
	for _, phase := range []string{domain.GuardsPhase, domain.AnnotationsPhase} {
		for _, rule := range rulesFor(pack.Rules, phase) {
			res, err := s.executor.Execute(ctx, rule.Logic, data)
			if err != nil {
				s.log.Warn("rule skipped", zap.String("rule_id", rule.ID), zap.Error(err))
				continue
			}
			switch phase {
			case domain.GuardsPhase:
				if hit, ok := res.(bool); ok && hit {
					msg := rule.ErrorMessage
					if msg == "" {
						msg = "selection blocked by rule " + rule.ID
					}
					out.violations = append(out.violations, domain.Violation{RuleID: rule.ID, Message: msg})
				}
			case domain.AnnotationsPhase:
				if res == nil {
					continue
				}
				key := rule.OutputKey
				if key == "" {
					key = rule.ID
				}
				if out.annotations == nil {
					out.annotations = make(map[string]any)
				}
				out.annotations[key] = res
			}
		}
	}
	return out, nil
}

func rulesFor(rules []domain.RuleConfig, phase string) []domain.RuleConfig {
	var f []domain.RuleConfig
	for _, r := range rules {
		if r.Phase == phase {
			f = append(f, r)
		}
	}
	return f
}

// ruleData is the document rules see: {"selection": ..., "product": ..., "quote": ...}.
// Money is exposed as float64 because JsonLogic arithmetic is float based.
func ruleData(p *domain.Product, sel *selection.Selection, q engine.Quote) map[string]interface{} {
	unit, _ := q.UnitPrice.Float64()
	total, _ := q.Total.Float64()
	start, _ := q.StartingPrice.Float64()
	ingredients, _ := q.Ingredients.TotalCost.Float64()
	return map[string]interface{}{
		"selection": sel.Snapshot().ToMap(),
		"product": map[string]interface{}{
			"id":            p.ID,
			"name":          p.Name,
			"startingPrice": start,
		},
		"quote": map[string]interface{}{
			"unitPrice":      unit,
			"total":          total,
			"quantity":       q.Quantity,
			"ingredientCost": ingredients,
			"freeCount":      q.Ingredients.FreeCount,
			"paidCount":      q.Ingredients.PaidCount,
		},
	}
}
