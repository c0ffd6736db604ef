package validate

import (
	"fmt"

	"github.com/omgkit/omgkit/pkg/types/component"
)

// CheckCoverage runs the soft coverage-ratio checks: what fraction of
// each kind is actually referenced by the kinds above it. Falling
// below a threshold is a warning, not an integrity failure, since an
// unused component is a quality smell rather than a broken reference.
func CheckCoverage(g *component.Graph, thresholds Thresholds) component.Violations {
	var violations component.Violations

	checks := []struct {
		kind      component.Kind
		by        []component.Kind
		threshold float64
	}{
		{component.KindAgent, []component.Kind{component.KindWorkflow}, thresholds.AgentCoverage},
		{component.KindSkill, []component.Kind{component.KindAgent, component.KindWorkflow}, thresholds.SkillCoverage},
		{component.KindCommand, []component.Kind{component.KindSkill, component.KindAgent, component.KindWorkflow}, thresholds.CommandCoverage},
	}

	for _, check := range checks {
		if check.threshold <= 0 {
			continue
		}
		total := len(g.Nodes[check.kind])
		if total == 0 {
			continue
		}

		covered := 0
		for _, node := range g.Nodes[check.kind] {
			if referencedByAny(node, check.by) {
				covered++
			}
		}

		ratio := float64(covered) / float64(total)
		if ratio >= check.threshold {
			continue
		}

		violations = append(violations, component.Violation{
			Rule:     component.RuleCoverage,
			Severity: component.SeverityWarning,
			SourceID: string(check.kind),
			Kind:     check.kind,
			Detail: fmt.Sprintf("only %d of %d %ss (%.0f%%) are referenced by %s (minimum %.0f%%)",
				covered, total, check.kind, ratio*100, kindList(check.by), check.threshold*100),
		})
	}

	return violations
}

func referencedByAny(node *component.Node, kinds []component.Kind) bool {
	for _, kind := range kinds {
		if len(node.UsedBy[kind]) > 0 {
			return true
		}
	}
	return false
}

func kindList(kinds []component.Kind) string {
	out := ""
	for i, kind := range kinds {
		if i > 0 {
			out += " or "
		}
		out += string(kind) + "s"
	}
	return out
}
