package validate

import (
	"fmt"

	"github.com/omgkit/omgkit/pkg/types/component"
)

// CheckExistence verifies that every declared forward reference points
// at a node that actually exists in the graph.
func CheckExistence(g *component.Graph) component.Violations {
	var violations component.Violations

	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			for _, id := range ids {
				if g.Exists(depKind, id) {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleExistence,
					Severity: component.SeverityError,
					SourceID: node.ID,
					Kind:     depKind,
					Target:   id,
					Detail:   fmt.Sprintf("references %s %q which does not exist", depKind, id),
				})
			}
		}
	})

	return violations
}

// CheckFormat verifies that every node id, and every id appearing in a
// DependsOn or UsedBy set, matches the identity regex for its kind.
// UsedBy entries that resolve to existing nodes are skipped since their
// ids were already checked as node ids.
func CheckFormat(g *component.Graph) component.Violations {
	var violations component.Violations

	g.EachNode(func(node *component.Node) {
		if !component.ValidID(node.Kind, node.ID) {
			violations = append(violations, component.Violation{
				Rule:     component.RuleFormat,
				Severity: component.SeverityError,
				SourceID: node.ID,
				Kind:     node.Kind,
				Target:   node.ID,
				Detail:   fmt.Sprintf("id does not match the %s format", node.Kind),
			})
		}

		for depKind, ids := range node.DependsOn {
			for _, id := range ids {
				if component.ValidID(depKind, id) {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleFormat,
					Severity: component.SeverityError,
					SourceID: node.ID,
					Kind:     depKind,
					Target:   id,
					Detail:   fmt.Sprintf("declared %s reference %q does not match the %s format", depKind, id, depKind),
				})
			}
		}

		for refKind, ids := range node.UsedBy {
			for _, id := range ids {
				if g.Exists(refKind, id) || component.ValidID(refKind, id) {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleFormat,
					Severity: component.SeverityError,
					SourceID: node.ID,
					Kind:     refKind,
					Target:   id,
					Detail:   fmt.Sprintf("reverse %s reference %q does not match the %s format", refKind, id, refKind),
				})
			}
		}
	})

	return violations
}

// CheckHierarchy verifies the reference direction of the 5-level
// hierarchy: no node may depend on a kind at or above its own level,
// and only the kind pairs permitted by the hierarchy table may appear.
// It also flags the structural presence of any non-permitted reference
// field in the source frontmatter, even when the field's list was
// empty, covering both upward fields (workflows on an agent) and
// downward fields outside the table (mcps on an agent).
func CheckHierarchy(g *component.Graph) component.Violations {
	var violations component.Violations

	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			if component.MayReference(node.Kind, depKind) {
				continue
			}
			detail := fmt.Sprintf("%s may not reference %s components", node.Kind, depKind)
			if depKind.Level() >= node.Kind.Level() {
				detail = fmt.Sprintf("%s may not reference %s components (level %d >= %d)",
					node.Kind, depKind, depKind.Level(), node.Kind.Level())
			}
			violations = append(violations, component.Violation{
				Rule:     component.RuleHierarchy,
				Severity: component.SeverityError,
				SourceID: node.ID,
				Kind:     depKind,
				Target:   fmt.Sprintf("%d entries", len(ids)),
				Detail:   detail,
			})
		}

		for _, kind := range component.AllKinds {
			if component.MayReference(node.Kind, kind) {
				continue
			}
			field := referenceFieldName(kind)
			if !node.HasDeclaredKey(field) {
				continue
			}
			violations = append(violations, component.Violation{
				Rule:     component.RuleHierarchy,
				Severity: component.SeverityError,
				SourceID: node.ID,
				Kind:     kind,
				Target:   field,
				Detail:   fmt.Sprintf("%s frontmatter must not carry a %q field", node.Kind, field),
			})
		}
	})

	return violations
}

// referenceFieldName returns the frontmatter list-field name used to
// declare references to the given kind.
func referenceFieldName(k component.Kind) string {
	switch k {
	case component.KindMCP:
		return "mcps"
	case component.KindCommand:
		return "commands"
	case component.KindSkill:
		return "skills"
	case component.KindAgent:
		return "agents"
	case component.KindWorkflow:
		return "workflows"
	}
	return string(k)
}

// CheckConsistency verifies the round-trip between forward and reverse
// edges in both directions: every resolved DependsOn edge must be
// mirrored in the target's UsedBy, and every UsedBy entry must be
// backed by a real node carrying the matching forward edge.
func CheckConsistency(g *component.Graph) component.Violations {
	var violations component.Violations

	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			for _, id := range ids {
				target := g.Lookup(depKind, id)
				if target == nil {
					continue // existence check owns dangling edges
				}
				if containsID(target.UsedBy[node.Kind], node.ID) {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleConsistency,
					Severity: component.SeverityError,
					SourceID: node.ID,
					Kind:     depKind,
					Target:   id,
					Detail:   fmt.Sprintf("%s %q does not list %s %q in usedBy", depKind, id, node.Kind, node.ID),
				})
			}
		}

		for refKind, ids := range node.UsedBy {
			for _, id := range ids {
				referrer := g.Lookup(refKind, id)
				if referrer == nil {
					violations = append(violations, component.Violation{
						Rule:     component.RuleConsistency,
						Severity: component.SeverityError,
						SourceID: node.ID,
						Kind:     refKind,
						Target:   id,
						Detail:   fmt.Sprintf("usedBy names %s %q which does not exist", refKind, id),
					})
					continue
				}
				if containsID(referrer.DependsOn[node.Kind], node.ID) {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleConsistency,
					Severity: component.SeverityError,
					SourceID: node.ID,
					Kind:     refKind,
					Target:   id,
					Detail:   fmt.Sprintf("usedBy names %s %q which declares no matching dependency", refKind, id),
				})
			}
		}
	})

	return violations
}

// CheckDuplicates flags repeated ids within a single declared
// reference list. A list with the same id three times produces exactly
// one violation for that id. Duplicates are a quality signal rather
// than a broken reference, so they warn instead of failing the run.
func CheckDuplicates(g *component.Graph) component.Violations {
	var violations component.Violations

	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			seen := make(map[string]int)
			for _, id := range ids {
				seen[id]++
			}
			for _, id := range ids {
				if seen[id] <= 1 {
					continue
				}
				violations = append(violations, component.Violation{
					Rule:     component.RuleDuplicate,
					Severity: component.SeverityWarning,
					SourceID: node.ID,
					Kind:     depKind,
					Target:   id,
					Detail:   fmt.Sprintf("%s %q is declared %d times", depKind, id, seen[id]),
				})
				seen[id] = 0 // report once per id
			}
		}
	})

	return violations
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
