package component

import "fmt"

// Rule identifies the validator family that produced a violation.
type Rule string

const (
	RuleExistence   Rule = "existence"
	RuleFormat      Rule = "format"
	RuleHierarchy   Rule = "hierarchy"
	RuleConsistency Rule = "consistency"
	RuleDuplicate   Rule = "duplicate"
	RuleCoverage    Rule = "coverage"
)

// Severity classifies how a violation should be treated by callers.
type Severity string

const (
	// SeverityError violations fail a validation run.
	SeverityError Severity = "error"
	// SeverityWarning violations are reported but do not fail the run.
	// The quality checks (duplicate declarations, coverage ratios) are
	// soft signals, not hard integrity failures.
	SeverityWarning Severity = "warning"
)

// Violation describes a single integrity problem found in the graph.
type Violation struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	SourceID string   `json:"sourceId"`
	Kind     Kind     `json:"kind,omitempty"`
	Target   string   `json:"target,omitempty"`
	Detail   string   `json:"detail"`
}

// String renders a single-line human-readable form of the violation.
func (v Violation) String() string {
	if v.Target != "" {
		return fmt.Sprintf("[%s] %s: %s (%s %q)", v.Rule, v.SourceID, v.Detail, v.Kind, v.Target)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Rule, v.SourceID, v.Detail)
}

// Violations is a list of violations with filtering helpers.
type Violations []Violation

// ByRule returns the subset of violations produced by the given rule.
func (vs Violations) ByRule(rule Rule) Violations {
	var out Violations
	for _, v := range vs {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

// Errors returns the subset of error-severity violations.
func (vs Violations) Errors() Violations {
	var out Violations
	for _, v := range vs {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns the subset of warning-severity violations.
func (vs Violations) Warnings() Violations {
	var out Violations
	for _, v := range vs {
		if v.Severity == SeverityWarning {
			out = append(out, v)
		}
	}
	return out
}
