// Package validate runs referential-integrity checks over a built
// component graph. Every check is a pure function: none mutate the
// graph, none stop at the first problem, and none panic on malformed
// input. A single run surfaces every violation at once.
package validate

import (
	"github.com/omgkit/omgkit/pkg/types/component"
)

// Thresholds holds the minimum coverage ratios for the soft quality
// checks, expressed as fractions in [0, 1].
type Thresholds struct {
	// AgentCoverage is the minimum fraction of agents that must be
	// referenced by at least one workflow.
	AgentCoverage float64 `mapstructure:"agent_coverage" yaml:"agent_coverage"`
	// SkillCoverage is the minimum fraction of skills that must be
	// referenced by at least one agent or workflow.
	SkillCoverage float64 `mapstructure:"skill_coverage" yaml:"skill_coverage"`
	// CommandCoverage is the minimum fraction of commands that must be
	// referenced by at least one skill, agent, or workflow.
	CommandCoverage float64 `mapstructure:"command_coverage" yaml:"command_coverage"`
}

// DefaultThresholds returns the coverage ratios used when no
// configuration overrides them.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AgentCoverage:   0.8,
		SkillCoverage:   0.5,
		CommandCoverage: 0.5,
	}
}

// Config configures a validation run.
type Config struct {
	Thresholds Thresholds `mapstructure:"thresholds" yaml:"thresholds"`
}

// DefaultConfig returns the default validation configuration.
func DefaultConfig() Config {
	return Config{Thresholds: DefaultThresholds()}
}

// Report is the outcome of running every validator family over a graph.
type Report struct {
	Violations component.Violations `json:"violations"`
	Stats      component.Stats      `json:"stats"`
}

// Failed reports whether the run produced any error-severity
// violations. Warnings alone never fail a run.
func (r Report) Failed() bool {
	return len(r.Violations.Errors()) > 0
}

// Run executes every validator family over the graph and aggregates
// the results into a single report.
func Run(g *component.Graph, cfg Config) Report {
	var violations component.Violations

	violations = append(violations, CheckExistence(g)...)
	violations = append(violations, CheckFormat(g)...)
	violations = append(violations, CheckHierarchy(g)...)
	violations = append(violations, CheckConsistency(g)...)
	violations = append(violations, CheckDuplicates(g)...)
	violations = append(violations, CheckCoverage(g, cfg.Thresholds)...)

	return Report{
		Violations: violations,
		Stats:      g.Stats,
	}
}
