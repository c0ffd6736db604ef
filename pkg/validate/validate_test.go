package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omgkit/omgkit/pkg/types/component"
)

func TestRunCleanGraph(t *testing.T) {
	g := newConsistentGraph()
	report := Run(g, DefaultConfig())

	assert.Empty(t, report.Violations.Errors())
	assert.False(t, report.Failed())
}

func TestRunCollectsAllFamilies(t *testing.T) {
	g := newConsistentGraph()
	planner := g.Lookup(component.KindAgent, "planner")

	planner.AddDependency(component.KindSkill, "a/missing")              // existence
	planner.AddDependency(component.KindSkill, "a/missing")              // duplicate
	planner.AddDependency(component.KindWorkflow, "delivery/feature")    // hierarchy
	planner.AddDependency(component.KindCommand, "/Bad:Format")          // format + existence
	planner.DeclaredKeys = []string{"workflows"}                         // hierarchy (structural)

	report := Run(g, Config{})

	assert.NotEmpty(t, report.Violations.ByRule(component.RuleExistence))
	assert.NotEmpty(t, report.Violations.ByRule(component.RuleFormat))
	assert.NotEmpty(t, report.Violations.ByRule(component.RuleHierarchy))
	assert.NotEmpty(t, report.Violations.ByRule(component.RuleDuplicate))
	assert.True(t, report.Failed())
}

func TestRunDuplicateOnlyGraphDoesNotFail(t *testing.T) {
	g := newConsistentGraph()
	planner := g.Lookup(component.KindAgent, "planner")
	// Repeat an already-declared, fully resolved skill reference
	planner.AddDependency(component.KindSkill, "methodology/writing-plans")

	report := Run(g, Config{})

	duplicates := report.Violations.ByRule(component.RuleDuplicate)
	require.Len(t, duplicates, 1)
	assert.Equal(t, component.SeverityWarning, duplicates[0].Severity)
	assert.Empty(t, report.Violations.Errors())
	assert.False(t, report.Failed(), "duplicate declarations alone must not fail the run")
}

func TestRunWarningsDoNotFail(t *testing.T) {
	g := component.NewGraph()
	// Ten agents, none referenced by any workflow
	for i := 0; i < 10; i++ {
		addNode(g, component.KindAgent, fmt.Sprintf("agent-%d", i))
	}

	report := Run(g, DefaultConfig())

	require.NotEmpty(t, report.Violations.Warnings())
	assert.Empty(t, report.Violations.Errors())
	assert.False(t, report.Failed())
}

func TestCheckCoverage(t *testing.T) {
	t.Run("below threshold warns", func(t *testing.T) {
		g := newConsistentGraph()
		// planner is covered by the workflow; add four uncovered agents
		for i := 0; i < 4; i++ {
			addNode(g, component.KindAgent, fmt.Sprintf("idle-%d", i))
		}

		violations := CheckCoverage(g, Thresholds{AgentCoverage: 0.8})
		require.Len(t, violations, 1)
		assert.Equal(t, component.RuleCoverage, violations[0].Rule)
		assert.Equal(t, component.SeverityWarning, violations[0].Severity)
		assert.Contains(t, violations[0].Detail, "1 of 5")
	})

	t.Run("at threshold passes", func(t *testing.T) {
		g := newConsistentGraph()
		violations := CheckCoverage(g, Thresholds{AgentCoverage: 1.0})
		assert.Empty(t, violations)
	})

	t.Run("zero threshold disables the check", func(t *testing.T) {
		g := component.NewGraph()
		addNode(g, component.KindAgent, "idle")

		violations := CheckCoverage(g, Thresholds{})
		assert.Empty(t, violations)
	})

	t.Run("empty kind is not a coverage gap", func(t *testing.T) {
		g := component.NewGraph()
		violations := CheckCoverage(g, DefaultThresholds())
		assert.Empty(t, violations)
	})

	t.Run("skill coverage counts agents and workflows", func(t *testing.T) {
		g := newConsistentGraph()
		addNode(g, component.KindSkill, "frontend/react")

		violations := CheckCoverage(g, Thresholds{SkillCoverage: 1.0})
		require.Len(t, violations, 1)
		assert.Equal(t, component.KindSkill, violations[0].Kind)
	})
}

func TestDefaultThresholds(t *testing.T) {
	thresholds := DefaultThresholds()
	assert.InDelta(t, 0.8, thresholds.AgentCoverage, 0.001)
	assert.InDelta(t, 0.5, thresholds.SkillCoverage, 0.001)
	assert.InDelta(t, 0.5, thresholds.CommandCoverage, 0.001)
}
