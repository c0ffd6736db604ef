package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omgkit/omgkit/pkg/types/component"
)

// addNode inserts a node and returns it for further setup.
func addNode(g *component.Graph, kind component.Kind, id string) *component.Node {
	node := component.NewNode(kind, id, string(kind)+"/"+id+".md")
	g.Nodes[kind][id] = node
	return node
}

// link declares a forward edge and mirrors the reverse edge, producing
// a consistent pair the way the builder would.
func link(g *component.Graph, source *component.Node, kind component.Kind, id string) {
	source.AddDependency(kind, id)
	if target := g.Lookup(kind, id); target != nil {
		target.AddUsedBy(source.Kind, source.ID)
	}
}

// newConsistentGraph builds a small fully-linked graph with no
// violations of any kind.
func newConsistentGraph() *component.Graph {
	g := component.NewGraph()

	addNode(g, component.KindMCP, "github")
	commit := addNode(g, component.KindCommand, "/git:commit")
	plans := addNode(g, component.KindSkill, "methodology/writing-plans")
	planner := addNode(g, component.KindAgent, "planner")
	feature := addNode(g, component.KindWorkflow, "delivery/feature")

	link(g, commit, component.KindMCP, "github")
	link(g, plans, component.KindCommand, "/git:commit")
	link(g, planner, component.KindSkill, "methodology/writing-plans")
	link(g, feature, component.KindAgent, "planner")
	link(g, feature, component.KindSkill, "methodology/writing-plans")

	return g
}

func TestCheckExistence(t *testing.T) {
	t.Run("clean graph passes", func(t *testing.T) {
		g := newConsistentGraph()
		assert.Empty(t, CheckExistence(g))
	})

	t.Run("dangling reference flagged once", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindSkill, "methodology/nonexistent-skill")

		violations := CheckExistence(g)
		require.Len(t, violations, 1)
		assert.Equal(t, component.RuleExistence, violations[0].Rule)
		assert.Equal(t, "planner", violations[0].SourceID)
		assert.Equal(t, component.KindSkill, violations[0].Kind)
		assert.Equal(t, "methodology/nonexistent-skill", violations[0].Target)
	})

	t.Run("collects every dangling reference", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindSkill, "a/missing")
		planner.AddDependency(component.KindCommand, "/also:missing")

		violations := CheckExistence(g)
		assert.Len(t, violations, 2)
	})

	t.Run("wrong kind is dangling", func(t *testing.T) {
		g := newConsistentGraph()
		feature := g.Lookup(component.KindWorkflow, "delivery/feature")
		// Valid skill id, but declared as a command reference
		feature.AddDependency(component.KindCommand, "methodology/writing-plans")

		violations := CheckExistence(g)
		assert.Len(t, violations, 1)
		assert.Equal(t, component.KindCommand, violations[0].Kind)
	})
}

func TestCheckFormat(t *testing.T) {
	t.Run("clean graph passes", func(t *testing.T) {
		g := newConsistentGraph()
		assert.Empty(t, CheckFormat(g))
	})

	t.Run("bad declared reference format", func(t *testing.T) {
		g := newConsistentGraph()
		feature := g.Lookup(component.KindWorkflow, "delivery/feature")
		feature.AddDependency(component.KindAgent, "Data_Engineer")

		violations := CheckFormat(g)
		require.Len(t, violations, 1)
		assert.Equal(t, component.RuleFormat, violations[0].Rule)
		assert.Equal(t, "delivery/feature", violations[0].SourceID)
		assert.Equal(t, component.KindAgent, violations[0].Kind)
		assert.Equal(t, "Data_Engineer", violations[0].Target)
	})

	t.Run("bad node id", func(t *testing.T) {
		g := newConsistentGraph()
		addNode(g, component.KindAgent, "Bad_Agent")

		violations := CheckFormat(g)
		require.Len(t, violations, 1)
		assert.Equal(t, "Bad_Agent", violations[0].SourceID)
	})

	t.Run("bad reverse reference on hand-built graph", func(t *testing.T) {
		g := newConsistentGraph()
		plans := g.Lookup(component.KindSkill, "methodology/writing-plans")
		plans.AddUsedBy(component.KindAgent, "Not_An_Agent")

		violations := CheckFormat(g)
		// The consistency check owns the missing referrer; format only
		// reports the malformed id
		formatOnly := violations.ByRule(component.RuleFormat)
		require.Len(t, formatOnly, 1)
		assert.Equal(t, "Not_An_Agent", formatOnly[0].Target)
	})
}

func TestCheckHierarchy(t *testing.T) {
	t.Run("clean graph passes", func(t *testing.T) {
		g := newConsistentGraph()
		assert.Empty(t, CheckHierarchy(g))
	})

	t.Run("upward reference flagged", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindWorkflow, "delivery/feature")

		violations := CheckHierarchy(g)
		require.Len(t, violations, 1)
		assert.Equal(t, component.RuleHierarchy, violations[0].Rule)
		assert.Equal(t, "planner", violations[0].SourceID)
		assert.Equal(t, component.KindWorkflow, violations[0].Kind)
	})

	t.Run("peer reference flagged", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindAgent, "reviewer")

		violations := CheckHierarchy(g)
		require.Len(t, violations, 1)
	})

	t.Run("workflows key on agent flagged even when empty", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.DeclaredKeys = []string{"name", "description", "skills", "workflows"}

		violations := CheckHierarchy(g)
		require.Len(t, violations, 1)
		assert.Equal(t, "planner", violations[0].SourceID)
		assert.Equal(t, "workflows", violations[0].Target)
	})

	t.Run("absent workflows key passes", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.DeclaredKeys = []string{"name", "description", "skills"}

		assert.Empty(t, CheckHierarchy(g))
	})

	t.Run("non-permitted downward reference flagged", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		// Agents may reference skills and commands, not MCPs
		planner.AddDependency(component.KindMCP, "github")

		violations := CheckHierarchy(g)
		require.Len(t, violations, 1)
		assert.Equal(t, component.KindMCP, violations[0].Kind)
	})

	t.Run("mcps key on agent flagged even when empty", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.DeclaredKeys = []string{"name", "description", "skills", "mcps"}

		violations := CheckHierarchy(g)
		require.Len(t, violations, 1)
		assert.Equal(t, "planner", violations[0].SourceID)
		assert.Equal(t, "mcps", violations[0].Target)
	})
}

func TestCheckConsistency(t *testing.T) {
	t.Run("clean graph passes", func(t *testing.T) {
		g := newConsistentGraph()
		assert.Empty(t, CheckConsistency(g))
	})

	t.Run("forward edge without reverse mirror", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		// Declared but never inverted
		planner.AddDependency(component.KindCommand, "/git:commit")

		violations := CheckConsistency(g)
		require.Len(t, violations, 1)
		assert.Equal(t, "planner", violations[0].SourceID)
	})

	t.Run("reverse edge without forward edge", func(t *testing.T) {
		g := newConsistentGraph()
		plans := g.Lookup(component.KindSkill, "methodology/writing-plans")
		plans.AddUsedBy(component.KindWorkflow, "delivery/phantom")

		violations := CheckConsistency(g)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "does not exist")
	})

	t.Run("reverse edge naming a node with no matching dependency", func(t *testing.T) {
		g := newConsistentGraph()
		commit := g.Lookup(component.KindCommand, "/git:commit")
		// planner exists but declares no command dependency
		commit.AddUsedBy(component.KindAgent, "planner")

		violations := CheckConsistency(g)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "no matching dependency")
	})

	t.Run("dangling forward edges are not consistency violations", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindSkill, "a/missing")

		assert.Empty(t, CheckConsistency(g))
	})
}

func TestCheckDuplicates(t *testing.T) {
	t.Run("clean graph passes", func(t *testing.T) {
		g := newConsistentGraph()
		assert.Empty(t, CheckDuplicates(g))
	})

	t.Run("duplicate flagged exactly once", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		// "methodology/writing-plans" is already declared once
		planner.AddDependency(component.KindSkill, "methodology/writing-plans")

		violations := CheckDuplicates(g)
		require.Len(t, violations, 1)
		assert.Equal(t, component.RuleDuplicate, violations[0].Rule)
		assert.Equal(t, component.SeverityWarning, violations[0].Severity)
		assert.Equal(t, "methodology/writing-plans", violations[0].Target)
		assert.Contains(t, violations[0].Detail, "2 times")
	})

	t.Run("triplicate still one violation", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindSkill, "methodology/writing-plans")
		planner.AddDependency(component.KindSkill, "methodology/writing-plans")

		violations := CheckDuplicates(g)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "3 times")
	})

	t.Run("two distinct duplicates give two violations", func(t *testing.T) {
		g := newConsistentGraph()
		feature := g.Lookup(component.KindWorkflow, "delivery/feature")
		feature.AddDependency(component.KindAgent, "planner")
		feature.AddDependency(component.KindSkill, "methodology/writing-plans")

		violations := CheckDuplicates(g)
		assert.Len(t, violations, 2)
	})

	t.Run("resolved reverse set keeps cardinality one", func(t *testing.T) {
		g := newConsistentGraph()
		planner := g.Lookup(component.KindAgent, "planner")
		planner.AddDependency(component.KindSkill, "methodology/writing-plans")
		plans := g.Lookup(component.KindSkill, "methodology/writing-plans")
		plans.AddUsedBy(component.KindAgent, "planner")

		assert.Len(t, plans.UsedBy[component.KindAgent], 1)
	})
}
