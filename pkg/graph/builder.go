// Package graph assembles scanned component nodes into a single
// cross-referenced dependency graph. Forward edges come straight from
// each file's declared references; reverse edges are derived by a
// single inversion pass once every scan has completed.
package graph

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/scanner"
	"github.com/omgkit/omgkit/pkg/types/component"
)

// Builder constructs the component graph from a configured scanner.
type Builder struct {
	scanner *scanner.Scanner
}

// NewBuilder creates a builder around the given scanner.
func NewBuilder(s *scanner.Scanner) *Builder {
	return &Builder{scanner: s}
}

// Build scans all five component kinds and assembles the graph. The
// graph is a fresh local value on every call; nothing is cached across
// invocations. Missing kind roots are collected into one multierror so
// a single run reports every configuration problem.
//
// Dangling forward references are deliberately retained in DependsOn.
// Resolution is deferred to the validators so that "existence" stays a
// separately testable property rather than being baked into assembly.
func (b *Builder) Build(ctx context.Context) (*component.Graph, error) {
	g := component.NewGraph()

	scans := []struct {
		kind component.Kind
		scan func(context.Context) (map[string]*component.Node, error)
	}{
		{component.KindMCP, b.scanner.ScanMCPs},
		{component.KindCommand, b.scanner.ScanCommands},
		{component.KindSkill, b.scanner.ScanSkills},
		{component.KindAgent, b.scanner.ScanAgents},
		{component.KindWorkflow, b.scanner.ScanWorkflows},
	}

	var scanErrs *multierror.Error
	for _, s := range scans {
		nodes, err := s.scan(ctx)
		if err != nil {
			scanErrs = multierror.Append(scanErrs, err)
			continue
		}
		g.Nodes[s.kind] = nodes
	}

	if err := scanErrs.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "failed to scan component library")
	}

	invert(g)
	computeStats(g)

	logger.G(ctx).WithFields(map[string]interface{}{
		"mcps":      len(g.Nodes[component.KindMCP]),
		"commands":  len(g.Nodes[component.KindCommand]),
		"skills":    len(g.Nodes[component.KindSkill]),
		"agents":    len(g.Nodes[component.KindAgent]),
		"workflows": len(g.Nodes[component.KindWorkflow]),
	}).Debug("Built component graph")

	return g, nil
}

// invert derives every node's UsedBy set by transposing all declared
// forward edges. Dangling targets simply contribute no reverse edge;
// the forward edge stays in place for the existence validator.
func invert(g *component.Graph) {
	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			for _, id := range ids {
				target := g.Lookup(depKind, id)
				if target == nil {
					continue
				}
				target.AddUsedBy(node.Kind, node.ID)
			}
		}
	})
}

// computeStats fills in per-kind node counts and per-kind-pair edge
// counts. Edge counts include dangling and duplicate declarations,
// since they count declared references, not resolved ones.
func computeStats(g *component.Graph) {
	for _, kind := range component.AllKinds {
		g.Stats.NodeCounts[kind] = len(g.Nodes[kind])
	}
	g.EachNode(func(node *component.Node) {
		for depKind, ids := range node.DependsOn {
			if len(ids) == 0 {
				continue
			}
			if g.Stats.EdgeCounts[node.Kind] == nil {
				g.Stats.EdgeCounts[node.Kind] = make(map[component.Kind]int)
			}
			g.Stats.EdgeCounts[node.Kind][depKind] += len(ids)
		}
	})
}
