package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/omgkit/omgkit/pkg/types/component"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "Failed to build graph")
	assert.Contains(t, errOut.String(), "[ERROR] Failed to build graph: boom")
	assert.Empty(t, out.String())

	errOut.Reset()
	p.Error(nil, "nothing")
	assert.Empty(t, errOut.String())
}

func TestSuccess(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Success("all good")
	assert.Contains(t, out.String(), "✓ all good")
}

func TestWarning(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Warning("heads up")
	assert.Contains(t, out.String(), "⚠ heads up")
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Section("existence violations (2)")
	assert.Contains(t, out.String(), "existence violations (2)")
	assert.Contains(t, out.String(), "---")
}

func TestQuietMode(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	assert.Empty(t, out.String())

	// Errors always print
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
}

func TestViolations(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Violations(component.Violations{
		{
			Rule:     component.RuleExistence,
			Severity: component.SeverityError,
			SourceID: "planner",
			Kind:     component.KindSkill,
			Target:   "a/missing",
			Detail:   "references skill \"a/missing\" which does not exist",
		},
		{
			Rule:     component.RuleCoverage,
			Severity: component.SeverityWarning,
			SourceID: "agent",
			Detail:   "only 1 of 5 agents (20%) are referenced by workflows (minimum 80%)",
		},
	})

	assert.Contains(t, out.String(), "existence violations (1)")
	assert.Contains(t, errOut.String(), "a/missing")
	assert.Contains(t, out.String(), "coverage violations (1)")
	assert.Contains(t, out.String(), "20%")
}

func TestStats(t *testing.T) {
	p, out, _ := newTestPresenter()

	stats := component.Stats{
		NodeCounts: map[component.Kind]int{
			component.KindAgent: 3,
			component.KindSkill: 7,
		},
		EdgeCounts: map[component.Kind]map[component.Kind]int{
			component.KindAgent: {component.KindSkill: 12},
		},
	}
	p.Stats(stats)

	assert.Contains(t, out.String(), "Agents: 3")
	assert.Contains(t, out.String(), "Skills: 7")
	assert.Contains(t, out.String(), "agent -> skill: 12 references")
}
