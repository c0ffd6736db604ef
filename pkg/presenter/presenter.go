// Package presenter provides consistent CLI output for user-facing
// messages: validation results, warnings, errors, and graph statistics,
// with color support and a quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/omgkit/omgkit/pkg/types/component"
)

// ColorMode represents different color output modes.
type ColorMode int

const (
	// ColorAuto detects whether to use color from the terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// TerminalPresenter writes formatted output to a terminal.
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	quiet       bool
}

// New creates a TerminalPresenter writing to stdout/stderr with color
// detection from the environment.
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
		// Let the color package auto-detect
	}

	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
	}
}

// detectColorMode determines the color mode from the environment.
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("OMGKIT_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// SetQuiet enables or disables quiet mode. Errors are still printed.
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Error displays an error message to stderr.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Success displays a success message.
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message.
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message.
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header.
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}
	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Violation displays a single validation violation, colored by severity.
func (p *TerminalPresenter) Violation(v component.Violation) {
	if v.Severity == component.SeverityWarning {
		if !p.quiet {
			color.New(color.FgYellow).Fprintf(p.output, "  ⚠ %s\n", v.String())
		}
		return
	}
	color.New(color.FgRed).Fprintf(p.errorOutput, "  ✗ %s\n", v.String())
}

// Violations displays all violations grouped by rule family.
func (p *TerminalPresenter) Violations(violations component.Violations) {
	rules := []component.Rule{
		component.RuleExistence,
		component.RuleFormat,
		component.RuleHierarchy,
		component.RuleConsistency,
		component.RuleDuplicate,
		component.RuleCoverage,
	}

	for _, rule := range rules {
		matched := violations.ByRule(rule)
		if len(matched) == 0 {
			continue
		}
		p.Section(fmt.Sprintf("%s violations (%d)", rule, len(matched)))
		for _, v := range matched {
			p.Violation(v)
		}
	}
}

// Stats displays graph statistics: node counts per kind and declared
// edge counts per kind pair.
func (p *TerminalPresenter) Stats(stats component.Stats) {
	if p.quiet {
		return
	}

	statsColor := color.New(color.FgCyan, color.Bold)
	statsColor.Fprintf(p.output, "[Components] MCPs: %d | Commands: %d | Skills: %d | Agents: %d | Workflows: %d\n",
		stats.NodeCounts[component.KindMCP],
		stats.NodeCounts[component.KindCommand],
		stats.NodeCounts[component.KindSkill],
		stats.NodeCounts[component.KindAgent],
		stats.NodeCounts[component.KindWorkflow])

	for _, source := range component.AllKinds {
		for _, target := range component.AllKinds {
			count := stats.EdgeCounts[source][target]
			if count == 0 {
				continue
			}
			fmt.Fprintf(p.output, "  %s -> %s: %d references\n", source, target, count)
		}
	}
}

// Separator displays a visual separator.
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}
	color.New(color.Faint).Fprintln(p.output, strings.Repeat("=", 50))
}

// Default presenter instance for package-level functions
var defaultPresenter = New()

// Error displays an error message using the default presenter.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success message using the default presenter.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning message using the default presenter.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter.
func Section(title string) {
	defaultPresenter.Section(title)
}

// Violations displays grouped violations using the default presenter.
func Violations(violations component.Violations) {
	defaultPresenter.Violations(violations)
}

// Stats displays graph statistics using the default presenter.
func Stats(stats component.Stats) {
	defaultPresenter.Stats(stats)
}

// Separator displays a visual separator using the default presenter.
func Separator() {
	defaultPresenter.Separator()
}

// SetQuiet sets quiet mode on the default presenter.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}
