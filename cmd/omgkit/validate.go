package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omgkit/omgkit/pkg/graph"
	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/presenter"
	"github.com/omgkit/omgkit/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the content library's referential integrity",
	Long: `Builds the component dependency graph and runs every validator
family over it: existence, format, hierarchy, consistency, duplicates,
and coverage. All violations are collected and reported in one run.

The command exits non-zero when any error-severity violation is found.
Coverage shortfalls are warnings and do not affect the exit code.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		quiet, _ := cmd.Flags().GetBool("quiet")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		presenter.SetQuiet(quiet)

		report, err := runValidation(ctx)
		if err != nil {
			presenter.Error(err, "Failed to build component graph")
			os.Exit(2)
		}

		if jsonOutput {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode report")
				os.Exit(2)
			}
			fmt.Println(string(out))
		} else {
			presenter.Stats(report.Stats)
			presenter.Separator()

			if len(report.Violations) == 0 {
				presenter.Success("Content library is consistent, no violations found")
			} else {
				presenter.Violations(report.Violations)
				presenter.Separator()
				presenter.Info(fmt.Sprintf("%d violations (%d errors, %d warnings)",
					len(report.Violations),
					len(report.Violations.Errors()),
					len(report.Violations.Warnings())))
			}
		}

		if report.Failed() {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().BoolP("quiet", "q", false, "Only print errors")
	validateCmd.Flags().Bool("json", false, "Emit the full report as JSON")
}

// runValidation builds a fresh graph and runs every validator over it.
// The graph is a local value per invocation; no state survives the run.
func runValidation(ctx context.Context) (validate.Report, error) {
	s, err := newScanner()
	if err != nil {
		return validate.Report{}, err
	}

	g, err := graph.NewBuilder(s).Build(ctx)
	if err != nil {
		return validate.Report{}, err
	}

	cfg := validate.DefaultConfig()
	if viper.IsSet("thresholds") {
		if err := viper.UnmarshalKey("thresholds", &cfg.Thresholds); err != nil {
			logger.G(ctx).WithError(err).Warn("Invalid coverage thresholds in config, using defaults")
		}
	}

	return validate.Run(g, cfg), nil
}
