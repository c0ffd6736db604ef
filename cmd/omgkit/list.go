package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/omgkit/omgkit/pkg/graph"
	"github.com/omgkit/omgkit/pkg/presenter"
	"github.com/omgkit/omgkit/pkg/types/component"
)

var listCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List the component ids of a kind",
	Long: `Lists the ids of all components of the given kind, one per line.
Kind is one of: mcp, command, skill, agent, workflow.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := component.Kind(args[0])
		if !kind.Valid() {
			return errors.Errorf("unknown component kind %q", args[0])
		}

		s, err := newScanner()
		if err != nil {
			presenter.Error(err, "Failed to configure scanner")
			os.Exit(2)
		}

		g, err := graph.NewBuilder(s).Build(cmd.Context())
		if err != nil {
			presenter.Error(err, "Failed to build component graph")
			os.Exit(2)
		}

		for _, id := range g.IDs(kind) {
			fmt.Println(id)
		}
		return nil
	},
}
