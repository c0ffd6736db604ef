package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omgkit/omgkit/pkg/graph"
	"github.com/omgkit/omgkit/pkg/presenter"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the component dependency graph as JSON",
	Long: `Builds the component graph and prints it as JSON, including both
the declared forward references (dependsOn) and the derived reverse
references (usedBy) for every node. Intended for downstream tooling
such as documentation generators.`,
	Run: func(cmd *cobra.Command, args []string) {
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

		out, err := json.MarshalIndent(g, "", "  ")
		if err != nil {
			presenter.Error(err, "Failed to encode graph")
			os.Exit(2)
		}
		fmt.Println(string(out))
	},
}
