package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omgkit/omgkit/pkg/graph"
	"github.com/omgkit/omgkit/pkg/presenter"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print component and reference statistics",
	Long: `Builds the component graph and prints node counts per kind and
declared reference counts per kind pair, without running validators.`,
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

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			out, err := json.MarshalIndent(g.Stats, "", "  ")
			if err != nil {
				presenter.Error(err, "Failed to encode stats")
				os.Exit(2)
			}
			fmt.Println(string(out))
			return
		}

		presenter.Stats(g.Stats)
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Emit statistics as JSON")
}
