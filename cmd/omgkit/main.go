package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/scanner"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("OMGKIT")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("omgkit-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.omgkit")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("library", ".")
	viper.SetDefault("log-level", "warn")
	viper.SetDefault("log-format", "text")
}

var rootCmd = &cobra.Command{
	Use:   "omgkit",
	Short: "OMGKIT content library validator",
	Long: `omgkit validates the referential integrity of an OMGKIT content
library: agents, commands, skills, workflows, and the MCP manifest. It
builds the component dependency graph and reports every broken,
malformed, or misdirected reference in a single run.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLevel(viper.GetString("log-level")); err != nil {
			return err
		}
		logger.SetFormat(viper.GetString("log-format"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// newScanner builds a scanner from the resolved configuration. The
// library root sets the conventional layout; individual directories
// and the manifest path can be overridden in the config file.
func newScanner() (*scanner.Scanner, error) {
	opts := []scanner.Option{scanner.WithLibraryRoot(viper.GetString("library"))}

	if dir := viper.GetString("agents_dir"); dir != "" {
		opts = append(opts, scanner.WithAgentsRoot(dir))
	}
	if dir := viper.GetString("skills_dir"); dir != "" {
		opts = append(opts, scanner.WithSkillsRoot(dir))
	}
	if dir := viper.GetString("commands_dir"); dir != "" {
		opts = append(opts, scanner.WithCommandsRoot(dir))
	}
	if dir := viper.GetString("workflows_dir"); dir != "" {
		opts = append(opts, scanner.WithWorkflowsRoot(dir))
	}
	if path := viper.GetString("manifest"); path != "" {
		opts = append(opts, scanner.WithManifestPath(path))
	}

	return scanner.New(opts...)
}

func main() {
	rootCmd.PersistentFlags().StringP("library", "l", ".", "Path to the content library root")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")

	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
