package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/omgkit/omgkit/pkg/logger"
	"github.com/omgkit/omgkit/pkg/presenter"
)

// WatchConfig holds configuration for the watch command.
type WatchConfig struct {
	DebounceTime int
	Quiet        bool
}

// NewWatchConfig creates a WatchConfig with default values.
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceTime: 500,
	}
}

// Validate checks the WatchConfig and returns an error if invalid.
func (c *WatchConfig) Validate() error {
	if c.DebounceTime < 0 {
		return fmt.Errorf("debounce time cannot be negative: %d", c.DebounceTime)
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate the library whenever its files change",
	Long: `Watches the content library directories and re-runs the full
validation suite whenever a component file changes. Events are
debounced so editor save bursts trigger a single run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		config := getWatchConfigFromFlags(cmd)
		presenter.SetQuiet(config.Quiet)

		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(2)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Warning("Cancellation requested, shutting down...")
			cancel()
		}()

		runWatchMode(ctx, config)
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().IntP("debounce", "d", defaults.DebounceTime, "Debounce time in milliseconds for file change events")
	watchCmd.Flags().BoolP("quiet", "q", defaults.Quiet, "Only print errors")
}

// getWatchConfigFromFlags extracts watch configuration from command flags.
func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()

	if debounceTime, err := cmd.Flags().GetInt("debounce"); err == nil {
		config.DebounceTime = debounceTime
	}
	if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
		config.Quiet = quiet
	}

	return config
}

func runWatchMode(ctx context.Context, config *WatchConfig) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		presenter.Error(err, "Failed to create file watcher")
		logger.G(ctx).WithError(err).Fatal("Failed to create file watcher")
	}
	defer watcher.Close()

	library := viper.GetString("library")
	if err := watchRecursive(watcher, library); err != nil {
		presenter.Error(err, "Failed to watch library directories")
		os.Exit(2)
	}

	validateOnce(ctx)

	debounce := time.Duration(config.DebounceTime) * time.Millisecond
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			logger.G(ctx).WithFields(map[string]interface{}{
				"file":      event.Name,
				"operation": event.Op.String(),
			}).Debug("File change detected")

			// New directories need to be added to the watch set
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(watcher, event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.G(ctx).WithError(err).Warn("File watcher error")

		case <-pending:
			validateOnce(ctx)
		}
	}
}

// watchRecursive adds a directory and all its subdirectories to the watcher.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

// validateOnce runs a single validation pass and presents the result.
func validateOnce(ctx context.Context) {
	report, err := runValidation(ctx)
	if err != nil {
		presenter.Error(err, "Failed to build component graph")
		return
	}

	if len(report.Violations) == 0 {
		presenter.Success("Content library is consistent, no violations found")
		return
	}

	presenter.Violations(report.Violations)
	presenter.Info(fmt.Sprintf("%d violations (%d errors, %d warnings)",
		len(report.Violations),
		len(report.Violations.Errors()),
		len(report.Violations.Warnings())))
}
