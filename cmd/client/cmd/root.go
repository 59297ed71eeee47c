package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/cmd/client/cmd/types"
	"github.com/wuntoguo/word-assistant/internal/app/client"
	"github.com/wuntoguo/word-assistant/internal/app/client/config"
	"github.com/wuntoguo/word-assistant/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "word-assistant",
	Short: "Word Assistant - vocabulary builder with spaced repetition",
	Long: `Word Assistant keeps a personal vocabulary list on your machine,
looks new words up in a dictionary and schedules reviews with spaced
repetition.

All data lives locally first. When you are logged in, changes sync to
the server in the background so several devices share one collection.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: teardownApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

// teardownApp flushes any pending sync before the process exits, the
// trailing debounce window must not be lost in a short CLI run.
func teardownApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Word Assistant server URL")
}
