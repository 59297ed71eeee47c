package synccmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/cmd/client/cmd/types"
	"github.com/wuntoguo/word-assistant/internal/app/client"
)

var (
	showStatus bool
	watch      bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the server now",
	Long: `Forces an immediate full sync with the server. Normally syncs run
automatically in the background after every change.

With --watch the command stays in the foreground after the initial
sync and keeps syncing periodically until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		if showStatus {
			return printStatus(app)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		fmt.Println("Checking server...")
		if err := app.HealthCheck(ctx); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}

		start := time.Now()
		if err := app.SyncNow(ctx); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		color.Green("Synced in %v, %d words in your collection.",
			time.Since(start).Round(time.Millisecond), len(app.ListWords(true)))

		if watch {
			fmt.Println("Watching for changes, press Ctrl-C to stop.")
			watchCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app.Engine().StartAutoSync(watchCtx)
			fmt.Println("Stopped.")
		}
		return nil
	},
}

func printStatus(app *client.App) error {
	engine := app.Engine()

	fmt.Printf("Status:     %s\n", engine.Status())
	if engine.LoggedIn() {
		fmt.Println("Logged in:  yes")
	} else {
		fmt.Println("Logged in:  no")
	}
	if at := engine.LastSyncedAt(); at != nil {
		fmt.Printf("Last sync:  %s\n", at.Local().Format(time.RFC1123))
	} else {
		fmt.Println("Last sync:  never")
	}
	if err := engine.LastError(); err != nil {
		color.Red("Last error: %v", err)
	}
	return nil
}

func init() {
	SyncCmd.Flags().BoolVarP(&showStatus, "status", "s", false, "show sync status instead of syncing")
	SyncCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep syncing periodically until interrupted")
}
