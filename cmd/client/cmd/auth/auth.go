package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/cmd/client/cmd/types"
	"github.com/wuntoguo/word-assistant/internal/app/client"
)

// AuthCmd is the parent command for account operations.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your account",
	Long:  `Register, log in, log out and inspect the current session.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
