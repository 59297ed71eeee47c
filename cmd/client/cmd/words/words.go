package words

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/cmd/client/cmd/types"
	"github.com/wuntoguo/word-assistant/internal/app/client"
)

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
