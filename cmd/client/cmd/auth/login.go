package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the server",
	Long: `Authenticate against the Word Assistant server.

The session token is stored locally and the server's word collection
is pulled into the local store right away.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Login: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		if err := app.Login(ctx, login, string(password)); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in. %d words in your collection.\n", len(app.ListWords(true)))
		return nil
	},
}
