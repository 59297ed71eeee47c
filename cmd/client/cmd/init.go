package cmd

import (
	"github.com/wuntoguo/word-assistant/cmd/client/cmd/auth"
	"github.com/wuntoguo/word-assistant/cmd/client/cmd/review"
	"github.com/wuntoguo/word-assistant/cmd/client/cmd/synccmd"
	"github.com/wuntoguo/word-assistant/cmd/client/cmd/words"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	rootCmd.AddCommand(words.AddCmd)
	rootCmd.AddCommand(words.ListCmd)
	rootCmd.AddCommand(words.ArchiveCmd)
	rootCmd.AddCommand(words.UnarchiveCmd)
	rootCmd.AddCommand(words.StatsCmd)

	rootCmd.AddCommand(review.ReviewCmd)

	rootCmd.AddCommand(synccmd.SyncCmd)
}
