package words

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ArchiveCmd = &cobra.Command{
	Use:   "archive <word>",
	Short: "Archive a word",
	Long: `Hides the word from listings and reviews. Its learning history is
kept and comes back if you un-archive or re-add it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.ArchiveWord(args[0]); err != nil {
			return err
		}
		fmt.Printf("Archived %q\n", args[0])
		return nil
	},
}

var UnarchiveCmd = &cobra.Command{
	Use:   "unarchive <word>",
	Short: "Bring an archived word back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		if err := app.UnarchiveWord(args[0]); err != nil {
			return err
		}
		fmt.Printf("Restored %q\n", args[0])
		return nil
	},
}
