package words

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var AddCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Add a word to your collection",
	Long: `Looks the word up in the dictionary and adds it with a fresh
learning state. The first review is due tomorrow.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		rec, err := app.AddWord(ctx, args[0])
		if err != nil {
			return err
		}

		color.Green("Added %q", rec.Word)
		if rec.Phonetic != "" {
			fmt.Printf("  %s", rec.Phonetic)
			if rec.PartOfSpeech != "" {
				fmt.Printf("  (%s)", rec.PartOfSpeech)
			}
			fmt.Println()
		}
		for i, def := range rec.Definitions {
			fmt.Printf("  %d. %s\n", i+1, def)
		}
		if len(rec.Examples) > 0 {
			fmt.Println()
			for _, ex := range rec.Examples {
				fmt.Printf("  > %s\n", ex)
			}
		}
		return nil
	},
}
