package words

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

var showArchived bool

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your word collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		records := app.ListWords(showArchived)
		if len(records) == 0 {
			fmt.Println("No words yet. Add one with: word-assistant add <word>")
			return nil
		}

		today := word.DateOf(time.Now().UTC())
		for _, rec := range records {
			stage := fmt.Sprintf("stage %d/%d", rec.MemoryStage, word.MaxStage)
			due := rec.NextReviewDate
			line := fmt.Sprintf("%-20s %s  next: %s", rec.Word, stage, due)

			switch {
			case rec.Archived:
				color.New(color.Faint).Printf("%s  (archived)\n", line)
			case due <= today:
				color.Yellow("%s  (due)", line)
			default:
				fmt.Println(line)
			}
		}

		fmt.Printf("\n%d words", len(records))
		if due := app.DueCount(); due > 0 {
			fmt.Printf(", %d due today", due)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	ListCmd.Flags().BoolVarP(&showArchived, "all", "a", false, "include archived words")
}
