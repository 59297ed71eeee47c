package review

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/cmd/client/cmd/types"
	"github.com/wuntoguo/word-assistant/internal/app/client"
	"github.com/wuntoguo/word-assistant/internal/domain/review"
)

var batchLimit int

var ReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review today's due words",
	Long: `Runs an interactive review session over today's due words, weakest
first. Answer y if you remembered the word, n if you forgot it.
Remembered words move to the next interval, forgotten ones start over.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		batch := app.ReviewBatch(batchLimit)
		if len(batch) == 0 {
			fmt.Println("Nothing due today. Come back tomorrow.")
			return nil
		}

		fmt.Printf("%d words to review.\n\n", len(batch))
		reader := bufio.NewReader(os.Stdin)
		remembered := 0

		for i, rec := range batch {
			color.Cyan("[%d/%d] %s", i+1, len(batch), rec.Word)
			if rec.Phonetic != "" {
				fmt.Printf("      %s\n", rec.Phonetic)
			}

			fmt.Print("Remembered? [y/n/q] ")
			input, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			answer := strings.ToLower(strings.TrimSpace(input))
			if answer == "q" {
				break
			}

			ok := answer == "y" || answer == "yes"
			updated, err := app.ApplyReview(rec.Word, ok)
			if err != nil {
				return err
			}

			if ok {
				remembered++
				color.Green("  stage %d, next review %s", updated.MemoryStage, updated.NextReviewDate)
			} else {
				color.Yellow("  back to stage 0, next review %s", updated.NextReviewDate)
			}

			for _, def := range rec.Definitions {
				fmt.Printf("  - %s\n", def)
			}
			fmt.Println()
		}

		fmt.Printf("Session done: %d/%d remembered.\n", remembered, len(batch))
		return nil
	},
}

func init() {
	ReviewCmd.Flags().IntVarP(&batchLimit, "limit", "n", review.DailyLimit, "maximum words per session")
}
