package words

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

var weekOffset int

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		stats := app.Stats()
		color.Cyan("=== Collection ===")
		fmt.Printf("Total words:    %d\n", stats.Total)
		fmt.Printf("Mastered:       %d\n", stats.Mastered)
		fmt.Printf("Archived:       %d\n", stats.Archived)
		fmt.Printf("Due today:      %d\n", app.DueCount())

		fmt.Println()
		color.Cyan("=== By stage ===")
		for stage := 0; stage <= word.MaxStage; stage++ {
			fmt.Printf("Stage %d: %d\n", stage, stats.ByStage[stage])
		}

		week, added := app.WeeklyAdded(weekOffset)
		fmt.Println()
		color.Cyan("=== Week %s ===", week.Label)
		fmt.Printf("Words added: %d\n", len(added))
		for _, rec := range added {
			fmt.Printf("  %s (%s)\n", rec.Word, rec.DateAdded)
		}
		return nil
	},
}

func init() {
	StatsCmd.Flags().IntVarP(&weekOffset, "week", "w", 0, "week offset, 0 = this week, -1 = last week")
}
