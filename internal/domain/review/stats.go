package review

import (
	"fmt"
	"time"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// masteredStage is the stage from which a word counts as mastered in stats.
const masteredStage = 4

// Stats summarizes learning progress over a word collection.
type Stats struct {
	Total    int
	Archived int
	Mastered int
	ByStage  [word.MaxStage + 1]int
}

// Summarize computes progress counters over the full collection.
func Summarize(all []word.Record) Stats {
	var s Stats
	for _, r := range all {
		s.Total++
		if r.Archived {
			s.Archived++
		}
		if r.MemoryStage >= masteredStage {
			s.Mastered++
		}
		stage := r.MemoryStage
		if stage < 0 {
			stage = 0
		}
		if stage > word.MaxStage {
			stage = word.MaxStage
		}
		s.ByStage[stage]++
	}
	return s
}

// WeekRange is a Monday-based calendar week, used for the added-words history.
type WeekRange struct {
	Start string
	End   string
	Label string
}

// Week returns the week containing now shifted by offsetWeeks (0 = current
// week, -1 = previous week).
func Week(now time.Time, offsetWeeks int) WeekRange {
	mondayOffset := int(time.Monday - now.Weekday())
	if now.Weekday() == time.Sunday {
		mondayOffset = -6
	}

	monday := now.AddDate(0, 0, mondayOffset+offsetWeeks*7)
	sunday := monday.AddDate(0, 0, 6)

	return WeekRange{
		Start: monday.Format(word.DateLayout),
		End:   sunday.Format(word.DateLayout),
		Label: fmt.Sprintf("%d/%d - %d/%d", monday.Month(), monday.Day(), sunday.Month(), sunday.Day()),
	}
}

// AddedIn returns the records first added within the given week.
func AddedIn(all []word.Record, week WeekRange) []word.Record {
	var out []word.Record
	for _, r := range all {
		if r.DateAdded >= week.Start && r.DateAdded <= week.End {
			out = append(out, r)
		}
	}
	return out
}
