// Package review implements the spaced-repetition scheduler: selecting which
// words are due, picking the daily batch, and applying review outcomes. It is
// pure — it reads record snapshots and returns new values, never touching the
// store itself.
package review

import (
	"sort"
	"time"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// DailyLimit caps how many words a daily review session offers by default.
const DailyLimit = 5

// Due returns every non-archived record whose next review day is on or
// before today. No upper bound; DailyBatch trims the set.
func Due(all []word.Record, today string) []word.Record {
	var due []word.Record
	for _, r := range all {
		if r.Archived {
			continue
		}
		if r.NextReviewDate <= today {
			due = append(due, r)
		}
	}
	return due
}

// DailyBatch picks at most limit records from the due set, weakest stage
// first and most overdue first within a stage. A limit of zero or less falls
// back to DailyLimit. The sort is stable, so ties keep their input order.
func DailyBatch(due []word.Record, limit int) []word.Record {
	if limit <= 0 {
		limit = DailyLimit
	}
	if len(due) <= limit {
		return due
	}

	batch := make([]word.Record, len(due))
	copy(batch, due)
	sort.SliceStable(batch, func(i, j int) bool {
		if batch[i].MemoryStage != batch[j].MemoryStage {
			return batch[i].MemoryStage < batch[j].MemoryStage
		}
		return batch[i].NextReviewDate < batch[j].NextReviewDate
	})

	return batch[:limit]
}

// ApplyOutcome advances or resets a record's memory stage after one review.
// Remembered moves the stage up one, saturating at word.MaxStage; forgotten
// resets it to zero. The next review date is recomputed from the new stage
// and the record is stamped as touched. The caller writes the result back.
func ApplyOutcome(rec word.Record, remembered bool, now time.Time) word.Record {
	out := rec.Clone()

	if remembered {
		if out.MemoryStage < word.MaxStage {
			out.MemoryStage++
		}
	} else {
		out.MemoryStage = 0
	}

	out.NextReviewDate = word.NextReviewDate(out.MemoryStage, now)
	out.ReviewCount++
	out.UpdatedAt = now
	return out
}
