package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) // a Monday

func rec(w string, stage int, next string) word.Record {
	return word.Record{
		ID:             "id-" + w,
		Word:           w,
		DateAdded:      "2024-06-01",
		NextReviewDate: next,
		MemoryStage:    stage,
	}
}

func TestDue(t *testing.T) {
	today := "2024-06-10"
	archived := rec("archived", 1, "2024-06-01")
	archived.Archived = true

	all := []word.Record{
		rec("overdue", 0, "2024-06-01"),
		rec("today", 3, "2024-06-10"),
		rec("future", 2, "2024-06-11"),
		archived,
	}

	due := Due(all, today)

	require.Len(t, due, 2)
	assert.Equal(t, "overdue", due[0].Word)
	assert.Equal(t, "today", due[1].Word)
}

func TestDailyBatch(t *testing.T) {
	t.Run("under limit returned as-is", func(t *testing.T) {
		due := []word.Record{rec("a", 3, "2024-06-10"), rec("b", 0, "2024-06-01")}
		batch := DailyBatch(due, 5)
		assert.Equal(t, due, batch)
	})

	t.Run("weakest first, then most overdue", func(t *testing.T) {
		due := []word.Record{
			rec("f", 3, "2024-06-01"),
			rec("e", 2, "2024-06-09"),
			rec("d", 2, "2024-06-02"),
			rec("c", 1, "2024-06-10"),
			rec("b", 0, "2024-06-08"),
			rec("a", 0, "2024-06-03"),
		}

		batch := DailyBatch(due, 5)

		require.Len(t, batch, 5)
		got := make([]string, len(batch))
		for i, r := range batch {
			got[i] = r.Word
		}
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	})

	t.Run("stable on ties", func(t *testing.T) {
		due := []word.Record{
			rec("first", 1, "2024-06-05"),
			rec("second", 1, "2024-06-05"),
			rec("third", 1, "2024-06-05"),
		}
		batch := DailyBatch(due, 2)
		require.Len(t, batch, 2)
		assert.Equal(t, "first", batch[0].Word)
		assert.Equal(t, "second", batch[1].Word)
	})
}

func TestApplyOutcome(t *testing.T) {
	t.Run("remembered advances one stage", func(t *testing.T) {
		r := rec("apple", 2, "2024-06-10")
		r.ReviewCount = 3

		out := ApplyOutcome(r, true, now)

		assert.Equal(t, 3, out.MemoryStage)
		assert.Equal(t, 4, out.ReviewCount)
		assert.Equal(t, "2024-06-17", out.NextReviewDate) // 7-day interval at stage 3
		assert.Equal(t, now, out.UpdatedAt)
		// input untouched
		assert.Equal(t, 2, r.MemoryStage)
	})

	t.Run("forgot resets to stage zero", func(t *testing.T) {
		out := ApplyOutcome(rec("apple", 4, "2024-06-10"), false, now)
		assert.Equal(t, 0, out.MemoryStage)
		assert.Equal(t, "2024-06-11", out.NextReviewDate)
	})

	t.Run("saturates at max stage", func(t *testing.T) {
		out := ApplyOutcome(rec("apple", word.MaxStage, "2024-06-10"), true, now)
		assert.Equal(t, word.MaxStage, out.MemoryStage)
		assert.Equal(t, "2024-07-10", out.NextReviewDate) // 30-day interval stays

		again := ApplyOutcome(out, true, now)
		assert.Equal(t, word.MaxStage, again.MemoryStage)
		assert.Equal(t, out.NextReviewDate, again.NextReviewDate)
	})
}

func TestSummarize(t *testing.T) {
	archived := rec("x", 5, "2024-07-01")
	archived.Archived = true

	all := []word.Record{
		rec("a", 0, "2024-06-11"),
		rec("b", 4, "2024-06-20"),
		rec("c", 4, "2024-06-21"),
		archived,
	}

	s := Summarize(all)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Archived)
	assert.Equal(t, 3, s.Mastered)
	assert.Equal(t, 1, s.ByStage[0])
	assert.Equal(t, 2, s.ByStage[4])
	assert.Equal(t, 1, s.ByStage[5])
}

func TestWeek(t *testing.T) {
	t.Run("monday anchor", func(t *testing.T) {
		w := Week(now, 0)
		assert.Equal(t, "2024-06-10", w.Start)
		assert.Equal(t, "2024-06-16", w.End)
	})

	t.Run("sunday belongs to the week started six days earlier", func(t *testing.T) {
		sunday := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
		w := Week(sunday, 0)
		assert.Equal(t, "2024-06-10", w.Start)
	})

	t.Run("offset shifts whole weeks", func(t *testing.T) {
		w := Week(now, -1)
		assert.Equal(t, "2024-06-03", w.Start)
		assert.Equal(t, "2024-06-09", w.End)
	})
}

func TestAddedIn(t *testing.T) {
	week := WeekRange{Start: "2024-06-10", End: "2024-06-16"}
	in := rec("in", 0, "2024-06-11")
	in.DateAdded = "2024-06-12"
	out := rec("out", 0, "2024-06-11")
	out.DateAdded = "2024-06-09"

	got := AddedIn([]word.Record{in, out}, week)

	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].Word)
}
