package word

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for dateAdded and
// nextReviewDate. Lexicographic order on these strings matches
// chronological order, which the merge and scheduling code rely on.
const DateLayout = "2006-01-02"

// Record is one vocabulary entry, unique per (user, normalized word).
// The JSON field names are the wire contract shared with the server.
type Record struct {
	ID             string    `json:"id"`
	Word           string    `json:"word"`
	Phonetic       string    `json:"phonetic"`
	AudioURL       string    `json:"audioUrl"`
	AudioAccent    string    `json:"audioAccent"`
	PartOfSpeech   string    `json:"partOfSpeech"`
	Definitions    []string  `json:"definitions"`
	Examples       []string  `json:"examples"`
	DateAdded      string    `json:"dateAdded"`
	NextReviewDate string    `json:"nextReviewDate"`
	ReviewCount    int       `json:"reviewCount"`
	MemoryStage    int       `json:"memoryStage"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Archived       bool      `json:"archived,omitempty"`
}

// MaxStage is the highest memory stage; a record at MaxStage keeps being
// reviewed every 30 days until archived.
const MaxStage = 5

// intervals holds the review interval in days per memory stage,
// replicated on client and server so merged records schedule identically.
var intervals = [MaxStage + 1]int{1, 2, 4, 7, 15, 30}

// Normalize returns the canonical lowercase form used as the uniqueness key.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// NextReviewDate computes the calendar day of the next review for a record
// at the given stage, counting from the given day. Stages above MaxStage
// clamp to the longest interval.
func NextReviewDate(stage int, from time.Time) string {
	if stage > MaxStage {
		stage = MaxStage
	}
	if stage < 0 {
		stage = 0
	}
	return from.AddDate(0, 0, intervals[stage]).Format(DateLayout)
}

// Clone returns a deep copy, so callers can hand out snapshots without
// sharing the definitions/examples backing arrays.
func (r Record) Clone() Record {
	c := r
	c.Definitions = append([]string(nil), r.Definitions...)
	c.Examples = append([]string(nil), r.Examples...)
	return c
}
