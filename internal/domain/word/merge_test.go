package word

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeStamp = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRecord(id string) Record {
	return Record{
		ID:             id,
		Word:           "apple",
		Phonetic:       "/ˈæp.əl/",
		AudioURL:       "https://audio.example/apple-us.mp3",
		AudioAccent:    "US",
		PartOfSpeech:   "noun",
		Definitions:    []string{"a round fruit"},
		Examples:       []string{"she ate an apple"},
		DateAdded:      "2024-05-01",
		NextReviewDate: "2024-05-03",
		ReviewCount:    3,
		MemoryStage:    2,
		UpdatedAt:      mergeStamp.Add(-time.Hour),
	}
}

// symmetricFields strips the directionally-defined fields so the
// commutativity check only compares the fields defined as symmetric.
func symmetricFields(r Record) Record {
	r.ID = ""
	r.Word = ""
	r.DateAdded = ""
	r.Phonetic = ""
	r.AudioURL = ""
	r.AudioAccent = ""
	r.PartOfSpeech = ""
	return r
}

func TestMerge_Scenario(t *testing.T) {
	local := sampleRecord("local-id") // stage 2, reviewCount 3, 1 definition
	server := sampleRecord("server-id")
	server.MemoryStage = 1
	server.ReviewCount = 5
	server.Definitions = []string{"a round fruit", "the tree bearing it"}
	server.UpdatedAt = mergeStamp.Add(-2 * time.Hour)

	merged := Merge(local, server, mergeStamp)

	assert.Equal(t, "local-id", merged.ID)
	assert.Equal(t, 2, merged.MemoryStage)
	assert.Equal(t, 5, merged.ReviewCount)
	assert.Len(t, merged.Definitions, 2, "richer definitions win")
	// stage 2 means a 4-day interval from the stamp day
	assert.Equal(t, "2024-06-05", merged.NextReviewDate)
	assert.Equal(t, mergeStamp, merged.UpdatedAt)
}

func TestMerge_Commutative(t *testing.T) {
	a := sampleRecord("a")
	a.MemoryStage = 4
	a.Examples = []string{"one", "two", "three"}
	a.Phonetic = ""

	b := sampleRecord("b")
	b.ReviewCount = 9
	b.Definitions = []string{"x", "y", "z"}

	ab := Merge(a, b, mergeStamp)
	ba := Merge(b, a, mergeStamp)

	assert.Equal(t, symmetricFields(ab), symmetricFields(ba))
}

func TestMerge_Idempotent(t *testing.T) {
	a := sampleRecord("a")
	b := sampleRecord("b")
	b.MemoryStage = 5
	b.ReviewCount = 10

	once := Merge(a, b, mergeStamp)
	twice := Merge(a, once, mergeStamp)

	assert.Equal(t, once, twice)
}

func TestMerge_NonEmptyWins(t *testing.T) {
	local := sampleRecord("l")
	local.Phonetic = ""
	local.AudioURL = ""
	local.AudioAccent = ""
	local.PartOfSpeech = ""

	server := sampleRecord("s")

	merged := Merge(local, server, mergeStamp)

	assert.Equal(t, server.Phonetic, merged.Phonetic)
	assert.Equal(t, server.AudioURL, merged.AudioURL)
	assert.Equal(t, "US", merged.AudioAccent)
	assert.Equal(t, "noun", merged.PartOfSpeech)

	// an empty update never clears a known-good value
	reverse := Merge(server, local, mergeStamp)
	assert.Equal(t, server.Phonetic, reverse.Phonetic)
	assert.Equal(t, server.AudioURL, reverse.AudioURL)
}

func TestMerge_KeepWinsScalarTies(t *testing.T) {
	a := sampleRecord("a")
	a.Phonetic = "/eɪ/"
	a.PartOfSpeech = "noun"
	b := sampleRecord("b")
	b.Phonetic = "/biː/"
	b.PartOfSpeech = "verb"

	ab := Merge(a, b, mergeStamp)
	assert.Equal(t, "/eɪ/", ab.Phonetic)
	assert.Equal(t, "noun", ab.PartOfSpeech)

	ba := Merge(b, a, mergeStamp)
	assert.Equal(t, "/biː/", ba.Phonetic)
	assert.Equal(t, "verb", ba.PartOfSpeech)
}

func TestMerge_EarliestDateAddedWins(t *testing.T) {
	local := sampleRecord("l")
	local.DateAdded = "2024-05-10"
	server := sampleRecord("s")
	server.DateAdded = "2024-04-01"

	assert.Equal(t, "2024-04-01", Merge(local, server, mergeStamp).DateAdded)
	assert.Equal(t, "2024-04-01", Merge(server, local, mergeStamp).DateAdded)
}

func TestMerge_ArchivedSticky(t *testing.T) {
	local := sampleRecord("l")
	server := sampleRecord("s")
	server.Archived = true

	assert.True(t, Merge(local, server, mergeStamp).Archived)
	assert.True(t, Merge(server, local, mergeStamp).Archived)
}

func TestMerge_DoesNotShareSlices(t *testing.T) {
	local := sampleRecord("l")
	server := sampleRecord("s")
	server.Definitions = []string{"one", "two"}

	merged := Merge(local, server, mergeStamp)
	require.Len(t, merged.Definitions, 2)

	server.Definitions[0] = "mutated"
	assert.Equal(t, "one", merged.Definitions[0])
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "apple", Normalize("  Apple "))
	assert.Equal(t, "apple", Normalize("APPLE"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNextReviewDate(t *testing.T) {
	from := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		stage int
		want  string
	}{
		{0, "2024-06-02"},
		{1, "2024-06-03"},
		{2, "2024-06-05"},
		{3, "2024-06-08"},
		{4, "2024-06-16"},
		{5, "2024-07-01"},
		{9, "2024-07-01"}, // clamps to the last interval
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NextReviewDate(tt.stage, from), "stage %d", tt.stage)
	}
}
