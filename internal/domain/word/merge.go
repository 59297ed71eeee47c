package word

import "time"

// Merge combines two versions of the same word into one record without
// losing progress earned on either side. The rules are field-level and,
// except for identity, symmetric:
//
//   - memoryStage, reviewCount: maximum of the two
//   - definitions, examples: the longer list wins whole (no union)
//   - phonetic, audioUrl, audioAccent, partOfSpeech: non-empty beats empty,
//     keep's value beats other's when both are set
//   - dateAdded: the earlier day
//   - archived: sticky once set on either side
//
// Identity and tie-breaks are directional: the result carries keep's id and
// word text, and where both sides have data keep's value wins. Callers pass
// the record whose perspective should prevail as keep, the client its local
// record, the server the incoming client word.
// nextReviewDate is recomputed from the merged stage so both sides schedule
// identically, and updatedAt is stamped by the caller: the server stamps
// time.Now(), the client stamps the server-reported syncedAt so merged
// records do not re-enter the next delta.
//
// Because max/richer/non-empty are idempotent, replaying the same merge
// converges on the same field values, and argument order only matters for
// the directional fields. That property is what makes retry-free,
// offline-first sync safe.
func Merge(keep, other Record, stampedAt time.Time) Record {
	merged := keep.Clone()

	if other.MemoryStage > merged.MemoryStage {
		merged.MemoryStage = other.MemoryStage
	}
	if other.ReviewCount > merged.ReviewCount {
		merged.ReviewCount = other.ReviewCount
	}
	if len(other.Definitions) > len(merged.Definitions) {
		merged.Definitions = append([]string(nil), other.Definitions...)
	}
	if len(other.Examples) > len(merged.Examples) {
		merged.Examples = append([]string(nil), other.Examples...)
	}
	if merged.Phonetic == "" {
		merged.Phonetic = other.Phonetic
	}
	if merged.AudioURL == "" {
		merged.AudioURL = other.AudioURL
		merged.AudioAccent = other.AudioAccent
	}
	if merged.PartOfSpeech == "" {
		merged.PartOfSpeech = other.PartOfSpeech
	}
	if other.DateAdded != "" && (merged.DateAdded == "" || other.DateAdded < merged.DateAdded) {
		merged.DateAdded = other.DateAdded
	}
	merged.Archived = keep.Archived || other.Archived

	merged.NextReviewDate = NextReviewDate(merged.MemoryStage, stampedAt)
	merged.UpdatedAt = stampedAt
	return merged
}
