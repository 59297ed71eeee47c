package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

// WordRepository stores vocabulary records per user. The word column
// holds the normalized form and is unique within a user, so upserts
// key on (user_id, word) rather than on the record id.
type WordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewWordRepository(pool *pgxpool.Pool, log *slog.Logger) *WordRepository {
	return &WordRepository{
		pool: pool,
		log:  log.With(slog.String("component", "word_repository")),
	}
}

const wordColumns = `id, word, phonetic, audio_url, audio_accent, part_of_speech,
	definitions, examples, date_added, next_review_date, review_count,
	memory_stage, updated_at, archived`

func (r *WordRepository) GetByUserAndWord(ctx context.Context, userID, normalized string) (*word.Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE user_id = $1 AND word = $2`,
		userID, normalized)
	rec, err := scanWord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, word.ErrNotFound
		}
		return nil, fmt.Errorf("select word: %w", err)
	}
	return rec, nil
}

func (r *WordRepository) ListByUser(ctx context.Context, userID string, since *time.Time) ([]word.Record, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE user_id = $1`
	args := []any{userID}
	if since != nil {
		query += ` AND updated_at > $2`
		args = append(args, *since)
	}
	query += ` ORDER BY word`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select words: %w", err)
	}
	defer rows.Close()

	records := make([]word.Record, 0)
	for rows.Next() {
		rec, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return records, nil
}

func (r *WordRepository) Upsert(ctx context.Context, userID string, rec word.Record) error {
	defs, err := json.Marshal(rec.Definitions)
	if err != nil {
		return fmt.Errorf("marshal definitions: %w", err)
	}
	examples, err := json.Marshal(rec.Examples)
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO words (user_id, `+wordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (user_id, word) DO UPDATE SET
			id = EXCLUDED.id,
			phonetic = EXCLUDED.phonetic,
			audio_url = EXCLUDED.audio_url,
			audio_accent = EXCLUDED.audio_accent,
			part_of_speech = EXCLUDED.part_of_speech,
			definitions = EXCLUDED.definitions,
			examples = EXCLUDED.examples,
			date_added = EXCLUDED.date_added,
			next_review_date = EXCLUDED.next_review_date,
			review_count = EXCLUDED.review_count,
			memory_stage = EXCLUDED.memory_stage,
			updated_at = EXCLUDED.updated_at,
			archived = EXCLUDED.archived`,
		userID, rec.ID, rec.Word, rec.Phonetic, rec.AudioURL, rec.AudioAccent,
		rec.PartOfSpeech, defs, examples, rec.DateAdded, rec.NextReviewDate,
		rec.ReviewCount, rec.MemoryStage, rec.UpdatedAt, rec.Archived)
	if err != nil {
		return fmt.Errorf("upsert word: %w", err)
	}
	return nil
}

func scanWord(row pgx.Row) (*word.Record, error) {
	var rec word.Record
	var defs, examples []byte
	err := row.Scan(&rec.ID, &rec.Word, &rec.Phonetic, &rec.AudioURL,
		&rec.AudioAccent, &rec.PartOfSpeech, &defs, &examples, &rec.DateAdded,
		&rec.NextReviewDate, &rec.ReviewCount, &rec.MemoryStage, &rec.UpdatedAt,
		&rec.Archived)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(defs, &rec.Definitions); err != nil {
		return nil, fmt.Errorf("unmarshal definitions: %w", err)
	}
	if err := json.Unmarshal(examples, &rec.Examples); err != nil {
		return nil, fmt.Errorf("unmarshal examples: %w", err)
	}
	return &rec, nil
}
