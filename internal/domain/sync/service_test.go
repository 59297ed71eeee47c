package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/wuntoguo/word-assistant/internal/domain/word"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserAndWord(ctx context.Context, userID, normalized string) (*word.Record, error) {
	args := m.Called(ctx, userID, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*word.Record), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string, since *time.Time) ([]word.Record, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]word.Record), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, userID string, rec word.Record) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func newTestService(repo Repository, now time.Time) *Service {
	s := NewService(repo, slog.Default())
	s.now = func() time.Time { return now }
	return s
}

func clientWord(w string, stage int) word.Record {
	return word.Record{
		ID:             "client-" + w,
		Word:           w,
		Definitions:    []string{"def"},
		DateAdded:      "2024-06-01",
		NextReviewDate: "2024-06-02",
		MemoryStage:    stage,
		UpdatedAt:      time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestService_Sync_NewWordStoredWithClientID(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	cw := clientWord("Apple", 1)
	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(nil, word.ErrNotFound)
	repo.On("Upsert", ctx, "u1", mock.MatchedBy(func(r word.Record) bool {
		return r.ID == "client-Apple" && r.Word == "apple" && r.UpdatedAt.Equal(now)
	})).Return(nil)
	repo.On("ListByUser", ctx, "u1", (*time.Time)(nil)).Return([]word.Record{}, nil)

	resp, err := svc.Sync(ctx, "u1", SyncRequest{ClientWords: []word.Record{cw}})

	require.NoError(t, err)
	assert.Equal(t, now, resp.SyncedAt)
	repo.AssertExpectations(t)
}

func TestService_Sync_ExistingWordMergedKeepingServerID(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	cw := clientWord("apple", 2)
	cw.ReviewCount = 3
	server := clientWord("apple", 1)
	server.ID = "server-apple"
	server.ReviewCount = 5
	server.Definitions = []string{"def", "second def"}

	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(&server, nil)
	repo.On("Upsert", ctx, "u1", mock.MatchedBy(func(r word.Record) bool {
		return r.ID == "server-apple" &&
			r.MemoryStage == 2 &&
			r.ReviewCount == 5 &&
			len(r.Definitions) == 2 &&
			r.UpdatedAt.Equal(now)
	})).Return(nil)

	cursor := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	repo.On("ListByUser", ctx, "u1", &cursor).Return([]word.Record{server}, nil)

	resp, err := svc.Sync(ctx, "u1", SyncRequest{
		LastSyncedAt: &cursor,
		ClientWords:  []word.Record{cw},
	})

	require.NoError(t, err)
	require.Len(t, resp.ServerWords, 1)
	repo.AssertExpectations(t)
}

func TestService_Sync_ClientFieldsWinTies(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	// Both sides have lookup data, the client's refreshed values win
	// while the server id stays put.
	cw := clientWord("apple", 1)
	cw.Phonetic = "/ˈæp.əl/"
	cw.PartOfSpeech = "noun"
	server := clientWord("apple", 1)
	server.ID = "server-apple"
	server.Phonetic = "/stale/"
	server.PartOfSpeech = "verb"

	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(&server, nil)
	repo.On("Upsert", ctx, "u1", mock.MatchedBy(func(r word.Record) bool {
		return r.ID == "server-apple" &&
			r.Phonetic == "/ˈæp.əl/" &&
			r.PartOfSpeech == "noun"
	})).Return(nil)
	repo.On("ListByUser", ctx, "u1", (*time.Time)(nil)).Return([]word.Record{}, nil)

	_, err := svc.Sync(ctx, "u1", SyncRequest{ClientWords: []word.Record{cw}})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Sync_SkipsBlankWords(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	repo.On("ListByUser", ctx, "u1", (*time.Time)(nil)).Return([]word.Record{}, nil)

	_, err := svc.Sync(ctx, "u1", SyncRequest{ClientWords: []word.Record{{Word: "   "}}})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sync_RepositoryFailureAborts(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(nil, errors.New("db down"))

	_, err := svc.Sync(ctx, "u1", SyncRequest{ClientWords: []word.Record{clientWord("apple", 0)}})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Sync_IdempotentUnderRetry(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := new(MockRepository)
	svc := newTestService(repo, now)
	ctx := context.Background()

	cw := clientWord("apple", 2)
	server := clientWord("apple", 1)
	server.ID = "server-apple"

	expected := word.Merge(word.Record{
		ID: cw.ID, Word: "apple", Definitions: cw.Definitions,
		DateAdded: cw.DateAdded, NextReviewDate: cw.NextReviewDate,
		MemoryStage: cw.MemoryStage, UpdatedAt: cw.UpdatedAt,
	}, server, now)
	expected.ID = server.ID

	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(&server, nil).Once()
	repo.On("Upsert", ctx, "u1", expected).Return(nil).Once()
	// second round: the server record is now the merged one
	repo.On("GetByUserAndWord", ctx, "u1", "apple").Return(&expected, nil).Once()
	repo.On("Upsert", ctx, "u1", expected).Return(nil).Once()
	repo.On("ListByUser", ctx, "u1", (*time.Time)(nil)).Return([]word.Record{expected}, nil)

	req := SyncRequest{ClientWords: []word.Record{cw}}
	_, err := svc.Sync(ctx, "u1", req)
	require.NoError(t, err)
	_, err = svc.Sync(ctx, "u1", req)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestService_ListWords(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, time.Now())
	ctx := context.Background()

	all := []word.Record{clientWord("apple", 1), clientWord("pear", 0)}
	repo.On("ListByUser", ctx, "u1", (*time.Time)(nil)).Return(all, nil)

	resp, err := svc.ListWords(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, all, resp.Words)
}
