package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSurveyRecord_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	svc := NewSurveyService(d.completions, zap.NewNop())
	first := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	c, err := svc.Record(ctx, "a@b.co", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Score)
	assert.True(t, c.Completed)

	svc.now = func() time.Time { return first.Add(48 * time.Hour) }
	again, err := svc.Record(ctx, "a@b.co", 20)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 12, again.Score)
	assert.True(t, again.Date.Equal(first))

	stored, found, err := svc.Completion(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 12, stored.Score)
	assert.True(t, stored.Date.Equal(first))
}

func TestSurveyRecord_PerEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewSurveyService(newTestDeps().completions, zap.NewNop())

	_, err := svc.Record(ctx, "a@b.co", 3)
	require.NoError(t, err)
	_, err = svc.Record(ctx, "b@b.co", 24)
	require.NoError(t, err)

	_, found, err := svc.Completion(ctx, "c@b.co")
	require.NoError(t, err)
	assert.False(t, found)
}

// slowGetStore delays every read so concurrent writers overlap.
type slowGetStore struct {
	repository.Store
}

func (s slowGetStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(50 * time.Millisecond)
	return s.Store.Get(ctx, key)
}

func TestSurveyRecord_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	completions := repository.NewCompletionStore(slowGetStore{Store: repository.NewMemoryStore()})
	svc := NewSurveyService(completions, zap.NewNop())

	scores := [2]int{5, 20}
	var errs [2]error
	var wg sync.WaitGroup
	for i, score := range scores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Record(ctx, "a@b.co", score)
		}()
	}
	wg.Wait()

	var winner int
	switch {
	case errs[0] == nil && errs[1] == nil:
		t.Fatal("both sessions recorded a completion")
	case errs[0] == nil:
		assert.ErrorIs(t, errs[1], ErrAlreadyCompleted)
		winner = scores[0]
	case errs[1] == nil:
		assert.ErrorIs(t, errs[0], ErrAlreadyCompleted)
		winner = scores[1]
	default:
		t.Fatalf("no session recorded a completion: %v, %v", errs[0], errs[1])
	}

	stored, found, err := svc.Completion(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, winner, stored.Score)
}
