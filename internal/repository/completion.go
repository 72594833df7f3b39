package repository

import (
	"context"
	"sync"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

const surveysKey = "neurotracker_surveys"

// CompletionStore keeps finished assessments as one JSON object keyed by
// email. CreateCompletion is the write path for new results; SetCompletion
// always overwrites.
//
// Every method holds mu across its read-modify-write, so a single process
// never loses an update. Two processes sharing one SQL database are not
// serialized against each other.
type CompletionStore struct {
	mu    sync.Mutex
	store Store
}

func NewCompletionStore(store Store) *CompletionStore {
	return &CompletionStore{store: store}
}

func (r *CompletionStore) load(ctx context.Context) (map[string]model.Completion, error) {
	records := map[string]model.Completion{}
	found, err := getJSON(ctx, r.store, surveysKey, &records)
	if err != nil {
		return nil, err
	}
	if !found || records == nil {
		return map[string]model.Completion{}, nil
	}
	return records, nil
}

func (r *CompletionStore) GetCompletion(ctx context.Context, email string) (model.Completion, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return model.Completion{}, false, err
	}
	c, ok := records[email]
	if !ok || !c.Completed {
		return model.Completion{}, false, nil
	}
	return c, true, nil
}

func (r *CompletionStore) SetCompletion(ctx context.Context, email string, score int, at time.Time) (model.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return model.Completion{}, err
	}
	c := model.Completion{Completed: true, Score: score, Date: at.UTC()}
	records[email] = c
	return c, setJSON(ctx, r.store, surveysKey, records)
}

// CreateCompletion records score for email unless a completed record is
// already there, in which case that record is returned with created false
// and nothing is written.
func (r *CompletionStore) CreateCompletion(ctx context.Context, email string, score int, at time.Time) (model.Completion, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return model.Completion{}, false, err
	}
	if existing, ok := records[email]; ok && existing.Completed {
		return existing, false, nil
	}

	c := model.Completion{Completed: true, Score: score, Date: at.UTC()}
	records[email] = c
	if err := setJSON(ctx, r.store, surveysKey, records); err != nil {
		return model.Completion{}, false, err
	}
	return c, true, nil
}

// MoveCompletion re-keys the record for oldEmail, if any.
func (r *CompletionStore) MoveCompletion(ctx context.Context, oldEmail, newEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	c, ok := records[oldEmail]
	if !ok {
		return nil
	}
	delete(records, oldEmail)
	records[newEmail] = c
	return setJSON(ctx, r.store, surveysKey, records)
}
