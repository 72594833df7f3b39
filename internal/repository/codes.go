package repository

import (
	"context"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

func codeKey(email string) string { return "neurotracker_otp_" + email }

// CodeStore holds at most one pending verification code per email.
type CodeStore struct {
	store Store
}

func NewCodeStore(store Store) *CodeStore {
	return &CodeStore{store: store}
}

func (c *CodeStore) Save(ctx context.Context, email string, code model.PendingCode) error {
	return setJSON(ctx, c.store, codeKey(email), code)
}

func (c *CodeStore) Load(ctx context.Context, email string) (model.PendingCode, bool, error) {
	var code model.PendingCode
	found, err := getJSON(ctx, c.store, codeKey(email), &code)
	if !found {
		code = model.PendingCode{}
	}
	return code, found, err
}

func (c *CodeStore) Delete(ctx context.Context, email string) error {
	return c.store.Delete(ctx, codeKey(email))
}
