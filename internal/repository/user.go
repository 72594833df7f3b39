package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

const usersKey = "neurotracker_users"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// CredentialStore keeps every account as one JSON list under usersKey. Each
// write rewrites the whole list.
type CredentialStore struct {
	mu    sync.Mutex
	store Store
}

func NewCredentialStore(store Store) *CredentialStore {
	return &CredentialStore{store: store}
}

func (r *CredentialStore) load(ctx context.Context) ([]model.User, error) {
	var users []model.User
	found, err := getJSON(ctx, r.store, usersKey, &users)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return users, nil
}

// FindUser returns the account whose email matches exactly.
func (r *CredentialStore) FindUser(ctx context.Context, email string) (model.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return model.User{}, false, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

// AddUser appends user. It refuses a second record for the same email.
func (r *CredentialStore) AddUser(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	return setJSON(ctx, r.store, usersKey, append(users, user))
}

// UpdatePassword replaces the stored hash and reports whether the email exists.
func (r *CredentialStore) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Email == email {
			users[i].Password = passwordHash
			return true, setJSON(ctx, r.store, usersKey, users)
		}
	}
	return false, nil
}

// ChangeEmail re-keys an account.
func (r *CredentialStore) ChangeEmail(ctx context.Context, oldEmail, newEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, u := range users {
		switch u.Email {
		case newEmail:
			return ErrDuplicateEmail
		case oldEmail:
			idx = i
		}
	}
	if idx < 0 {
		return ErrUserNotFound
	}

	users[idx].Email = newEmail
	return setJSON(ctx, r.store, usersKey, users)
}
