package service

import (
	"context"
	"errors"
	"strings"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"go.uber.org/zap"
)

const minFullNameLength = 2

// ProfileService edits an existing account.
type ProfileService struct {
	users       *repository.CredentialStore
	completions *repository.CompletionStore
	prefs       *repository.PreferenceStore
	checker     UsernameChecker
	hasher      passwordHasher
	log         *zap.Logger
}

func NewProfileService(users *repository.CredentialStore, completions *repository.CompletionStore, prefs *repository.PreferenceStore, checker UsernameChecker, log *zap.Logger) *ProfileService {
	return &ProfileService{
		users:       users,
		completions: completions,
		prefs:       prefs,
		checker:     checker,
		hasher:      crypto.DefaultHasher(),
		log:         log,
	}
}

// Profile returns the editable data for email. The stored full name wins
// over the name given at signup.
func (s *ProfileService) Profile(ctx context.Context, email string) (model.Profile, error) {
	user, found, err := s.users.FindUser(ctx, email)
	if err != nil {
		return model.Profile{}, err
	}
	if !found {
		return model.Profile{}, ErrUserNotFound
	}

	p := model.Profile{Email: email, FullName: user.Name}
	if name, ok, err := s.prefs.FullName(ctx, email); err != nil {
		return model.Profile{}, err
	} else if ok {
		p.FullName = name
	}
	if username, ok, err := s.prefs.Username(ctx, email); err != nil {
		return model.Profile{}, err
	} else if ok {
		p.Username = username
	}
	return p, nil
}

func (s *ProfileService) UpdateFullName(ctx context.Context, email, fullName string) (string, error) {
	name := strings.TrimSpace(fullName)
	if len([]rune(name)) < minFullNameLength {
		return "", ErrNameTooShort
	}
	if err := s.prefs.SetFullName(ctx, email, name); err != nil {
		return "", err
	}
	return name, nil
}

// ChangeEmail re-keys the account together with its completion record and
// preferences.
func (s *ProfileService) ChangeEmail(ctx context.Context, oldEmail, newEmail string) error {
	if !ValidEmail(newEmail) {
		return ErrInvalidEmailFormat
	}
	if newEmail == oldEmail {
		return nil
	}

	if err := s.users.ChangeEmail(ctx, oldEmail, newEmail); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrAccountExists
		case errors.Is(err, repository.ErrUserNotFound):
			return ErrUserNotFound
		}
		return err
	}
	if err := s.completions.MoveCompletion(ctx, oldEmail, newEmail); err != nil {
		return err
	}
	if err := s.prefs.MovePreferences(ctx, oldEmail, newEmail); err != nil {
		return err
	}

	s.log.Info("email changed", zap.String("from", oldEmail), zap.String("to", newEmail))
	return nil
}

func (s *ProfileService) ChangeUsername(ctx context.Context, email, raw string) (string, error) {
	name, err := ValidateUsername(ctx, s.checker, raw)
	if err != nil {
		return "", err
	}
	if err := s.prefs.SetUsername(ctx, email, name); err != nil {
		return "", err
	}
	return name, nil
}

// ChangePassword checks, in order: current length, new length,
// confirmation, account existence, current password.
func (s *ProfileService) ChangePassword(ctx context.Context, email string, req model.PasswordChange) error {
	if len(req.Current) < MinPasswordLength || len(req.New) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if req.New != req.Confirm {
		return ErrPasswordMismatch
	}

	user, found, err := s.users.FindUser(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}

	if err := checkPassword(s.hasher, s.log, email, req.Current, user.Password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.New)
	if err != nil {
		return err
	}
	if _, err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	s.log.Info("password changed", zap.String("email", email))
	return nil
}
