package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"go.uber.org/zap"
)

// MinPasswordLength applies to reset and profile password changes.
const MinPasswordLength = 6

const defaultDisplayName = "User"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// passwordHasher is satisfied by crypto.Hasher.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// checkPassword compares password with the stored hash. An unreadable hash
// counts as a wrong password; any other failure is returned as is.
func checkPassword(h passwordHasher, log *zap.Logger, email, password, encoded string) error {
	match, err := h.Verify(password, encoded)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidHashFormat) || errors.Is(err, crypto.ErrIncompatibleVersion) {
			log.Warn("stored password hash is unreadable", zap.String("email", email), zap.Error(err))
			return ErrInvalidCredentials
		}
		return err
	}
	if !match {
		return ErrInvalidCredentials
	}
	return nil
}

// AuthService handles login, signup and password reset.
type AuthService struct {
	users       *repository.CredentialStore
	completions *repository.CompletionStore
	hasher      passwordHasher
	latency     time.Duration
	log         *zap.Logger

	// sleep waits out the simulated latency. It ignores cancellation: once a
	// request passed validation it always finishes.
	sleep func(time.Duration)
}

// NewAuthService creates an AuthService. latency is added after validation
// and before any lookup or write.
func NewAuthService(users *repository.CredentialStore, completions *repository.CompletionStore, latency time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:       users,
		completions: completions,
		hasher:      crypto.DefaultHasher(),
		latency:     latency,
		log:         log,
		sleep:       time.Sleep,
	}
}

func (s *AuthService) wait() {
	if s.latency > 0 {
		s.sleep(s.latency)
	}
}

// Login identifies a user. The result carries the completion record when the
// user already finished the assessment.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	if !ValidEmail(email) {
		return model.LoginResult{}, ErrInvalidEmailFormat
	}
	s.wait()

	user, found, err := s.users.FindUser(ctx, email)
	if err != nil {
		return model.LoginResult{}, err
	}
	if !found {
		return model.LoginResult{}, ErrUserNotFound
	}

	if err := checkPassword(s.hasher, s.log, email, password, user.Password); err != nil {
		return model.LoginResult{}, err
	}

	result := model.LoginResult{Email: user.Email, DisplayName: displayName(user.Name)}

	completion, done, err := s.completions.GetCompletion(ctx, email)
	if err != nil {
		return model.LoginResult{}, err
	}
	if done {
		result.Completion = &completion
	}

	s.log.Info("user logged in", zap.String("email", email), zap.Bool("completed", done))
	return result, nil
}

// SignUp creates an account. Checks run in order: email format, password
// confirmation, existing account.
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (model.LoginResult, error) {
	if !ValidEmail(req.Email) {
		return model.LoginResult{}, ErrInvalidEmailFormat
	}
	if req.Password != req.ConfirmPassword {
		return model.LoginResult{}, ErrPasswordMismatch
	}

	_, exists, err := s.users.FindUser(ctx, req.Email)
	if err != nil {
		return model.LoginResult{}, err
	}
	if exists {
		return model.LoginResult{}, ErrAccountExists
	}

	s.wait()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.LoginResult{}, err
	}

	if err := s.users.AddUser(ctx, model.User{Email: req.Email, Password: hash, Name: req.Name}); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.LoginResult{}, ErrAccountExists
		}
		return model.LoginResult{}, err
	}

	s.log.Info("account created", zap.String("email", req.Email))
	return model.LoginResult{Email: req.Email, DisplayName: displayName(req.Name)}, nil
}

// BeginReset is the first reset phase: the email must belong to an account.
func (s *AuthService) BeginReset(ctx context.Context, email string) error {
	if !ValidEmail(email) {
		return ErrInvalidEmailFormat
	}
	s.wait()

	_, found, err := s.users.FindUser(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

// CompleteReset is the second reset phase and overwrites the password.
func (s *AuthService) CompleteReset(ctx context.Context, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	s.wait()

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	ok, err := s.users.UpdatePassword(ctx, email, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}

	s.log.Info("password reset", zap.String("email", email))
	return nil
}

func displayName(name string) string {
	if name == "" {
		return defaultDisplayName
	}
	return name
}
