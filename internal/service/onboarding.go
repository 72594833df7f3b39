package service

import (
	"context"
	"strings"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/crypto"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"go.uber.org/zap"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	reservedPrefix    = "admin"
)

// Verifier sends and checks one-time codes for an email address.
type Verifier interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// UsernameChecker decides whether a normalized username is free.
type UsernameChecker interface {
	Available(ctx context.Context, username string) (bool, error)
}

// Mailer delivers a verification code.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}

// MockVerifier accepts any well-formed code after a fixed delay.
type MockVerifier struct {
	latency time.Duration
	sleep   func(time.Duration)
	log     *zap.Logger
}

func NewMockVerifier(latency time.Duration, log *zap.Logger) *MockVerifier {
	return &MockVerifier{latency: latency, sleep: time.Sleep, log: log}
}

func (v *MockVerifier) Send(_ context.Context, email string) error {
	v.log.Debug("verification code requested", zap.String("email", MaskEmail(email)))
	return nil
}

func (v *MockVerifier) Verify(_ context.Context, _ string, code string) error {
	if !crypto.IsWellFormedCode(code) {
		return ErrInvalidCode
	}
	if v.latency > 0 {
		v.sleep(v.latency)
	}
	return nil
}

// CodeVerifier issues a real random code, keeps it in the store until it
// expires and accepts only that code.
type CodeVerifier struct {
	codes  *repository.CodeStore
	mailer Mailer
	ttl    time.Duration
	now    func() time.Time
}

func NewCodeVerifier(codes *repository.CodeStore, mailer Mailer, ttl time.Duration) *CodeVerifier {
	return &CodeVerifier{codes: codes, mailer: mailer, ttl: ttl, now: time.Now}
}

func (v *CodeVerifier) Send(ctx context.Context, email string) error {
	code, err := crypto.GenerateCode()
	if err != nil {
		return err
	}
	if err := v.codes.Save(ctx, email, model.PendingCode{Code: code, ExpiresAt: v.now().Add(v.ttl)}); err != nil {
		return err
	}
	return v.mailer.SendCode(ctx, email, code)
}

func (v *CodeVerifier) Verify(ctx context.Context, email, code string) error {
	if !crypto.IsWellFormedCode(code) {
		return ErrInvalidCode
	}

	pending, found, err := v.codes.Load(ctx, email)
	if err != nil {
		return err
	}
	if !found || pending.Code != code {
		return ErrInvalidCode
	}
	if v.now().After(pending.ExpiresAt) {
		return ErrCodeExpired
	}
	return v.codes.Delete(ctx, email)
}

// LogMailer writes codes to the log instead of sending mail.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendCode(_ context.Context, email, code string) error {
	m.log.Info("sending verification code",
		zap.String("to", email),
		zap.String("code", code),
	)
	return nil
}

// ReservedPrefixChecker treats every name starting with "admin" as taken.
type ReservedPrefixChecker struct {
	latency time.Duration
	sleep   func(time.Duration)
}

func NewReservedPrefixChecker(latency time.Duration) *ReservedPrefixChecker {
	return &ReservedPrefixChecker{latency: latency, sleep: time.Sleep}
}

func (c *ReservedPrefixChecker) Available(_ context.Context, username string) (bool, error) {
	if c.latency > 0 {
		c.sleep(c.latency)
	}
	return !strings.HasPrefix(username, reservedPrefix), nil
}

// NormalizeUsername lower-cases raw and drops anything outside [a-z0-9_].
func NormalizeUsername(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateUsername normalizes raw and checks its length and availability.
func ValidateUsername(ctx context.Context, checker UsernameChecker, raw string) (string, error) {
	name := NormalizeUsername(raw)
	if len(name) < MinUsernameLength {
		return "", ErrUsernameTooShort
	}
	if len(name) > MaxUsernameLength {
		return "", ErrUsernameTooLong
	}

	ok, err := checker.Available(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUsernameTaken
	}
	return name, nil
}

// MaskEmail keeps the first two characters of the local part and stars the
// rest, so "jane.doe@x.io" becomes "ja******@x.io". Short local parts are
// left alone.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || len(local) <= 2 {
		return email
	}
	return local[:2] + strings.Repeat("*", len(local)-2) + "@" + domain
}

// OnboardingService runs the post-signup steps: code verification and
// username selection.
type OnboardingService struct {
	verifier Verifier
	checker  UsernameChecker
	prefs    *repository.PreferenceStore
	log      *zap.Logger
}

func NewOnboardingService(verifier Verifier, checker UsernameChecker, prefs *repository.PreferenceStore, log *zap.Logger) *OnboardingService {
	return &OnboardingService{verifier: verifier, checker: checker, prefs: prefs, log: log}
}

func (s *OnboardingService) SendCode(ctx context.Context, email string) error {
	return s.verifier.Send(ctx, email)
}

func (s *OnboardingService) VerifyCode(ctx context.Context, email, code string) error {
	return s.verifier.Verify(ctx, email, code)
}

// ChooseUsername validates raw and stores the normalized name for email.
func (s *OnboardingService) ChooseUsername(ctx context.Context, email, raw string) (string, error) {
	name, err := ValidateUsername(ctx, s.checker, raw)
	if err != nil {
		return "", err
	}
	if err := s.prefs.SetUsername(ctx, email, name); err != nil {
		return "", err
	}
	s.log.Info("username chosen", zap.String("email", email), zap.String("username", name))
	return name, nil
}

// AcceptDisclaimer requires an explicit acceptance.
func AcceptDisclaimer(accepted bool) error {
	if !accepted {
		return ErrDisclaimerNotAccepted
	}
	return nil
}
