package service

import (
	"context"
	"testing"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// captureMailer remembers the last code it was asked to send.
type captureMailer struct {
	email, code string
}

func (m *captureMailer) SendCode(_ context.Context, email, code string) error {
	m.email, m.code = email, code
	return nil
}

func noDelayChecker() *ReservedPrefixChecker {
	c := NewReservedPrefixChecker(time.Second)
	c.sleep = func(time.Duration) {}
	return c
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "accepted", raw: "valid_user1", want: "valid_user1"},
		{name: "reserved prefix", raw: "admin123", wantErr: ErrUsernameTaken},
		{name: "reserved after normalizing", raw: "Admin-Root", wantErr: ErrUsernameTaken},
		{name: "too short", raw: "ab", wantErr: ErrUsernameTooShort},
		{name: "too short after stripping", raw: "a!b", wantErr: ErrUsernameTooShort},
		{name: "too long", raw: "abcdefghijklmnopqrstu", wantErr: ErrUsernameTooLong},
		{name: "normalized", raw: "Jane.Doe 42", want: "janedoe42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(context.Background(), noDelayChecker(), tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane.doe@x.io", "ja******@x.io"},
		{"abc@x.io", "ab*@x.io"},
		{"ab@x.io", "ab@x.io"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.email); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestMockVerifier(t *testing.T) {
	v := NewMockVerifier(1500*time.Millisecond, zap.NewNop())
	var slept time.Duration
	v.sleep = func(d time.Duration) { slept += d }

	ctx := context.Background()
	require.NoError(t, v.Send(ctx, "a@b.co"))
	assert.ErrorIs(t, v.Verify(ctx, "a@b.co", "12345"), ErrInvalidCode)
	assert.Zero(t, slept)
	assert.NoError(t, v.Verify(ctx, "a@b.co", "999999"))
	assert.Equal(t, 1500*time.Millisecond, slept)
}

func TestCodeVerifier(t *testing.T) {
	ctx := context.Background()
	mailer := &captureMailer{}
	v := NewCodeVerifier(repository.NewCodeStore(repository.NewMemoryStore()), mailer, 10*time.Minute)
	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	require.NoError(t, v.Send(ctx, "a@b.co"))
	assert.Equal(t, "a@b.co", mailer.email)
	require.Len(t, mailer.code, 6)

	wrong := "000000"
	if mailer.code == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, v.Verify(ctx, "a@b.co", wrong), ErrInvalidCode)
	assert.ErrorIs(t, v.Verify(ctx, "a@b.co", "abc"), ErrInvalidCode)
	require.NoError(t, v.Verify(ctx, "a@b.co", mailer.code))

	assert.ErrorIs(t, v.Verify(ctx, "a@b.co", mailer.code), ErrInvalidCode, "codes are single use")
}

func TestCodeVerifierExpiry(t *testing.T) {
	ctx := context.Background()
	mailer := &captureMailer{}
	v := NewCodeVerifier(repository.NewCodeStore(repository.NewMemoryStore()), mailer, time.Minute)
	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	require.NoError(t, v.Send(ctx, "a@b.co"))
	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, v.Verify(ctx, "a@b.co", mailer.code), ErrCodeExpired)
}

func TestOnboardingChooseUsername(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	svc := NewOnboardingService(NewMockVerifier(0, zap.NewNop()), noDelayChecker(), d.prefs, zap.NewNop())

	_, err := svc.ChooseUsername(ctx, "a@b.co", "admin")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	name, err := svc.ChooseUsername(ctx, "a@b.co", "Valid_User1")
	require.NoError(t, err)
	assert.Equal(t, "valid_user1", name)

	stored, found, err := d.prefs.Username(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "valid_user1", stored)
}

func TestAcceptDisclaimer(t *testing.T) {
	assert.ErrorIs(t, AcceptDisclaimer(false), ErrDisclaimerNotAccepted)
	assert.NoError(t, AcceptDisclaimer(true))
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zap.NewNop()).SendCode(context.Background(), "a@b.co", "123456"))
}
