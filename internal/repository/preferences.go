package repository

import (
	"context"
	"fmt"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

const (
	themeKey        = "theme"
	systemConfigKey = "neurotracker_system_config"
)

func fullNameKey(email string) string { return "neurotracker_fullname_" + email }
func usernameKey(email string) string { return "neurotracker_username_" + email }
func attentionKey(email string) string { return "neurotracker_attention_" + email }
func meetingKey(email string) string { return "neurotracker_meeting_" + email }

// perUserKeys lists every preference key derived from an email.
var perUserKeys = []func(string) string{fullNameKey, usernameKey, attentionKey, meetingKey}

// PreferenceStore holds small per-user and per-device settings.
type PreferenceStore struct {
	store Store
}

func NewPreferenceStore(store Store) *PreferenceStore {
	return &PreferenceStore{store: store}
}

func (p *PreferenceStore) FullName(ctx context.Context, email string) (string, bool, error) {
	var name string
	found, err := getJSON(ctx, p.store, fullNameKey(email), &name)
	return name, found, err
}

func (p *PreferenceStore) SetFullName(ctx context.Context, email, name string) error {
	return setJSON(ctx, p.store, fullNameKey(email), name)
}

func (p *PreferenceStore) Username(ctx context.Context, email string) (string, bool, error) {
	var name string
	found, err := getJSON(ctx, p.store, usernameKey(email), &name)
	return name, found, err
}

func (p *PreferenceStore) SetUsername(ctx context.Context, email, username string) error {
	return setJSON(ctx, p.store, usernameKey(email), username)
}

// Theme returns the stored theme name, or "" when none was saved.
func (p *PreferenceStore) Theme(ctx context.Context) (string, error) {
	var theme string
	if _, err := getJSON(ctx, p.store, themeKey, &theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (p *PreferenceStore) SetTheme(ctx context.Context, theme string) error {
	return setJSON(ctx, p.store, themeKey, theme)
}

func (p *PreferenceStore) SystemConfig(ctx context.Context) (model.SystemConfig, bool, error) {
	var cfg model.SystemConfig
	found, err := getJSON(ctx, p.store, systemConfigKey, &cfg)
	if !found {
		cfg = model.SystemConfig{}
	}
	return cfg, found, err
}

func (p *PreferenceStore) SetSystemConfig(ctx context.Context, cfg model.SystemConfig) error {
	return setJSON(ctx, p.store, systemConfigKey, cfg)
}

func (p *PreferenceStore) AttentionSettings(ctx context.Context, email string) (model.AttentionSettings, bool, error) {
	var s model.AttentionSettings
	found, err := getJSON(ctx, p.store, attentionKey(email), &s)
	if !found {
		s = model.AttentionSettings{}
	}
	return s, found, err
}

func (p *PreferenceStore) SetAttentionSettings(ctx context.Context, email string, s model.AttentionSettings) error {
	return setJSON(ctx, p.store, attentionKey(email), s)
}

func (p *PreferenceStore) MeetingSettings(ctx context.Context, email string) (model.MeetingSettings, bool, error) {
	var s model.MeetingSettings
	found, err := getJSON(ctx, p.store, meetingKey(email), &s)
	if !found {
		s = model.MeetingSettings{}
	}
	return s, found, err
}

func (p *PreferenceStore) SetMeetingSettings(ctx context.Context, email string, s model.MeetingSettings) error {
	return setJSON(ctx, p.store, meetingKey(email), s)
}

// MovePreferences copies every per-user key from oldEmail to newEmail and
// removes the originals.
func (p *PreferenceStore) MovePreferences(ctx context.Context, oldEmail, newEmail string) error {
	for _, keyFor := range perUserKeys {
		from, to := keyFor(oldEmail), keyFor(newEmail)

		raw, ok, err := p.store.Get(ctx, from)
		if err != nil {
			return fmt.Errorf("reading %s: %w", from, err)
		}
		if !ok {
			continue
		}
		if err := p.store.Set(ctx, to, raw); err != nil {
			return fmt.Errorf("writing %s: %w", to, err)
		}
		if err := p.store.Delete(ctx, from); err != nil {
			return fmt.Errorf("deleting %s: %w", from, err)
		}
	}
	return nil
}
