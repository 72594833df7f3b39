package service

import (
	"context"

	"github.com/neurotracker/neurotracker-go/internal/repository"
)

const (
	ThemeLight      = "light"
	ThemeDark       = "dark"
	ThemeColorblind = "colorblind"
)

var themeCycle = map[string]string{
	ThemeLight:      ThemeDark,
	ThemeDark:       ThemeColorblind,
	ThemeColorblind: ThemeLight,
}

type ThemeService struct {
	prefs *repository.PreferenceStore
}

func NewThemeService(prefs *repository.PreferenceStore) *ThemeService {
	return &ThemeService{prefs: prefs}
}

// Current returns the saved theme, falling back to light for missing or
// unknown values.
func (s *ThemeService) Current(ctx context.Context) (string, error) {
	theme, err := s.prefs.Theme(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := themeCycle[theme]; !ok {
		return ThemeLight, nil
	}
	return theme, nil
}

// Cycle moves light -> dark -> colorblind -> light and saves the result.
func (s *ThemeService) Cycle(ctx context.Context) (string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	next := themeCycle[current]
	if err := s.prefs.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
