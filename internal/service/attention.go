package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
)

var Cameras = []string{"camera1", "camera2", "camera3", "camera4"}

// DefaultAttentionSettings mirrors the tracker's factory calibration.
func DefaultAttentionSettings() model.AttentionSettings {
	return model.AttentionSettings{
		Camera:       "camera1",
		PitchMin:     -64.6,
		PitchMax:     41.1,
		Strictness:   5.0,
		YawMin:       -35,
		YawMax:       35,
		EyeThreshold: 0.15,
	}
}

type bound struct {
	name     string
	value    float64
	min, max float64
}

// ValidateAttentionSettings checks the camera and every slider range.
func ValidateAttentionSettings(s model.AttentionSettings) error {
	if !slices.Contains(Cameras, s.Camera) {
		return fmt.Errorf("%w: unknown camera %q", ErrInvalidSetting, s.Camera)
	}

	bounds := []bound{
		{"pitch_min", s.PitchMin, -90, 0},
		{"pitch_max", s.PitchMax, 0, 90},
		{"strictness", s.Strictness, 1, 20},
		{"yaw_min", s.YawMin, -90, 0},
		{"yaw_max", s.YawMax, 0, 90},
		{"eye_threshold", s.EyeThreshold, 0.05, 0.5},
	}
	for _, b := range bounds {
		if b.value < b.min || b.value > b.max {
			return fmt.Errorf("%w: %s must be within [%g, %g]", ErrInvalidSetting, b.name, b.min, b.max)
		}
	}
	return nil
}

// Classify reports FOCUSED when the head pose is inside the calibrated pitch
// and yaw window and the eyes are open wider than the threshold.
func Classify(s model.AttentionSettings, p model.PoseSample) model.AttentionStatus {
	inPitch := p.Pitch >= s.PitchMin && p.Pitch <= s.PitchMax
	inYaw := p.Yaw >= s.YawMin && p.Yaw <= s.YawMax
	if inPitch && inYaw && p.EAR >= s.EyeThreshold {
		return model.StatusFocused
	}
	return model.StatusDistracted
}

type AttentionService struct {
	prefs *repository.PreferenceStore
}

func NewAttentionService(prefs *repository.PreferenceStore) *AttentionService {
	return &AttentionService{prefs: prefs}
}

func (s *AttentionService) Settings(ctx context.Context, email string) (model.AttentionSettings, error) {
	saved, found, err := s.prefs.AttentionSettings(ctx, email)
	if err != nil {
		return model.AttentionSettings{}, err
	}
	if !found {
		return DefaultAttentionSettings(), nil
	}
	return saved, nil
}

func (s *AttentionService) Save(ctx context.Context, email string, settings model.AttentionSettings) error {
	if err := ValidateAttentionSettings(settings); err != nil {
		return err
	}
	return s.prefs.SetAttentionSettings(ctx, email, settings)
}

// Reset restores and saves the defaults.
func (s *AttentionService) Reset(ctx context.Context, email string) (model.AttentionSettings, error) {
	d := DefaultAttentionSettings()
	return d, s.prefs.SetAttentionSettings(ctx, email, d)
}

// Classify evaluates sample against the settings saved for email.
func (s *AttentionService) Classify(ctx context.Context, email string, sample model.PoseSample) (model.AttentionStatus, error) {
	settings, err := s.Settings(ctx, email)
	if err != nil {
		return "", err
	}
	return Classify(settings, sample), nil
}
