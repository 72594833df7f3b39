package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
)

var (
	MeetingAIModels     = []string{"gpt-4", "gpt-4-turbo", "gpt-3.5-turbo", "claude-3-opus", "claude-3-sonnet"}
	TranscriptModels    = []string{"whisper-1", "whisper-2", "whisper-large", "assembly-ai", "deepgram"}
	SummarizationLevels = []string{"light", "medium", "heavy"}
)

const suggestedSummaryLevel = "medium"

func DefaultMeetingSettings() model.MeetingSettings {
	return model.MeetingSettings{
		LiveTranscription:  true,
		AIModel:            "gpt-4",
		TranscriptModel:    "whisper-1",
		SummarizationLevel: "medium",
		CalendarTracking:   false,
	}
}

func ValidateMeetingSettings(s model.MeetingSettings) error {
	if !slices.Contains(MeetingAIModels, s.AIModel) {
		return fmt.Errorf("%w: unknown ai model %q", ErrInvalidSetting, s.AIModel)
	}
	if !slices.Contains(TranscriptModels, s.TranscriptModel) {
		return fmt.Errorf("%w: unknown transcript model %q", ErrInvalidSetting, s.TranscriptModel)
	}
	if !slices.Contains(SummarizationLevels, s.SummarizationLevel) {
		return fmt.Errorf("%w: unknown summarization level %q", ErrInvalidSetting, s.SummarizationLevel)
	}
	return nil
}

// SuggestLevel is the recommended summarization level.
func SuggestLevel() string {
	return suggestedSummaryLevel
}

type MeetingService struct {
	prefs *repository.PreferenceStore
}

func NewMeetingService(prefs *repository.PreferenceStore) *MeetingService {
	return &MeetingService{prefs: prefs}
}

func (s *MeetingService) Settings(ctx context.Context, email string) (model.MeetingSettings, error) {
	saved, found, err := s.prefs.MeetingSettings(ctx, email)
	if err != nil {
		return model.MeetingSettings{}, err
	}
	if !found {
		return DefaultMeetingSettings(), nil
	}
	return saved, nil
}

func (s *MeetingService) Save(ctx context.Context, email string, settings model.MeetingSettings) error {
	if err := ValidateMeetingSettings(settings); err != nil {
		return err
	}
	return s.prefs.SetMeetingSettings(ctx, email, settings)
}

// ApplySuggestion switches the saved settings to the suggested level.
func (s *MeetingService) ApplySuggestion(ctx context.Context, email string) (model.MeetingSettings, error) {
	settings, err := s.Settings(ctx, email)
	if err != nil {
		return model.MeetingSettings{}, err
	}
	settings.SummarizationLevel = SuggestLevel()
	return settings, s.prefs.SetMeetingSettings(ctx, email, settings)
}
