package service

import (
	"context"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/repository"
	"go.uber.org/zap"
)

// SurveyService records finished assessments, at most once per email.
type SurveyService struct {
	completions *repository.CompletionStore
	log         *zap.Logger
	now         func() time.Time
}

func NewSurveyService(completions *repository.CompletionStore, log *zap.Logger) *SurveyService {
	return &SurveyService{completions: completions, log: log, now: time.Now}
}

func (s *SurveyService) Completion(ctx context.Context, email string) (model.Completion, bool, error) {
	return s.completions.GetCompletion(ctx, email)
}

// Record stores score for email. If a record already exists it is left
// untouched and ErrAlreadyCompleted is returned together with it. The check
// and the write happen under one store lock, so concurrent sessions for the
// same email cannot both succeed.
func (s *SurveyService) Record(ctx context.Context, email string, score int) (model.Completion, error) {
	c, created, err := s.completions.CreateCompletion(ctx, email, score, s.now())
	if err != nil {
		return model.Completion{}, err
	}
	if !created {
		return c, ErrAlreadyCompleted
	}

	s.log.Info("assessment completed",
		zap.String("email", email),
		zap.Int("score", score),
		zap.String("band", assessment.Interpret(score).Name),
	)
	return c, nil
}
