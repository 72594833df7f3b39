package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrAnswerOutOfRange = errors.New("answer must be between 0 and 4")
	ErrSurveyIncomplete = errors.New("all questions must be answered")
)

// Survey walks the questions in order. The cursor only moves forward past an
// answered question.
type Survey struct {
	current int
	answers map[int]int
}

func NewSurvey() *Survey {
	return &Survey{answers: make(map[int]int, QuestionCount)}
}

// Current is the zero-based index of the question on screen.
func (s *Survey) Current() int { return s.current }

// Answer records value for the current question without moving.
func (s *Survey) Answer(value int) error {
	if value < MinAnswer || value > MaxAnswer {
		return ErrAnswerOutOfRange
	}
	s.answers[s.current] = value
	return nil
}

// Selected returns the answer recorded for the current question.
func (s *Survey) Selected() (int, bool) {
	v, ok := s.answers[s.current]
	return v, ok
}

// Next advances to the following question if the current one is answered
// and it is not the last. It reports whether the cursor moved.
func (s *Survey) Next() bool {
	if _, ok := s.answers[s.current]; !ok || s.current >= QuestionCount-1 {
		return false
	}
	s.current++
	return true
}

// Previous steps back one question, stopping at the first.
func (s *Survey) Previous() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

func (s *Survey) CanGoBack() bool { return s.current > 0 }

func (s *Survey) CanAdvance() bool {
	_, ok := s.answers[s.current]
	return ok && s.current < QuestionCount-1
}

// CanSubmit is true on the last question once it has an answer.
func (s *Survey) CanSubmit() bool {
	_, ok := s.answers[s.current]
	return ok && s.current == QuestionCount-1
}

func (s *Survey) AnsweredCount() int { return len(s.answers) }

// Answers returns a copy of the recorded answers.
func (s *Survey) Answers() map[int]int {
	out := make(map[int]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Score sums the answers once every question has one.
func (s *Survey) Score() (int, error) {
	return ScoreAnswers(s.answers)
}

// ScoreAnswers sums answers keyed by question index. Every index in
// [0, QuestionCount) must be present with a value in range.
func ScoreAnswers(answers map[int]int) (int, error) {
	total := 0
	for i := 0; i < QuestionCount; i++ {
		v, ok := answers[i]
		if !ok {
			return 0, fmt.Errorf("%w: question %d has no answer", ErrSurveyIncomplete, i+1)
		}
		if v < MinAnswer || v > MaxAnswer {
			return 0, fmt.Errorf("%w: question %d", ErrAnswerOutOfRange, i+1)
		}
		total += v
	}
	return total, nil
}
