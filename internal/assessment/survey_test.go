package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name    string
		answers map[int]int
		want    int
		wantErr error
	}{
		{
			name:    "mixed answers",
			answers: map[int]int{0: 2, 1: 3, 2: 1, 3: 4, 4: 0, 5: 2},
			want:    12,
		},
		{
			name:    "all never",
			answers: map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
			want:    0,
		},
		{
			name:    "all always",
			answers: map[int]int{0: 4, 1: 4, 2: 4, 3: 4, 4: 4, 5: 4},
			want:    MaxScore,
		},
		{
			name:    "missing answer",
			answers: map[int]int{0: 2, 1: 3, 2: 1, 3: 4, 5: 2},
			wantErr: ErrSurveyIncomplete,
		},
		{
			name:    "out of range value",
			answers: map[int]int{0: 2, 1: 3, 2: 1, 3: 9, 4: 0, 5: 2},
			wantErr: ErrAnswerOutOfRange,
		},
		{
			name:    "empty",
			answers: map[int]int{},
			wantErr: ErrSurveyIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswers(tt.answers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSurveyNavigation(t *testing.T) {
	s := NewSurvey()

	assert.False(t, s.Next(), "cannot advance past an unanswered question")
	assert.False(t, s.Previous(), "cannot go back from the first question")
	assert.Equal(t, 0, s.Current())

	require.NoError(t, s.Answer(2))
	assert.Equal(t, 0, s.Current(), "answering does not move")
	assert.True(t, s.Next())
	assert.Equal(t, 1, s.Current())

	assert.True(t, s.Previous())
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, sel)

	require.NoError(t, s.Answer(3))
	sel, _ = s.Selected()
	assert.Equal(t, 3, sel, "answers can be changed")
}

func TestSurveyAnswerOutOfRange(t *testing.T) {
	s := NewSurvey()
	assert.ErrorIs(t, s.Answer(-1), ErrAnswerOutOfRange)
	assert.ErrorIs(t, s.Answer(5), ErrAnswerOutOfRange)
	assert.Equal(t, 0, s.AnsweredCount())
}

func TestSurveySubmitOnlyOnLastAnsweredQuestion(t *testing.T) {
	s := NewSurvey()
	values := []int{2, 3, 1, 4, 0, 2}

	for i, v := range values {
		assert.False(t, s.CanSubmit())
		require.NoError(t, s.Answer(v))
		if i < len(values)-1 {
			assert.True(t, s.CanAdvance())
			require.True(t, s.Next())
		}
	}

	assert.Equal(t, QuestionCount-1, s.Current())
	assert.False(t, s.Next(), "the cursor is capped at the last question")
	assert.True(t, s.CanSubmit())

	score, err := s.Score()
	require.NoError(t, err)
	assert.Equal(t, 12, score)
	assert.Equal(t, "High Negative", Interpret(score).Name)
}

func TestSurveyAnswersIsACopy(t *testing.T) {
	s := NewSurvey()
	require.NoError(t, s.Answer(1))

	a := s.Answers()
	a[0] = 4
	sel, _ := s.Selected()
	assert.Equal(t, 1, sel)
}

func TestDefaultBank(t *testing.T) {
	b := DefaultBank()
	require.Len(t, b.Questions, QuestionCount)
	assert.Equal(t, "Never", b.Label(0))
	assert.Equal(t, "Always", b.Label(4))
	assert.Empty(t, b.Label(7))
	assert.Contains(t, b.Questions[2].Text, "remembering appointments")
}

func TestParseBankRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "questions: [unclosed"},
		{name: "too few questions", yaml: "scale: [{value: 0, label: a}, {value: 1, label: b}, {value: 2, label: c}, {value: 3, label: d}, {value: 4, label: e}]\nquestions: [{id: 1, text: q}]"},
		{name: "scale out of order", yaml: "scale: [{value: 1, label: a}]\nquestions: [{id: 1, text: a}, {id: 2, text: b}, {id: 3, text: c}, {id: 4, text: d}, {id: 5, text: e}, {id: 6, text: f}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
