package navigation

import (
	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/service"
)

// View is a JSON-friendly snapshot of a Controller for presenters.
type View struct {
	Screen      Screen       `json:"screen"`
	Email       string       `json:"email,omitempty"`
	DisplayName string       `json:"display_name,omitempty"`
	Initials    string       `json:"initials,omitempty"`
	Notices     []Notice     `json:"notices,omitempty"`
	AuthMode    AuthMode     `json:"auth_mode,omitempty"`
	ResetEmail  string       `json:"reset_email,omitempty"`
	MaskedEmail string       `json:"masked_email,omitempty"`
	Survey      *SurveyView  `json:"survey,omitempty"`
	Result      *ResultView  `json:"result,omitempty"`
	Tools       []model.Tool `json:"tools,omitempty"`
	Tool        string       `json:"tool,omitempty"`
}

type SurveyView struct {
	Title        string                   `json:"title"`
	Instructions string                   `json:"instructions"`
	Index        int                      `json:"index"`
	Total        int                      `json:"total"`
	Question     string                   `json:"question"`
	Options      []assessment.ScaleOption `json:"options"`
	Selected     *int                     `json:"selected,omitempty"`
	Answered     int                      `json:"answered"`
	CanGoBack    bool                     `json:"can_go_back"`
	CanAdvance   bool                     `json:"can_advance"`
	CanSubmit    bool                     `json:"can_submit"`
}

// ResultView is shared by the results screen and the dashboard so both show
// the same band for the same score.
type ResultView struct {
	Score       int             `json:"score"`
	MaxScore    int             `json:"max_score"`
	Band        assessment.Band `json:"band"`
	CompletedOn string          `json:"completed_on"`
}

func resultView(score int, c *model.Completion) *ResultView {
	rv := &ResultView{
		Score:       score,
		MaxScore:    assessment.MaxScore,
		Band:        assessment.Interpret(score),
		CompletedOn: "Unknown",
	}
	if c != nil {
		rv.CompletedOn = service.FormatCompletionDate(c.Date)
	}
	return rv
}

func (c *Controller) view() View {
	v := View{
		Screen:      c.state.Screen(),
		Email:       c.identity.Email,
		DisplayName: c.identity.DisplayName,
		Initials:    service.Initials(c.identity.DisplayName),
		Notices:     append([]Notice(nil), c.notices...),
	}

	switch st := c.state.(type) {
	case authState:
		v.AuthMode = st.mode
	case resetState:
		v.ResetEmail = st.email
	case otpState:
		v.MaskedEmail = service.MaskEmail(st.email)
	case surveyState:
		v.Survey = c.surveyView(st.survey)
	case resultsState:
		v.Result = resultView(st.score, c.identity.Completion)
	case toolState:
		v.Tool = st.tool
	}

	switch v.Screen {
	case ScreenUserHome:
		v.Tools = service.Tools()
	case ScreenDashboard:
		if done := c.identity.Completion; done != nil {
			v.Result = resultView(done.Score, done)
		}
	}
	return v
}

func (c *Controller) surveyView(s *assessment.Survey) *SurveyView {
	bank := c.deps.Bank
	sv := &SurveyView{
		Title:        bank.Title,
		Instructions: bank.Instructions,
		Index:        s.Current(),
		Total:        assessment.QuestionCount,
		Question:     bank.Questions[s.Current()].Text,
		Options:      bank.Scale,
		Answered:     s.AnsweredCount(),
		CanGoBack:    s.CanGoBack(),
		CanAdvance:   s.CanAdvance(),
		CanSubmit:    s.CanSubmit(),
	}
	if v, ok := s.Selected(); ok {
		sv.Selected = &v
	}
	return sv
}
