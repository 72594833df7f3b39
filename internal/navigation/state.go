// Package navigation drives the screen flow. A Controller owns the current
// screen, the pending notices and the signed-in identity, and only moves in
// response to named events.
package navigation

import (
	"time"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/service"
)

type Screen string

const (
	ScreenLanding          Screen = "landing"
	ScreenLearnMore        Screen = "learn-more"
	ScreenAuth             Screen = "auth"
	ScreenForgotPassword   Screen = "forgot-password"
	ScreenOTP              Screen = "otp"
	ScreenUsername         Screen = "username"
	ScreenDisclaimer       Screen = "disclaimer"
	ScreenSurvey           Screen = "survey"
	ScreenResults          Screen = "results"
	ScreenUserHome         Screen = "user-home"
	ScreenDashboard        Screen = "dashboard"
	ScreenProfile          Screen = "profile"
	ScreenAttentionTracker Screen = "attention-tracker"
	ScreenMeetingNavigator Screen = "meeting-navigator"
	ScreenCalendar         Screen = "calendar"
	ScreenAIModels         Screen = "ai-models"
)

var toolScreens = map[string]Screen{
	service.ToolAttentionTracker: ScreenAttentionTracker,
	service.ToolMeetingNavigator: ScreenMeetingNavigator,
	service.ToolCalendar:         ScreenCalendar,
	service.ToolAIModels:         ScreenAIModels,
}

// Authenticated reports whether the screen is only reachable after the
// survey has been completed or dismissed.
func (s Screen) Authenticated() bool {
	switch s {
	case ScreenUserHome, ScreenDashboard, ScreenProfile,
		ScreenAttentionTracker, ScreenMeetingNavigator, ScreenCalendar, ScreenAIModels:
		return true
	}
	return false
}

type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignUp AuthMode = "signup"
)

// State is the screen plus whatever that screen needs to remember. The set of
// implementations is closed.
type State interface {
	Screen() Screen
	state()
}

// plainState is a screen without a payload.
type plainState struct{ screen Screen }

func (s plainState) Screen() Screen { return s.screen }
func (plainState) state() {}

type authState struct{ mode AuthMode }

func (authState) Screen() Screen { return ScreenAuth }
func (authState) state() {}

// resetState is phase one of a password reset while email is empty and
// phase two once it is set.
type resetState struct{ email string }

func (resetState) Screen() Screen { return ScreenForgotPassword }
func (resetState) state() {}

type otpState struct{ email string }

func (otpState) Screen() Screen { return ScreenOTP }
func (otpState) state() {}

type surveyState struct{ survey *assessment.Survey }

func (surveyState) Screen() Screen { return ScreenSurvey }
func (surveyState) state() {}

type resultsState struct{ score int }

func (resultsState) Screen() Screen { return ScreenResults }
func (resultsState) state() {}

type toolState struct{ tool string }

func (s toolState) Screen() Screen { return toolScreens[s.tool] }
func (toolState) state() {}

type NoticeKind string

const (
	NoticeAlreadyCompleted NoticeKind = "survey-already-completed"
	NoticeConfirmSubmit    NoticeKind = "confirm-submit"
	NoticeCodeSent         NoticeKind = "code-sent"
)

// Notice is an overlay on top of the current screen. While a blocking notice
// is pending only the events that resolve it are accepted.
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	Blocking bool       `json:"blocking"`
	Message  string     `json:"message"`
	Score    *int       `json:"score,omitempty"`
	Date     string     `json:"date,omitempty"`
}

func alreadyCompletedNotice(c model.Completion) Notice {
	score := c.Score
	return Notice{
		Kind:     NoticeAlreadyCompleted,
		Blocking: true,
		Message:  "This assessment cannot be retaken. Your results are final and cannot be changed.",
		Score:    &score,
		Date:     completionDate(c.Date),
	}
}

func confirmSubmitNotice() Notice {
	return Notice{
		Kind:     NoticeConfirmSubmit,
		Blocking: true,
		Message:  "Once submitted, your answers are final and the assessment cannot be retaken.",
	}
}

func codeSentNotice(email string) Notice {
	return Notice{
		Kind:    NoticeCodeSent,
		Message: "We sent a 6-digit code to " + service.MaskEmail(email),
	}
}

func completionDate(t time.Time) string {
	if t.IsZero() {
		return "a previous date"
	}
	return service.FormatCompletionDate(t)
}

// Identity is who the session belongs to once signed in.
type Identity struct {
	Email       string            `json:"email"`
	DisplayName string            `json:"display_name"`
	Completion  *model.Completion `json:"completion,omitempty"`
}

func (id Identity) SignedIn() bool { return id.Email != "" }
