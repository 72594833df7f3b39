package navigation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

var ErrUnknownEvent = errors.New("unknown event type")

// Event is a named user action.
type Event interface {
	Name() string
}

type (
	GetStarted       struct{}
	LearnMore        struct{}
	BackToLanding    struct{}
	ForgotPassword   struct{}
	Back             struct{}
	ResendCode       struct{}
	NextQuestion     struct{}
	PreviousQuestion struct{}
	RequestSubmit    struct{}
	CancelSubmit     struct{}
	ConfirmSubmit    struct{}
	Continue         struct{}
	DismissNotice    struct{}
	ViewDashboard    struct{}
	ViewProfile      struct{}
	Home             struct{}
	Logout           struct{}
)

type SwitchAuthMode struct {
	Mode AuthMode `json:"mode"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUp struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"name"`
}

// ResetEmail is phase one of a password reset.
type ResetEmail struct {
	Email string `json:"email"`
}

// ResetPassword is phase two of a password reset.
type ResetPassword struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type VerifyCode struct {
	Code string `json:"code"`
}

type ChooseUsername struct {
	Username string `json:"username"`
}

type AcceptDisclaimer struct {
	Accepted bool `json:"accepted"`
}

// AnswerQuestion records a Likert value for the question on screen.
type AnswerQuestion struct {
	Value int `json:"value"`
}

type OpenTool struct {
	Tool string `json:"tool"`
}

type UpdateName struct {
	FullName string `json:"full_name"`
}

type ChangeEmail struct {
	Email string `json:"email"`
}

type ChangeUsername struct {
	Username string `json:"username"`
}

type ChangePassword struct {
	Current string `json:"current"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

func (GetStarted) Name() string { return "get_started" }
func (LearnMore) Name() string { return "learn_more" }
func (BackToLanding) Name() string { return "back_to_landing" }
func (SwitchAuthMode) Name() string { return "switch_auth_mode" }
func (Login) Name() string { return "login" }
func (SignUp) Name() string { return "sign_up" }
func (ForgotPassword) Name() string { return "forgot_password" }
func (ResetEmail) Name() string { return "reset_email" }
func (ResetPassword) Name() string { return "reset_password" }
func (Back) Name() string { return "back" }
func (VerifyCode) Name() string { return "verify_code" }
func (ResendCode) Name() string { return "resend_code" }
func (ChooseUsername) Name() string { return "choose_username" }
func (AcceptDisclaimer) Name() string { return "accept_disclaimer" }
func (AnswerQuestion) Name() string { return "answer_question" }
func (NextQuestion) Name() string { return "next_question" }
func (PreviousQuestion) Name() string { return "previous_question" }
func (RequestSubmit) Name() string { return "request_submit" }
func (CancelSubmit) Name() string { return "cancel_submit" }
func (ConfirmSubmit) Name() string { return "confirm_submit" }
func (Continue) Name() string { return "continue" }
func (DismissNotice) Name() string { return "dismiss_notice" }
func (OpenTool) Name() string { return "open_tool" }
func (ViewDashboard) Name() string { return "view_dashboard" }
func (ViewProfile) Name() string { return "view_profile" }
func (Home) Name() string { return "home" }
func (Logout) Name() string { return "logout" }
func (UpdateName) Name() string { return "update_name" }
func (ChangeEmail) Name() string { return "change_email" }
func (ChangeUsername) Name() string { return "change_username" }
func (ChangePassword) Name() string { return "change_password" }

var eventTypes = map[string]func() Event{}

func register(fns ...func() Event) {
	for _, fn := range fns {
		eventTypes[fn().Name()] = fn
	}
}

func init() {
	register(
		func() Event { return &GetStarted{} },
		func() Event { return &LearnMore{} },
		func() Event { return &BackToLanding{} },
		func() Event { return &SwitchAuthMode{} },
		func() Event { return &Login{} },
		func() Event { return &SignUp{} },
		func() Event { return &ForgotPassword{} },
		func() Event { return &ResetEmail{} },
		func() Event { return &ResetPassword{} },
		func() Event { return &Back{} },
		func() Event { return &VerifyCode{} },
		func() Event { return &ResendCode{} },
		func() Event { return &ChooseUsername{} },
		func() Event { return &AcceptDisclaimer{} },
		func() Event { return &AnswerQuestion{} },
		func() Event { return &NextQuestion{} },
		func() Event { return &PreviousQuestion{} },
		func() Event { return &RequestSubmit{} },
		func() Event { return &CancelSubmit{} },
		func() Event { return &ConfirmSubmit{} },
		func() Event { return &Continue{} },
		func() Event { return &DismissNotice{} },
		func() Event { return &OpenTool{} },
		func() Event { return &ViewDashboard{} },
		func() Event { return &ViewProfile{} },
		func() Event { return &Home{} },
		func() Event { return &Logout{} },
		func() Event { return &UpdateName{} },
		func() Event { return &ChangeEmail{} },
		func() Event { return &ChangeUsername{} },
		func() Event { return &ChangePassword{} },
	)
}

// DecodeEvent reads an event from a JSON object whose "type" field names it,
// for example {"type": "login", "email": "...", "password": "..."}.
func DecodeEvent(data []byte) (Event, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}

	newEvent, ok := eventTypes[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, envelope.Type)
	}

	ev := newEvent()
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decoding %s event: %w", envelope.Type, err)
	}
	return deref(ev), nil
}

// deref turns the pointer used for decoding back into the value type the
// controller switches on.
func deref(ev Event) Event {
	return reflect.ValueOf(ev).Elem().Interface().(Event)
}

// signUpRequest converts the event into the service request.
func (e SignUp) signUpRequest() model.SignUpRequest {
	return model.SignUpRequest{
		Email:           e.Email,
		Password:        e.Password,
		ConfirmPassword: e.ConfirmPassword,
		Name:            e.FullName,
	}
}
