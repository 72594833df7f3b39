package navigation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/neurotracker/neurotracker-go/internal/assessment"
	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/neurotracker/neurotracker-go/internal/service"
	"go.uber.org/zap"
)

// ErrInvalidTransition is returned for an event the current screen does not
// accept. The state is left unchanged.
var ErrInvalidTransition = errors.New("event not allowed on this screen")

type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	SignUp(ctx context.Context, req model.SignUpRequest) (model.LoginResult, error)
	BeginReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, email, password, confirm string) error
}

type Onboarder interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	ChooseUsername(ctx context.Context, email, raw string) (string, error)
}

type CompletionRecorder interface {
	Completion(ctx context.Context, email string) (model.Completion, bool, error)
	Record(ctx context.Context, email string, score int) (model.Completion, error)
}

type Profiler interface {
	UpdateFullName(ctx context.Context, email, fullName string) (string, error)
	ChangeEmail(ctx context.Context, oldEmail, newEmail string) error
	ChangeUsername(ctx context.Context, email, raw string) (string, error)
	ChangePassword(ctx context.Context, email string, req model.PasswordChange) error
}

// Deps are the services a Controller calls into.
type Deps struct {
	Auth       Authenticator
	Onboarding Onboarder
	Survey     CompletionRecorder
	Profile    Profiler
	Bank       *assessment.Bank
	Log        *zap.Logger
}

// Controller is one user's trip through the screens. It is safe for
// concurrent use; events are applied one at a time.
type Controller struct {
	mu         sync.Mutex
	deps       Deps
	state      State
	notices    []Notice
	identity   Identity
	lastActive time.Time
	now        func() time.Time
}

func NewController(deps Deps) *Controller {
	if deps.Bank == nil {
		deps.Bank = assessment.DefaultBank()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	c := &Controller{deps: deps, now: time.Now}
	c.reset()
	c.lastActive = c.now()
	return c
}

func (c *Controller) reset() {
	c.state = plainState{ScreenLanding}
	c.notices = nil
	c.identity = Identity{}
}

// Dispatch applies ev and returns the resulting view. On error the screen is
// unchanged; the one exception is ErrAlreadyCompleted, which also queues the
// blocking notice that leads to the user home.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastActive = c.now()
	err := c.apply(ctx, ev)
	if err != nil && !errors.Is(err, ErrInvalidTransition) && !isValidation(err) {
		c.deps.Log.Error("event failed",
			zap.String("event", ev.Name()),
			zap.String("screen", string(c.state.Screen())),
			zap.Error(err),
		)
	}
	return c.view(), err
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

func (c *Controller) Identity() Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Screen()
}

func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func isValidation(err error) bool {
	return service.IsValidation(err) ||
		errors.Is(err, assessment.ErrAnswerOutOfRange) ||
		errors.Is(err, assessment.ErrSurveyIncomplete)
}

func invalid(ev Event, s Screen) error {
	return fmt.Errorf("%w: %s on %s", ErrInvalidTransition, ev.Name(), s)
}

func (c *Controller) blockingNotice() (Notice, bool) {
	for _, n := range c.notices {
		if n.Blocking {
			return n, true
		}
	}
	return Notice{}, false
}

func (c *Controller) dropNotice(kind NoticeKind) {
	kept := c.notices[:0]
	for _, n := range c.notices {
		if n.Kind != kind {
			kept = append(kept, n)
		}
	}
	c.notices = kept
}

// moveTo switches screens and clears informational notices.
func (c *Controller) moveTo(s State) {
	c.state = s
	kept := c.notices[:0]
	for _, n := range c.notices {
		if n.Blocking {
			kept = append(kept, n)
		}
	}
	c.notices = kept
}

func (c *Controller) apply(ctx context.Context, ev Event) error {
	screen := c.state.Screen()

	if n, ok := c.blockingNotice(); ok {
		return c.resolveNotice(ctx, n, ev)
	}
	if _, ok := ev.(DismissNotice); ok {
		if len(c.notices) == 0 {
			return invalid(ev, screen)
		}
		c.notices = nil
		return nil
	}

	switch st := c.state.(type) {
	case plainState:
		switch st.screen {
		case ScreenLanding:
			return c.onLanding(ev)
		case ScreenLearnMore:
			return c.onLearnMore(ev)
		case ScreenUsername:
			return c.onUsername(ctx, ev)
		case ScreenDisclaimer:
			return c.onDisclaimer(ctx, ev)
		}
		if screen.Authenticated() {
			return c.onAuthenticated(ctx, ev)
		}
	case authState:
		return c.onAuth(ctx, st, ev)
	case resetState:
		return c.onReset(ctx, st, ev)
	case otpState:
		return c.onOTP(ctx, st, ev)
	case surveyState:
		return c.onSurvey(ev, st)
	case resultsState:
		if _, ok := ev.(Continue); ok {
			c.moveTo(plainState{ScreenUserHome})
			return nil
		}
	case toolState:
		return c.onAuthenticated(ctx, ev)
	}
	return invalid(ev, screen)
}

// resolveNotice handles the only events a blocking notice accepts.
func (c *Controller) resolveNotice(ctx context.Context, n Notice, ev Event) error {
	switch n.Kind {
	case NoticeAlreadyCompleted:
		if _, ok := ev.(DismissNotice); ok {
			c.notices = nil
			c.state = plainState{ScreenUserHome}
			return nil
		}
	case NoticeConfirmSubmit:
		switch ev.(type) {
		case CancelSubmit:
			c.dropNotice(NoticeConfirmSubmit)
			return nil
		case ConfirmSubmit:
			return c.submit(ctx)
		}
	}
	return invalid(ev, c.state.Screen())
}

func (c *Controller) onLanding(ev Event) error {
	switch ev.(type) {
	case GetStarted:
		c.moveTo(authState{ModeLogin})
	case LearnMore:
		c.moveTo(plainState{ScreenLearnMore})
	default:
		return invalid(ev, ScreenLanding)
	}
	return nil
}

func (c *Controller) onLearnMore(ev Event) error {
	switch ev.(type) {
	case GetStarted:
		c.moveTo(authState{ModeLogin})
	case BackToLanding:
		c.moveTo(plainState{ScreenLanding})
	default:
		return invalid(ev, ScreenLearnMore)
	}
	return nil
}

func (c *Controller) onAuth(ctx context.Context, st authState, ev Event) error {
	switch e := ev.(type) {
	case SwitchAuthMode:
		if e.Mode != ModeLogin && e.Mode != ModeSignUp {
			return fmt.Errorf("%w: unknown auth mode %q", ErrInvalidTransition, e.Mode)
		}
		c.moveTo(authState{e.Mode})
		return nil

	case Login:
		if st.mode != ModeLogin {
			return invalid(ev, ScreenAuth)
		}
		res, err := c.deps.Auth.Login(ctx, e.Email, e.Password)
		if err != nil {
			return err
		}
		c.identity = Identity{Email: res.Email, DisplayName: res.DisplayName, Completion: res.Completion}
		if res.Completion != nil {
			c.notices = append(c.notices, alreadyCompletedNotice(*res.Completion))
			return nil
		}
		c.moveTo(plainState{ScreenDisclaimer})
		return nil

	case SignUp:
		if st.mode != ModeSignUp {
			return invalid(ev, ScreenAuth)
		}
		res, err := c.deps.Auth.SignUp(ctx, e.signUpRequest())
		if err != nil {
			return err
		}
		if err := c.deps.Onboarding.SendCode(ctx, res.Email); err != nil {
			return err
		}
		c.identity = Identity{Email: res.Email, DisplayName: res.DisplayName}
		c.moveTo(otpState{res.Email})
		c.notices = append(c.notices, codeSentNotice(res.Email))
		return nil

	case ForgotPassword:
		c.moveTo(resetState{})
		return nil

	case BackToLanding:
		c.moveTo(plainState{ScreenLanding})
		return nil
	}
	return invalid(ev, ScreenAuth)
}

func (c *Controller) onReset(ctx context.Context, st resetState, ev Event) error {
	switch e := ev.(type) {
	case ResetEmail:
		if st.email != "" {
			return invalid(ev, ScreenForgotPassword)
		}
		if err := c.deps.Auth.BeginReset(ctx, e.Email); err != nil {
			return err
		}
		c.moveTo(resetState{email: e.Email})
		return nil

	case ResetPassword:
		if st.email == "" {
			return invalid(ev, ScreenForgotPassword)
		}
		if err := c.deps.Auth.CompleteReset(ctx, st.email, e.Password, e.Confirm); err != nil {
			return err
		}
		c.moveTo(authState{ModeLogin})
		return nil

	case Back:
		c.moveTo(authState{ModeLogin})
		return nil
	}
	return invalid(ev, ScreenForgotPassword)
}

func (c *Controller) onOTP(ctx context.Context, st otpState, ev Event) error {
	switch e := ev.(type) {
	case VerifyCode:
		if err := c.deps.Onboarding.VerifyCode(ctx, st.email, e.Code); err != nil {
			return err
		}
		c.moveTo(plainState{ScreenUsername})
		return nil

	case ResendCode:
		if err := c.deps.Onboarding.SendCode(ctx, st.email); err != nil {
			return err
		}
		c.dropNotice(NoticeCodeSent)
		c.notices = append(c.notices, codeSentNotice(st.email))
		return nil

	case Back:
		c.identity = Identity{}
		c.moveTo(authState{ModeLogin})
		return nil
	}
	return invalid(ev, ScreenOTP)
}

func (c *Controller) onUsername(ctx context.Context, ev Event) error {
	e, ok := ev.(ChooseUsername)
	if !ok {
		return invalid(ev, ScreenUsername)
	}
	name, err := c.deps.Onboarding.ChooseUsername(ctx, c.identity.Email, e.Username)
	if err != nil {
		return err
	}
	c.identity.DisplayName = name
	c.moveTo(plainState{ScreenDisclaimer})
	return nil
}

// existingCompletion looks the identity up in the completion store so a
// finished assessment can never be entered again.
func (c *Controller) existingCompletion(ctx context.Context) (model.Completion, bool, error) {
	if c.identity.Completion != nil {
		return *c.identity.Completion, true, nil
	}
	return c.deps.Survey.Completion(ctx, c.identity.Email)
}

func (c *Controller) onDisclaimer(ctx context.Context, ev Event) error {
	e, ok := ev.(AcceptDisclaimer)
	if !ok {
		return invalid(ev, ScreenDisclaimer)
	}
	if err := service.AcceptDisclaimer(e.Accepted); err != nil {
		return err
	}

	done, found, err := c.existingCompletion(ctx)
	if err != nil {
		return err
	}
	if found {
		c.identity.Completion = &done
		c.notices = append(c.notices, alreadyCompletedNotice(done))
		return service.ErrAlreadyCompleted
	}

	c.moveTo(surveyState{assessment.NewSurvey()})
	return nil
}

func (c *Controller) onSurvey(ev Event, st surveyState) error {
	switch e := ev.(type) {
	case AnswerQuestion:
		return st.survey.Answer(e.Value)
	case NextQuestion:
		st.survey.Next()
		return nil
	case PreviousQuestion:
		st.survey.Previous()
		return nil
	case RequestSubmit:
		if !st.survey.CanSubmit() {
			return assessment.ErrSurveyIncomplete
		}
		c.notices = append(c.notices, confirmSubmitNotice())
		return nil
	}
	return invalid(ev, ScreenSurvey)
}

// submit finalizes the survey after confirmation. Every answer is checked
// again and the completion store is consulted before anything is written.
func (c *Controller) submit(ctx context.Context) error {
	st, ok := c.state.(surveyState)
	if !ok {
		return invalid(ConfirmSubmit{}, c.state.Screen())
	}
	score, err := st.survey.Score()
	if err != nil {
		c.dropNotice(NoticeConfirmSubmit)
		return err
	}

	done, err := c.deps.Survey.Record(ctx, c.identity.Email, score)
	if errors.Is(err, service.ErrAlreadyCompleted) {
		c.identity.Completion = &done
		c.dropNotice(NoticeConfirmSubmit)
		c.notices = append(c.notices, alreadyCompletedNotice(done))
		return err
	}
	if err != nil {
		return err
	}

	c.identity.Completion = &done
	c.notices = nil
	c.state = resultsState{score: score}
	return nil
}

func (c *Controller) onAuthenticated(ctx context.Context, ev Event) error {
	screen := c.state.Screen()

	switch e := ev.(type) {
	case Home:
		c.moveTo(plainState{ScreenUserHome})
	case ViewDashboard:
		c.moveTo(plainState{ScreenDashboard})
	case ViewProfile:
		c.moveTo(plainState{ScreenProfile})
	case Logout:
		c.deps.Log.Info("user logged out", zap.String("email", c.identity.Email))
		c.reset()
	case OpenTool:
		if screen != ScreenUserHome {
			return invalid(ev, screen)
		}
		if _, err := service.LookupTool(e.Tool); err != nil {
			return err
		}
		if _, ok := toolScreens[e.Tool]; !ok {
			return service.ErrToolUnavailable
		}
		c.moveTo(toolState{e.Tool})
	case UpdateName, ChangeEmail, ChangeUsername, ChangePassword:
		if screen != ScreenProfile {
			return invalid(ev, screen)
		}
		return c.onProfile(ctx, ev)
	default:
		return invalid(ev, screen)
	}
	return nil
}

func (c *Controller) onProfile(ctx context.Context, ev Event) error {
	email := c.identity.Email

	switch e := ev.(type) {
	case UpdateName:
		_, err := c.deps.Profile.UpdateFullName(ctx, email, e.FullName)
		return err
	case ChangeEmail:
		if err := c.deps.Profile.ChangeEmail(ctx, email, e.Email); err != nil {
			return err
		}
		c.identity.Email = e.Email
		return nil
	case ChangeUsername:
		name, err := c.deps.Profile.ChangeUsername(ctx, email, e.Username)
		if err != nil {
			return err
		}
		c.identity.DisplayName = name
		return nil
	case ChangePassword:
		return c.deps.Profile.ChangePassword(ctx, email, model.PasswordChange{
			Current: e.Current,
			New:     e.New,
			Confirm: e.Confirm,
		})
	}
	return invalid(ev, ScreenProfile)
}
