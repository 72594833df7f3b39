// Package tui drives a navigation controller from the terminal. Each line the
// user types is turned into one event.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/neurotracker/neurotracker-go/internal/navigation"
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	parse func(args []string) (navigation.Event, error)
}

func noArgs(ev navigation.Event) func([]string) (navigation.Event, error) {
	return func(args []string) (navigation.Event, error) {
		if len(args) != 0 {
			return nil, errUsage
		}
		return ev, nil
	}
}

var commands = map[string]command{
	"start":     {"start", noArgs(navigation.GetStarted{})},
	"learn":     {"learn", noArgs(navigation.LearnMore{})},
	"landing":   {"landing", noArgs(navigation.BackToLanding{})},
	"forgot":    {"forgot", noArgs(navigation.ForgotPassword{})},
	"back":      {"back", noArgs(navigation.Back{})},
	"resend":    {"resend", noArgs(navigation.ResendCode{})},
	"next":      {"next", noArgs(navigation.NextQuestion{})},
	"prev":      {"prev", noArgs(navigation.PreviousQuestion{})},
	"submit":    {"submit", noArgs(navigation.RequestSubmit{})},
	"cancel":    {"cancel", noArgs(navigation.CancelSubmit{})},
	"confirm":   {"confirm", noArgs(navigation.ConfirmSubmit{})},
	"continue":  {"continue", noArgs(navigation.Continue{})},
	"dismiss":   {"dismiss", noArgs(navigation.DismissNotice{})},
	"dashboard": {"dashboard", noArgs(navigation.ViewDashboard{})},
	"profile":   {"profile", noArgs(navigation.ViewProfile{})},
	"home":      {"home", noArgs(navigation.Home{})},
	"logout":    {"logout", noArgs(navigation.Logout{})},
	"accept":    {"accept", noArgs(navigation.AcceptDisclaimer{Accepted: true})},
	"decline":   {"decline", noArgs(navigation.AcceptDisclaimer{Accepted: false})},

	"mode": {"mode login|signup", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.SwitchAuthMode{Mode: navigation.AuthMode(args[0])}, nil
	}},
	"login": {"login EMAIL PASSWORD", func(args []string) (navigation.Event, error) {
		if len(args) != 2 {
			return nil, errUsage
		}
		return navigation.Login{Email: args[0], Password: args[1]}, nil
	}},
	"signup": {"signup EMAIL PASSWORD CONFIRM [NAME]", func(args []string) (navigation.Event, error) {
		if len(args) < 3 {
			return nil, errUsage
		}
		return navigation.SignUp{
			Email:           args[0],
			Password:        args[1],
			ConfirmPassword: args[2],
			FullName:        strings.Join(args[3:], " "),
		}, nil
	}},
	"reset": {"reset EMAIL", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.ResetEmail{Email: args[0]}, nil
	}},
	"newpass": {"newpass PASSWORD CONFIRM", func(args []string) (navigation.Event, error) {
		if len(args) != 2 {
			return nil, errUsage
		}
		return navigation.ResetPassword{Password: args[0], Confirm: args[1]}, nil
	}},
	"code": {"code DIGITS", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.VerifyCode{Code: args[0]}, nil
	}},
	"username": {"username NAME", func(args []string) (navigation.Event, error) {
		if len(args) == 0 {
			return nil, errUsage
		}
		return navigation.ChooseUsername{Username: strings.Join(args, " ")}, nil
	}},
	"answer": {"answer 0-4", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, errUsage
		}
		return navigation.AnswerQuestion{Value: v}, nil
	}},
	"tool": {"tool ID", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.OpenTool{Tool: args[0]}, nil
	}},
	"name": {"name FULL NAME", func(args []string) (navigation.Event, error) {
		if len(args) == 0 {
			return nil, errUsage
		}
		return navigation.UpdateName{FullName: strings.Join(args, " ")}, nil
	}},
	"email": {"email NEW", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.ChangeEmail{Email: args[0]}, nil
	}},
	"handle": {"handle NEW", func(args []string) (navigation.Event, error) {
		if len(args) != 1 {
			return nil, errUsage
		}
		return navigation.ChangeUsername{Username: args[0]}, nil
	}},
	"password": {"password CURRENT NEW CONFIRM", func(args []string) (navigation.Event, error) {
		if len(args) != 3 {
			return nil, errUsage
		}
		return navigation.ChangePassword{Current: args[0], New: args[1], Confirm: args[2]}, nil
	}},
}

// ParseCommand turns one input line into an event. A line starting with "{"
// is read as a JSON event, as the HTTP API accepts it.
func ParseCommand(line string) (navigation.Event, error) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "{") {
		return navigation.DecodeEvent([]byte(line))
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("type a command, or help")
	}

	cmd, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, type help", fields[0])
	}
	ev, err := cmd.parse(fields[1:])
	if errors.Is(err, errUsage) {
		return nil, fmt.Errorf("usage: %s", cmd.usage)
	}
	return ev, err
}

// hints lists the commands that make sense on each screen.
var hints = map[navigation.Screen][]string{
	navigation.ScreenLanding:        {"start", "learn"},
	navigation.ScreenLearnMore:      {"start", "landing"},
	navigation.ScreenAuth:           {"mode login|signup", "login EMAIL PASSWORD", "signup EMAIL PASSWORD CONFIRM [NAME]", "forgot", "landing"},
	navigation.ScreenForgotPassword: {"reset EMAIL", "newpass PASSWORD CONFIRM", "back"},
	navigation.ScreenOTP:            {"code DIGITS", "resend", "back"},
	navigation.ScreenUsername:       {"username NAME"},
	navigation.ScreenDisclaimer:     {"accept", "decline"},
	navigation.ScreenSurvey:         {"answer 0-4", "next", "prev", "submit"},
	navigation.ScreenResults:        {"continue"},
	navigation.ScreenUserHome:       {"tool ID", "dashboard", "profile", "logout"},
	navigation.ScreenProfile:        {"name FULL NAME", "email NEW", "handle NEW", "password CURRENT NEW CONFIRM", "home"},
}

func hintsFor(v navigation.View) []string {
	for _, n := range v.Notices {
		if !n.Blocking {
			continue
		}
		if n.Kind == navigation.NoticeConfirmSubmit {
			return []string{"confirm", "cancel"}
		}
		return []string{"dismiss"}
	}
	if h, ok := hints[v.Screen]; ok {
		return h
	}
	if v.Screen.Authenticated() {
		return []string{"home", "dashboard", "profile", "logout"}
	}
	return nil
}
