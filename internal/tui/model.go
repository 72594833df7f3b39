package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neurotracker/neurotracker-go/internal/navigation"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	chosenStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// toneColors follows the band tones.
var toneColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("42"),
	"blue":   lipgloss.Color("39"),
	"orange": lipgloss.Color("208"),
	"red":    lipgloss.Color("196"),
}

type dispatchedMsg struct {
	view navigation.View
	err  error
}

// Model is the bubbletea model wrapping one controller.
type Model struct {
	ctx   context.Context
	ctrl  *navigation.Controller
	input textinput.Model
	view  navigation.View
	err   error
	busy  bool
	help  bool
}

func New(ctx context.Context, ctrl *navigation.Controller) Model {
	in := textinput.New()
	in.Placeholder = "type a command, or help"
	in.Prompt = "> "
	in.CharLimit = 256
	in.Focus()

	return Model{ctx: ctx, ctrl: ctrl, input: in, view: ctrl.View()}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// dispatch runs the event off the UI loop; auth steps may sleep.
func (m Model) dispatch(ev navigation.Event) tea.Cmd {
	return func() tea.Msg {
		v, err := m.ctrl.Dispatch(m.ctx, ev)
		return dispatchedMsg{view: v, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.help = false

			switch line {
			case "quit", "exit":
				return m, tea.Quit
			case "help":
				m.help = true
				m.err = nil
				return m, nil
			}

			ev, err := ParseCommand(line)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.busy = true
			return m, m.dispatch(ev)
		}

	case dispatchedMsg:
		m.busy = false
		m.view = msg.view
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("NeuroTracker · " + string(m.view.Screen)))
	if m.view.DisplayName != "" {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  [%s] %s", m.view.Initials, m.view.DisplayName)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(renderScreen(m.view))

	for _, n := range m.view.Notices {
		sb.WriteString("\n")
		sb.WriteString(noticeStyle.Render(renderNotice(n)))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	sb.WriteString("\n")
	if m.busy {
		sb.WriteString(labelStyle.Render("working...") + "\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	hints := hintsFor(m.view)
	if m.help {
		sb.WriteString("\n" + strings.Join(hints, "\n") + "\nquit\n")
	} else if len(hints) > 0 {
		sb.WriteString(labelStyle.Render("try: "+strings.Join(hints, " · ")) + "\n")
	}
	return sb.String()
}

func renderNotice(n navigation.Notice) string {
	switch n.Kind {
	case navigation.NoticeAlreadyCompleted:
		score := 0
		if n.Score != nil {
			score = *n.Score
		}
		return fmt.Sprintf("Assessment already completed on %s (score %d).\n%s", n.Date, score, n.Message)
	case navigation.NoticeConfirmSubmit:
		return "Submit your answers?\n" + n.Message
	}
	return n.Message
}

func renderScreen(v navigation.View) string {
	var sb strings.Builder

	switch v.Screen {
	case navigation.ScreenLanding:
		sb.WriteString("A short self-assessment for adult ADHD symptoms.\n")
	case navigation.ScreenLearnMore:
		sb.WriteString("Six questions, each answered from Never to Very Often.\nThe screener is not a diagnosis.\n")
	case navigation.ScreenAuth:
		fmt.Fprintf(&sb, "Mode: %s\n", v.AuthMode)
	case navigation.ScreenForgotPassword:
		if v.ResetEmail == "" {
			sb.WriteString("Enter the email of your account.\n")
		} else {
			fmt.Fprintf(&sb, "Choose a new password for %s.\n", v.ResetEmail)
		}
	case navigation.ScreenOTP:
		fmt.Fprintf(&sb, "Enter the 6-digit code sent to %s.\n", v.MaskedEmail)
	case navigation.ScreenUsername:
		sb.WriteString("Pick a username: 3 to 20 letters, digits or underscores.\n")
	case navigation.ScreenDisclaimer:
		sb.WriteString("This screener is for information only and is not a medical diagnosis.\n")
	case navigation.ScreenSurvey:
		sb.WriteString(renderSurvey(v.Survey))
	case navigation.ScreenResults, navigation.ScreenDashboard:
		sb.WriteString(renderResult(v.Result))
	case navigation.ScreenUserHome:
		for _, t := range v.Tools {
			status := ""
			if !t.Available {
				status = labelStyle.Render(" (coming soon)")
			}
			fmt.Fprintf(&sb, "%-18s %s%s\n", t.ID, t.Description, status)
		}
	case navigation.ScreenProfile:
		fmt.Fprintf(&sb, "Email: %s\n", v.Email)
	default:
		if v.Tool != "" {
			fmt.Fprintf(&sb, "%s is available over the HTTP API.\n", v.Tool)
		}
	}
	return sb.String()
}

func renderSurvey(s *navigation.SurveyView) string {
	if s == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question %d of %d  (%d answered)\n\n", s.Index+1, s.Total, s.Answered)
	sb.WriteString(s.Question + "\n\n")
	for _, o := range s.Options {
		line := fmt.Sprintf("  %d  %s", o.Value, o.Label)
		if s.Selected != nil && *s.Selected == o.Value {
			line = chosenStyle.Render("> " + line[2:])
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func renderResult(r *navigation.ResultView) string {
	if r == nil {
		return "No result yet.\n"
	}
	band := lipgloss.NewStyle().Bold(true).Foreground(toneColors[r.Band.Tone])

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score %d / %d  %s\n", r.Score, r.MaxScore, band.Render(r.Band.Name))
	fmt.Fprintf(&sb, "Completed %s\n\n", r.CompletedOn)
	sb.WriteString(lipgloss.NewStyle().Width(72).Render(r.Band.Message))
	sb.WriteString("\n")
	return sb.String()
}
