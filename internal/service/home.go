package service

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/neurotracker/neurotracker-go/internal/model"
)

const (
	ToolMeetingNavigator = "meeting-navigator"
	ToolAttentionTracker = "attention-tracker"
	ToolMeetingSummaries = "meeting-summaries"
	ToolCalendar         = "calendar"
	ToolProgressTracker  = "progress-tracker"
	ToolAIModels         = "ai-models"
)

var tools = []model.Tool{
	{ID: ToolMeetingNavigator, Title: "Meeting Navigator", Description: "Navigate and manage your meetings", Available: true},
	{ID: ToolAttentionTracker, Title: "Attention Tracker", Description: "Track your focus and attention patterns", Available: true},
	{ID: ToolMeetingSummaries, Title: "Meeting Summaries", Description: "Get AI-powered meeting summaries"},
	{ID: ToolCalendar, Title: "Calendar", Description: "Manage your schedule effectively", Available: true},
	{ID: ToolProgressTracker, Title: "Progress Tracker", Description: "Monitor your progress over time"},
	{ID: ToolAIModels, Title: "AI Models", Description: "Check system compatibility and AI models", Available: true},
}

// Tools lists the user home cards in display order.
func Tools() []model.Tool {
	return append([]model.Tool(nil), tools...)
}

// LookupTool returns the tool with id, failing for unknown or unavailable tools.
func LookupTool(id string) (model.Tool, error) {
	for _, t := range tools {
		if t.ID == id {
			if !t.Available {
				return t, ErrToolUnavailable
			}
			return t, nil
		}
	}
	return model.Tool{}, ErrToolUnavailable
}

// Initials takes the first letter of up to two words, upper-cased.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return b.String()
}

// FormatCompletionDate renders a completion date like "March 14, 2026", or
// "Unknown" for the zero time.
func FormatCompletionDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("January 2, 2006")
}
