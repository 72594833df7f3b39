package model

import "time"

// AttentionSettings configures the head-pose attention tracker.
type AttentionSettings struct {
	Camera       string  `json:"camera"`
	PitchMin     float64 `json:"pitch_min"`
	PitchMax     float64 `json:"pitch_max"`
	Strictness   float64 `json:"strictness"`
	YawMin       float64 `json:"yaw_min"`
	YawMax       float64 `json:"yaw_max"`
	EyeThreshold float64 `json:"eye_threshold"`
}

// PoseSample is one reading from an external face tracker.
type PoseSample struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
	EAR   float64 `json:"ear"`
}

type AttentionStatus string

const (
	StatusFocused    AttentionStatus = "FOCUSED"
	StatusDistracted AttentionStatus = "DISTRACTED"
)

// MeetingSettings configures the meeting navigator.
type MeetingSettings struct {
	LiveTranscription  bool   `json:"live_transcription"`
	AIModel            string `json:"ai_model"`
	TranscriptModel    string `json:"transcript_model"`
	SummarizationLevel string `json:"summarization_level"`
	CalendarTracking   bool   `json:"calendar_tracking"`
}

type Priority string

const (
	PriorityGreen  Priority = "green"
	PriorityOrange Priority = "orange"
	PriorityRed    Priority = "red"
)

// PriorityFilter selects which priorities are shown. The zero value hides all.
type PriorityFilter struct {
	Green  bool `json:"green"`
	Orange bool `json:"orange"`
	Red    bool `json:"red"`
}

func (f PriorityFilter) Allows(p Priority) bool {
	switch p {
	case PriorityGreen:
		return f.Green
	case PriorityOrange:
		return f.Orange
	case PriorityRed:
		return f.Red
	}
	return false
}

// CalendarDay is a day of a month with its assigned priority, if any.
type CalendarDay struct {
	Date     time.Time `json:"date"`
	Priority Priority  `json:"priority,omitempty"`
}

type CalendarMonth struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type CalendarEvent struct {
	Date     time.Time `json:"date"`
	DayLabel string    `json:"day_label"`
	Title    string    `json:"title"`
	Time     string    `json:"time"`
	Priority Priority  `json:"priority"`
}

// SystemConfig describes the user's machine for the model estimator.
// Memory sizes are in gigabytes.
type SystemConfig struct {
	CPU     string `json:"cpu"`
	GPU     string `json:"gpu"`
	RAM     int    `json:"ram"`
	VRAM    int    `json:"vram"`
	Storage int    `json:"storage"`
}

// HardwareProbe is whatever an external detector managed to read. Zero
// fields were not detected.
type HardwareProbe struct {
	Cores          int    `json:"cores"`
	Renderer       string `json:"renderer"`
	DeviceMemoryGB int    `json:"device_memory_gb"`
	StorageQuotaGB int    `json:"storage_quota_gb"`
}

type AIModel struct {
	Name        string `json:"name"`
	Size        string `json:"size"`
	MinVRAM     int    `json:"min_vram"`
	MinRAM      int    `json:"min_ram"`
	Performance string `json:"performance"`
	Category    string `json:"category"`
}

type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Compatibility is the estimator's verdict for a SystemConfig.
type Compatibility struct {
	Config     SystemConfig `json:"config"`
	Score      int          `json:"score"`
	Rating     string       `json:"rating"`
	Compatible []AIModel    `json:"compatible"`
	Curve      []CurvePoint `json:"curve"`
	Position   CurvePoint   `json:"position"`
}

// Tool is a card on the user home screen.
type Tool struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}
