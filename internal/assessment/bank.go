// Package assessment holds the six-question screener: its question bank, the
// answer-collecting survey state machine and the score bands.
package assessment

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	QuestionCount = 6
	MinAnswer     = 0
	MaxAnswer     = 4
	MaxScore      = QuestionCount * MaxAnswer
)

//go:embed questions.yaml
var questionsYAML []byte

type Question struct {
	ID   int    `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

type ScaleOption struct {
	Value int    `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Bank is the questionnaire content.
type Bank struct {
	Title        string        `yaml:"title" json:"title"`
	Instructions string        `yaml:"instructions" json:"instructions"`
	Scale        []ScaleOption `yaml:"scale" json:"scale"`
	Questions    []Question    `yaml:"questions" json:"questions"`
}

// ParseBank decodes and validates a question bank.
func ParseBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decoding question bank: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Bank) validate() error {
	if len(b.Questions) != QuestionCount {
		return fmt.Errorf("question bank has %d questions, want %d", len(b.Questions), QuestionCount)
	}
	if len(b.Scale) != MaxAnswer-MinAnswer+1 {
		return fmt.Errorf("question bank has %d scale options, want %d", len(b.Scale), MaxAnswer-MinAnswer+1)
	}
	for i, opt := range b.Scale {
		if opt.Value != MinAnswer+i {
			return fmt.Errorf("scale option %d has value %d, want %d", i, opt.Value, MinAnswer+i)
		}
		if opt.Label == "" {
			return fmt.Errorf("scale option %d has no label", i)
		}
	}
	for i, q := range b.Questions {
		if q.Text == "" {
			return fmt.Errorf("question %d has no text", i)
		}
	}
	return nil
}

// Label returns the scale label for value, or "" when out of range.
func (b *Bank) Label(value int) string {
	for _, opt := range b.Scale {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// DefaultBank returns the embedded screener. It panics if the embedded file
// is invalid, which is a build defect.
func DefaultBank() *Bank {
	defaultOnce.Do(func() {
		b, err := ParseBank(questionsYAML)
		if err != nil {
			panic(err)
		}
		defaultBank = b
	})
	return defaultBank
}
