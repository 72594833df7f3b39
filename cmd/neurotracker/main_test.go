package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/neurotracker/neurotracker-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	probe = model.HardwareProbe{}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInterpretCommand(t *testing.T) {
	tests := []struct {
		score string
		want  string
	}{
		{"-3", "Low Negative"},
		{"12", "High Negative"},
		{"14", "Low Positive Range"},
		{"24", "High Positive Range"},
	}
	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			out, err := execute(t, "interpret", "--", tt.score)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	_, err := execute(t, "interpret", "twelve")
	assert.Error(t, err)
}

func TestEstimateCommand(t *testing.T) {
	out, err := execute(t, "estimate", "--gpu", "NVIDIA GeForce RTX 4090", "--ram", "32", "--storage", "1000")
	require.NoError(t, err)

	var got model.Compatibility
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 24, got.Config.VRAM)
	assert.Equal(t, 32, got.Config.RAM)
	assert.Equal(t, 40+25+20+8, got.Score)
	assert.Equal(t, "Excellent", got.Rating)
}
