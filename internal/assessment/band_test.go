package assessment

import (
	"testing"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{score: -3, want: "Low Negative"},
		{score: 0, want: "Low Negative"},
		{score: 9, want: "Low Negative"},
		{score: 10, want: "High Negative"},
		{score: 13, want: "High Negative"},
		{score: 14, want: "Low Positive Range"},
		{score: 17, want: "Low Positive Range"},
		{score: 18, want: "High Positive Range"},
		{score: 24, want: "High Positive Range"},
		{score: 31, want: "High Positive Range"},
	}

	for _, tt := range tests {
		if got := Interpret(tt.score).Name; got != tt.want {
			t.Errorf("Interpret(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBandsCoverEveryScore(t *testing.T) {
	all := Bands()
	if all[0].Min != 0 || all[len(all)-1].Max != MaxScore {
		t.Fatalf("bands span [%d, %d], want [0, %d]", all[0].Min, all[len(all)-1].Max, MaxScore)
	}
	for i := 1; i < len(all); i++ {
		if all[i].Min != all[i-1].Max+1 {
			t.Errorf("gap or overlap between %q and %q", all[i-1].Name, all[i].Name)
		}
	}
	for score := 0; score <= MaxScore; score++ {
		b := Interpret(score)
		if score < b.Min || score > b.Max {
			t.Errorf("Interpret(%d) = %q covering [%d, %d]", score, b.Name, b.Min, b.Max)
		}
		if b.Message == "" || b.Tone == "" || b.Icon == "" {
			t.Errorf("band %q is missing presentation data", b.Name)
		}
	}
}
