package assessment

// Band is the interpretation attached to a range of scores.
type Band struct {
	Name    string `json:"name"`
	Tone    string `json:"tone"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
}

var bands = []Band{
	{
		Name:    "Low Negative",
		Tone:    "green",
		Icon:    "check-circle",
		Min:     0,
		Max:     9,
		Message: "A score in this range indicates that you reported a very low frequency of ADHD-related symptoms. Based on this screener, your responses do not suggest the presence of ADHD.",
	},
	{
		Name:    "High Negative",
		Tone:    "blue",
		Icon:    "alert-circle",
		Min:     10,
		Max:     13,
		Message: "A score in this range is still considered \"negative\" for a positive screen. However, it indicates that you do experience some symptoms of inattention or hyperactivity/impulsivity. While this score does not meet the threshold for a positive screen, if these symptoms interfere with your daily life or work, you may still find it helpful to discuss them with a healthcare professional.",
	},
	{
		Name:    "Low Positive Range",
		Tone:    "orange",
		Icon:    "alert-triangle",
		Min:     14,
		Max:     17,
		Message: "This score is in the \"low positive\" range and meets the threshold for a positive screen. This result suggests that the symptoms you reported are consistent with an ADHD diagnosis in adults. It is not a diagnosis, but it is a strong indicator that further investigation by a qualified healthcare professional is warranted to determine if a formal diagnosis is appropriate and to discuss potential support.",
	},
	{
		Name:    "High Positive Range",
		Tone:    "red",
		Icon:    "x-circle",
		Min:     18,
		Max:     MaxScore,
		Message: "This score is in the \"high positive\" range, strongly suggesting the presence of symptoms that are highly consistent with adult ADHD. This result indicates a significant number or frequency of symptoms. It is strongly recommended that you share this result with a qualified healthcare professional for a comprehensive evaluation to confirm a potential diagnosis and discuss a plan for support.",
	},
}

// Interpret maps any integer to a band. Scores below zero read as the lowest
// band and scores above MaxScore as the highest.
func Interpret(score int) Band {
	switch {
	case score <= 9:
		return bands[0]
	case score <= 13:
		return bands[1]
	case score <= 17:
		return bands[2]
	default:
		return bands[3]
	}
}

// Bands lists every band in ascending order.
func Bands() []Band {
	return append([]Band(nil), bands...)
}
