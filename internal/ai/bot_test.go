package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizePriority checks classifier output normalization.
func TestNormalizePriority(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"low", PriorityLow},
		{"LOW", PriorityLow},
		{" Medium ", PriorityMedium},
		{"high", PriorityHigh},
		{"High", PriorityHigh},
		{"urgent", PriorityMedium},
		{"", PriorityMedium},
		{"critical!!", PriorityMedium},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePriority(tc.in), "input %q", tc.in)
	}
}

// TestClassifierFallsBackWithoutEndpoint checks the unconfigured classifier
// always answers Medium.
func TestClassifierFallsBackWithoutEndpoint(t *testing.T) {
	c := &Classifier{}
	assert.Equal(t, PriorityMedium, c.ClassifyPriority("Burst pipe", "Water everywhere", "water"))
}

// TestAnalyzeMessageIntents checks keyword intent detection.
func TestAnalyzeMessageIntents(t *testing.T) {
	cases := []struct {
		message string
		intent  string
	}{
		{"I want to file a complaint about a pothole", "file_complaint"},
		{"what is the status of my complaint", "check_status"},
		{"what services are available", "get_services"},
		{"hello there", "greeting"},
		{"thanks, goodbye", "goodbye"},
		{"xyzzy", "fallback"},
	}

	for _, tc := range cases {
		resp := AnalyzeMessage(tc.message, DefaultFallbackMessage)
		assert.Equal(t, tc.intent, resp.Intent, "message %q", tc.message)
	}
}

// TestAnalyzeMessageFallback checks the fallback reply and zero confidence.
func TestAnalyzeMessageFallback(t *testing.T) {
	resp := AnalyzeMessage("qwertyuiop", "custom fallback")
	assert.Equal(t, "fallback", resp.Intent)
	assert.Equal(t, "custom fallback", resp.Message)
	assert.Zero(t, resp.Confidence)
	assert.Empty(t, resp.SuggestedActions)
}

// TestAnalyzeMessageExtractsComplaintID checks entity extraction.
func TestAnalyzeMessageExtractsComplaintID(t *testing.T) {
	resp := AnalyzeMessage("check status of CC-1a2b3c4d please", DefaultFallbackMessage)
	assert.Equal(t, []Entity{{Entity: "complaint_id", Value: "CC-1A2B3C4D"}}, resp.Entities)
}

// TestAnalyzeMessageConfidenceCap checks the boosted confidence never exceeds 1.
func TestAnalyzeMessageConfidenceCap(t *testing.T) {
	resp := AnalyzeMessage("complaint report issue problem file", DefaultFallbackMessage)
	assert.Equal(t, "file_complaint", resp.Intent)
	assert.LessOrEqual(t, resp.Confidence, 1.0)
	assert.Greater(t, resp.Confidence, 0.0)
}

// TestSuggestCategory checks keyword-driven suggestions.
func TestSuggestCategory(t *testing.T) {
	resp := SuggestCategory("There is a huge pothole near my house")
	assert.Contains(t, resp.Suggestions, "Pothole on main road")
	assert.Len(t, resp.Suggestions, 3)
	assert.Equal(t, 0.85, resp.Confidence)

	resp = SuggestCategory("water leaking from a pipe")
	assert.Contains(t, resp.Suggestions, "Pipe burst")

	resp = SuggestCategory("something unclassifiable")
	assert.Contains(t, resp.Suggestions, "General infrastructure issue")
}
