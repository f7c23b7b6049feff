// Package coach defines the response-generation capability the session layer
// depends on. The session façade only sees the Generator interface; swapping
// the keyword lookup for a real model is a wiring change in main.
package coach

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces a coaching response and a token-count metric for a user
// message. Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, message string, msgContext map[string]any) (response string, tokensUsed int, err error)
	// Ready reports whether the generator can currently serve requests; the
	// health endpoint surfaces it.
	Ready() bool
}

// keyword-matched canned responses, checked in a fixed order so repeated
// queries get stable answers
var keywordResponses = []struct {
	keyword  string
	response string
}{
	{"workout", "Here's a personalized workout plan: Start with 10 minutes of dynamic warm-up, then perform 3 sets of: squats (12 reps), push-ups (10 reps), lunges (10 per leg), and plank (30 seconds). Cool down with 5 minutes of stretching."},
	{"nutrition", "For optimal nutrition, aim for: 1.6-2.2g protein per kg body weight, complex carbohydrates from whole grains, healthy fats from nuts/avocado, and 5-9 servings of fruits/vegetables daily. Stay hydrated with 2-3L water."},
	{"motivation", "Remember, progress isn't always linear! Every workout, healthy meal, and positive choice builds momentum. Consistency beats perfection - you're building stronger habits with each session. Celebrate small wins!"},
	{"recovery", "Recovery is crucial for progress! Aim for 7-9 hours of quality sleep, include rest days, try active recovery like walking or gentle yoga, and listen to your body's signals."},
	{"cardio", "For effective cardio: Mix steady-state (20-30 min moderate intensity) with HIIT (15-20 min with intervals). Start with 3x/week and gradually increase. Find activities you enjoy - dancing, swimming, hiking!"},
}

// KeywordGenerator answers by keyword lookup over a canned response table.
// It stands in for a hosted model during development and in tests.
type KeywordGenerator struct{}

// NewKeywordGenerator creates the mock generator.
func NewKeywordGenerator() *KeywordGenerator {
	return &KeywordGenerator{}
}

// Generate returns the first canned response whose keyword occurs in the
// message, or a generic personalized reply. The token count is the word count
// of the response.
func (g *KeywordGenerator) Generate(_ context.Context, message string, _ map[string]any) (string, int, error) {
	lower := strings.ToLower(message)
	for _, entry := range keywordResponses {
		if strings.Contains(lower, entry.keyword) {
			return entry.response, len(strings.Fields(entry.response)), nil
		}
	}

	response := fmt.Sprintf("As your AI fitness coach, I understand you're asking about: %s. Let me help you achieve your fitness goals with personalized advice! What specific aspect would you like me to focus on - workout routines, nutrition, motivation, or recovery strategies?", message)
	return response, len(strings.Fields(response)), nil
}

// Ready always holds for the canned generator.
func (g *KeywordGenerator) Ready() bool {
	return true
}
