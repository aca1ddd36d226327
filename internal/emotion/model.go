package emotion

import (
	"context"
	"strconv"
	"strings"
	"time"

	"mindwell/pkg/ai"
	"mindwell/pkg/domain"
)

const classifySystemPrompt = "Based on the conversation, classify the user's overall emotional state " +
	"into one of these categories only: Anxiety, Sadness, Anger, Burnout, Positive, Neutral. " +
	"Respond with just one word. Optionally add a second line with an intensity from 1 to 5."

const sentimentSystemPrompt = "Classify the sentiment of this journal entry as exactly one word: " +
	"Positive, Negative, or Neutral."

// ModelClassifier delegates classification to a text generator, feeding it
// the recent user turns and fuzzy-normalizing the one-word response.
type ModelClassifier struct {
	generator ai.Generator
	userTurns int
	timeout   time.Duration
}

// NewModelClassifier builds the delegated strategy. userTurns bounds how
// many recent user messages are sent (default 6).
func NewModelClassifier(generator ai.Generator, userTurns int) *ModelClassifier {
	if userTurns <= 0 {
		userTurns = 6
	}
	return &ModelClassifier{
		generator: generator,
		userTurns: userTurns,
		timeout:   10 * time.Second,
	}
}

// Classify sends the recent user turns to the model at temperature 0 and
// normalizes the raw answer. Any failure, timeout, or unparseable answer
// yields (Neutral, 1).
func (c *ModelClassifier) Classify(ctx context.Context, window []domain.Message) (domain.EmotionLabel, int) {
	recent := recentUserText(window, c.userTurns)
	if recent == "" {
		return domain.EmotionNeutral, 1
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	raw, err := c.generator.Generate(ctx, ai.Request{
		System:      classifySystemPrompt,
		Messages:    []ai.ChatMessage{{Role: "user", Content: recent}},
		Temperature: 0,
		MaxTokens:   20,
	})
	if err != nil {
		return domain.EmotionNeutral, 1
	}
	return domain.NormalizeEmotion(raw), ParseIntensity(raw)
}

// SentimentOfEntry classifies a journal entry against the journal taxonomy,
// falling back to keyword rules when the model call fails.
func SentimentOfEntry(ctx context.Context, generator ai.Generator, text string) domain.Sentiment {
	if generator == nil {
		return SentimentOfText(text)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	raw, err := generator.Generate(ctx, ai.Request{
		System:      sentimentSystemPrompt,
		Messages:    []ai.ChatMessage{{Role: "user", Content: text}},
		Temperature: 0,
		MaxTokens:   10,
	})
	if err != nil {
		return SentimentOfText(text)
	}
	return domain.NormalizeSentiment(raw)
}

// ParseIntensity extracts an intensity 1..5 from a raw classifier response.
// The first standalone digit in range wins; absent or out-of-range input
// defaults to 1.
func ParseIntensity(raw string) int {
	for _, field := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ' ' || r == ':' || r == ',' || r == '(' || r == ')'
	}) {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			continue
		}
		if n >= 1 && n <= 5 {
			return n
		}
	}
	return 1
}

func recentUserText(window []domain.Message, userTurns int) string {
	var lines []string
	for i := len(window) - 1; i >= 0 && len(lines) < userTurns; i-- {
		if window[i].Role == domain.RoleUser {
			lines = append(lines, window[i].Content)
		}
	}
	// Collected newest-first; restore chronological order.
	var sb strings.Builder
	for i := len(lines) - 1; i >= 0; i-- {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
