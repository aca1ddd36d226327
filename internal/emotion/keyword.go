package emotion

import (
	"context"
	"strings"

	"mindwell/pkg/domain"
)

// emotionKeywords lists the trigger words per label. Checked in the fixed
// priority order of domain.ChatEmotions; first match wins.
var emotionKeywords = map[domain.EmotionLabel][]string{
	domain.EmotionAnxiety:  {"anxious", "anxiety", "nervous", "worried", "worry", "panic", "scared", "afraid", "overwhelmed"},
	domain.EmotionSadness:  {"sad", "down", "depressed", "lonely", "hopeless", "crying", "miserable", "empty"},
	domain.EmotionAnger:    {"angry", "furious", "mad", "frustrated", "irritated", "annoyed", "rage"},
	domain.EmotionBurnout:  {"burnout", "burned out", "burnt out", "exhausted", "drained", "can't keep up", "no energy"},
	domain.EmotionPositive: {"happy", "great", "good", "grateful", "excited", "calm", "proud", "hopeful", "better"},
}

// KeywordClassifier is the pure, deterministic strategy. It scans only the
// most recent user message in the window.
type KeywordClassifier struct{}

// Classify returns the first label whose keyword set matches, or Neutral.
// Intensity is always 1; keyword rules carry no intensity signal.
func (KeywordClassifier) Classify(_ context.Context, window []domain.Message) (domain.EmotionLabel, int) {
	return ClassifyText(latestUserText(window)), 1
}

// ClassifyText applies the keyword rules to a single piece of text.
func ClassifyText(text string) domain.EmotionLabel {
	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return domain.EmotionNeutral
	}
	for _, label := range domain.ChatEmotions {
		for _, keyword := range emotionKeywords[label] {
			if strings.Contains(lowered, keyword) {
				return label
			}
		}
	}
	return domain.EmotionNeutral
}

// sentimentKeywords backs the journal fallback when the model is unavailable.
var sentimentKeywords = map[domain.Sentiment][]string{
	domain.SentimentPositive: {"happy", "grateful", "good", "great", "calm", "proud", "hopeful", "joy"},
	domain.SentimentNegative: {"sad", "angry", "anxious", "tired", "awful", "terrible", "stressed", "worst", "hate"},
}

// SentimentOfText applies keyword rules against the journal taxonomy.
func SentimentOfText(text string) domain.Sentiment {
	lowered := strings.ToLower(text)
	for _, s := range domain.Sentiments {
		for _, keyword := range sentimentKeywords[s] {
			if strings.Contains(lowered, keyword) {
				return s
			}
		}
	}
	return domain.SentimentNeutral
}

func latestUserText(window []domain.Message) string {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role == domain.RoleUser {
			return window[i].Content
		}
	}
	return ""
}
