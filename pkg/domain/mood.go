package domain

import "strings"

// scoreMap projects each chat emotion onto the base -1..+1 mood scale.
var scoreMap = map[EmotionLabel]int{
	EmotionAnxiety:  -1,
	EmotionSadness:  -1,
	EmotionAnger:    -1,
	EmotionBurnout:  -1,
	EmotionPositive: 1,
	EmotionNeutral:  0,
}

// Score returns the base mood score for a label. Unknown labels score 0.
func Score(label EmotionLabel) int {
	return scoreMap[label]
}

// WeightedScore multiplies the base score by an intensity factor, clamped
// to 1..5, extending the scale to -5..+5.
func WeightedScore(label EmotionLabel, intensity int) int {
	if intensity < 1 {
		intensity = 1
	}
	if intensity > 5 {
		intensity = 5
	}
	return Score(label) * intensity
}

// SentimentScore projects a journal sentiment onto the base scale.
func SentimentScore(s Sentiment) int {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// SentimentEmotion maps a journal sentiment to the chat taxonomy so journal
// saves can append to the same mood history.
func SentimentEmotion(s Sentiment) EmotionLabel {
	switch s {
	case SentimentPositive:
		return EmotionPositive
	case SentimentNegative:
		return EmotionSadness
	default:
		return EmotionNeutral
	}
}

// NormalizeEmotion maps arbitrary classifier or stored output onto the
// closed chat taxonomy. It accepts noisy values like "Positive." or
// "the user feels anxiety" by substring match; anything unrecognized is
// Neutral.
func NormalizeEmotion(raw string) EmotionLabel {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return EmotionNeutral
	}
	for _, label := range ChatEmotions {
		if strings.Contains(lowered, strings.ToLower(string(label))) {
			return label
		}
	}
	return EmotionNeutral
}

// NormalizeSentiment is NormalizeEmotion for the journal taxonomy.
func NormalizeSentiment(raw string) Sentiment {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return SentimentNeutral
	}
	for _, s := range Sentiments {
		if strings.Contains(lowered, strings.ToLower(string(s))) {
			return s
		}
	}
	return SentimentNeutral
}

// AverageScore returns the mean mood score, 0 for an empty history.
func AverageScore(records []MoodRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Score
	}
	return float64(sum) / float64(len(records))
}

// MostCommonLabel returns the label occurring most often; ties break toward
// the label encountered first, so the result is deterministic for a given
// history order. Empty history yields Neutral.
func MostCommonLabel(records []MoodRecord) EmotionLabel {
	if len(records) == 0 {
		return EmotionNeutral
	}
	counts := make(map[EmotionLabel]int, len(records))
	order := make([]EmotionLabel, 0, 6)
	for _, r := range records {
		if counts[r.Label] == 0 {
			order = append(order, r.Label)
		}
		counts[r.Label]++
	}
	best := order[0]
	for _, label := range order[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// PositiveRatio returns the fraction of records with a positive score,
// 0 for an empty history.
func PositiveRatio(records []MoodRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	positive := 0
	for _, r := range records {
		if r.Score > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(records))
}
