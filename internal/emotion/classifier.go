// Package emotion classifies conversation text onto the closed emotion
// taxonomy. Two interchangeable strategies exist: deterministic keyword
// rules and a delegated one-word model classification. Both degrade to
// Neutral rather than failing; classification never blocks a turn.
package emotion

import (
	"context"

	"mindwell/pkg/domain"
)

// Classifier maps a recent conversation window to one taxonomy label and an
// intensity in 1..5. Implementations must not fail: any internal error
// degrades to (Neutral, 1).
type Classifier interface {
	Classify(ctx context.Context, window []domain.Message) (domain.EmotionLabel, int)
}
