package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mindwell/pkg/ai"
	"mindwell/pkg/domain"
	"mindwell/pkg/quotes"
)

const insightSystemPrompt = "You are a mental health assistant. Given a list of recent moods, " +
	"summarize the user's emotional trend in 2-3 supportive sentences."

const (
	insightEmpty       = "Not enough data yet."
	insightUnavailable = "Mood insight unavailable."
)

var fallbackAffirmations = []string{
	"You are doing better than you think.",
	"One small step today is still a step.",
	"Your feelings are valid, and they will pass.",
	"Rest is productive too.",
}

var fallbackPrompts = []string{
	"What is one thing that went well today, however small?",
	"Describe a moment this week when you felt calm.",
	"What is weighing on you right now, and what is one thing you can set down?",
	"Write a short note to yourself from a kinder point of view.",
}

// MoodSummary aggregates the mood history for the analytics endpoint.
type MoodSummary struct {
	Average       float64             `json:"average"`
	MostCommon    domain.EmotionLabel `json:"mostCommon"`
	PositiveRatio float64             `json:"positiveRatio"`
	Count         int                 `json:"count"`
	Insight       string              `json:"insight"`
}

// WellnessDigest bundles the daily content fetched for the digest endpoint.
type WellnessDigest struct {
	Insight     string       `json:"insight"`
	Affirmation string       `json:"affirmation"`
	Quote       quotes.Quote `json:"quote"`
}

// MoodInsight summarizes the recent mood history in natural language. An
// empty history or a failed model call degrades to a static message.
func (a *App) MoodInsight(ctx context.Context, profileID string) (string, error) {
	records, err := a.store.ListMoodRecords(profileID, 30)
	if err != nil {
		return "", fmt.Errorf("list mood records: %w", err)
	}
	if len(records) == 0 {
		return insightEmpty, nil
	}
	if a.generator == nil {
		return insightUnavailable, nil
	}

	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, string(record.Label))
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	insight, err := a.generator.Generate(ctx, ai.Request{
		System: insightSystemPrompt,
		Messages: []ai.ChatMessage{
			{Role: "user", Content: "Recent moods: " + strings.Join(labels, ", ")},
		},
		Temperature: 0.5,
		MaxTokens:   150,
	})
	if err != nil || strings.TrimSpace(insight) == "" {
		return insightUnavailable, nil
	}
	return strings.TrimSpace(insight), nil
}

// DailyAffirmation returns a short affirmation, delegated to the model when
// one is configured.
func (a *App) DailyAffirmation(ctx context.Context) string {
	return a.generateShort(ctx,
		"You are a mental health assistant. Write one short, warm affirmation. One sentence only.",
		fallbackAffirmations)
}

// JournalPrompt returns a reflective writing prompt.
func (a *App) JournalPrompt(ctx context.Context) string {
	return a.generateShort(ctx,
		"You are a mental health assistant. Write one reflective journaling prompt as a single question.",
		fallbackPrompts)
}

func (a *App) generateShort(ctx context.Context, system string, fallbacks []string) string {
	if a.generator == nil {
		return fallbacks[rand.Intn(len(fallbacks))]
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	text, err := a.generator.Generate(ctx, ai.Request{
		System:      system,
		Messages:    []ai.ChatMessage{{Role: "user", Content: "Go ahead."}},
		Temperature: 0.8,
		MaxTokens:   60,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbacks[rand.Intn(len(fallbacks))]
	}
	return strings.TrimSpace(text)
}

// Digest fetches the insight, affirmation, and quote concurrently. Every
// branch has a static fallback, so the digest itself only fails when the
// store does.
func (a *App) Digest(ctx context.Context, profileID string) (WellnessDigest, error) {
	var digest WellnessDigest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		insight, err := a.MoodInsight(gctx, profileID)
		digest.Insight = insight
		return err
	})
	g.Go(func() error {
		digest.Affirmation = a.DailyAffirmation(gctx)
		return nil
	})
	g.Go(func() error {
		digest.Quote = a.quotes.Random(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return WellnessDigest{}, err
	}
	return digest, nil
}

// Summary computes the aggregate mood statistics plus the narrative insight.
func (a *App) Summary(ctx context.Context, profileID string) (MoodSummary, error) {
	records, err := a.store.ListMoodRecords(profileID, 0)
	if err != nil {
		return MoodSummary{}, fmt.Errorf("list mood records: %w", err)
	}
	insight, err := a.MoodInsight(ctx, profileID)
	if err != nil {
		return MoodSummary{}, err
	}
	return MoodSummary{
		Average:       domain.AverageScore(records),
		MostCommon:    domain.MostCommonLabel(records),
		PositiveRatio: domain.PositiveRatio(records),
		Count:         len(records),
		Insight:       insight,
	}, nil
}
