package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mindwell/internal/safety"
	"mindwell/internal/streak"
	"mindwell/internal/util"
	"mindwell/pkg/ai"
	"mindwell/pkg/domain"
	"mindwell/pkg/events"
)

const replySystemPrompt = "You are a compassionate mental health support assistant. " +
	"Provide empathetic, safe, and supportive responses."

const replyFallback = "The assistant is temporarily unavailable. Please try again in a moment."

// ProcessUserTurn runs one inbound message through the full pipeline:
// safety check, classification, scoring, storage append, reply generation.
// Flagged input short-circuits to the static crisis message and records
// nothing for the turn; the message never reaches the model.
func (a *App) ProcessUserTurn(ctx context.Context, profileID, text string) (domain.TurnOutcome, error) {
	text = util.StripMarkup(text)
	if text == "" {
		return domain.TurnOutcome{}, ErrEmptyMessage
	}

	if safety.Flagged(text) {
		return domain.TurnOutcome{
			Kind:  domain.TurnBlocked,
			Reply: safety.CrisisMessage,
		}, nil
	}

	profile, err := a.GetProfile(profileID)
	if err != nil {
		return domain.TurnOutcome{}, err
	}

	now := a.now()
	if err := a.store.AppendMessage(profileID, domain.Message{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: now,
	}); err != nil {
		return domain.TurnOutcome{}, fmt.Errorf("save user message: %w", err)
	}

	// The classify window counts user turns, so a small reply window must
	// not starve it: load enough history for both and trim for the reply.
	historyLimit := a.replyWindow
	if n := a.classifyTurns * 2; n > historyLimit {
		historyLimit = n
	}
	window, err := a.store.ListMessages(profileID, historyLimit)
	if err != nil {
		return domain.TurnOutcome{}, fmt.Errorf("load history: %w", err)
	}

	label, intensity := a.classifier.Classify(ctx, window)
	record := domain.MoodRecord{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Label:     label,
		Score:     a.scoreFor(label, intensity),
		Intensity: intensity,
		Source:    domain.SourceChat,
		CreatedAt: now,
	}
	if err := a.store.AppendMoodRecord(profileID, record); err != nil {
		return domain.TurnOutcome{}, fmt.Errorf("save mood record: %w", err)
	}

	a.bumpCheckinStreak(&profile, now)

	reply := a.generateReply(ctx, tailMessages(window, a.replyWindow))
	if err := a.store.AppendMessage(profileID, domain.Message{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		CreatedAt: a.now(),
	}); err != nil {
		return domain.TurnOutcome{}, fmt.Errorf("save assistant message: %w", err)
	}

	a.publishMood(ctx, record)

	return domain.TurnOutcome{
		Kind:  domain.TurnReplied,
		Reply: reply,
		Mood:  &record,
	}, nil
}

// ManualCheckin records an explicit mood check-in. Unrecognized labels
// normalize to Neutral rather than failing.
func (a *App) ManualCheckin(ctx context.Context, profileID, rawLabel string, intensity int) (domain.MoodRecord, error) {
	profile, err := a.GetProfile(profileID)
	if err != nil {
		return domain.MoodRecord{}, err
	}
	label := domain.NormalizeEmotion(rawLabel)
	if intensity < 1 || intensity > 5 {
		intensity = 1
	}
	now := a.now()
	record := domain.MoodRecord{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Label:     label,
		Score:     a.scoreFor(label, intensity),
		Intensity: intensity,
		Source:    domain.SourceCheckin,
		CreatedAt: now,
	}
	if err := a.store.AppendMoodRecord(profileID, record); err != nil {
		return domain.MoodRecord{}, fmt.Errorf("save mood record: %w", err)
	}
	a.bumpCheckinStreak(&profile, now)
	a.publishMood(ctx, record)
	return record, nil
}

// ListMessages returns the most recent conversation messages.
func (a *App) ListMessages(profileID string, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > defaultSessionHistory {
		limit = defaultSessionHistory
	}
	return a.store.ListMessages(profileID, limit)
}

// ClearConversation discards the whole conversation log. Mood history and
// journal entries are unaffected.
func (a *App) ClearConversation(profileID string) error {
	return a.store.ClearMessages(profileID)
}

// ListMoodRecords returns the mood time series in chronological order.
func (a *App) ListMoodRecords(profileID string, limit int) ([]domain.MoodRecord, error) {
	return a.store.ListMoodRecords(profileID, limit)
}

func (a *App) scoreFor(label domain.EmotionLabel, intensity int) int {
	if a.intensityScoring {
		return domain.WeightedScore(label, intensity)
	}
	return domain.Score(label)
}

// bumpCheckinStreak is idempotent per calendar day; the LastCheckin marker
// guards repeated same-day calls.
func (a *App) bumpCheckinStreak(profile *domain.Profile, now time.Time) {
	next := streak.Next(now, profile.LastCheckin, profile.CheckinStreak)
	if next == profile.CheckinStreak && streak.SameDay(now, profile.LastCheckin) {
		return
	}
	profile.CheckinStreak = next
	profile.LastCheckin = now
	profile.UpdatedAt = now
	a.saveProfileQuiet(*profile)
}

func (a *App) generateReply(ctx context.Context, window []domain.Message) string {
	if a.generator == nil {
		return replyFallback
	}
	messages := make([]ai.ChatMessage, 0, len(window))
	for _, msg := range window {
		messages = append(messages, ai.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	reply, err := a.generator.Generate(ctx, ai.Request{
		System:      replySystemPrompt,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil || strings.TrimSpace(reply) == "" {
		return replyFallback
	}
	return reply
}

func tailMessages(msgs []domain.Message, limit int) []domain.Message {
	if limit > 0 && len(msgs) > limit {
		return msgs[len(msgs)-limit:]
	}
	return msgs
}

func (a *App) publishMood(ctx context.Context, record domain.MoodRecord) {
	if a.publisher == nil {
		return
	}
	a.publisher.PublishMood(ctx, events.MoodEvent{
		ProfileID: record.ProfileID,
		Label:     record.Label,
		Score:     record.Score,
		Intensity: record.Intensity,
		Source:    record.Source,
		CreatedAt: record.CreatedAt,
	})
}

func (a *App) saveProfileQuiet(profile domain.Profile) {
	if err := a.store.SaveProfile(profile); err != nil {
		slog.Warn("save profile failed", "profile", profile.ID, "err", err)
	}
}
