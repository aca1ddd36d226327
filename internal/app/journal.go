package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mindwell/internal/emotion"
	"mindwell/internal/streak"
	"mindwell/internal/util"
	"mindwell/pkg/domain"
	"mindwell/pkg/storage"
	"mindwell/pkg/store"
)

// SaveJournalEntry persists a journal entry, classifies its sentiment, and
// appends the corresponding mood record. Entries are never mutated after
// save.
func (a *App) SaveJournalEntry(ctx context.Context, profileID, text string) (domain.JournalEntry, error) {
	text = util.StripMarkup(text)
	if text == "" {
		return domain.JournalEntry{}, ErrEmptyEntry
	}
	profile, err := a.GetProfile(profileID)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	sentiment := emotion.SentimentOfEntry(ctx, a.generator, text)
	now := a.now()
	entry := domain.JournalEntry{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Content:   text,
		Sentiment: sentiment,
		WordCount: len(strings.Fields(text)),
		CreatedAt: now,
	}
	if err := a.store.AppendJournalEntry(profileID, entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("save journal entry: %w", err)
	}

	record := domain.MoodRecord{
		ID:        util.NewRecordID(),
		ProfileID: profileID,
		Label:     domain.SentimentEmotion(sentiment),
		Score:     domain.SentimentScore(sentiment),
		Intensity: 1,
		Source:    domain.SourceJournal,
		CreatedAt: now,
	}
	if err := a.store.AppendMoodRecord(profileID, record); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("save mood record: %w", err)
	}

	a.bumpJournalStreak(&profile, now)
	a.publishMood(ctx, record)
	return entry, nil
}

// SearchJournal returns entries matching a text query and/or sentiment.
// This is a display filter; the store itself stays append-only.
func (a *App) SearchJournal(profileID, query string, sentiment domain.Sentiment) ([]domain.JournalEntry, error) {
	entries, err := a.store.ListJournalEntries(profileID, 0)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if query != "" && !strings.Contains(strings.ToLower(entry.Content), query) {
			continue
		}
		if sentiment != "" && entry.Sentiment != sentiment {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

// ExportJournal renders all entries to a plain-text report, uploads it to
// object storage, and returns a presigned download URL.
func (a *App) ExportJournal(ctx context.Context, profileID string) (string, error) {
	if a.exports == nil {
		return "", ErrExportUnavailable
	}
	profile, err := a.GetProfile(profileID)
	if err != nil {
		return "", err
	}
	entries, err := a.store.ListJournalEntries(profileID, 0)
	if err != nil {
		return "", fmt.Errorf("list journal entries: %w", err)
	}

	report := renderJournalReport(entries)
	key := storage.ExportKey(store.SanitizeKey(profile.Name), a.now())
	if err := a.exports.Put(ctx, key, strings.NewReader(report), int64(len(report)), "text/plain; charset=utf-8"); err != nil {
		return "", fmt.Errorf("upload export: %w", err)
	}
	url, err := a.exports.PresignGet(ctx, key, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("presign export: %w", err)
	}
	return url, nil
}

func renderJournalReport(entries []domain.JournalEntry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(entry.CreatedAt.UTC().Format("2006-01-02 15:04"))
		sb.WriteString("\n")
		sb.WriteString(entry.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (a *App) bumpJournalStreak(profile *domain.Profile, now time.Time) {
	next := streak.Next(now, profile.LastJournal, profile.JournalStreak)
	if next == profile.JournalStreak && streak.SameDay(now, profile.LastJournal) {
		return
	}
	profile.JournalStreak = next
	profile.LastJournal = now
	profile.UpdatedAt = now
	a.saveProfileQuiet(*profile)
}
