package store

import (
	"strings"
	"unicode"

	"mindwell/pkg/domain"
)

// Store defines persistence for profiles, conversations, mood history, and
// journals. All operations are scoped to a single profile; there is no
// shared mutable state between profiles.
type Store interface {
	// profiles
	SaveProfile(domain.Profile) error
	GetProfileByName(name string) (domain.Profile, bool, error)
	GetProfileByID(id string) (domain.Profile, bool, error)

	// conversation
	AppendMessage(profileID string, msg domain.Message) error
	ListMessages(profileID string, limit int) ([]domain.Message, error)
	ClearMessages(profileID string) error

	// mood history; label, score, and date always land in one append
	AppendMoodRecord(profileID string, rec domain.MoodRecord) error
	ListMoodRecords(profileID string, limit int) ([]domain.MoodRecord, error)

	// journal
	AppendJournalEntry(profileID string, entry domain.JournalEntry) error
	ListJournalEntries(profileID string, limit int) ([]domain.JournalEntry, error)
}

// SessionStore resolves bearer tokens to profile IDs.
type SessionStore interface {
	NewSession(profileID string) (string, error)
	GetProfileIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}

// SanitizeKey lowercases a display name or email and strips everything but
// alphanumerics, '-', and '_'. Spaces and '@'/'.' become '-'. The result is
// the stable external storage key for a profile.
func SanitizeKey(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '@' || r == '.':
			sb.WriteRune('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}
