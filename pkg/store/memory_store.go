package store

import (
	"sync"

	"mindwell/pkg/domain"
)

// MemoryStore keeps all profile data in-process. Used by tests and the
// "memory" storage backend for local development.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile // key: profile ID
	names    map[string]string         // sanitized name -> profile ID
	messages map[string][]domain.Message
	moods    map[string][]domain.MoodRecord
	journal  map[string][]domain.JournalEntry
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]domain.Profile),
		names:    make(map[string]string),
		messages: make(map[string][]domain.Message),
		moods:    make(map[string][]domain.MoodRecord),
		journal:  make(map[string][]domain.JournalEntry),
	}
}

// SaveProfile stores or replaces a profile.
func (m *MemoryStore) SaveProfile(p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.Name = SanitizeKey(p.Name)
	m.profiles[p.ID] = p
	m.names[p.Name] = p.ID
	return nil
}

// GetProfileByName looks up a profile by sanitized key.
func (m *MemoryStore) GetProfileByName(name string) (domain.Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[SanitizeKey(name)]
	if !ok {
		return domain.Profile{}, false, nil
	}
	p, ok := m.profiles[id]
	return p, ok, nil
}

// GetProfileByID retrieves a profile.
func (m *MemoryStore) GetProfileByID(id string) (domain.Profile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	return p, ok, nil
}

// AppendMessage records a conversation message in arrival order.
func (m *MemoryStore) AppendMessage(profileID string, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ProfileID = profileID
	m.messages[profileID] = append(m.messages[profileID], msg)
	return nil
}

// ListMessages returns the most recent messages in chronological order.
func (m *MemoryStore) ListMessages(profileID string, limit int) ([]domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return tail(m.messages[profileID], limit), nil
}

// ClearMessages discards the whole conversation log.
func (m *MemoryStore) ClearMessages(profileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, profileID)
	return nil
}

// AppendMoodRecord stores one mood record in arrival order.
func (m *MemoryStore) AppendMoodRecord(profileID string, rec domain.MoodRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ProfileID = profileID
	m.moods[profileID] = append(m.moods[profileID], rec)
	return nil
}

// ListMoodRecords returns mood history in chronological order with
// re-normalized labels.
func (m *MemoryStore) ListMoodRecords(profileID string, limit int) ([]domain.MoodRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := tail(m.moods[profileID], limit)
	for i := range records {
		records[i].Label = domain.NormalizeEmotion(string(records[i].Label))
	}
	return records, nil
}

// AppendJournalEntry stores a journal entry in arrival order.
func (m *MemoryStore) AppendJournalEntry(profileID string, entry domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ProfileID = profileID
	m.journal[profileID] = append(m.journal[profileID], entry)
	return nil
}

// ListJournalEntries returns journal entries in chronological order.
func (m *MemoryStore) ListJournalEntries(profileID string, limit int) ([]domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return tail(m.journal[profileID], limit), nil
}

// tail copies the last limit elements, preserving order.
func tail[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
