package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mindwell/pkg/domain"
)

// profileDocument is the JSON snapshot persisted per profile. The schema is
// forward-compatible: missing keys load as documented defaults.
type profileDocument struct {
	Profile  domain.Profile        `json:"profile"`
	Messages []domain.Message      `json:"messages"`
	Moods    []domain.MoodRecord   `json:"moods"`
	Journal  []domain.JournalEntry `json:"journal"`
}

// FileStore persists one JSON document per profile under a base directory,
// keyed by the sanitized profile name. Loads re-normalize legacy dirty
// labels, so a stored "Positive." round-trips as "Positive".
type FileStore struct {
	mu       sync.Mutex
	basePath string
	byID     map[string]string // profile ID -> sanitized key
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath, byID: make(map[string]string)}, nil
}

// SaveProfile writes the profile document, preserving existing sequences.
func (f *FileStore) SaveProfile(p domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.Name = SanitizeKey(p.Name)
	doc, _, err := f.load(p.Name)
	if err != nil {
		return err
	}
	doc.Profile = p
	f.byID[p.ID] = p.Name
	return f.save(p.Name, doc)
}

// GetProfileByName loads a profile by sanitized key.
func (f *FileStore) GetProfileByName(name string) (domain.Profile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := SanitizeKey(name)
	doc, ok, err := f.load(key)
	if err != nil || !ok {
		return domain.Profile{}, false, err
	}
	f.byID[doc.Profile.ID] = key
	return doc.Profile, true, nil
}

// GetProfileByID resolves the ID through the key cache, scanning the base
// directory on a miss.
func (f *FileStore) GetProfileByID(id string) (domain.Profile, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok, err := f.keyFor(id)
	if err != nil || !ok {
		return domain.Profile{}, false, err
	}
	doc, ok, err := f.load(key)
	if err != nil || !ok {
		return domain.Profile{}, false, err
	}
	return doc.Profile, true, nil
}

// keyFor resolves a profile ID to its sanitized key. The cache starts empty
// after a restart, so a miss scans the base directory and repopulates it;
// session tokens can outlive the process. Caller must hold f.mu.
func (f *FileStore) keyFor(profileID string) (string, bool, error) {
	if key, ok := f.byID[profileID]; ok {
		return key, true, nil
	}
	entries, err := os.ReadDir(f.basePath)
	if err != nil {
		return "", false, fmt.Errorf("scan storage dir: %w", err)
	}
	found := ""
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		key := entry.Name()[:len(entry.Name())-len(".json")]
		doc, ok, err := f.load(key)
		if err != nil || !ok {
			continue
		}
		f.byID[doc.Profile.ID] = key
		if doc.Profile.ID == profileID {
			found = key
		}
	}
	return found, found != "", nil
}

// AppendMessage appends to the conversation sequence.
func (f *FileStore) AppendMessage(profileID string, msg domain.Message) error {
	msg.ProfileID = profileID
	return f.mutate(profileID, func(doc *profileDocument) {
		doc.Messages = append(doc.Messages, msg)
	})
}

// ListMessages returns the most recent messages in chronological order.
func (f *FileStore) ListMessages(profileID string, limit int) ([]domain.Message, error) {
	doc, err := f.read(profileID)
	if err != nil {
		return nil, err
	}
	return tail(doc.Messages, limit), nil
}

// ClearMessages discards the conversation log, leaving moods and journal
// intact.
func (f *FileStore) ClearMessages(profileID string) error {
	return f.mutate(profileID, func(doc *profileDocument) {
		doc.Messages = nil
	})
}

// AppendMoodRecord appends label, score, and date as one record.
func (f *FileStore) AppendMoodRecord(profileID string, rec domain.MoodRecord) error {
	rec.ProfileID = profileID
	return f.mutate(profileID, func(doc *profileDocument) {
		doc.Moods = append(doc.Moods, rec)
	})
}

// ListMoodRecords returns mood history with re-normalized labels.
func (f *FileStore) ListMoodRecords(profileID string, limit int) ([]domain.MoodRecord, error) {
	doc, err := f.read(profileID)
	if err != nil {
		return nil, err
	}
	records := tail(doc.Moods, limit)
	for i := range records {
		records[i].Label = domain.NormalizeEmotion(string(records[i].Label))
	}
	return records, nil
}

// AppendJournalEntry appends to the journal sequence.
func (f *FileStore) AppendJournalEntry(profileID string, entry domain.JournalEntry) error {
	entry.ProfileID = profileID
	return f.mutate(profileID, func(doc *profileDocument) {
		doc.Journal = append(doc.Journal, entry)
	})
}

// ListJournalEntries returns journal entries with re-normalized sentiments.
func (f *FileStore) ListJournalEntries(profileID string, limit int) ([]domain.JournalEntry, error) {
	doc, err := f.read(profileID)
	if err != nil {
		return nil, err
	}
	entries := tail(doc.Journal, limit)
	for i := range entries {
		entries[i].Sentiment = domain.NormalizeSentiment(string(entries[i].Sentiment))
	}
	return entries, nil
}

func (f *FileStore) mutate(profileID string, apply func(*profileDocument)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok, err := f.keyFor(profileID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown profile %q", profileID)
	}
	doc, ok, err := f.load(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("profile document missing for %q", key)
	}
	apply(&doc)
	return f.save(key, doc)
}

func (f *FileStore) read(profileID string) (profileDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok, err := f.keyFor(profileID)
	if err != nil {
		return profileDocument{}, err
	}
	if !ok {
		return profileDocument{}, fmt.Errorf("unknown profile %q", profileID)
	}
	doc, ok, err := f.load(key)
	if err != nil {
		return profileDocument{}, err
	}
	if !ok {
		return profileDocument{}, fmt.Errorf("profile document missing for %q", key)
	}
	return doc, nil
}

func (f *FileStore) load(key string) (profileDocument, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return profileDocument{}, false, nil
	}
	if err != nil {
		return profileDocument{}, false, fmt.Errorf("read profile document: %w", err)
	}
	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return profileDocument{}, false, fmt.Errorf("parse profile document: %w", err)
	}
	return doc, true, nil
}

// save writes atomically via temp file + rename.
func (f *FileStore) save(key string, doc profileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile document: %w", err)
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile document: %w", err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("replace profile document: %w", err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.basePath, key+".json")
}
