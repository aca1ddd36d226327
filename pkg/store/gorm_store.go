package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mindwell/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&ProfileModel{}, &MessageModel{}, &MoodRecordModel{}, &JournalEntryModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveProfile creates or replaces a profile record.
func (s *GormStore) SaveProfile(p domain.Profile) error {
	model, err := profileToModel(p)
	if err != nil {
		return err
	}
	return s.db.Save(&model).Error
}

// GetProfileByName looks up a profile by its sanitized key.
func (s *GormStore) GetProfileByName(name string) (domain.Profile, bool, error) {
	var model ProfileModel
	if err := s.db.First(&model, "name = ?", SanitizeKey(name)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// GetProfileByID retrieves a profile.
func (s *GormStore) GetProfileByID(id string) (domain.Profile, bool, error) {
	var model ProfileModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Profile{}, false, nil
		}
		return domain.Profile{}, false, err
	}
	return profileFromModel(model), true, nil
}

// AppendMessage records one conversation message.
func (s *GormStore) AppendMessage(profileID string, msg domain.Message) error {
	model := MessageModel{
		ID:        msg.ID,
		ProfileID: profileID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.UTC(),
	}
	return s.db.Create(&model).Error
}

// ListMessages returns the most recent messages in chronological order.
func (s *GormStore) ListMessages(profileID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 200
	}
	var models []MessageModel
	if err := s.db.Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Message, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		items = append(items, domain.Message{
			ID:        m.ID,
			ProfileID: m.ProfileID,
			Role:      domain.MessageRole(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

// ClearMessages discards the whole conversation log for a profile.
func (s *GormStore) ClearMessages(profileID string) error {
	return s.db.Delete(&MessageModel{}, "profile_id = ?", profileID).Error
}

// AppendMoodRecord stores label, score, and date atomically in one row.
func (s *GormStore) AppendMoodRecord(profileID string, rec domain.MoodRecord) error {
	model := MoodRecordModel{
		ID:        rec.ID,
		ProfileID: profileID,
		Label:     string(rec.Label),
		Score:     rec.Score,
		Intensity: rec.Intensity,
		Source:    string(rec.Source),
		CreatedAt: rec.CreatedAt.UTC(),
	}
	return s.db.Create(&model).Error
}

// ListMoodRecords returns mood history in chronological order. Stored labels
// are re-normalized against the closed taxonomy to tolerate legacy values.
func (s *GormStore) ListMoodRecords(profileID string, limit int) ([]domain.MoodRecord, error) {
	if limit <= 0 {
		limit = 1000
	}
	var models []MoodRecordModel
	if err := s.db.Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]domain.MoodRecord, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		items = append(items, domain.MoodRecord{
			ID:        m.ID,
			ProfileID: m.ProfileID,
			Label:     domain.NormalizeEmotion(m.Label),
			Score:     m.Score,
			Intensity: m.Intensity,
			Source:    domain.MoodSource(m.Source),
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

// AppendJournalEntry records one journal entry.
func (s *GormStore) AppendJournalEntry(profileID string, entry domain.JournalEntry) error {
	model := JournalEntryModel{
		ID:        entry.ID,
		ProfileID: profileID,
		Content:   entry.Content,
		Sentiment: string(entry.Sentiment),
		WordCount: entry.WordCount,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	return s.db.Create(&model).Error
}

// ListJournalEntries returns journal entries in chronological order.
func (s *GormStore) ListJournalEntries(profileID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 500
	}
	var models []JournalEntryModel
	if err := s.db.Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]domain.JournalEntry, 0, len(models))
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		items = append(items, domain.JournalEntry{
			ID:        m.ID,
			ProfileID: m.ProfileID,
			Content:   m.Content,
			Sentiment: domain.NormalizeSentiment(m.Sentiment),
			WordCount: m.WordCount,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

func profileToModel(p domain.Profile) (ProfileModel, error) {
	model := ProfileModel{
		ID:             p.ID,
		Name:           SanitizeKey(p.Name),
		PassphraseHash: p.PassphraseHash,
		CheckinStreak:  p.CheckinStreak,
		JournalStreak:  p.JournalStreak,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
	if !p.LastCheckin.IsZero() {
		t := p.LastCheckin.UTC()
		model.LastCheckin = &t
	}
	if !p.LastJournal.IsZero() {
		t := p.LastJournal.UTC()
		model.LastJournal = &t
	}
	if len(p.Preferences) > 0 {
		raw, err := json.Marshal(p.Preferences)
		if err != nil {
			return ProfileModel{}, fmt.Errorf("marshal preferences: %w", err)
		}
		model.Preferences = raw
	}
	return model, nil
}

func profileFromModel(m ProfileModel) domain.Profile {
	p := domain.Profile{
		ID:             m.ID,
		Name:           m.Name,
		PassphraseHash: m.PassphraseHash,
		CheckinStreak:  m.CheckinStreak,
		JournalStreak:  m.JournalStreak,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.LastCheckin != nil {
		p.LastCheckin = *m.LastCheckin
	}
	if m.LastJournal != nil {
		p.LastJournal = *m.LastJournal
	}
	if len(m.Preferences) > 0 {
		// Ignore malformed preference blobs; defaults apply.
		_ = json.Unmarshal(m.Preferences, &p.Preferences)
	}
	return p
}
