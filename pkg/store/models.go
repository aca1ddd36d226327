package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type ProfileModel struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex;not null"`
	PassphraseHash string
	CheckinStreak  int
	JournalStreak  int
	LastCheckin    *time.Time
	LastJournal    *time.Time
	Preferences    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time
}

type MessageModel struct {
	ID        string    `gorm:"primaryKey"`
	ProfileID string    `gorm:"not null;index"`
	Role      string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

type MoodRecordModel struct {
	ID        string    `gorm:"primaryKey"`
	ProfileID string    `gorm:"not null;index"`
	Label     string    `gorm:"not null"`
	Score     int       `gorm:"not null"`
	Intensity int       `gorm:"not null;default:1"`
	Source    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

type JournalEntryModel struct {
	ID        string    `gorm:"primaryKey"`
	ProfileID string    `gorm:"not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Sentiment string    `gorm:"not null"`
	WordCount int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}
