package util

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a URL-safe hex string ID, used for opaque session tokens.
func NewID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewRecordID returns a UUID for stored entities (messages, mood records,
// journal entries, profiles).
func NewRecordID() string {
	return uuid.NewString()
}
