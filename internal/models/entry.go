// Package models defines the persisted journal types: entries with their
// encrypted payload, mood tags and audit records.
package models

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dmitrijs2005/reflect/internal/common"
	"github.com/dmitrijs2005/reflect/internal/cryptox"
)

// Mood is the plaintext tag stored next to every entry. It stays unencrypted
// so entries can be filtered without a passphrase.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodDown     Mood = "down"
	MoodStressed Mood = "stressed"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodDown, MoodStressed}

var moodEmoji = map[Mood]string{
	MoodGreat:    "😊",
	MoodGood:     "🙂",
	MoodOkay:     "😐",
	MoodDown:     "😔",
	MoodStressed: "😰",
}

// ParseMood validates s as a Mood.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown mood %q", common.ErrValidation, s)
	}
	return m, nil
}

// Valid reports whether m is one of Moods.
func (m Mood) Valid() bool {
	_, ok := moodEmoji[m]
	return ok
}

// Emoji returns the display glyph for m, or an empty string.
func (m Mood) Emoji() string {
	return moodEmoji[m]
}

// EncryptedData is the storage form of a cryptox.Bundle: every field is
// standard base64.
type EncryptedData struct {
	Encrypted string `json:"encrypted"`
	Salt      string `json:"salt"`
	IV        string `json:"iv"`
}

// NewEncryptedData encodes b for storage.
func NewEncryptedData(b cryptox.Bundle) EncryptedData {
	return EncryptedData{
		Encrypted: base64.StdEncoding.EncodeToString(b.Ciphertext),
		Salt:      base64.StdEncoding.EncodeToString(b.Salt),
		IV:        base64.StdEncoding.EncodeToString(b.Nonce),
	}
}

// Bundle decodes d. Undecodable fields are reported as
// common.ErrInvalidParameter.
func (d EncryptedData) Bundle() (cryptox.Bundle, error) {
	ct, err := base64.StdEncoding.DecodeString(d.Encrypted)
	if err != nil {
		return cryptox.Bundle{}, fmt.Errorf("%w: encrypted: %v", common.ErrInvalidParameter, err)
	}
	salt, err := base64.StdEncoding.DecodeString(d.Salt)
	if err != nil {
		return cryptox.Bundle{}, fmt.Errorf("%w: salt: %v", common.ErrInvalidParameter, err)
	}
	iv, err := base64.StdEncoding.DecodeString(d.IV)
	if err != nil {
		return cryptox.Bundle{}, fmt.Errorf("%w: iv: %v", common.ErrInvalidParameter, err)
	}
	return cryptox.Bundle{Ciphertext: ct, Salt: salt, Nonce: iv}, nil
}

// JournalEntry is one diary entry as persisted under the entries key.
// Content is only ever present in EncryptedData.
type JournalEntry struct {
	// ID is unique; ordering by ID carries no meaning.
	ID string `json:"id"`
	// Timestamp is the creation time in milliseconds since the Unix epoch.
	Timestamp     int64         `json:"timestamp"`
	EncryptedData EncryptedData `json:"encryptedData"`
	Mood          Mood          `json:"mood"`
}

// CreatedAt returns Timestamp as a time.Time.
func (e JournalEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}
