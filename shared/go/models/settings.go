package models

import "time"

// RepeatMode controls how a client repeats the queue.
type RepeatMode string

const (
	RepeatOff RepeatMode = "off"
	RepeatOne RepeatMode = "one"
	RepeatAll RepeatMode = "all"
)

// Valid reports whether m is one of the known repeat modes.
func (m RepeatMode) Valid() bool {
	switch m {
	case RepeatOff, RepeatOne, RepeatAll:
		return true
	}
	return false
}

// ParseRepeatMode converts s to a RepeatMode.
func ParseRepeatMode(s string) (RepeatMode, bool) {
	m := RepeatMode(s)
	return m, m.Valid()
}

// QueueSettings holds a user's playback-mode preferences.
type QueueSettings struct {
	UserID      string     `json:"userId" db:"user_id"`
	ShuffleMode bool       `json:"shuffleMode" db:"shuffle_mode"`
	RepeatMode  RepeatMode `json:"repeatMode" db:"repeat_mode"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// DefaultQueueSettings returns the settings a user starts with.
func DefaultQueueSettings(userID string) QueueSettings {
	return QueueSettings{
		UserID:      userID,
		ShuffleMode: false,
		RepeatMode:  RepeatOff,
	}
}

// SettingsUpdate is a partial settings change. Nil fields are left untouched.
type SettingsUpdate struct {
	ShuffleMode *bool       `json:"shuffleMode,omitempty"`
	RepeatMode  *RepeatMode `json:"repeatMode,omitempty"`
}

// Apply returns s with the non-nil fields of u applied.
func (u SettingsUpdate) Apply(s QueueSettings) QueueSettings {
	if u.ShuffleMode != nil {
		s.ShuffleMode = *u.ShuffleMode
	}
	if u.RepeatMode != nil {
		s.RepeatMode = *u.RepeatMode
	}
	return s
}
