package models

import "time"

// MaxQueueEntries caps how many tracks a single user's queue may hold.
const MaxQueueEntries = 100

// QueueEntry is a single track reference inside a user's playback queue.
// Positions are zero-based and dense within a user's queue.
type QueueEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	TrackID   string    `json:"trackId" db:"track_id"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Queue bundles a user's ordered entries with their playback settings.
type Queue struct {
	Entries  []QueueEntry  `json:"entries"`
	Settings QueueSettings `json:"settings"`
}

// TrackIDs returns the track ids of entries in their current order.
func TrackIDs(entries []QueueEntry) []string {
	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.TrackID
	}
	return ids
}
