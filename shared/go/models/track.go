package models

// MediaType describes the content a catalog item carries.
type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
	MediaText  MediaType = "text"
)

// Track is the slice of a catalog item the queue cares about.
type Track struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Artist    string    `json:"artist" db:"artist"`
	MediaType MediaType `json:"mediaType" db:"media_type"`
}

// Playable reports whether the track carries audio.
func (t Track) Playable() bool {
	return t.MediaType == MediaAudio
}
