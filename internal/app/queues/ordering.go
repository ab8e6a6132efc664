package queues

import (
	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

// moveOrder returns ids with the element at from relocated to index to.
// Both indices must address an existing element.
func moveOrder(ids []string, from, to int) ([]string, error) {
	n := len(ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, store.ErrInvalidIndex
	}

	order := make([]string, 0, n)
	order = append(order, ids[:from]...)
	order = append(order, ids[from+1:]...)

	moved := ids[from]
	order = append(order, "")
	copy(order[to+1:], order[to:])
	order[to] = moved
	return order, nil
}

func indexOfTrack(entries []models.QueueEntry, trackID string) int {
	for i, entry := range entries {
		if entry.TrackID == trackID {
			return i
		}
	}
	return -1
}
