// Package handoff provides the bounded in-process conduit carrying received
// data from a zone's server side to its own client side.
package handoff

import (
	"sync/atomic"
	"time"
)

// Record is what the server side hands to the client side after a successful
// receipt. It carries enough of the original message to synthesize a new
// outbound payload.
type Record struct {
	OriginalSourceZone    string    `json:"original_source_zone"`
	OriginalMessageID     int64     `json:"original_message_id"`
	OriginalDataReference string    `json:"original_data_reference"`
	OriginalContentType   string    `json:"original_content_type"`
	WasRogue              bool      `json:"is_rogue_when_received"`
	ProcessedBy           string    `json:"processed_by_zone"`
	ProcessedAt           time.Time `json:"server_processing_timestamp_utc"`
}

// Queue is a bounded single-producer single-consumer handoff. Both sides use
// try-operations only; neither side ever blocks on the other.
type Queue struct {
	ch    chan Record
	drops atomic.Uint64
}

// NewQueue creates a queue holding at most capacity records.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Record, capacity)}
}

// TryPush offers a record without blocking. On a full queue the record is
// dropped, the drop counter advances, and false is returned.
func (q *Queue) TryPush(r Record) bool {
	select {
	case q.ch <- r:
		return true
	default:
		q.drops.Add(1)
		return false
	}
}

// TryPop takes a record without blocking. ok is false when the queue is empty.
func (q *Queue) TryPop() (Record, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
		return Record{}, false
	}
}

// Len returns the number of records currently queued.
func (q *Queue) Len() int { return len(q.ch) }

// Drops returns how many records were dropped on a full queue.
func (q *Queue) Drops() uint64 { return q.drops.Load() }
