package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action types for model events
type Action string

const (
	ActionCreate Action = "create"
	ActionAttach Action = "attach"
	ActionDetach Action = "detach"
)

// EntityKind identifies which model entity an event refers to
type EntityKind string

const (
	EntityNode         EntityKind = "node"
	EntityLine         EntityKind = "line"
	EntitySupport      EntityKind = "support"
	EntitySection      EntityKind = "section"
	EntityMaterial     EntityKind = "material"
	EntityRelease      EntityKind = "release"
	EntityLoadCase     EntityKind = "load_case"
	EntityNodalLoad    EntityKind = "nodal_load"
	EntityLineLoadConc EntityKind = "line_load_concentrated"
	EntityLineLoadDist EntityKind = "line_load_distributed"
)

// Event is a single model-construction record
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    Action         `json:"action"`
	Entity    EntityKind     `json:"entity"`
	EntityID  uint64         `json:"entity_id"`
	Detail    map[string]any `json:"detail,omitempty"`
}

// Filter represents filtering criteria for recorded events
type Filter struct {
	Action    Action
	Entity    EntityKind
	EntityID  uint64
	StartTime *time.Time
	EndTime   *time.Time
}

// Sink is the interface consumed by the model builder. Every
// successful entity creation or attachment change is reported here.
type Sink interface {
	Record(event *Event) error
	EventCount() int64
}

// Recorder keeps events in a fixed-size circular buffer
type Recorder struct {
	events     []*Event
	bufferSize int
	index      int
	count      int
	total      int64
	mu         sync.RWMutex
}

// NewRecorder creates a recorder with the given buffer size
func NewRecorder(bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &Recorder{
		events:     make([]*Event, bufferSize),
		bufferSize: bufferSize,
	}
}

// Record stores an event, stamping ID and timestamp if unset
func (r *Recorder) Record(event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	r.events[r.index] = event
	r.index = (r.index + 1) % r.bufferSize
	if r.count < r.bufferSize {
		r.count++
	}
	r.total++

	return nil
}

// EventCount returns the total number of events ever recorded,
// including events that have rotated out of the buffer.
func (r *Recorder) EventCount() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Events returns buffered events in recording order, oldest first
func (r *Recorder) Events() []*Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Event, 0, r.count)
	start := 0
	if r.count == r.bufferSize {
		start = r.index
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.events[(start+i)%r.bufferSize])
	}
	return out
}

// Query returns buffered events matching the filter, oldest first
func (r *Recorder) Query(filter Filter) []*Event {
	events := r.Events()

	out := make([]*Event, 0, len(events))
	for _, e := range events {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if filter.EntityID != 0 && e.EntityID != filter.EntityID {
			continue
		}
		if filter.StartTime != nil && e.Timestamp.Before(*filter.StartTime) {
			continue
		}
		if filter.EndTime != nil && e.Timestamp.After(*filter.EndTime) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NopSink discards all events
type NopSink struct{}

func (NopSink) Record(*Event) error { return nil }
func (NopSink) EventCount() int64   { return 0 }
