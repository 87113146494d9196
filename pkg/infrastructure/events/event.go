package events

import (
	"time"
)

// Event is one entry in the planning journal
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore is an append-only journal of planning runs, grouped into streams
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// Record is the stored form of an Event. Seq is its 1-based version
// within the stream.
type Record struct {
	Kind    string      `json:"type"`
	Stream  string      `json:"stream"`
	Payload interface{} `json:"data"`
	At      time.Time   `json:"timestamp"`
	Seq     int         `json:"version"`
}

var _ Event = Record{}

func (r Record) Type() string         { return r.Kind }
func (r Record) StreamID() string     { return r.Stream }
func (r Record) Data() interface{}    { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }
func (r Record) Version() int         { return r.Seq }

// NewEvent creates an unsequenced record; the store assigns its version
func NewEvent(eventType, streamID string, data interface{}, at time.Time) Event {
	return Record{Kind: eventType, Stream: streamID, Payload: data, At: at}
}
