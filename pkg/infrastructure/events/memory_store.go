package events

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// InMemoryEventStore keeps the journal for the lifetime of the process.
// Subscribers are notified asynchronously; Flush waits for them.
type InMemoryEventStore struct {
	mu       sync.RWMutex
	log      []Record
	byStream map[string][]int // stream -> positions in log
	handlers map[string][]EventHandler
	inflight sync.WaitGroup
	logger   *logrus.Logger
}

var _ EventStore = (*InMemoryEventStore)(nil)

func NewInMemoryEventStore(logger *logrus.Logger) *InMemoryEventStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InMemoryEventStore{
		byStream: make(map[string][]int),
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		Kind:    event.Type(),
		Stream:  streamID,
		Payload: event.Data(),
		At:      event.Timestamp(),
		Seq:     len(s.byStream[streamID]) + 1,
	}
	s.byStream[streamID] = append(s.byStream[streamID], len(s.log))
	s.log = append(s.log, rec)

	for _, h := range s.handlers[rec.Kind] {
		if h.CanHandle(rec.Kind) {
			s.dispatch(h, rec)
		}
	}
	return nil
}

func (s *InMemoryEventStore) dispatch(h EventHandler, rec Record) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := h.Handle(rec); err != nil {
			s.logger.WithFields(logrus.Fields{
				"event":  rec.Kind,
				"stream": rec.Stream,
			}).WithError(err).Error("event handler failed")
		}
	}()
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := s.byStream[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	out := []Event{}
	for _, pos := range positions[min(fromVersion-1, len(positions)):] {
		out = append(out, s.log[pos])
	}
	return out, nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fromPosition = max(fromPosition, 0)
	out := []Event{}
	for _, rec := range s.log[min(fromPosition, len(s.log)):] {
		out = append(out, rec)
	}
	return out, nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range eventTypes {
		s.handlers[t] = append(s.handlers[t], handler)
	}
	return nil
}

func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t, hs := range s.handlers {
		kept := hs[:0:0]
		for _, h := range hs {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.handlers[t] = kept
	}
	return nil
}

// Flush blocks until every notified handler has returned
func (s *InMemoryEventStore) Flush() {
	s.inflight.Wait()
}
