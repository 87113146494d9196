package events

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

type recordingHandler struct {
	mu     sync.Mutex
	seen   []string
	failOn string
}

func (h *recordingHandler) CanHandle(eventType string) bool { return true }

func (h *recordingHandler) Handle(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, event.Type())
	if event.Type() == h.failOn {
		return errors.New("handler failed")
	}
	return nil
}

func testLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger
}

func TestInMemoryEventStore_Versions(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	at := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	for _, key := range []string{"baseline", "growth", "baseline"} {
		event := NewPlanReconciledEvent(PlanReconciled{Scenario: entities.Scenario{Key: key, Multiplier: 1}}, at)
		if err := store.AppendEvent(event.StreamID(), event); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	baseline, _ := store.ReadEvents("scenario:baseline", 0)
	if len(baseline) != 2 {
		t.Fatalf("Expected 2 baseline events, got %d", len(baseline))
	}
	if baseline[0].Version() != 1 || baseline[1].Version() != 2 {
		t.Errorf("Expected versions 1,2, got %d,%d", baseline[0].Version(), baseline[1].Version())
	}
	if !baseline[0].Timestamp().Equal(at) {
		t.Errorf("Expected timestamp %s, got %s", at, baseline[0].Timestamp())
	}

	if got, _ := store.ReadEvents("scenario:baseline", 2); len(got) != 1 {
		t.Errorf("Expected 1 event from version 2, got %d", len(got))
	}
	if got, _ := store.ReadEvents("scenario:boom", 1); len(got) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(got))
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 3 {
		t.Errorf("Expected 3 events, got %d", len(all))
	}
	if got, _ := store.ReadAllEvents(5); len(got) != 0 {
		t.Errorf("Expected no events past the end, got %d", len(got))
	}
}

func TestInMemoryEventStore_ReadReturnsCopy(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	event := NewSnapshotGeneratedEvent(SnapshotGenerated{RunID: "r1"}, time.Now())
	_ = store.AppendEvent(event.StreamID(), event)

	all, _ := store.ReadAllEvents(0)
	all[0] = nil

	again, _ := store.ReadAllEvents(0)
	if again[0] == nil {
		t.Error("Expected store contents to be unaffected by caller changes")
	}
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	var buf bytes.Buffer
	store := NewInMemoryEventStore(testLogger(&buf))
	handler := &recordingHandler{failOn: MaterialsPlannedEvent}
	if err := store.Subscribe([]string{SnapshotGeneratedEvent, MaterialsPlannedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	snapshot := NewSnapshotGeneratedEvent(SnapshotGenerated{RunID: "r1"}, time.Now())
	planned := NewMaterialsPlannedEvent(MaterialsPlanned{SKU: "SKU004", Quantity: 10}, time.Now())
	alert := NewStockAlertRaisedEvent(StockAlertRaised{Item: entities.StockItem{ID: "STK002"}}, time.Now())
	for _, e := range []Event{snapshot, planned, alert} {
		_ = store.AppendEvent(e.StreamID(), e)
	}
	store.Flush()

	handler.mu.Lock()
	seen := len(handler.seen)
	handler.mu.Unlock()
	if seen != 2 {
		t.Errorf("Expected handler to see 2 events, got %d", seen)
	}
	if !strings.Contains(buf.String(), "event handler failed") {
		t.Errorf("Expected handler failure to be logged, got %q", buf.String())
	}

	_ = store.Unsubscribe(handler)
	_ = store.AppendEvent(snapshot.StreamID(), snapshot)
	store.Flush()

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.seen) != 2 {
		t.Errorf("Expected no deliveries after unsubscribe, got %d", len(handler.seen))
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	store := NewInMemoryEventStore(nil)
	if err := (LogHandler{Logger: testLogger(&buf)}).Subscribe(store); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	item := entities.StockItem{ID: "STK002", Name: "Hex nut M6", CurrentStock: 800, MinStock: 1200, MaxStock: 4000}
	alert := NewStockAlertRaisedEvent(StockAlertRaised{Item: item, Status: entities.StockCritical}, time.Now())
	_ = store.AppendEvent(alert.StreamID(), alert)
	store.Flush()

	out := buf.String()
	if !strings.Contains(out, "level=warning") || !strings.Contains(out, "STK002 Hex nut M6 is Critical") {
		t.Errorf("Expected warning for STK002, got %q", out)
	}
}
