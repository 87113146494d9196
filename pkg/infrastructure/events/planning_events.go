package events

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

const (
	PlanReconciledEvent    = "plan.reconciled"
	MaterialsPlannedEvent  = "materials.planned"
	StockAlertRaisedEvent  = "stock.alert_raised"
	SnapshotGeneratedEvent = "snapshot.generated"
)

type PlanReconciled struct {
	Scenario       entities.Scenario `json:"scenario"`
	Policy         string            `json:"policy"`
	DeficitPeriods int               `json:"deficit_periods"`
	EndingStock    entities.Quantity `json:"ending_stock"`
}

type MaterialsPlanned struct {
	SKU       entities.SKUID    `json:"sku"`
	Quantity  entities.Quantity `json:"quantity"`
	NeedDate  time.Time         `json:"need_date"`
	Lines     int               `json:"lines"`
	TotalCost decimal.Decimal   `json:"total_cost"`
}

type StockAlertRaised struct {
	Item   entities.StockItem   `json:"item"`
	Status entities.StockStatus `json:"status"`
}

type SnapshotGenerated struct {
	RunID    string `json:"run_id"`
	Scenario string `json:"scenario"`
	SKUs     int    `json:"skus"`
}

func NewPlanReconciledEvent(data PlanReconciled, at time.Time) Event {
	return NewEvent(PlanReconciledEvent, "scenario:"+data.Scenario.Key, data, at)
}

func NewMaterialsPlannedEvent(data MaterialsPlanned, at time.Time) Event {
	return NewEvent(MaterialsPlannedEvent, "sku:"+string(data.SKU), data, at)
}

func NewStockAlertRaisedEvent(data StockAlertRaised, at time.Time) Event {
	return NewEvent(StockAlertRaisedEvent, "stock:"+data.Item.ID, data, at)
}

func NewSnapshotGeneratedEvent(data SnapshotGenerated, at time.Time) Event {
	return NewEvent(SnapshotGeneratedEvent, "run:"+data.RunID, data, at)
}

// LogHandler writes journal entries to a logger; stock alerts at warn level
type LogHandler struct {
	Logger *logrus.Logger
}

func (h LogHandler) CanHandle(eventType string) bool {
	switch eventType {
	case PlanReconciledEvent, MaterialsPlannedEvent, StockAlertRaisedEvent, SnapshotGeneratedEvent:
		return true
	}
	return false
}

func (h LogHandler) Handle(event Event) error {
	entry := h.Logger.WithFields(logrus.Fields{
		"event":   event.Type(),
		"stream":  event.StreamID(),
		"version": event.Version(),
	})
	if alert, ok := event.Data().(StockAlertRaised); ok {
		entry.Warnf("%s %s is %s (%d on hand, min %d)", alert.Item.ID, alert.Item.Name, alert.Status, alert.Item.CurrentStock, alert.Item.MinStock)
		return nil
	}
	entry.Debug("planning event recorded")
	return nil
}

// Subscribe registers the handler for every planning event type
func (h LogHandler) Subscribe(store EventStore) error {
	return store.Subscribe([]string{PlanReconciledEvent, MaterialsPlannedEvent, StockAlertRaisedEvent, SnapshotGeneratedEvent}, h)
}
