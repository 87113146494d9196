package entities

import (
	"fmt"
	"strings"
)

// PMPItem is one period of the master production plan
type PMPItem struct {
	Period       string   `json:"period"`
	Demand       Quantity `json:"demand"`
	Production   Quantity `json:"production"`
	InitialStock Quantity `json:"initial_stock"`
	FinalStock   Quantity `json:"final_stock"`
	SafetyBuffer Quantity `json:"safety_buffer"`
}

// NewPMPItem creates a validated PMPItem. FinalStock is derived as
// initial + production - demand.
func NewPMPItem(period string, demand, production, initialStock, safetyBuffer Quantity) (*PMPItem, error) {
	p := &PMPItem{
		Period:       period,
		Demand:       demand,
		Production:   production,
		InitialStock: initialStock,
		FinalStock:   initialStock + production - demand,
		SafetyBuffer: safetyBuffer,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the period's input figures. FinalStock is not checked since
// a chained plan may carry a backlog.
func (p *PMPItem) Validate() error {
	if p.Period == "" {
		return fmt.Errorf("%w: period cannot be empty", ErrInvalidPlan)
	}
	if p.Demand < 0 {
		return fmt.Errorf("%w: %s: demand cannot be negative, got %d", ErrInvalidPlan, p.Period, p.Demand)
	}
	if p.Production < 0 {
		return fmt.Errorf("%w: %s: production cannot be negative, got %d", ErrInvalidPlan, p.Period, p.Production)
	}
	if p.InitialStock < 0 {
		return fmt.Errorf("%w: %s: initial stock cannot be negative, got %d", ErrInvalidPlan, p.Period, p.InitialStock)
	}
	if p.SafetyBuffer < 0 {
		return fmt.Errorf("%w: %s: safety buffer cannot be negative, got %d", ErrInvalidPlan, p.Period, p.SafetyBuffer)
	}
	return nil
}

// PeriodStatus flags whether a plan period covers its demand
type PeriodStatus int

const (
	PeriodOK PeriodStatus = iota
	PeriodDeficit
)

// String method for PeriodStatus enum
func (s PeriodStatus) String() string {
	switch s {
	case PeriodOK:
		return "OK"
	case PeriodDeficit:
		return "Deficit"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s PeriodStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Scenario scales a master plan by a demand multiplier
type Scenario struct {
	Key        string  `json:"key" yaml:"key"`
	Label      string  `json:"label" yaml:"label"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// MPSStatus represents the execution state of a schedule line
type MPSStatus int

const (
	MPSPlanned MPSStatus = iota
	MPSInProgress
	MPSCompleted
)

// String method for MPSStatus enum
func (s MPSStatus) String() string {
	switch s {
	case MPSPlanned:
		return "Planned"
	case MPSInProgress:
		return "InProgress"
	case MPSCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s MPSStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseMPSStatus parses a schedule status name
func ParseMPSStatus(s string) (MPSStatus, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "planned":
		return MPSPlanned, nil
	case "inprogress":
		return MPSInProgress, nil
	case "completed":
		return MPSCompleted, nil
	default:
		return MPSPlanned, fmt.Errorf("invalid MPS status: %s (expected: Planned, InProgress, or Completed)", s)
	}
}

// MPSItem is one SKU/period line of the master production schedule
type MPSItem struct {
	SKU               SKUID     `json:"sku"`
	Period            string    `json:"period"`
	PlannedProduction Quantity  `json:"planned_production"`
	ActualProduction  Quantity  `json:"actual_production"`
	Status            MPSStatus `json:"status"`
}
