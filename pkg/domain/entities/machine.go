package entities

import (
	"fmt"
	"strings"
)

// MachineStatus represents the availability of a machine
type MachineStatus int

const (
	MachineAvailable MachineStatus = iota
	MachineBusy
	MachineMaintenance
)

// String method for MachineStatus enum
func (s MachineStatus) String() string {
	switch s {
	case MachineAvailable:
		return "Available"
	case MachineBusy:
		return "Busy"
	case MachineMaintenance:
		return "Maintenance"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s MachineStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseMachineStatus parses a status name, case-insensitively
func ParseMachineStatus(s string) (MachineStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return MachineAvailable, nil
	case "busy":
		return MachineBusy, nil
	case "maintenance":
		return MachineMaintenance, nil
	default:
		return MachineAvailable, fmt.Errorf("invalid machine status: %s (expected: Available, Busy, or Maintenance)", s)
	}
}

// Machine represents a work center on the shop floor
type Machine struct {
	ID              string        `json:"id" validate:"required"`
	Name            string        `json:"name" validate:"required"`
	CapacityHours   float64       `json:"capacity_hours" validate:"gt=0"`
	Status          MachineStatus `json:"status"`
	CurrentJob      string        `json:"current_job,omitempty"`
	Efficiency      float64       `json:"efficiency" validate:"gt=0,lte=1"`
	UtilizationRate float64       `json:"utilization_rate" validate:"gte=0,lte=1"`
	IsBottleneck    bool          `json:"is_bottleneck"`
	SetupMinutes    int           `json:"setup_minutes" validate:"gte=0"`
}

// NewMachine creates a validated Machine
func NewMachine(
	id, name string,
	capacityHours float64,
	status MachineStatus,
	efficiency, utilizationRate float64,
	isBottleneck bool,
	setupMinutes int,
) (*Machine, error) {
	m := &Machine{
		ID:              id,
		Name:            name,
		CapacityHours:   capacityHours,
		Status:          status,
		Efficiency:      efficiency,
		UtilizationRate: utilizationRate,
		IsBottleneck:    isBottleneck,
		SetupMinutes:    setupMinutes,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the machine's reference data
func (m *Machine) Validate() error {
	if err := validateStruct(ErrInvalidCatalog, m); err != nil {
		return fmt.Errorf("machine %q: %w", m.ID, err)
	}
	if m.Status < MachineAvailable || m.Status > MachineMaintenance {
		return fmt.Errorf("machine %q: %w: unknown status %d", m.ID, ErrInvalidCatalog, int(m.Status))
	}
	return nil
}
