package entities

import (
	"fmt"
	"strings"
)

// OrderStatus represents the progress of a production order
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderInProgress
	OrderCompleted
)

// String method for OrderStatus enum
func (o OrderStatus) String() string {
	switch o {
	case OrderPending:
		return "Pending"
	case OrderInProgress:
		return "InProgress"
	case OrderCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (o OrderStatus) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOrderStatus parses an order status name
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "pending":
		return OrderPending, nil
	case "inprogress":
		return OrderInProgress, nil
	case "completed":
		return OrderCompleted, nil
	default:
		return OrderPending, fmt.Errorf("invalid order status: %s (expected: Pending, InProgress, or Completed)", s)
	}
}

// Priority ranks production orders on a machine
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// MarshalText renders the priority by name in JSON and YAML output
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePriority parses a priority name
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityLow, fmt.Errorf("invalid priority: %s (expected: Low, Medium, or High)", s)
	}
}

// ProductionOrder represents a released shop floor order
type ProductionOrder struct {
	ID                  string      `json:"id" validate:"required"`
	SKU                 SKUID       `json:"sku" validate:"required"`
	MachineID           string      `json:"machine_id" validate:"required"`
	Quantity            Quantity    `json:"quantity" validate:"gt=0"`
	StartTime           string      `json:"start_time"`
	EndTime             string      `json:"end_time"`
	Status              OrderStatus `json:"status"`
	Priority            Priority    `json:"priority"`
	CompletedPercentage int         `json:"completed_percentage" validate:"gte=0,lte=100"`
	EstimatedMinutes    int         `json:"estimated_minutes" validate:"gte=0"`
	ActualMinutes       int         `json:"actual_minutes" validate:"gte=0"`
	ScrapQuantity       Quantity    `json:"scrap_quantity" validate:"gte=0"`
	WIPQuantity         Quantity    `json:"wip_quantity" validate:"gte=0"`
}

// Validate checks the order fields
func (o *ProductionOrder) Validate() error {
	if err := validateStruct(ErrInvalidOrder, o); err != nil {
		return fmt.Errorf("order %q: %w", o.ID, err)
	}
	if o.ScrapQuantity > o.Quantity {
		return fmt.Errorf("order %q: %w: scrap (%d) cannot exceed quantity (%d)",
			o.ID, ErrInvalidOrder, o.ScrapQuantity, o.Quantity)
	}
	return nil
}
