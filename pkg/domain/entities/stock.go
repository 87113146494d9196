package entities

import "fmt"

// StockItem is an inventory snapshot. Coverage and status are derived from it,
// never stored.
type StockItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CurrentStock Quantity `json:"current_stock"`
	MinStock     Quantity `json:"min_stock"`
	MaxStock     Quantity `json:"max_stock"`
	// WeeklyDemand is the reference demand rate used for coverage.
	WeeklyDemand float64 `json:"weekly_demand"`
}

// NewStockItem creates a validated StockItem
func NewStockItem(id, name string, current, minStock, maxStock Quantity, weeklyDemand float64) (*StockItem, error) {
	item := &StockItem{
		ID:           id,
		Name:         name,
		CurrentStock: current,
		MinStock:     minStock,
		MaxStock:     maxStock,
		WeeklyDemand: weeklyDemand,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the stock levels
func (s *StockItem) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidStock)
	}
	if s.CurrentStock < 0 {
		return fmt.Errorf("%w: %s: current stock cannot be negative, got %d", ErrInvalidStock, s.ID, s.CurrentStock)
	}
	if s.MinStock < 0 {
		return fmt.Errorf("%w: %s: minimum stock cannot be negative, got %d", ErrInvalidStock, s.ID, s.MinStock)
	}
	if s.MaxStock <= s.MinStock {
		return fmt.Errorf("%w: %s: maximum stock (%d) must be greater than minimum stock (%d)",
			ErrInvalidStock, s.ID, s.MaxStock, s.MinStock)
	}
	if s.WeeklyDemand < 0 {
		return fmt.Errorf("%w: %s: weekly demand cannot be negative, got %g", ErrInvalidStock, s.ID, s.WeeklyDemand)
	}
	return nil
}

// StockStatus classifies a stock level against its min/max band
type StockStatus int

const (
	StockNormal StockStatus = iota
	StockCritical
	StockLow
	StockExcess
)

// String method for StockStatus enum
func (s StockStatus) String() string {
	switch s {
	case StockNormal:
		return "Normal"
	case StockCritical:
		return "Critical"
	case StockLow:
		return "Low"
	case StockExcess:
		return "Excess"
	default:
		return "Unknown"
	}
}

// MarshalText renders the status by name in JSON and YAML output
func (s StockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
