package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SKU represents a sellable or produced item in the catalog
type SKU struct {
	ID           SKUID           `json:"id" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" validate:"-"`
	LeadTimeDays int             `json:"lead_time_days" validate:"gte=0"`
	Category     string          `json:"category" validate:"required"`
	Family       string          `json:"family,omitempty"`
}

// NewSKU creates a validated SKU
func NewSKU(id SKUID, name, description string, price decimal.Decimal, leadTimeDays int, category, family string) (*SKU, error) {
	sku := &SKU{
		ID:           id,
		Name:         name,
		Description:  description,
		Price:        price,
		LeadTimeDays: leadTimeDays,
		Category:     category,
		Family:       family,
	}
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	return sku, nil
}

// Validate checks the SKU's reference data
func (s *SKU) Validate() error {
	if err := validateStruct(ErrInvalidCatalog, s); err != nil {
		return fmt.Errorf("sku %q: %w", s.ID, err)
	}
	if s.Price.IsNegative() {
		return fmt.Errorf("sku %q: %w: price cannot be negative, got %s", s.ID, ErrInvalidCatalog, s.Price)
	}
	return nil
}
