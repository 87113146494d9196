package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LotRule represents the lot sizing rule applied when ordering a component
type LotRule int

const (
	LotRuleEOQ LotRule = iota
	LotRuleMinimum
	LotRuleMultiple
)

// String method for LotRule enum
func (l LotRule) String() string {
	switch l {
	case LotRuleEOQ:
		return "EOQ"
	case LotRuleMinimum:
		return "Minimum"
	case LotRuleMultiple:
		return "Multiple"
	default:
		return "Unknown"
	}
}

// MarshalText renders the rule by name in JSON and YAML output
func (l LotRule) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLotRule parses a lot rule name, case-insensitively
func ParseLotRule(s string) (LotRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eoq":
		return LotRuleEOQ, nil
	case "minimum":
		return LotRuleMinimum, nil
	case "multiple":
		return LotRuleMultiple, nil
	default:
		return LotRuleEOQ, fmt.Errorf("invalid lot_rule: %s (expected: EOQ, Minimum, or Multiple)", s)
	}
}

// BOMItem is one parent -> component edge of the bill of materials
type BOMItem struct {
	ParentSKU         SKUID           `json:"parent_sku"`
	ComponentID       SKUID           `json:"component_id"`
	ComponentName     string          `json:"component_name"`
	QuantityPerParent decimal.Decimal `json:"quantity_per_parent"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	LeadTimeDays      int             `json:"lead_time_days"`
	Supplier          string          `json:"supplier"`
	LotRule           LotRule         `json:"lot_rule"`
	LotSize           Quantity        `json:"lot_size"`
}

// NewBOMItem creates a validated BOMItem
func NewBOMItem(
	parent, component SKUID,
	componentName string,
	qtyPer, unitCost decimal.Decimal,
	leadTimeDays int,
	supplier string,
	lotRule LotRule,
	lotSize Quantity,
) (*BOMItem, error) {
	item := &BOMItem{
		ParentSKU:         parent,
		ComponentID:       component,
		ComponentName:     componentName,
		QuantityPerParent: qtyPer,
		UnitCost:          unitCost,
		LeadTimeDays:      leadTimeDays,
		Supplier:          supplier,
		LotRule:           lotRule,
		LotSize:           lotSize,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the BOM edge. Every failure wraps ErrInvalidBOMEntry.
func (b *BOMItem) Validate() error {
	if b.ParentSKU == "" {
		return fmt.Errorf("%w: parent SKU cannot be empty", ErrInvalidBOMEntry)
	}
	if b.ComponentID == "" {
		return fmt.Errorf("%w: component id cannot be empty", ErrInvalidBOMEntry)
	}
	if b.ParentSKU == b.ComponentID {
		return fmt.Errorf("%w: parent and component cannot be the same: %s", ErrInvalidBOMEntry, b.ParentSKU)
	}
	if !b.QuantityPerParent.IsPositive() {
		return fmt.Errorf("%w: %s -> %s: quantity per parent must be positive, got %s",
			ErrInvalidBOMEntry, b.ParentSKU, b.ComponentID, b.QuantityPerParent)
	}
	if !b.UnitCost.IsPositive() {
		return fmt.Errorf("%w: %s -> %s: unit cost must be positive, got %s",
			ErrInvalidBOMEntry, b.ParentSKU, b.ComponentID, b.UnitCost)
	}
	if b.LeadTimeDays < 0 {
		return fmt.Errorf("%w: %s -> %s: lead time cannot be negative, got %d",
			ErrInvalidBOMEntry, b.ParentSKU, b.ComponentID, b.LeadTimeDays)
	}
	if b.LotSize <= 0 {
		return fmt.Errorf("%w: %s -> %s: lot size must be positive, got %d",
			ErrInvalidBOMEntry, b.ParentSKU, b.ComponentID, b.LotSize)
	}
	if b.LotRule < LotRuleEOQ || b.LotRule > LotRuleMultiple {
		return fmt.Errorf("%w: %s -> %s: unknown lot rule %d",
			ErrInvalidBOMEntry, b.ParentSKU, b.ComponentID, int(b.LotRule))
	}
	return nil
}

// ExtendedCost returns unit cost times quantity per parent
func (b *BOMItem) ExtendedCost() decimal.Decimal {
	return b.UnitCost.Mul(b.QuantityPerParent)
}
