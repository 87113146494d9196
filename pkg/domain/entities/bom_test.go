package entities

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBOMItem_Validation(t *testing.T) {
	validItem, err := NewBOMItem("SKU001", "RAW001", "Steel bar 6mm",
		decimal.RequireFromString("0.02"), decimal.RequireFromString("0.05"), 5, "Acos Brasil", LotRuleEOQ, 500)
	if err != nil {
		t.Fatalf("Expected valid BOM item creation to succeed: %v", err)
	}
	if !validItem.QuantityPerParent.Equal(decimal.RequireFromString("0.02")) {
		t.Errorf("Expected quantity per parent 0.02, got %s", validItem.QuantityPerParent)
	}

	testCases := []struct {
		name        string
		parent      SKUID
		component   SKUID
		qtyPer      string
		unitCost    string
		leadTime    int
		lotSize     Quantity
		expectError string
	}{
		{"empty parent", "", "RAW001", "1", "1", 1, 10, "invalid BOM entry: parent SKU cannot be empty"},
		{"empty component", "SKU001", "", "1", "1", 1, 10, "invalid BOM entry: component id cannot be empty"},
		{"parent equals component", "SKU001", "SKU001", "1", "1", 1, 10, "invalid BOM entry: parent and component cannot be the same: SKU001"},
		{"zero quantity", "SKU001", "RAW001", "0", "1", 1, 10, "invalid BOM entry: SKU001 -> RAW001: quantity per parent must be positive, got 0"},
		{"negative quantity", "SKU001", "RAW001", "-2", "1", 1, 10, "invalid BOM entry: SKU001 -> RAW001: quantity per parent must be positive, got -2"},
		{"zero cost", "SKU001", "RAW001", "1", "0", 1, 10, "invalid BOM entry: SKU001 -> RAW001: unit cost must be positive, got 0"},
		{"negative cost", "SKU001", "RAW001", "1", "-0.5", 1, 10, "invalid BOM entry: SKU001 -> RAW001: unit cost must be positive, got -0.5"},
		{"negative lead time", "SKU001", "RAW001", "1", "1", -1, 10, "invalid BOM entry: SKU001 -> RAW001: lead time cannot be negative, got -1"},
		{"zero lot size", "SKU001", "RAW001", "1", "1", 1, 0, "invalid BOM entry: SKU001 -> RAW001: lot size must be positive, got 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBOMItem(tc.parent, tc.component, "component",
				decimal.RequireFromString(tc.qtyPer), decimal.RequireFromString(tc.unitCost),
				tc.leadTime, "supplier", LotRuleMinimum, tc.lotSize)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !errors.Is(err, ErrInvalidBOMEntry) {
				t.Errorf("Expected ErrInvalidBOMEntry, got %v", err)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestBOMItem_ExtendedCost(t *testing.T) {
	item := BOMItem{
		QuantityPerParent: decimal.RequireFromString("0.015"),
		UnitCost:          decimal.RequireFromString("0.04"),
	}
	if got := item.ExtendedCost(); !got.Equal(decimal.RequireFromString("0.0006")) {
		t.Errorf("Expected extended cost 0.0006, got %s", got)
	}
}

func TestParseLotRule(t *testing.T) {
	tests := []struct {
		input    string
		expected LotRule
	}{
		{"EOQ", LotRuleEOQ},
		{"minimum", LotRuleMinimum},
		{" Multiple ", LotRuleMultiple},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLotRule(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}

	if _, err := ParseLotRule("lotforlot"); err == nil {
		t.Error("Expected error for unknown lot rule")
	}
}
