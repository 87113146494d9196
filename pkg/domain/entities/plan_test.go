package entities

import (
	"errors"
	"testing"
)

func TestPMPItem_DerivesFinalStock(t *testing.T) {
	p, err := NewPMPItem("S01/2024", 1200, 1300, 350, 120)
	if err != nil {
		t.Fatalf("Expected valid period creation to succeed: %v", err)
	}
	if p.FinalStock != 450 {
		t.Errorf("Expected final stock 450, got %d", p.FinalStock)
	}
}

func TestPMPItem_Validation(t *testing.T) {
	testCases := []struct {
		name       string
		period     string
		demand     Quantity
		production Quantity
		initial    Quantity
		buffer     Quantity
	}{
		{"empty period", "", 1, 1, 1, 1},
		{"negative demand", "S01", -1, 1, 1, 1},
		{"negative production", "S01", 1, -1, 1, 1},
		{"negative initial stock", "S01", 1, 1, -1, 1},
		{"negative buffer", "S01", 1, 1, 1, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPMPItem(tc.period, tc.demand, tc.production, tc.initial, tc.buffer)
			if !errors.Is(err, ErrInvalidPlan) {
				t.Errorf("Expected ErrInvalidPlan, got %v", err)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	if PeriodDeficit.String() != "Deficit" {
		t.Errorf("Expected Deficit, got %s", PeriodDeficit)
	}
	if PeriodStatus(7).String() != "Unknown" {
		t.Errorf("Expected Unknown, got %s", PeriodStatus(7))
	}
	text, err := PeriodOK.MarshalText()
	if err != nil || string(text) != "OK" {
		t.Errorf("Expected OK, got %s (%v)", text, err)
	}
	status, err := ParseMPSStatus("in-progress")
	if err != nil || status != MPSInProgress {
		t.Errorf("Expected InProgress, got %s (%v)", status, err)
	}
	orderStatus, err := ParseOrderStatus("completed")
	if err != nil || orderStatus != OrderCompleted {
		t.Errorf("Expected Completed, got %s (%v)", orderStatus, err)
	}
}

func TestProductionOrder_Validation(t *testing.T) {
	valid := ProductionOrder{ID: "OP001", SKU: "SKU001", MachineID: "MAC001", Quantity: 500, ScrapQuantity: 8, CompletedPercentage: 65}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid order: %v", err)
	}

	invalid := []ProductionOrder{
		{ID: "", SKU: "SKU001", MachineID: "MAC001", Quantity: 1},
		{ID: "OP", SKU: "SKU001", MachineID: "MAC001", Quantity: 0},
		{ID: "OP", SKU: "SKU001", MachineID: "MAC001", Quantity: 10, CompletedPercentage: 120},
		{ID: "OP", SKU: "SKU001", MachineID: "MAC001", Quantity: 10, ScrapQuantity: 11},
	}
	for i, o := range invalid {
		if err := o.Validate(); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("case %d: expected ErrInvalidOrder, got %v", i, err)
		}
	}
}
