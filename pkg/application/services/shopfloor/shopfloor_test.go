package shopfloor

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/application/services/costing"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/infrastructure/repositories/memory"
)

func sampleOrders() []entities.ProductionOrder {
	return []entities.ProductionOrder{
		{ID: "OP001", SKU: "SKU001", MachineID: "MAC001", Quantity: 500, Status: entities.OrderInProgress,
			Priority: entities.PriorityHigh, CompletedPercentage: 65, EstimatedMinutes: 240, ActualMinutes: 180, ScrapQuantity: 8, WIPQuantity: 325},
		{ID: "OP003", SKU: "SKU003", MachineID: "MAC003", Quantity: 200, Status: entities.OrderCompleted,
			Priority: entities.PriorityLow, CompletedPercentage: 100, EstimatedMinutes: 120, ActualMinutes: 125, ScrapQuantity: 3},
		{ID: "OP004", SKU: "SKU004", MachineID: "MAC001", Quantity: 100, Status: entities.OrderPending,
			Priority: entities.PriorityHigh, EstimatedMinutes: 180},
	}
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		planned  entities.Quantity
		produced entities.Quantity
		expected int
	}{
		{500, 485, 97},
		{300, 0, 0},
		{200, 200, 100},
		{150, 75, 50},
		{0, 10, 0},
	}

	for _, tt := range tests {
		if got := Efficiency(tt.planned, tt.produced); got != tt.expected {
			t.Errorf("Efficiency(%d, %d): expected %d, got %d", tt.planned, tt.produced, tt.expected, got)
		}
	}
}

func TestScrapRate(t *testing.T) {
	orders := sampleOrders()
	if got := ScrapRate(orders[0]); got != 1.6 {
		t.Errorf("Expected 1.6, got %v", got)
	}
	if got := ScrapRate(entities.ProductionOrder{}); got != 0 {
		t.Errorf("Expected 0 for empty order, got %v", got)
	}
}

func TestOrdersForMachine(t *testing.T) {
	orders := OrdersForMachine(sampleOrders(), "MAC001")
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "OP001" || orders[1].ID != "OP004" {
		t.Errorf("Unexpected order sequence: %s, %s", orders[0].ID, orders[1].ID)
	}
	if len(OrdersForMachine(sampleOrders(), "MAC999")) != 0 {
		t.Error("Expected no orders for unknown machine")
	}
}

func TestMachineLoad(t *testing.T) {
	machine := entities.Machine{ID: "MAC001", Name: "Torno CNC", CapacityHours: 100, Efficiency: 0.85,
		UtilizationRate: 0.95, IsBottleneck: true, SetupMinutes: 45}

	load := MachineLoad(machine, sampleOrders())

	if load.OpenOrders != 2 {
		t.Errorf("Expected 2 open orders, got %d", load.OpenOrders)
	}
	// (240 + 45) + (180 + 45)
	if load.PlannedMinutes != 510 {
		t.Errorf("Expected 510 planned minutes, got %d", load.PlannedMinutes)
	}
	if load.EffectiveCapacityHours != 85 {
		t.Errorf("Expected 85 effective hours, got %v", load.EffectiveCapacityHours)
	}
	// 8.5h of 85h
	if load.LoadPercent != 10 {
		t.Errorf("Expected 10%% load, got %v", load.LoadPercent)
	}
}

func TestService_CostOrder(t *testing.T) {
	skuRepo := memory.NewSKURepository(2)
	if err := skuRepo.LoadSKUs([]*entities.SKU{
		{ID: "SKU001", Name: "Parafuso M6x20", Price: decimal.RequireFromString("0.15"), LeadTimeDays: 5, Category: "Fixadores"},
	}); err != nil {
		t.Fatalf("Failed to load SKUs: %v", err)
	}

	bomRepo := memory.NewBOMRepository(1)
	if err := bomRepo.LoadBOMItems([]*entities.BOMItem{{
		ParentSKU: "SKU001", ComponentID: "RAW001", ComponentName: "Aco carbono",
		QuantityPerParent: decimal.RequireFromString("0.02"), UnitCost: decimal.RequireFromString("0.05"),
		LeadTimeDays: 5, LotRule: entities.LotRuleEOQ, LotSize: 500,
	}}); err != nil {
		t.Fatalf("Failed to load BOM: %v", err)
	}

	engine, err := costing.NewEngine(bomRepo, 8)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	svc := NewService(skuRepo, engine)

	orders := sampleOrders()
	cost, err := svc.CostOrder(orders[0])
	if err != nil {
		t.Fatalf("CostOrder failed: %v", err)
	}
	// 500 * 0.02 * 0.05
	if !cost.MaterialCost.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("Expected 0.5, got %s", cost.MaterialCost)
	}
	if cost.EfficiencyPercent != 65 {
		t.Errorf("Expected 65%% efficiency, got %d", cost.EfficiencyPercent)
	}

	_, err = svc.CostOrder(orders[1])
	if !errors.Is(err, entities.ErrUnknownSKU) {
		t.Errorf("Expected ErrUnknownSKU, got %v", err)
	}

	if _, err := svc.CostOrders(orders); !errors.Is(err, entities.ErrUnknownSKU) {
		t.Errorf("Expected CostOrders to fail with ErrUnknownSKU, got %v", err)
	}
}
