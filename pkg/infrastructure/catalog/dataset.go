package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// Built-in demo dataset: a small fastener and drive-assembly plant.

func BuiltinSKUs() []*entities.SKU {
	sku := func(id entities.SKUID, name, desc, price string, lead int, category, family string) *entities.SKU {
		return &entities.SKU{
			ID:           id,
			Name:         name,
			Description:  desc,
			Price:        decimal.RequireFromString(price),
			LeadTimeDays: lead,
			Category:     category,
			Family:       family,
		}
	}
	return []*entities.SKU{
		sku("SKU001", "Hex bolt M6x20", "Hex head bolt M6 x 20mm", "0.15", 3, "Fasteners", "Bolts"),
		sku("SKU002", "Hex nut M6", "Hex nut M6", "0.08", 2, "Fasteners", "Nuts"),
		sku("SKU003", "Flat washer M6", "Flat washer 6mm", "0.03", 1, "Fasteners", "Washers"),
		sku("SKU004", "Steel sheet 200x100", "Carbon steel sheet 200x100x3mm", "12.50", 7, "Raw material", "Sheets"),
		sku("SKU005", "Tube 25mm", "Round tube 25mm, 2mm wall", "8.75", 5, "Raw material", "Tubes"),
		sku("SKU006", "Motor 1HP", "Electric motor 1HP 1750rpm", "450.00", 14, "Component", "Motors"),
		sku("SKU007", "Gearbox 1:20", "Speed reducer 1:20", "320.00", 10, "Component", "Gearboxes"),
		sku("SKU008", "SKF bearing", "Bearing housing SKF 6206", "85.00", 8, "Component", "Bearings"),
		sku("SKU009", "V-belt", "V-belt section A42", "25.00", 4, "Component", "Belts"),
		sku("SKU010", "Base frame", "Welded base frame", "180.00", 12, "Subassembly", "Frames"),
	}
}

func BuiltinMachines() []*entities.Machine {
	return []*entities.Machine{
		{ID: "MAC001", Name: "CNC lathe Alpha", CapacityHours: 100, Status: entities.MachineAvailable,
			Efficiency: 0.85, UtilizationRate: 0.95, IsBottleneck: true, SetupMinutes: 45},
		{ID: "MAC002", Name: "Universal mill Beta", CapacityHours: 80, Status: entities.MachineBusy, CurrentJob: "OP-2024-001",
			Efficiency: 0.92, UtilizationRate: 0.88, SetupMinutes: 30},
		{ID: "MAC003", Name: "MIG welder Delta", CapacityHours: 120, Status: entities.MachineAvailable,
			Efficiency: 0.78, UtilizationRate: 0.75, SetupMinutes: 15},
		{ID: "MAC004", Name: "50T press Gamma", CapacityHours: 200, Status: entities.MachineMaintenance,
			Efficiency: 0.88, UtilizationRate: 0.85, SetupMinutes: 20},
		{ID: "MAC005", Name: "Radial drill Epsilon", CapacityHours: 60, Status: entities.MachineAvailable,
			Efficiency: 0.95, UtilizationRate: 0.70, SetupMinutes: 10},
	}
}

func BuiltinBOM() []*entities.BOMItem {
	item := func(parent, component entities.SKUID, name, qty, cost string, lead int, supplier string,
		rule entities.LotRule, lot entities.Quantity) *entities.BOMItem {
		return &entities.BOMItem{
			ParentSKU:         parent,
			ComponentID:       component,
			ComponentName:     name,
			QuantityPerParent: decimal.RequireFromString(qty),
			UnitCost:          decimal.RequireFromString(cost),
			LeadTimeDays:      lead,
			Supplier:          supplier,
			LotRule:           rule,
			LotSize:           lot,
		}
	}
	return []*entities.BOMItem{
		item("SKU001", "RAW001", "Steel bar 6mm", "0.02", "0.05", 5, "Acos Brasil", entities.LotRuleEOQ, 500),
		item("SKU002", "RAW002", "Hex bar M6", "0.015", "0.04", 3, "MetalCorp", entities.LotRuleMinimum, 100),
		item("SKU003", "RAW003", "Steel sheet 1mm", "0.001", "0.015", 7, "SiderSteel", entities.LotRuleMultiple, 50),
		item("SKU004", "RAW004", "Rolled steel sheet", "1", "8.50", 10, "Usiminas", entities.LotRuleEOQ, 25),
		item("SKU005", "RAW005", "Drawn tube 25mm", "1", "6.20", 8, "TuboCorp", entities.LotRuleMinimum, 20),
	}
}

func BuiltinPeriods() []entities.PMPItem {
	return []entities.PMPItem{
		{Period: "S01/2024", Demand: 1200, Production: 1300, InitialStock: 350, FinalStock: 450, SafetyBuffer: 120},
		{Period: "S02/2024", Demand: 1350, Production: 1400, InitialStock: 450, FinalStock: 500, SafetyBuffer: 135},
		{Period: "S03/2024", Demand: 1180, Production: 1200, InitialStock: 500, FinalStock: 520, SafetyBuffer: 118},
		{Period: "S04/2024", Demand: 1420, Production: 1500, InitialStock: 520, FinalStock: 600, SafetyBuffer: 142},
		{Period: "S05/2024", Demand: 1380, Production: 1400, InitialStock: 600, FinalStock: 620, SafetyBuffer: 138},
		{Period: "S06/2024", Demand: 1250, Production: 1300, InitialStock: 620, FinalStock: 670, SafetyBuffer: 125},
	}
}

func BuiltinSchedule() []entities.MPSItem {
	return []entities.MPSItem{
		{SKU: "SKU001", Period: "S01/2024", PlannedProduction: 500, ActualProduction: 485, Status: entities.MPSCompleted},
		{SKU: "SKU002", Period: "S01/2024", PlannedProduction: 400, ActualProduction: 410, Status: entities.MPSCompleted},
		{SKU: "SKU003", Period: "S01/2024", PlannedProduction: 300, ActualProduction: 295, Status: entities.MPSCompleted},
		{SKU: "SKU001", Period: "S02/2024", PlannedProduction: 550, ActualProduction: 520, Status: entities.MPSInProgress},
		{SKU: "SKU002", Period: "S02/2024", PlannedProduction: 450, ActualProduction: 0, Status: entities.MPSPlanned},
		{SKU: "SKU004", Period: "S02/2024", PlannedProduction: 200, ActualProduction: 0, Status: entities.MPSPlanned},
	}
}

// BuiltinStock returns stock snapshots. Weekly demand is the reference rate
// that reproduces each item's quoted coverage.
func BuiltinStock() []*entities.StockItem {
	return []*entities.StockItem{
		{ID: "STK001", Name: "Hex bolt M6x20", CurrentStock: 2500, MinStock: 1000, MaxStock: 5000, WeeklyDemand: 1190},
		{ID: "STK002", Name: "Hex nut M6", CurrentStock: 800, MinStock: 1200, MaxStock: 4000, WeeklyDemand: 1333},
		{ID: "STK003", Name: "Flat washer M6", CurrentStock: 1500, MinStock: 800, MaxStock: 3000, WeeklyDemand: 395},
		{ID: "STK004", Name: "Steel sheet 200x100", CurrentStock: 150, MinStock: 100, MaxStock: 300, WeeklyDemand: 125},
		{ID: "STK005", Name: "Motor 1HP", CurrentStock: 25, MinStock: 10, MaxStock: 50, WeeklyDemand: 4.8},
	}
}

func BuiltinOrders() []entities.ProductionOrder {
	return []entities.ProductionOrder{
		{ID: "OP001", SKU: "SKU001", MachineID: "MAC001", Quantity: 500, StartTime: "08:00", EndTime: "12:00",
			Status: entities.OrderInProgress, Priority: entities.PriorityHigh, CompletedPercentage: 65,
			EstimatedMinutes: 240, ActualMinutes: 180, ScrapQuantity: 8, WIPQuantity: 325},
		{ID: "OP002", SKU: "SKU002", MachineID: "MAC002", Quantity: 300, StartTime: "13:00", EndTime: "16:00",
			Status: entities.OrderPending, Priority: entities.PriorityMedium, EstimatedMinutes: 180},
		{ID: "OP003", SKU: "SKU003", MachineID: "MAC003", Quantity: 200, StartTime: "08:00", EndTime: "10:00",
			Status: entities.OrderCompleted, Priority: entities.PriorityLow, CompletedPercentage: 100,
			EstimatedMinutes: 120, ActualMinutes: 125, ScrapQuantity: 3},
		{ID: "OP004", SKU: "SKU004", MachineID: "MAC001", Quantity: 100, StartTime: "14:00", EndTime: "17:00",
			Status: entities.OrderPending, Priority: entities.PriorityHigh, EstimatedMinutes: 180},
		{ID: "OP005", SKU: "SKU005", MachineID: "MAC005", Quantity: 150, StartTime: "09:00", EndTime: "11:30",
			Status: entities.OrderInProgress, Priority: entities.PriorityMedium, CompletedPercentage: 40,
			EstimatedMinutes: 150, ActualMinutes: 95, ScrapQuantity: 2, WIPQuantity: 60},
	}
}
