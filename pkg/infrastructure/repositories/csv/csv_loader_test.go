package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadSKUs(t *testing.T) {
	path := writeFile(t, SKUsFile, `id,name,description,price,lead_time_days,category,family
SKU001,Hex bolt M6x20,Hex bolt M6 x 20mm,0.15,3,Fasteners,Bolts
SKU004,Steel sheet 200x100,Carbon steel sheet,12.50,7,Raw material,Sheets
`)

	skus, err := NewLoader().LoadSKUs(path)
	if err != nil {
		t.Fatalf("LoadSKUs failed: %v", err)
	}
	if len(skus) != 2 {
		t.Fatalf("Expected 2 SKUs, got %d", len(skus))
	}
	if !skus[1].Price.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected price 12.5, got %s", skus[1].Price)
	}
	if skus[0].LeadTimeDays != 3 {
		t.Errorf("Expected lead time 3, got %d", skus[0].LeadTimeDays)
	}
}

func TestLoader_LoadMachines(t *testing.T) {
	path := writeFile(t, MachinesFile, `id,name,capacity_hours,status,efficiency,utilization_rate,is_bottleneck,setup_minutes,current_job
MAC001,CNC lathe,100,available,0.85,0.95,true,45,
MAC002,Milling machine,80,busy,0.92,0.88,false,30,OP-2024-001
`)

	machines, err := NewLoader().LoadMachines(path)
	if err != nil {
		t.Fatalf("LoadMachines failed: %v", err)
	}
	if len(machines) != 2 {
		t.Fatalf("Expected 2 machines, got %d", len(machines))
	}
	if !machines[0].IsBottleneck || machines[0].SetupMinutes != 45 {
		t.Errorf("Unexpected machine: %+v", machines[0])
	}
	if machines[1].Status != entities.MachineBusy || machines[1].CurrentJob != "OP-2024-001" {
		t.Errorf("Unexpected machine: %+v", machines[1])
	}
}

func TestLoader_LoadBOM(t *testing.T) {
	path := writeFile(t, BOMFile, `parent_sku,component_id,component_name,quantity_per_parent,unit_cost,lead_time_days,supplier,lot_rule,lot_size
SKU001,RAW001,Steel bar 6mm,0.02,0.05,5,Acos Brasil,EOQ,500
SKU002,RAW002,Hex bar M6,0.015,0.04,3,MetalCorp,minimum,100
`)

	items, err := NewLoader().LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if !items[0].QuantityPerParent.Equal(decimal.RequireFromString("0.02")) {
		t.Errorf("Expected qty 0.02, got %s", items[0].QuantityPerParent)
	}
	if items[1].LotRule != entities.LotRuleMinimum || items[1].LotSize != 100 {
		t.Errorf("Unexpected lot sizing: %s %d", items[1].LotRule, items[1].LotSize)
	}
}

func TestLoader_LoadBOM_InvalidEntry(t *testing.T) {
	path := writeFile(t, BOMFile, `parent_sku,component_id,component_name,quantity_per_parent,unit_cost,lead_time_days,supplier,lot_rule,lot_size
SKU001,RAW001,Steel bar 6mm,0,0.05,5,Acos Brasil,EOQ,500
`)

	_, err := NewLoader().LoadBOM(path)
	if !errors.Is(err, entities.ErrInvalidBOMEntry) {
		t.Errorf("Expected ErrInvalidBOMEntry, got %v", err)
	}
}

func TestLoader_LoadStockPlanScheduleOrders(t *testing.T) {
	loader := NewLoader()

	stock, err := loader.LoadStock(writeFile(t, StockFile, `id,name,current_stock,min_stock,max_stock,weekly_demand
STK001,Hex bolt M6x20,2500,1000,5000,1190
`))
	if err != nil {
		t.Fatalf("LoadStock failed: %v", err)
	}
	if stock[0].WeeklyDemand != 1190 {
		t.Errorf("Expected weekly demand 1190, got %v", stock[0].WeeklyDemand)
	}

	periods, err := loader.LoadPlan(writeFile(t, PlanFile, `period,demand,production,initial_stock,final_stock,safety_buffer
S01/2024,1200,1300,350,450,120
S02/2024,1350,1400,450,500,135
`))
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if len(periods) != 2 || periods[1].SafetyBuffer != 135 {
		t.Errorf("Unexpected periods: %+v", periods)
	}

	schedule, err := loader.LoadSchedule(writeFile(t, ScheduleFile, `sku,period,planned_production,actual_production,status
SKU001,S02/2024,550,520,in-progress
`))
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if schedule[0].Status != entities.MPSInProgress {
		t.Errorf("Expected InProgress, got %s", schedule[0].Status)
	}

	orders, err := loader.LoadOrders(writeFile(t, OrdersFile, `id,sku,machine_id,quantity,start_time,end_time,status,priority,completed_percentage,estimated_minutes,actual_minutes,scrap_quantity,wip_quantity
OP001,SKU001,MAC001,500,08:00,12:00,in-progress,high,65,240,180,8,325
`))
	if err != nil {
		t.Fatalf("LoadOrders failed: %v", err)
	}
	if orders[0].Priority != entities.PriorityHigh || orders[0].WIPQuantity != 325 {
		t.Errorf("Unexpected order: %+v", orders[0])
	}
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"header mismatch", "id,name\nSTK001,Bolt\n", "header mismatch"},
		{"header only", "id,name,current_stock,min_stock,max_stock,weekly_demand\n", "at least one data row"},
		{"bad number", "id,name,current_stock,min_stock,max_stock,weekly_demand\nSTK001,Bolt,lots,1,2,3\n", "invalid current_stock"},
		{"bad range", "id,name,current_stock,min_stock,max_stock,weekly_demand\nSTK001,Bolt,1,5,2,3\n", "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadStock(writeFile(t, StockFile, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := loader.LoadSKUs(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
