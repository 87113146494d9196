package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
)

func TestBootstrap_BuiltinDataset(t *testing.T) {
	c, err := Bootstrap("", logging.Discard())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	ids, err := c.SKUIDs()
	if err != nil {
		t.Fatalf("SKUIDs failed: %v", err)
	}
	if len(ids) != 10 || ids[0] != "SKU001" || ids[9] != "SKU010" {
		t.Errorf("Unexpected SKU ids: %v", ids)
	}

	machines, _ := c.Machines.GetAllMachines()
	if len(machines) != 5 {
		t.Errorf("Expected 5 machines, got %d", len(machines))
	}

	components, _ := c.BOM.GetComponents("SKU004")
	if len(components) != 1 || components[0].ComponentID != "RAW004" {
		t.Errorf("Unexpected SKU004 components: %v", components)
	}

	periods, _ := c.Plan.GetPeriods()
	if len(periods) != 6 {
		t.Errorf("Expected 6 periods, got %d", len(periods))
	}

	orders, _ := c.Plan.GetProductionOrders()
	if len(orders) != 5 {
		t.Errorf("Expected 5 orders, got %d", len(orders))
	}
}

func TestBootstrap_CSVOverridesAndFallback(t *testing.T) {
	dir := t.TempDir()
	stock := `id,name,current_stock,min_stock,max_stock,weekly_demand
STK900,Spring pin,10,20,40,5
`
	if err := os.WriteFile(filepath.Join(dir, "stock.csv"), []byte(stock), 0o644); err != nil {
		t.Fatalf("Failed to write stock.csv: %v", err)
	}

	c, err := Bootstrap(dir, logging.Discard())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	items, _ := c.Stock.GetAllStockItems()
	if len(items) != 1 || items[0].ID != "STK900" {
		t.Errorf("Expected stock from CSV, got %v", items)
	}

	skus, _ := c.SKUs.GetAllSKUs()
	if len(skus) != 10 {
		t.Errorf("Expected built-in SKUs when skus.csv is absent, got %d", len(skus))
	}
}

func TestBootstrap_RejectsInvalidBOM(t *testing.T) {
	dir := t.TempDir()
	bom := `parent_sku,component_id,component_name,quantity_per_parent,unit_cost,lead_time_days,supplier,lot_rule,lot_size
SKU001,RAW001,Steel bar,0.02,-1,5,Acos Brasil,EOQ,500
`
	if err := os.WriteFile(filepath.Join(dir, "bom.csv"), []byte(bom), 0o644); err != nil {
		t.Fatalf("Failed to write bom.csv: %v", err)
	}

	_, err := Bootstrap(dir, logging.Discard())
	if !errors.Is(err, entities.ErrInvalidBOMEntry) {
		t.Errorf("Expected ErrInvalidBOMEntry, got %v", err)
	}
}

func TestBootstrap_RejectsCyclicBOM(t *testing.T) {
	dir := t.TempDir()
	bom := `parent_sku,component_id,component_name,quantity_per_parent,unit_cost,lead_time_days,supplier,lot_rule,lot_size
SKU010,SKU004,Steel sheet,1,12.50,7,Internal,EOQ,25
SKU004,SKU010,Base frame,1,180,12,Internal,EOQ,1
`
	if err := os.WriteFile(filepath.Join(dir, "bom.csv"), []byte(bom), 0o644); err != nil {
		t.Fatalf("Failed to write bom.csv: %v", err)
	}

	_, err := Bootstrap(dir, logging.Discard())
	if !errors.Is(err, entities.ErrBOMCycle) {
		t.Errorf("Expected ErrBOMCycle, got %v", err)
	}
}
