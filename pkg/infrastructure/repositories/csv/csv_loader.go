package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// File names looked up in a data directory
const (
	SKUsFile     = "skus.csv"
	MachinesFile = "machines.csv"
	BOMFile      = "bom.csv"
	StockFile    = "stock.csv"
	PlanFile     = "pmp.csv"
	ScheduleFile = "mps.csv"
	OrdersFile   = "orders.csv"
)

var (
	skuHeader      = []string{"id", "name", "description", "price", "lead_time_days", "category", "family"}
	machineHeader  = []string{"id", "name", "capacity_hours", "status", "efficiency", "utilization_rate", "is_bottleneck", "setup_minutes", "current_job"}
	bomHeader      = []string{"parent_sku", "component_id", "component_name", "quantity_per_parent", "unit_cost", "lead_time_days", "supplier", "lot_rule", "lot_size"}
	stockHeader    = []string{"id", "name", "current_stock", "min_stock", "max_stock", "weekly_demand"}
	planHeader     = []string{"period", "demand", "production", "initial_stock", "final_stock", "safety_buffer"}
	scheduleHeader = []string{"sku", "period", "planned_production", "actual_production", "status"}
	orderHeader    = []string{"id", "sku", "machine_id", "quantity", "start_time", "end_time", "status", "priority",
		"completed_percentage", "estimated_minutes", "actual_minutes", "scrap_quantity", "wip_quantity"}
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSKUs loads the SKU catalog from a CSV file
func (l *Loader) LoadSKUs(filename string) ([]*entities.SKU, error) {
	records, err := readRecords(filename, "SKUs", skuHeader)
	if err != nil {
		return nil, err
	}

	var skus []*entities.SKU
	for i, record := range records {
		price, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("SKUs CSV row %d: invalid price: %s", i+2, record[3])
		}
		leadTime, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("SKUs CSV row %d: invalid lead_time_days: %s", i+2, record[4])
		}

		sku, err := entities.NewSKU(entities.SKUID(record[0]), record[1], record[2], price, leadTime, record[5], record[6])
		if err != nil {
			return nil, fmt.Errorf("SKUs CSV row %d: %w", i+2, err)
		}
		skus = append(skus, sku)
	}
	return skus, nil
}

// LoadMachines loads machines from a CSV file
func (l *Loader) LoadMachines(filename string) ([]*entities.Machine, error) {
	records, err := readRecords(filename, "machines", machineHeader)
	if err != nil {
		return nil, err
	}

	var machines []*entities.Machine
	for i, record := range records {
		p := fieldParser{row: i + 2, kind: "machines", record: record, header: machineHeader}
		capacity := p.asFloat(2)
		status, statusErr := entities.ParseMachineStatus(record[3])
		efficiency := p.asFloat(4)
		utilization := p.asFloat(5)
		bottleneck := p.asBool(6)
		setup := p.asInt(7)
		if p.err != nil {
			return nil, p.err
		}
		if statusErr != nil {
			return nil, fmt.Errorf("machines CSV row %d: %w", i+2, statusErr)
		}

		machine, err := entities.NewMachine(record[0], record[1], capacity, status, efficiency, utilization, bottleneck, setup)
		if err != nil {
			return nil, fmt.Errorf("machines CSV row %d: %w", i+2, err)
		}
		machine.CurrentJob = record[8]
		machines = append(machines, machine)
	}
	return machines, nil
}

// LoadBOM loads BOM entries from a CSV file
func (l *Loader) LoadBOM(filename string) ([]*entities.BOMItem, error) {
	records, err := readRecords(filename, "BOM", bomHeader)
	if err != nil {
		return nil, err
	}

	var items []*entities.BOMItem
	for i, record := range records {
		qtyPer, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: invalid quantity_per_parent: %s", i+2, record[3])
		}
		unitCost, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: invalid unit_cost: %s", i+2, record[4])
		}
		p := fieldParser{row: i + 2, kind: "BOM", record: record, header: bomHeader}
		leadTime := p.asInt(5)
		lotSize := p.asQuantity(8)
		if p.err != nil {
			return nil, p.err
		}
		lotRule, err := entities.ParseLotRule(record[7])
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}

		item, err := entities.NewBOMItem(entities.SKUID(record[0]), entities.SKUID(record[1]), record[2],
			qtyPer, unitCost, leadTime, record[6], lotRule, lotSize)
		if err != nil {
			return nil, fmt.Errorf("BOM CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadStock loads stock snapshots from a CSV file
func (l *Loader) LoadStock(filename string) ([]*entities.StockItem, error) {
	records, err := readRecords(filename, "stock", stockHeader)
	if err != nil {
		return nil, err
	}

	var items []*entities.StockItem
	for i, record := range records {
		p := fieldParser{row: i + 2, kind: "stock", record: record, header: stockHeader}
		current := p.asQuantity(2)
		minStock := p.asQuantity(3)
		maxStock := p.asQuantity(4)
		weekly := p.asFloat(5)
		if p.err != nil {
			return nil, p.err
		}

		item, err := entities.NewStockItem(record[0], record[1], current, minStock, maxStock, weekly)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// LoadPlan loads master plan periods from a CSV file. final_stock is kept
// as given; the reconciler recomputes it when chaining.
func (l *Loader) LoadPlan(filename string) ([]entities.PMPItem, error) {
	records, err := readRecords(filename, "PMP", planHeader)
	if err != nil {
		return nil, err
	}

	var periods []entities.PMPItem
	for i, record := range records {
		p := fieldParser{row: i + 2, kind: "PMP", record: record, header: planHeader}
		period := entities.PMPItem{
			Period:       record[0],
			Demand:       p.asQuantity(1),
			Production:   p.asQuantity(2),
			InitialStock: p.asQuantity(3),
			FinalStock:   p.asQuantity(4),
			SafetyBuffer: p.asQuantity(5),
		}
		if p.err != nil {
			return nil, p.err
		}
		if err := period.Validate(); err != nil {
			return nil, fmt.Errorf("PMP CSV row %d: %w", i+2, err)
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// LoadSchedule loads master production schedule lines from a CSV file
func (l *Loader) LoadSchedule(filename string) ([]entities.MPSItem, error) {
	records, err := readRecords(filename, "MPS", scheduleHeader)
	if err != nil {
		return nil, err
	}

	var items []entities.MPSItem
	for i, record := range records {
		p := fieldParser{row: i + 2, kind: "MPS", record: record, header: scheduleHeader}
		planned := p.asQuantity(2)
		actual := p.asQuantity(3)
		if p.err != nil {
			return nil, p.err
		}
		status, err := entities.ParseMPSStatus(record[4])
		if err != nil {
			return nil, fmt.Errorf("MPS CSV row %d: %w", i+2, err)
		}
		items = append(items, entities.MPSItem{
			SKU:               entities.SKUID(record[0]),
			Period:            record[1],
			PlannedProduction: planned,
			ActualProduction:  actual,
			Status:            status,
		})
	}
	return items, nil
}

// LoadOrders loads production orders from a CSV file
func (l *Loader) LoadOrders(filename string) ([]entities.ProductionOrder, error) {
	records, err := readRecords(filename, "orders", orderHeader)
	if err != nil {
		return nil, err
	}

	var orders []entities.ProductionOrder
	for i, record := range records {
		p := fieldParser{row: i + 2, kind: "orders", record: record, header: orderHeader}
		order := entities.ProductionOrder{
			ID:                  record[0],
			SKU:                 entities.SKUID(record[1]),
			MachineID:           record[2],
			Quantity:            p.asQuantity(3),
			StartTime:           record[4],
			EndTime:             record[5],
			CompletedPercentage: p.asInt(8),
			EstimatedMinutes:    p.asInt(9),
			ActualMinutes:       p.asInt(10),
			ScrapQuantity:       p.asQuantity(11),
			WIPQuantity:         p.asQuantity(12),
		}
		if p.err != nil {
			return nil, p.err
		}
		if order.Status, err = entities.ParseOrderStatus(record[6]); err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		if order.Priority, err = entities.ParsePriority(record[7]); err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		if err := order.Validate(); err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Helper functions for parsing CSV records

// readRecords opens a CSV file, checks its header and returns the data rows
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// fieldParser parses numeric columns of one row, keeping the first error
type fieldParser struct {
	row    int
	kind   string
	record []string
	header []string
	err    error
}

func (p *fieldParser) fail(col int) {
	if p.err == nil {
		p.err = fmt.Errorf("%s CSV row %d: invalid %s: %s", p.kind, p.row, p.header[col], p.record[col])
	}
}

func (p *fieldParser) asInt(col int) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.record[col]))
	if err != nil {
		p.fail(col)
	}
	return v
}

func (p *fieldParser) asQuantity(col int) entities.Quantity {
	v, err := strconv.ParseInt(strings.TrimSpace(p.record[col]), 10, 64)
	if err != nil {
		p.fail(col)
	}
	return entities.Quantity(v)
}

func (p *fieldParser) asFloat(col int) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.record[col]), 64)
	if err != nil {
		p.fail(col)
	}
	return v
}

func (p *fieldParser) asBool(col int) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(p.record[col]))
	if err != nil {
		p.fail(col)
	}
	return v
}
