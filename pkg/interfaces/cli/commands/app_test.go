package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := NewApp(&stdout, &stderr).Run(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := run(t)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, name := range []string{"catalog", "bom", "stock", "eoq", "pmp", "orders", "report", "serve"} {
		if !strings.Contains(stderr, name) {
			t.Errorf("Expected usage to list %s", name)
		}
	}

	if _, _, err := run(t, "forecast"); err == nil {
		t.Error("Expected error for unknown command")
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bom without sku", []string{"bom"}},
		{"bad format", []string{"stock", "-format", "html"}},
		{"xlsx to stdout", []string{"stock", "-format", "xlsx"}},
		{"eoq zero demand", []string{"eoq", "-demand", "0", "-order-cost", "250", "-holding-cost", "15"}},
		{"unknown scenario", []string{"pmp", "-scenario", "boom"}},
		{"bad need date", []string{"bom", "-sku", "SKU001", "-quantity", "10", "-need-date", "15/01/2025"}},
		{"bad on hand", []string{"bom", "-sku", "SKU001", "-quantity", "10", "-on-hand", "RAW001"}},
		{"stray argument", []string{"catalog", "extra"}},
		{"missing config file", []string{"catalog", "-config", "does-not-exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := run(t, "eoq", "-h")
	if err != nil {
		t.Fatalf("Expected -h to succeed, got %v", err)
	}
	if !strings.Contains(stderr, "-holding-cost") {
		t.Errorf("Expected flag help, got %q", stderr)
	}
}

func TestRun_Catalog(t *testing.T) {
	stdout, _, err := run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	for _, want := range []string{"SKU001", "MAC001", "Run: "} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRun_EOQ_JSON(t *testing.T) {
	stdout, _, err := run(t, "eoq", "-demand", "12000", "-order-cost", "250", "-holding-cost", "15", "-format", "json")
	if err != nil {
		t.Fatalf("eoq failed: %v", err)
	}

	var body struct {
		RunID string         `json:"run_id"`
		Data  map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(stdout), &body); err != nil {
		t.Fatalf("Expected JSON output, got %v", err)
	}
	if body.RunID == "" {
		t.Error("Expected a run id")
	}
	result, ok := body.Data["result"].(map[string]any)
	if !ok {
		t.Fatalf("Expected result object, got %s", stdout)
	}
	if result["optimal_quantity"] != float64(632) {
		t.Errorf("Expected 632, got %v", result["optimal_quantity"])
	}
}

func TestRun_BOMWithPlan(t *testing.T) {
	stdout, _, err := run(t, "bom", "-sku", "SKU004", "-quantity", "10", "-need-date", "2025-03-01", "-format", "csv")
	if err != nil {
		t.Fatalf("bom failed: %v", err)
	}
	if !strings.Contains(stdout, "SKU004") {
		t.Errorf("Expected cost breakdown for SKU004, got %q", stdout)
	}
}

func TestRun_BOMLeadTime(t *testing.T) {
	stdout, _, err := run(t, "bom", "-sku", "SKU004", "-paths", "3")
	if err != nil {
		t.Fatalf("bom failed: %v", err)
	}
	if !strings.Contains(stdout, "SKU004(7) > RAW004(10)") {
		t.Errorf("Expected lead time path, got %q", stdout)
	}
}

func TestRun_PMP(t *testing.T) {
	stdout, _, err := run(t, "pmp", "-scenario", "growth")
	if err != nil {
		t.Fatalf("pmp failed: %v", err)
	}
	if !strings.Contains(stdout, "growth") {
		t.Errorf("Expected scenario in output, got %q", stdout)
	}
}

func TestRun_OrdersAndStock(t *testing.T) {
	for _, cmd := range []string{"orders", "stock"} {
		stdout, _, err := run(t, cmd)
		if err != nil {
			t.Fatalf("%s failed: %v", cmd, err)
		}
		if stdout == "" {
			t.Errorf("Expected %s output", cmd)
		}
	}
}

func TestRun_ReportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	_, stderr, err := run(t, "report", "-format", "xlsx", "-output", path)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(stderr, path) {
		t.Errorf("Expected saved path in stderr, got %q", stderr)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Expected a workbook, got %v", err)
	}
	defer f.Close()
	if got := len(f.GetSheetList()); got != 7 {
		t.Errorf("Expected 7 sheets, got %d", got)
	}
}

func TestRun_DataDirOverride(t *testing.T) {
	dir := t.TempDir()
	stock := "id,name,current_stock,min_stock,max_stock,weekly_demand\nSTK900,Spring pin,10,20,40,5\n"
	if err := os.WriteFile(filepath.Join(dir, "stock.csv"), []byte(stock), 0o644); err != nil {
		t.Fatalf("Failed to write stock.csv: %v", err)
	}

	stdout, _, err := run(t, "stock", "-data", dir)
	if err != nil {
		t.Fatalf("stock failed: %v", err)
	}
	if !strings.Contains(stdout, "STK900") || !strings.Contains(stdout, "Critical") {
		t.Errorf("Expected STK900 classified Critical, got %q", stdout)
	}
}

func TestParseOnHand(t *testing.T) {
	got, err := parseOnHand("RAW001:500, RAW002:0")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got["RAW001"] != 500 || got["RAW002"] != 0 || len(got) != 2 {
		t.Errorf("Expected RAW001=500 RAW002=0, got %v", got)
	}

	if got, err := parseOnHand(""); err != nil || got != nil {
		t.Errorf("Expected nil map for empty input, got %v, %v", got, err)
	}
	if _, err := parseOnHand("RAW001:-1"); err == nil {
		t.Error("Expected error for negative quantity")
	}
}
