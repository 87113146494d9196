package inventory

import (
	"math"
	"testing"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		current  entities.Quantity
		minStock entities.Quantity
		maxStock entities.Quantity
		expected entities.StockStatus
	}{
		{"at critical boundary is low", 150, 200, 800, entities.StockLow},
		{"below critical boundary", 149, 200, 800, entities.StockCritical},
		{"normal band", 2500, 1000, 5000, entities.StockNormal},
		{"critical", 800, 1200, 4000, entities.StockCritical},
		{"exactly at critical boundary is low", 900, 1200, 4000, entities.StockLow},
		{"just below min", 1199, 1200, 4000, entities.StockLow},
		{"at min is normal", 1200, 1200, 4000, entities.StockNormal},
		{"at max is normal", 4000, 1200, 4000, entities.StockNormal},
		{"above max", 4001, 1200, 4000, entities.StockExcess},
		{"zero min never critical", 0, 0, 10, entities.StockNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.current, tt.minStock, tt.maxStock); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClassifier_ConfigurableBoundary(t *testing.T) {
	c, err := NewClassifier(1)
	if err != nil {
		t.Fatalf("NewClassifier failed: %v", err)
	}

	// with the boundary at min, anything below min is Critical
	if got := c.Classify(150, 200, 800); got != entities.StockCritical {
		t.Errorf("Expected Critical, got %s", got)
	}

	for _, bad := range []float64{0, -0.1, 1.5, math.NaN()} {
		if _, err := NewClassifier(bad); err == nil {
			t.Errorf("Expected error for ratio %v", bad)
		}
	}
}

func TestWeeksCoverage(t *testing.T) {
	if got := WeeksCoverage(100, 0); !math.IsInf(got, 1) {
		t.Errorf("Expected +Inf for zero demand, got %v", got)
	}
	if got := WeeksCoverage(100, -5); !math.IsInf(got, 1) {
		t.Errorf("Expected +Inf for negative demand, got %v", got)
	}
	if got := WeeksCoverage(2500, 1250); got != 2 {
		t.Errorf("Expected 2 weeks, got %v", got)
	}
}

func TestProgressRatio(t *testing.T) {
	tests := []struct {
		name     string
		current  entities.Quantity
		minStock entities.Quantity
		maxStock entities.Quantity
		expected float64
	}{
		{"midpoint", 3000, 1000, 5000, 50},
		{"below min clamps to zero", 500, 1000, 5000, 0},
		{"above max clamps to hundred", 6000, 1000, 5000, 100},
		{"degenerate band below", 5, 10, 10, 0},
		{"degenerate band at max", 10, 10, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressRatio(tt.current, tt.minStock, tt.maxStock); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClassifier_Assess(t *testing.T) {
	item := entities.StockItem{ID: "STK001", Name: "Bolt", CurrentStock: 2500, MinStock: 1000, MaxStock: 5000, WeeklyDemand: 1250}

	a := DefaultClassifier().Assess(item)

	if a.Status != entities.StockNormal {
		t.Errorf("Expected Normal, got %s", a.Status)
	}
	if float64(a.WeeksCoverage) != 2 {
		t.Errorf("Expected 2 weeks coverage, got %v", a.WeeksCoverage)
	}
	if a.NoDepletionRisk {
		t.Error("Expected depletion risk with positive demand")
	}
	if a.ProgressPercent != 37.5 {
		t.Errorf("Expected progress 37.5, got %v", a.ProgressPercent)
	}

	item.WeeklyDemand = 0
	if a := DefaultClassifier().Assess(item); !a.NoDepletionRisk {
		t.Error("Expected no depletion risk with zero demand")
	}
}
