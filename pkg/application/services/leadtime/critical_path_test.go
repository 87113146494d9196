package leadtime

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
	"github.com/vsinha/pcp/pkg/infrastructure/repositories/memory"
)

func component(parent, id entities.SKUID, lead int) *entities.BOMItem {
	return &entities.BOMItem{
		ParentSKU:         parent,
		ComponentID:       id,
		ComponentName:     string(id),
		QuantityPerParent: decimal.NewFromInt(1),
		UnitCost:          decimal.RequireFromString("1.00"),
		LeadTimeDays:      lead,
		Supplier:          "MetalCorp",
		LotRule:           entities.LotRuleMinimum,
		LotSize:           10,
	}
}

// buildDriveAssembly: ASM(2) -> SUB(4) -> RAW1(10), RAW2(1); ASM -> BOLT(3)
func buildDriveAssembly(t *testing.T) *Service {
	t.Helper()
	skus := memory.NewSKURepository(1)
	err := skus.LoadSKUs([]*entities.SKU{
		{ID: "ASM", Name: "Drive assembly", Price: decimal.NewFromInt(100), LeadTimeDays: 2, Category: "Subassembly"},
	})
	if err != nil {
		t.Fatalf("Failed to load SKUs: %v", err)
	}

	bom := memory.NewBOMRepository(4)
	err = bom.LoadBOMItems([]*entities.BOMItem{
		component("ASM", "SUB", 4),
		component("ASM", "BOLT", 3),
		component("SUB", "RAW1", 10),
		component("SUB", "RAW2", 1),
	})
	if err != nil {
		t.Fatalf("Failed to load BOM: %v", err)
	}
	return NewService(skus, bom)
}

func TestAnalyze_RanksPaths(t *testing.T) {
	svc := buildDriveAssembly(t)

	analysis, err := svc.Analyze(context.Background(), "ASM", 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if analysis.TotalPaths != 3 {
		t.Errorf("Expected 3 paths, got %d", analysis.TotalPaths)
	}
	if len(analysis.TopPaths) != 2 {
		t.Errorf("Expected 2 top paths, got %d", len(analysis.TopPaths))
	}

	critical := analysis.CriticalPath
	if critical.TotalLeadTimeDays != 16 {
		t.Errorf("Expected critical path of 16 days, got %d", critical.TotalLeadTimeDays)
	}
	wantNodes := []entities.SKUID{"ASM", "SUB", "RAW1"}
	if len(critical.Nodes) != len(wantNodes) {
		t.Fatalf("Expected %d nodes, got %d", len(wantNodes), len(critical.Nodes))
	}
	for i, want := range wantNodes {
		if critical.Nodes[i].SKU != want || critical.Nodes[i].Level != i {
			t.Errorf("Node %d: expected %s at level %d, got %s at level %d", i, want, i, critical.Nodes[i].SKU, critical.Nodes[i].Level)
		}
	}
	if critical.Nodes[0].Name != "Drive assembly" {
		t.Errorf("Expected root name from catalog, got %q", critical.Nodes[0].Name)
	}

	if got := analysis.TopPaths[1].TotalLeadTimeDays; got != 7 {
		t.Errorf("Expected second path of 7 days, got %d", got)
	}
}

func TestAnalyze_AllPathsAndSubassembly(t *testing.T) {
	svc := buildDriveAssembly(t)

	all, err := svc.Analyze(context.Background(), "ASM", 0)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(all.TopPaths) != 3 {
		t.Errorf("Expected all 3 paths, got %d", len(all.TopPaths))
	}

	// SUB is not in the catalog but is a BOM parent
	sub, err := svc.Analyze(context.Background(), "SUB", 1)
	if err != nil {
		t.Fatalf("Analyze SUB failed: %v", err)
	}
	if sub.CriticalPath.TotalLeadTimeDays != 10 {
		t.Errorf("Expected 10 days below SUB, got %d", sub.CriticalPath.TotalLeadTimeDays)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	svc := buildDriveAssembly(t)

	if _, err := svc.Analyze(context.Background(), "NOPE", 1); !errors.Is(err, entities.ErrUnknownSKU) {
		t.Errorf("Expected ErrUnknownSKU, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Analyze(ctx, "ASM", 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	skus := memory.NewSKURepository(0)
	cyclic := &cyclicRepo{components: map[entities.SKUID][]*entities.BOMItem{
		"A": {component("A", "B", 1)},
		"B": {component("B", "A", 1)},
	}}
	if _, err := NewService(skus, cyclic).Analyze(context.Background(), "A", 1); !errors.Is(err, entities.ErrBOMCycle) {
		t.Errorf("Expected ErrBOMCycle, got %v", err)
	}
}

// cyclicRepo serves BOM lines without the load-time cycle check
type cyclicRepo struct {
	components map[entities.SKUID][]*entities.BOMItem
}

var _ repositories.BOMRepository = (*cyclicRepo)(nil)

func (r *cyclicRepo) GetComponents(parent entities.SKUID) ([]*entities.BOMItem, error) {
	return r.components[parent], nil
}

func (r *cyclicRepo) GetAllBOMItems() ([]*entities.BOMItem, error) { return nil, nil }

func (r *cyclicRepo) IsParent(id entities.SKUID) bool { return len(r.components[id]) > 0 }

func (r *cyclicRepo) LoadBOMItems(items []*entities.BOMItem) error { return nil }
