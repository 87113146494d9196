package costing

import (
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// DefaultCacheEntries bounds the per-SKU cost cache
const DefaultCacheEntries = 1024

// Engine explodes bills of materials and rolls up component costs.
// Computed unit costs are memoized per SKU; whoever loads more BOM lines into
// the repository must call Purge afterwards.
type Engine struct {
	bomRepo repositories.BOMRepository
	costs   *lru.Cache[entities.SKUID, decimal.Decimal]
}

// NewEngine creates a costing engine. cacheEntries <= 0 disables memoization.
func NewEngine(bomRepo repositories.BOMRepository, cacheEntries int) (*Engine, error) {
	if bomRepo == nil {
		return nil, fmt.Errorf("BOM repository is required")
	}

	e := &Engine{bomRepo: bomRepo}
	if cacheEntries > 0 {
		cache, err := lru.New[entities.SKUID, decimal.Decimal](cacheEntries)
		if err != nil {
			return nil, fmt.Errorf("failed to create cost cache: %w", err)
		}
		e.costs = cache
	}
	return e, nil
}

// Explode returns the direct components of a SKU ordered by component id.
// A SKU without BOM entries explodes to an empty list.
func (e *Engine) Explode(sku entities.SKUID) ([]entities.BOMItem, error) {
	components, err := e.bomRepo.GetComponents(sku)
	if err != nil {
		return nil, fmt.Errorf("failed to get components for %s: %w", sku, err)
	}

	items := make([]entities.BOMItem, 0, len(components))
	for _, c := range components {
		items = append(items, *c)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ComponentID < items[j].ComponentID
	})
	return items, nil
}

// TotalCost is the material cost of one unit of the SKU: the sum of unit
// cost times quantity per parent over its direct components.
func (e *Engine) TotalCost(sku entities.SKUID) (decimal.Decimal, error) {
	if e.costs != nil {
		if cost, ok := e.costs.Get(sku); ok {
			return cost, nil
		}
	}

	items, err := e.Explode(sku)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(items[i].ExtendedCost())
	}

	if e.costs != nil {
		e.costs.Add(sku, total)
	}
	return total, nil
}

// TotalCostAtQuantity scales the unit material cost by a produced quantity
func (e *Engine) TotalCostAtQuantity(sku entities.SKUID, produced entities.Quantity) (decimal.Decimal, error) {
	if produced < 0 {
		return decimal.Zero, fmt.Errorf("%w: produced quantity cannot be negative, got %d", entities.ErrInvalidQuantity, produced)
	}

	unit, err := e.TotalCost(sku)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(produced))), nil
}

// Breakdown returns the components of a SKU together with its unit cost
func (e *Engine) Breakdown(sku entities.SKUID) (dto.CostBreakdown, error) {
	items, err := e.Explode(sku)
	if err != nil {
		return dto.CostBreakdown{}, err
	}
	total, err := e.TotalCost(sku)
	if err != nil {
		return dto.CostBreakdown{}, err
	}
	return dto.CostBreakdown{SKU: sku, Components: items, TotalCost: total}, nil
}

// CachedEntries reports how many SKU costs are memoized
func (e *Engine) CachedEntries() int {
	if e.costs == nil {
		return 0
	}
	return e.costs.Len()
}

// Purge drops all memoized costs; call it after reloading the BOM
func (e *Engine) Purge() {
	if e.costs != nil {
		e.costs.Purge()
	}
}
