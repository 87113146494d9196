package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
	"github.com/vsinha/pcp/pkg/domain/services/bom_validator"
)

// BOMRepository provides in-memory BOM storage indexed by parent SKU
type BOMRepository struct {
	mu         sync.RWMutex
	bomItems   []entities.BOMItem
	bomIndexes map[entities.SKUID][]int
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedBOMItems int) *BOMRepository {
	return &BOMRepository{
		bomItems:   make([]entities.BOMItem, 0, expectedBOMItems),
		bomIndexes: make(map[entities.SKUID][]int),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMItems validates the combined BOM (existing plus new items) and loads
// the new items only if every entry is valid and the graph stays acyclic.
func (r *BOMRepository) LoadBOMItems(items []*entities.BOMItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	combined := make([]entities.BOMItem, 0, len(r.bomItems)+len(items))
	combined = append(combined, r.bomItems...)
	for _, item := range items {
		combined = append(combined, *item)
	}

	if err := bom_validator.ValidateBOM(combined).Err(); err != nil {
		return fmt.Errorf("failed to load BOM items: %w", err)
	}

	for _, item := range items {
		r.addBOMItem(*item)
	}
	return nil
}

func (r *BOMRepository) addBOMItem(item entities.BOMItem) {
	index := len(r.bomItems)
	r.bomItems = append(r.bomItems, item)
	r.bomIndexes[item.ParentSKU] = append(r.bomIndexes[item.ParentSKU], index)
}

// GetComponents returns the direct components of a parent SKU in load order
func (r *BOMRepository) GetComponents(parent entities.SKUID) ([]*entities.BOMItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexes, exists := r.bomIndexes[parent]
	if !exists {
		return []*entities.BOMItem{}, nil
	}

	items := make([]*entities.BOMItem, 0, len(indexes))
	for _, index := range indexes {
		item := r.bomItems[index]
		items = append(items, &item)
	}
	return items, nil
}

// IsParent reports whether the SKU has BOM entries
func (r *BOMRepository) IsParent(id entities.SKUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.bomIndexes[id]
	return exists
}

// GetAllBOMItems returns copies of all BOM items
func (r *BOMRepository) GetAllBOMItems() ([]*entities.BOMItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entities.BOMItem, 0, len(r.bomItems))
	for i := range r.bomItems {
		item := r.bomItems[i]
		items = append(items, &item)
	}
	return items, nil
}
