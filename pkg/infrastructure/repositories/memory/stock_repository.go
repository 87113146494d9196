package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// StockRepository provides in-memory inventory snapshot storage
type StockRepository struct {
	mu       sync.RWMutex
	items    []entities.StockItem
	itemsMap map[string]int
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		items:    []entities.StockItem{},
		itemsMap: map[string]int{},
	}
}

var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadStockItems validates and loads stock snapshots
func (r *StockRepository) LoadStockItems(items []*entities.StockItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, exists := r.itemsMap[item.ID]; exists || seen[item.ID] {
			return fmt.Errorf("duplicate stock item id: %s", item.ID)
		}
		seen[item.ID] = true
	}

	for _, item := range items {
		r.itemsMap[item.ID] = len(r.items)
		r.items = append(r.items, *item)
	}
	return nil
}

// GetStockItem returns a copy of the stock snapshot with the given id
func (r *StockRepository) GetStockItem(id string) (*entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.itemsMap[id]
	if !exists {
		return nil, fmt.Errorf("stock item not found: %s", id)
	}
	item := r.items[index]
	return &item, nil
}

// GetAllStockItems returns copies of all stock snapshots in load order
func (r *StockRepository) GetAllStockItems() ([]*entities.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entities.StockItem, 0, len(r.items))
	for i := range r.items {
		item := r.items[i]
		items = append(items, &item)
	}
	return items, nil
}
