package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
	"github.com/vsinha/pcp/pkg/domain/services/bom_validator"
)

// SKURepository provides in-memory SKU catalog storage
type SKURepository struct {
	mu      sync.RWMutex
	skus    []entities.SKU
	skusMap map[entities.SKUID]int
}

// NewSKURepository creates a new in-memory SKU repository
func NewSKURepository(expectedSKUs int) *SKURepository {
	return &SKURepository{
		skus:    make([]entities.SKU, 0, expectedSKUs),
		skusMap: make(map[entities.SKUID]int, expectedSKUs),
	}
}

// Verify interface compliance
var _ repositories.SKURepository = (*SKURepository)(nil)

// LoadSKUs validates and loads SKUs. The whole batch is rejected if any SKU is
// invalid or its id is already taken.
func (r *SKURepository) LoadSKUs(skus []*entities.SKU) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make([]entities.SKU, 0, len(r.skus)+len(skus))
	batch = append(batch, r.skus...)
	for _, sku := range skus {
		if err := sku.Validate(); err != nil {
			return err
		}
		batch = append(batch, *sku)
	}

	result := bom_validator.ValidateSKUUniqueness(batch)
	if len(result.Errors) > 0 {
		return fmt.Errorf("failed to load SKUs: %s", strings.Join(result.Errors, "; "))
	}

	for _, sku := range skus {
		r.skusMap[sku.ID] = len(r.skus)
		r.skus = append(r.skus, *sku)
	}
	return nil
}

// GetSKU returns a copy of the SKU with the given id
func (r *SKURepository) GetSKU(id entities.SKUID) (*entities.SKU, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.skusMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownSKU, id)
	}
	sku := r.skus[index]
	return &sku, nil
}

// GetAllSKUs returns copies of all SKUs in load order
func (r *SKURepository) GetAllSKUs() ([]*entities.SKU, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skus := make([]*entities.SKU, 0, len(r.skus))
	for i := range r.skus {
		sku := r.skus[i]
		skus = append(skus, &sku)
	}
	return skus, nil
}
