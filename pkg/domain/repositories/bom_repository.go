package repositories

import "github.com/vsinha/pcp/pkg/domain/entities"

// BOMRepository provides access to Bill of Materials data
type BOMRepository interface {
	// GetComponents returns the direct components of a parent SKU.
	// An unknown parent yields an empty slice and no error.
	GetComponents(parent entities.SKUID) ([]*entities.BOMItem, error)
	GetAllBOMItems() ([]*entities.BOMItem, error)
	// IsParent reports whether the SKU has any BOM entries of its own.
	IsParent(id entities.SKUID) bool
	LoadBOMItems(items []*entities.BOMItem) error
}
