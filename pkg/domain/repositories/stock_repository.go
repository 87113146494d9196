package repositories

import "github.com/vsinha/pcp/pkg/domain/entities"

// StockRepository provides access to inventory snapshots
type StockRepository interface {
	GetStockItem(id string) (*entities.StockItem, error)
	GetAllStockItems() ([]*entities.StockItem, error)
	LoadStockItems(items []*entities.StockItem) error
}
