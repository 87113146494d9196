package repositories

import "github.com/vsinha/pcp/pkg/domain/entities"

// PlanRepository provides access to the master plan, the schedule and
// released production orders
type PlanRepository interface {
	GetPeriods() ([]entities.PMPItem, error)
	GetSchedule() ([]entities.MPSItem, error)
	GetProductionOrders() ([]entities.ProductionOrder, error)
	LoadPeriods(periods []entities.PMPItem) error
	LoadSchedule(items []entities.MPSItem) error
	LoadProductionOrders(orders []entities.ProductionOrder) error
}
