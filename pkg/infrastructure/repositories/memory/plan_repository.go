package memory

import (
	"sync"

	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// PlanRepository provides in-memory storage for the master plan, the
// schedule and production orders
type PlanRepository struct {
	mu       sync.RWMutex
	periods  []entities.PMPItem
	schedule []entities.MPSItem
	orders   []entities.ProductionOrder
}

// NewPlanRepository creates a new in-memory plan repository
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{}
}

var _ repositories.PlanRepository = (*PlanRepository)(nil)

// LoadPeriods validates and appends plan periods in order
func (r *PlanRepository) LoadPeriods(periods []entities.PMPItem) error {
	for i := range periods {
		if err := periods[i].Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods = append(r.periods, periods...)
	return nil
}

// LoadSchedule appends schedule lines
func (r *PlanRepository) LoadSchedule(items []entities.MPSItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedule = append(r.schedule, items...)
	return nil
}

// LoadProductionOrders validates and appends production orders
func (r *PlanRepository) LoadProductionOrders(orders []entities.ProductionOrder) error {
	for i := range orders {
		if err := orders[i].Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, orders...)
	return nil
}

// GetPeriods returns a copy of the plan periods
func (r *PlanRepository) GetPeriods() ([]entities.PMPItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.PMPItem(nil), r.periods...), nil
}

// GetSchedule returns a copy of the schedule lines
func (r *PlanRepository) GetSchedule() ([]entities.MPSItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.MPSItem(nil), r.schedule...), nil
}

// GetProductionOrders returns a copy of the production orders
func (r *PlanRepository) GetProductionOrders() ([]entities.ProductionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.ProductionOrder(nil), r.orders...), nil
}
