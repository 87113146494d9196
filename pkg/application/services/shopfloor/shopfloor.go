package shopfloor

import (
	"fmt"
	"math"

	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/application/services/costing"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// Efficiency is produced over planned as a whole percentage; nothing planned yields 0
func Efficiency(planned, produced entities.Quantity) int {
	if planned <= 0 {
		return 0
	}
	return int(math.Round(float64(produced) / float64(planned) * 100))
}

// Produced estimates the good units of an order from its completion percentage
func Produced(order entities.ProductionOrder) entities.Quantity {
	return entities.Quantity(math.Round(float64(order.Quantity) * float64(order.CompletedPercentage) / 100))
}

// ScrapRate is scrapped over ordered quantity as a percentage with one decimal
func ScrapRate(order entities.ProductionOrder) float64 {
	if order.Quantity <= 0 {
		return 0
	}
	return math.Round(float64(order.ScrapQuantity)/float64(order.Quantity)*1000) / 10
}

// OrdersForMachine filters orders scheduled on a machine, preserving order
func OrdersForMachine(orders []entities.ProductionOrder, machineID string) []entities.ProductionOrder {
	var out []entities.ProductionOrder
	for _, o := range orders {
		if o.MachineID == machineID {
			out = append(out, o)
		}
	}
	return out
}

// MachineLoad sums the remaining work of the machine's open orders against
// its effective capacity. Each open order costs its estimate plus one setup.
func MachineLoad(machine entities.Machine, orders []entities.ProductionOrder) dto.MachineLoad {
	load := dto.MachineLoad{
		Machine:                machine,
		EffectiveCapacityHours: machine.CapacityHours * machine.Efficiency,
		AvailableHours:         machine.CapacityHours * (1 - machine.UtilizationRate),
	}

	for _, o := range OrdersForMachine(orders, machine.ID) {
		if o.Status == entities.OrderCompleted {
			continue
		}
		load.OpenOrders++
		load.PlannedMinutes += o.EstimatedMinutes + machine.SetupMinutes
	}

	if load.EffectiveCapacityHours > 0 {
		load.LoadPercent = math.Round(float64(load.PlannedMinutes)/60/load.EffectiveCapacityHours*1000) / 10
	}
	return load
}

// Service costs production orders against the SKU catalog and BOM
type Service struct {
	skuRepo repositories.SKURepository
	engine  *costing.Engine
}

// NewService creates a shop floor service
func NewService(skuRepo repositories.SKURepository, engine *costing.Engine) *Service {
	return &Service{skuRepo: skuRepo, engine: engine}
}

// CostOrder prices the material of an order's full quantity. The order's SKU
// must exist in the catalog.
func (s *Service) CostOrder(order entities.ProductionOrder) (dto.OrderCost, error) {
	if _, err := s.skuRepo.GetSKU(order.SKU); err != nil {
		return dto.OrderCost{}, fmt.Errorf("order %s: %w", order.ID, err)
	}

	cost, err := s.engine.TotalCostAtQuantity(order.SKU, order.Quantity)
	if err != nil {
		return dto.OrderCost{}, fmt.Errorf("order %s: %w", order.ID, err)
	}

	return dto.OrderCost{
		Order:             order,
		MaterialCost:      cost,
		EfficiencyPercent: Efficiency(order.Quantity, Produced(order)),
		ScrapPercent:      ScrapRate(order),
	}, nil
}

// CostOrders prices every order, stopping at the first failure
func (s *Service) CostOrders(orders []entities.ProductionOrder) ([]dto.OrderCost, error) {
	out := make([]dto.OrderCost, 0, len(orders))
	for _, o := range orders {
		c, err := s.CostOrder(o)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MachineLoads computes the load of every machine
func MachineLoads(machines []*entities.Machine, orders []entities.ProductionOrder) []dto.MachineLoad {
	out := make([]dto.MachineLoad, 0, len(machines))
	for _, m := range machines {
		out = append(out, MachineLoad(*m, orders))
	}
	return out
}
