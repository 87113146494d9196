package lotsizing

import (
	"fmt"
	"math"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

// EOQParams holds the inputs of the economic order quantity model
type EOQParams struct {
	Demand      float64 `json:"demand"`       // annual units
	OrderCost   float64 `json:"order_cost"`   // fixed cost per order
	HoldingCost float64 `json:"holding_cost"` // cost of holding one unit for a year
}

// EOQResult holds the lot sizing figures for one EOQParams
type EOQResult struct {
	OptimalQuantity int64 `json:"optimal_quantity"`
	// TotalAnnualCost is the minimum ordering plus holding cost at the optimal
	// quantity. Purchase cost of the goods is not included.
	TotalAnnualCost int64   `json:"total_annual_cost"`
	OrdersPerYear   float64 `json:"orders_per_year"`
	SafetyStock     int64   `json:"safety_stock"`
}

// Calculator computes EOQ figures with a pluggable safety stock policy
type Calculator struct {
	policy SafetyStockPolicy
}

// NewCalculator creates a calculator. A nil policy falls back to DefaultSafetyStockPolicy.
func NewCalculator(policy SafetyStockPolicy) *Calculator {
	if policy == nil {
		policy = DefaultSafetyStockPolicy()
	}
	return &Calculator{policy: policy}
}

// Policy returns the safety stock policy in use
func (c *Calculator) Policy() SafetyStockPolicy {
	return c.policy
}

// Compute returns the EOQ figures for the given parameters
func (c *Calculator) Compute(params EOQParams) (EOQResult, error) {
	if err := params.Validate(); err != nil {
		return EOQResult{}, err
	}

	eoq := math.Sqrt(2 * params.Demand * params.OrderCost / params.HoldingCost)
	totalCost := math.Sqrt(2 * params.Demand * params.OrderCost * params.HoldingCost)
	if !representable(eoq) || !representable(totalCost) {
		return EOQResult{}, fmt.Errorf("%w: result out of range for demand %g, order cost %g, holding cost %g",
			entities.ErrInvalidEOQInput, params.Demand, params.OrderCost, params.HoldingCost)
	}

	return EOQResult{
		OptimalQuantity: int64(math.Round(eoq)),
		TotalAnnualCost: int64(math.Round(totalCost)),
		OrdersPerYear:   math.Round(params.Demand/eoq*10) / 10,
		SafetyStock:     c.policy.SafetyStock(eoq, params),
	}, nil
}

var defaultCalculator = NewCalculator(nil)

// ComputeEOQ computes EOQ figures with the default 20% safety stock heuristic
func ComputeEOQ(params EOQParams) (EOQResult, error) {
	return defaultCalculator.Compute(params)
}

// Validate rejects non-positive or non-finite inputs with ErrInvalidEOQInput
func (p EOQParams) Validate() error {
	if err := positiveFinite("demand", p.Demand); err != nil {
		return err
	}
	if err := positiveFinite("order cost", p.OrderCost); err != nil {
		return err
	}
	return positiveFinite("holding cost", p.HoldingCost)
}

// representable reports whether v rounds to a non-negative int64.
// float64(math.MaxInt64) is 2^63, which itself overflows.
func representable(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v < float64(math.MaxInt64)
}

func positiveFinite(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s must be a positive number, got %g", entities.ErrInvalidEOQInput, name, v)
	}
	return nil
}
