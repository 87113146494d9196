package lotsizing

import (
	"fmt"
	"math"
)

// SafetyStockPolicy derives a safety stock from the unrounded EOQ and its inputs
type SafetyStockPolicy interface {
	SafetyStock(eoq float64, params EOQParams) int64
	Name() string
}

// FractionOfEOQ holds a fixed share of the order quantity as safety stock.
// It has no statistical basis; ServiceLevel is the variance-driven alternative.
type FractionOfEOQ struct {
	Fraction float64
}

// DefaultSafetyStockPolicy returns the 20% of EOQ heuristic
func DefaultSafetyStockPolicy() SafetyStockPolicy {
	return FractionOfEOQ{Fraction: 0.2}
}

func (f FractionOfEOQ) SafetyStock(eoq float64, _ EOQParams) int64 {
	return int64(math.Round(eoq * f.Fraction))
}

func (f FractionOfEOQ) Name() string { return "fraction" }

// ServiceLevel computes z × σ(demand per period) × √(lead time in periods)
type ServiceLevel struct {
	Z               float64
	DemandStdDev    float64
	LeadTimePeriods float64
}

func (s ServiceLevel) SafetyStock(_ float64, _ EOQParams) int64 {
	if s.Z <= 0 || s.DemandStdDev <= 0 || s.LeadTimePeriods <= 0 {
		return 0
	}
	return int64(math.Round(s.Z * s.DemandStdDev * math.Sqrt(s.LeadTimePeriods)))
}

func (s ServiceLevel) Name() string { return "service_level" }

// PolicyByName builds a policy from configuration values
func PolicyByName(name string, fraction, z, demandStdDev, leadTimePeriods float64) (SafetyStockPolicy, error) {
	switch name {
	case "", "fraction":
		if !(fraction > 0) || fraction > 1 {
			return nil, fmt.Errorf("safety stock fraction must be in (0,1], got %g", fraction)
		}
		return FractionOfEOQ{Fraction: fraction}, nil
	case "service_level":
		if !(z > 0) || math.IsInf(z, 1) {
			return nil, fmt.Errorf("service level z must be positive, got %g", z)
		}
		if !(demandStdDev >= 0) || !(leadTimePeriods >= 0) {
			return nil, fmt.Errorf("service level demand deviation and lead time cannot be negative")
		}
		return ServiceLevel{Z: z, DemandStdDev: demandStdDev, LeadTimePeriods: leadTimePeriods}, nil
	default:
		return nil, fmt.Errorf("unknown safety stock policy: %s (expected: fraction or service_level)", name)
	}
}
