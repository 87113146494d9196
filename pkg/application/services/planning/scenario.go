package planning

import (
	"fmt"
	"math"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

// DefaultScenarios returns the built-in demand scenarios
func DefaultScenarios() []entities.Scenario {
	return []entities.Scenario{
		{Key: "baseline", Label: "Baseline", Multiplier: 1.0},
		{Key: "growth", Label: "Growth", Multiplier: 1.2},
		{Key: "contraction", Label: "Contraction", Multiplier: 0.8},
	}
}

// FindScenario looks a scenario up by key
func FindScenario(scenarios []entities.Scenario, key string) (entities.Scenario, error) {
	for _, s := range scenarios {
		if s.Key == key {
			return s, nil
		}
	}
	return entities.Scenario{}, fmt.Errorf("%w: %s", entities.ErrUnknownScenario, key)
}

// ValidateMultiplier rejects multipliers that are not finite and positive
func ValidateMultiplier(multiplier float64) error {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier <= 0 {
		return fmt.Errorf("%w: must be finite and positive, got %g", entities.ErrInvalidMultiplier, multiplier)
	}
	return nil
}

// ApplyScenario returns a new period sequence with every quantity scaled by
// multiplier and rounded half away from zero. The input is not modified.
func ApplyScenario(periods []entities.PMPItem, multiplier float64) ([]entities.PMPItem, error) {
	if err := ValidateMultiplier(multiplier); err != nil {
		return nil, err
	}

	scale := func(q entities.Quantity) entities.Quantity {
		return entities.Quantity(math.Round(float64(q) * multiplier))
	}

	scaled := make([]entities.PMPItem, len(periods))
	for i, p := range periods {
		scaled[i] = entities.PMPItem{
			Period:       p.Period,
			Demand:       scale(p.Demand),
			Production:   scale(p.Production),
			InitialStock: scale(p.InitialStock),
			FinalStock:   scale(p.FinalStock),
			SafetyBuffer: scale(p.SafetyBuffer),
		}
	}
	return scaled, nil
}

// ChainStocks enforces stock continuity: the first period keeps its initial
// stock, every final stock is initial + production - demand and each later
// period starts from the previous final stock. Negative final stock is kept
// as a backlog.
func ChainStocks(periods []entities.PMPItem) []entities.PMPItem {
	chained := make([]entities.PMPItem, len(periods))
	copy(chained, periods)

	for i := range chained {
		if i > 0 {
			chained[i].InitialStock = chained[i-1].FinalStock
		}
		chained[i].FinalStock = chained[i].InitialStock + chained[i].Production - chained[i].Demand
	}
	return chained
}
