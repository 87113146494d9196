package planning

import (
	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// Reconciler evaluates a master plan under a demand scenario
type Reconciler struct {
	policy StatusPolicy
}

// NewReconciler creates a reconciler; a nil policy means PerPeriod
func NewReconciler(policy StatusPolicy) *Reconciler {
	if policy == nil {
		policy = PerPeriod{}
	}
	return &Reconciler{policy: policy}
}

// Reconcile scales the periods by the scenario multiplier, chains the stock
// trajectory and flags every period.
func (r *Reconciler) Reconcile(periods []entities.PMPItem, scenario entities.Scenario) (*dto.PlanReport, error) {
	scaled, err := ApplyScenario(periods, scenario.Multiplier)
	if err != nil {
		return nil, err
	}
	chained := ChainStocks(scaled)

	report := &dto.PlanReport{
		Scenario: scenario,
		Policy:   r.policy.Name(),
		Periods:  make([]dto.PeriodResult, 0, len(chained)),
	}

	for _, p := range chained {
		status := r.policy.Status(p)
		if status == entities.PeriodDeficit {
			report.DeficitPeriods++
		}
		report.TotalDemand += p.Demand
		report.TotalProduction += p.Production
		report.Periods = append(report.Periods, dto.PeriodResult{
			PMPItem:           p,
			Status:            status,
			BelowSafetyBuffer: p.FinalStock < p.SafetyBuffer,
			Backlog:           p.FinalStock < 0,
		})
	}

	if n := len(chained); n > 0 {
		report.EndingStock = chained[n-1].FinalStock
	}
	return report, nil
}
