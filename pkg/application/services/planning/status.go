package planning

import (
	"fmt"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

// StatusPolicy decides whether a period covers its demand
type StatusPolicy interface {
	Status(period entities.PMPItem) entities.PeriodStatus
	Name() string
}

// PerPeriod compares production against demand and ignores stock on hand
type PerPeriod struct{}

func (PerPeriod) Status(p entities.PMPItem) entities.PeriodStatus {
	if p.Production >= p.Demand {
		return entities.PeriodOK
	}
	return entities.PeriodDeficit
}

func (PerPeriod) Name() string { return "per_period" }

// CarryOver lets the opening stock cover a production shortfall
type CarryOver struct{}

func (CarryOver) Status(p entities.PMPItem) entities.PeriodStatus {
	if p.InitialStock+p.Production >= p.Demand {
		return entities.PeriodOK
	}
	return entities.PeriodDeficit
}

func (CarryOver) Name() string { return "carry_over" }

// Status flags a period with the default per-period rule
func Status(p entities.PMPItem) entities.PeriodStatus {
	return PerPeriod{}.Status(p)
}

// StatusPolicyByName resolves a configured policy name
func StatusPolicyByName(name string) (StatusPolicy, error) {
	switch name {
	case "", "per_period":
		return PerPeriod{}, nil
	case "carry_over":
		return CarryOver{}, nil
	default:
		return nil, fmt.Errorf("unknown status policy: %s (expected: per_period or carry_over)", name)
	}
}
