package costing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// GrossRequirements explodes a production quantity through every BOM level.
// Components that have their own BOM entries are exploded further; each
// visited edge yields one requirement.
func (e *Engine) GrossRequirements(ctx context.Context, sku entities.SKUID, qty entities.Quantity) ([]dto.MaterialRequirement, error) {
	if qty < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative, got %d", entities.ErrInvalidQuantity, qty)
	}

	var out []dto.MaterialRequirement
	path := map[entities.SKUID]bool{sku: true}
	if err := e.explode(ctx, sku, decimal.NewFromInt(int64(qty)), 1, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) explode(ctx context.Context, parent entities.SKUID, qty decimal.Decimal, level int,
	path map[entities.SKUID]bool, out *[]dto.MaterialRequirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items, err := e.Explode(parent)
	if err != nil {
		return err
	}

	for _, item := range items {
		if path[item.ComponentID] {
			return fmt.Errorf("%w: %s -> %s", entities.ErrBOMCycle, parent, item.ComponentID)
		}

		gross := qty.Mul(item.QuantityPerParent)
		*out = append(*out, dto.MaterialRequirement{
			ComponentID:   item.ComponentID,
			ComponentName: item.ComponentName,
			Parent:        parent,
			Level:         level,
			Gross:         gross,
			UnitCost:      item.UnitCost,
			LeadTimeDays:  item.LeadTimeDays,
			Supplier:      item.Supplier,
			LotRule:       item.LotRule,
			LotSize:       item.LotSize,
		})

		if e.bomRepo.IsParent(item.ComponentID) {
			path[item.ComponentID] = true
			err := e.explode(ctx, item.ComponentID, gross, level+1, path, out)
			delete(path, item.ComponentID)
			if err != nil {
				return fmt.Errorf("failed to explode %s: %w", item.ComponentID, err)
			}
		}
	}
	return nil
}

// PlanMaterials turns the gross requirements of a production quantity into
// lot-sized purchase proposals. Requirements for the same component are
// summed, gross needs are rounded up to whole units and netted against
// onHand, and the order date is offset from needDate by the component's
// lead time.
func (e *Engine) PlanMaterials(ctx context.Context, sku entities.SKUID, qty entities.Quantity, needDate time.Time,
	onHand map[entities.SKUID]entities.Quantity) (*dto.MaterialPlan, error) {
	reqs, err := e.GrossRequirements(ctx, sku, qty)
	if err != nil {
		return nil, err
	}

	type agg struct {
		req   dto.MaterialRequirement
		gross decimal.Decimal
	}
	byComponent := make(map[entities.SKUID]*agg)
	var order []entities.SKUID
	for _, r := range reqs {
		a, ok := byComponent[r.ComponentID]
		if !ok {
			byComponent[r.ComponentID] = &agg{req: r, gross: r.Gross}
			order = append(order, r.ComponentID)
			continue
		}
		a.gross = a.gross.Add(r.Gross)
		if r.Level < a.req.Level {
			a.req.Level = r.Level
		}
	}

	plan := &dto.MaterialPlan{
		SKU:       sku,
		Quantity:  qty,
		NeedDate:  needDate,
		Lines:     make([]dto.MaterialPlanLine, 0, len(order)),
		TotalCost: decimal.Zero,
	}

	for _, id := range order {
		a := byComponent[id]
		gross := entities.Quantity(a.gross.Ceil().IntPart())
		available := onHand[id]
		net := gross - available
		if net < 0 {
			net = 0
		}
		final := lotsizing.ApplyLotRule(a.req.LotRule, net, a.req.LotSize)
		lineCost := a.req.UnitCost.Mul(decimal.NewFromInt(int64(final)))

		plan.Lines = append(plan.Lines, dto.MaterialPlanLine{
			ComponentID:   id,
			ComponentName: a.req.ComponentName,
			Level:         a.req.Level,
			GrossNeed:     gross,
			OnHand:        available,
			NetNeed:       net,
			LotRule:       a.req.LotRule,
			LotSize:       a.req.LotSize,
			FinalOrder:    final,
			NeedDate:      needDate,
			OrderDate:     needDate.AddDate(0, 0, -a.req.LeadTimeDays),
			LeadTimeDays:  a.req.LeadTimeDays,
			Supplier:      a.req.Supplier,
			UnitCost:      a.req.UnitCost,
			LineCost:      lineCost,
		})
		plan.TotalCost = plan.TotalCost.Add(lineCost)
	}

	sort.SliceStable(plan.Lines, func(i, j int) bool {
		if plan.Lines[i].Level != plan.Lines[j].Level {
			return plan.Lines[i].Level < plan.Lines[j].Level
		}
		return plan.Lines[i].ComponentID < plan.Lines[j].ComponentID
	})
	return plan, nil
}
