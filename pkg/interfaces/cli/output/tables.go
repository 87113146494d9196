package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

func qty(q entities.Quantity) string { return strconv.FormatInt(int64(q), 10) }

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func pct(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// SKUTable lists the SKU catalog
func SKUTable(skus []*entities.SKU) Table {
	t := Table{Title: "SKUs", Headers: []string{"ID", "Name", "Category", "Family", "Price", "Lead Time"}}
	for _, s := range skus {
		t.Rows = append(t.Rows, []string{string(s.ID), s.Name, s.Category, s.Family, s.Price.StringFixed(2), strconv.Itoa(s.LeadTimeDays)})
	}
	return t
}

// MachineTable lists machines
func MachineTable(machines []*entities.Machine) Table {
	t := Table{Title: "Machines", Headers: []string{"ID", "Name", "Status", "Capacity", "Efficiency", "Utilization", "Bottleneck", "Setup", "Job"}}
	for _, m := range machines {
		t.Rows = append(t.Rows, []string{m.ID, m.Name, m.Status.String(), num(m.CapacityHours), num(m.Efficiency),
			num(m.UtilizationRate), yesNo(m.IsBottleneck), strconv.Itoa(m.SetupMinutes), m.CurrentJob})
	}
	return t
}

// CostTable lists a SKU's components and its unit material cost
func CostTable(b dto.CostBreakdown) Table {
	t := Table{
		Title:   fmt.Sprintf("BOM %s", b.SKU),
		Headers: []string{"Component", "Name", "Qty Per", "Unit Cost", "Extended", "Lead Time", "Supplier", "Lot Rule", "Lot Size"},
	}
	for _, c := range b.Components {
		t.Rows = append(t.Rows, []string{string(c.ComponentID), c.ComponentName, c.QuantityPerParent.String(),
			c.UnitCost.String(), c.ExtendedCost().String(), strconv.Itoa(c.LeadTimeDays), c.Supplier,
			c.LotRule.String(), qty(c.LotSize)})
	}
	t.Rows = append(t.Rows, []string{"TOTAL", "", "", "", b.TotalCost.String(), "", "", "", ""})
	return t
}

// MaterialPlanTable lists netted, lot-sized material orders
func MaterialPlanTable(p *dto.MaterialPlan) Table {
	t := Table{
		Title: fmt.Sprintf("Material plan %s x %d", p.SKU, p.Quantity),
		Headers: []string{"Component", "Level", "Gross", "On Hand", "Net", "Rule", "Lot", "Order",
			"Order Date", "Need Date", "Supplier", "Cost"},
	}
	for _, l := range p.Lines {
		t.Rows = append(t.Rows, []string{string(l.ComponentID), strconv.Itoa(l.Level), qty(l.GrossNeed), qty(l.OnHand),
			qty(l.NetNeed), l.LotRule.String(), qty(l.LotSize), qty(l.FinalOrder), l.OrderDate.Format(dateLayout),
			l.NeedDate.Format(dateLayout), l.Supplier, l.LineCost.StringFixed(2)})
	}
	return t
}

// StockTable lists stock assessments
func StockTable(items []dto.StockAssessment) Table {
	t := Table{Title: "Stock", Headers: []string{"ID", "Name", "Current", "Min", "Max", "Weeks", "Status", "Progress %"}}
	for _, a := range items {
		weeks := "no demand"
		if !a.WeeksCoverage.IsInf() {
			weeks = pct(float64(a.WeeksCoverage))
		}
		t.Rows = append(t.Rows, []string{a.Item.ID, a.Item.Name, qty(a.Item.CurrentStock), qty(a.Item.MinStock),
			qty(a.Item.MaxStock), weeks, a.Status.String(), pct(a.ProgressPercent)})
	}
	return t
}

// EOQTable shows one lot sizing result
func EOQTable(r dto.EOQReport) Table {
	return Table{
		Title:   "EOQ",
		Headers: []string{"Demand", "Order Cost", "Holding Cost", "EOQ", "Annual Cost", "Orders/Year", "Safety Stock", "Policy"},
		Rows: [][]string{{num(r.Params.Demand), num(r.Params.OrderCost), num(r.Params.HoldingCost),
			strconv.FormatInt(r.Result.OptimalQuantity, 10), strconv.FormatInt(r.Result.TotalAnnualCost, 10),
			pct(r.Result.OrdersPerYear), strconv.FormatInt(r.Result.SafetyStock, 10), r.Policy}},
	}
}

// PlanTable lists reconciled master plan periods
func PlanTable(r *dto.PlanReport) Table {
	t := Table{
		Title:   fmt.Sprintf("PMP %s (x%s)", r.Scenario.Key, num(r.Scenario.Multiplier)),
		Headers: []string{"Period", "Demand", "Production", "Initial", "Final", "Safety", "Status", "Below Safety"},
	}
	for _, p := range r.Periods {
		t.Rows = append(t.Rows, []string{p.Period, qty(p.Demand), qty(p.Production), qty(p.InitialStock),
			qty(p.FinalStock), qty(p.SafetyBuffer), p.Status.String(), yesNo(p.BelowSafetyBuffer)})
	}
	t.Rows = append(t.Rows, []string{"TOTAL", qty(r.TotalDemand), qty(r.TotalProduction), "", qty(r.EndingStock), "",
		fmt.Sprintf("%d deficit", r.DeficitPeriods), ""})
	return t
}

// ScheduleTable lists MPS adherence by period
func ScheduleTable(summaries []dto.MPSSummary) Table {
	t := Table{Title: "MPS", Headers: []string{"Period", "Lines", "Planned", "Actual", "Adherence %"}}
	for _, s := range summaries {
		t.Rows = append(t.Rows, []string{s.Period, strconv.Itoa(s.Lines), qty(s.Planned), qty(s.Actual), pct(s.AdherencePercent)})
	}
	return t
}

// OrderTable lists production orders with their material cost
func OrderTable(orders []dto.OrderCost) Table {
	t := Table{
		Title:   "Production orders",
		Headers: []string{"ID", "SKU", "Machine", "Qty", "Status", "Priority", "Done %", "Efficiency %", "Scrap %", "Material Cost"},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{o.Order.ID, string(o.Order.SKU), o.Order.MachineID, qty(o.Order.Quantity),
			o.Order.Status.String(), o.Order.Priority.String(), strconv.Itoa(o.Order.CompletedPercentage),
			strconv.Itoa(o.EfficiencyPercent), pct(o.ScrapPercent), o.MaterialCost.StringFixed(2)})
	}
	return t
}

// MachineLoadTable lists machine workloads
func MachineLoadTable(loads []dto.MachineLoad) Table {
	t := Table{Title: "Machine load", Headers: []string{"Machine", "Status", "Effective h", "Available h", "Open", "Planned min", "Load %"}}
	for _, l := range loads {
		t.Rows = append(t.Rows, []string{l.Machine.ID, l.Machine.Status.String(), pct(l.EffectiveCapacityHours),
			pct(l.AvailableHours), strconv.Itoa(l.OpenOrders), strconv.Itoa(l.PlannedMinutes), pct(l.LoadPercent)})
	}
	return t
}

// LeadTimeTable lists the longest BOM paths, one row per path
func LeadTimeTable(a *dto.LeadTimeAnalysis) Table {
	t := Table{
		Title:   fmt.Sprintf("Lead time %s (%d paths)", a.SKU, a.TotalPaths),
		Headers: []string{"Rank", "Days", "Path"},
	}
	for i, p := range a.TopPaths {
		steps := make([]string, len(p.Nodes))
		for j, n := range p.Nodes {
			steps[j] = fmt.Sprintf("%s(%d)", n.SKU, n.LeadTimeDays)
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), strconv.Itoa(p.TotalLeadTimeDays), strings.Join(steps, " > ")})
	}
	return t
}

// SnapshotReport renders every section of a planning snapshot
func SnapshotReport(s *dto.PlanningSnapshot) Report {
	skus := make([]*entities.SKU, len(s.SKUs))
	for i := range s.SKUs {
		skus[i] = &s.SKUs[i]
	}
	machines := make([]*entities.Machine, len(s.Machines))
	for i := range s.Machines {
		machines[i] = &s.Machines[i]
	}

	tables := []Table{SKUTable(skus), MachineTable(machines), StockTable(s.Stock)}
	if s.Plan != nil {
		tables = append(tables, PlanTable(s.Plan))
	}
	tables = append(tables, ScheduleTable(s.Schedule), OrderTable(s.Orders), MachineLoadTable(s.MachineLoads))
	return Report{RunID: s.RunID, Data: s, Tables: tables}
}
