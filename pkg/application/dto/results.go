package dto

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// Weeks is a coverage figure that may be +Inf when there is no demand.
// JSON cannot carry infinities, so +Inf is rendered as null.
type Weeks float64

// IsInf reports whether the coverage is unbounded
func (w Weeks) IsInf() bool {
	return math.IsInf(float64(w), 1)
}

func (w Weeks) MarshalJSON() ([]byte, error) {
	if w.IsInf() || math.IsNaN(float64(w)) {
		return []byte("null"), nil
	}
	return json.Marshal(math.Round(float64(w)*10) / 10)
}

// StockAssessment holds the derived figures of a stock snapshot
type StockAssessment struct {
	Item            entities.StockItem   `json:"item"`
	WeeksCoverage   Weeks                `json:"weeks_coverage"`
	NoDepletionRisk bool                 `json:"no_depletion_risk"`
	Status          entities.StockStatus `json:"status"`
	ProgressPercent float64              `json:"progress_percent"`
}

// CostBreakdown lists the direct components of a SKU and their rolled up cost
type CostBreakdown struct {
	SKU        entities.SKUID     `json:"sku"`
	Components []entities.BOMItem `json:"components"`
	TotalCost  decimal.Decimal    `json:"total_cost"`
}

// MaterialRequirement is one gross requirement produced by BOM explosion
type MaterialRequirement struct {
	ComponentID   entities.SKUID    `json:"component_id"`
	ComponentName string            `json:"component_name"`
	Parent        entities.SKUID    `json:"parent"`
	Level         int               `json:"level"`
	Gross         decimal.Decimal   `json:"gross"`
	UnitCost      decimal.Decimal   `json:"unit_cost"`
	LeadTimeDays  int               `json:"lead_time_days"`
	Supplier      string            `json:"supplier"`
	LotRule       entities.LotRule  `json:"lot_rule"`
	LotSize       entities.Quantity `json:"lot_size"`
}

// MaterialPlanLine is a netted, lot-sized order proposal for one component
type MaterialPlanLine struct {
	ComponentID   entities.SKUID    `json:"component_id"`
	ComponentName string            `json:"component_name"`
	Level         int               `json:"level"`
	GrossNeed     entities.Quantity `json:"gross_need"`
	OnHand        entities.Quantity `json:"on_hand"`
	NetNeed       entities.Quantity `json:"net_need"`
	LotRule       entities.LotRule  `json:"lot_rule"`
	LotSize       entities.Quantity `json:"lot_size"`
	FinalOrder    entities.Quantity `json:"final_order"`
	NeedDate      time.Time         `json:"need_date"`
	OrderDate     time.Time         `json:"order_date"`
	LeadTimeDays  int               `json:"lead_time_days"`
	Supplier      string            `json:"supplier"`
	UnitCost      decimal.Decimal   `json:"unit_cost"`
	LineCost      decimal.Decimal   `json:"line_cost"`
}

// MaterialPlan is the material explosion of one production quantity
type MaterialPlan struct {
	SKU       entities.SKUID     `json:"sku"`
	Quantity  entities.Quantity  `json:"quantity"`
	NeedDate  time.Time          `json:"need_date"`
	Lines     []MaterialPlanLine `json:"lines"`
	TotalCost decimal.Decimal    `json:"total_cost"`
}

// PeriodResult is one reconciled plan period
type PeriodResult struct {
	entities.PMPItem
	Status            entities.PeriodStatus `json:"status"`
	BelowSafetyBuffer bool                  `json:"below_safety_buffer"`
	Backlog           bool                  `json:"backlog"`
}

// PlanReport is a master plan reconciled under one scenario
type PlanReport struct {
	Scenario        entities.Scenario `json:"scenario"`
	Policy          string            `json:"policy"`
	Periods         []PeriodResult    `json:"periods"`
	TotalDemand     entities.Quantity `json:"total_demand"`
	TotalProduction entities.Quantity `json:"total_production"`
	DeficitPeriods  int               `json:"deficit_periods"`
	EndingStock     entities.Quantity `json:"ending_stock"`
}

// MPSSummary aggregates schedule adherence for one period
type MPSSummary struct {
	Period           string            `json:"period"`
	Planned          entities.Quantity `json:"planned"`
	Actual           entities.Quantity `json:"actual"`
	AdherencePercent float64           `json:"adherence_percent"`
	Lines            int               `json:"lines"`
}

// MachineLoad summarizes a machine's capacity against its open orders
type MachineLoad struct {
	Machine                entities.Machine `json:"machine"`
	EffectiveCapacityHours float64          `json:"effective_capacity_hours"`
	AvailableHours         float64          `json:"available_hours"`
	OpenOrders             int              `json:"open_orders"`
	PlannedMinutes         int              `json:"planned_minutes"`
	LoadPercent            float64          `json:"load_percent"`
}

// OrderCost is the material cost and progress of one production order
type OrderCost struct {
	Order             entities.ProductionOrder `json:"order"`
	MaterialCost      decimal.Decimal          `json:"material_cost"`
	EfficiencyPercent int                      `json:"efficiency_percent"`
	ScrapPercent      float64                  `json:"scrap_percent"`
}

// EOQReport pairs EOQ inputs with their result
type EOQReport struct {
	Params lotsizing.EOQParams `json:"params"`
	Result lotsizing.EOQResult `json:"result"`
	Policy string              `json:"policy"`
}

// LeadTimeNode is one SKU or component on a lead time path
type LeadTimeNode struct {
	SKU          entities.SKUID `json:"sku"`
	Name         string         `json:"name"`
	Level        int            `json:"level"`
	LeadTimeDays int            `json:"lead_time_days"`
}

// LeadTimePath runs from the analyzed SKU down to one purchased leaf
type LeadTimePath struct {
	Nodes             []LeadTimeNode `json:"nodes"`
	TotalLeadTimeDays int            `json:"total_lead_time_days"`
}

// LeadTimeAnalysis ranks the BOM paths of a SKU by cumulative lead time.
// CriticalPath is the longest one.
type LeadTimeAnalysis struct {
	SKU          entities.SKUID `json:"sku"`
	CriticalPath LeadTimePath   `json:"critical_path"`
	TopPaths     []LeadTimePath `json:"top_paths"`
	TotalPaths   int            `json:"total_paths"`
}

// PlanningSnapshot is the combined read model rendered by the CLI and HTTP surfaces
type PlanningSnapshot struct {
	RunID        string             `json:"run_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	SKUs         []entities.SKU     `json:"skus"`
	Machines     []entities.Machine `json:"machines"`
	Costs        []CostBreakdown    `json:"costs"`
	Stock        []StockAssessment  `json:"stock"`
	Plan         *PlanReport        `json:"plan"`
	Schedule     []MPSSummary       `json:"schedule"`
	Orders       []OrderCost        `json:"orders"`
	MachineLoads []MachineLoad      `json:"machine_loads"`
}
