package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/application/services/costing"
	"github.com/vsinha/pcp/pkg/application/services/inventory"
	"github.com/vsinha/pcp/pkg/application/services/leadtime"
	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/application/services/planning"
	"github.com/vsinha/pcp/pkg/application/services/shopfloor"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
	"github.com/vsinha/pcp/pkg/infrastructure/events"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
)

// Repositories groups the read-only catalog the planning service works on
type Repositories struct {
	SKUs     repositories.SKURepository
	Machines repositories.MachineRepository
	BOM      repositories.BOMRepository
	Stock    repositories.StockRepository
	Plan     repositories.PlanRepository
}

// Options configures the calculators behind the planning service. Zero
// values select the defaults.
type Options struct {
	CriticalRatio     float64
	SafetyStockPolicy lotsizing.SafetyStockPolicy
	StatusPolicy      planning.StatusPolicy
	Scenarios         []entities.Scenario
	CostCacheEntries  int
	// Journal records planning runs; nil disables it
	Journal events.EventStore
	// Logger receives journal failures; nil discards them
	Logger *logrus.Logger
}

// PlanningService is the single entry point used by the CLI and HTTP surfaces.
// Every consumer reads the same catalog through it.
type PlanningService struct {
	repos      Repositories
	engine     *costing.Engine
	classifier *inventory.Classifier
	eoq        *lotsizing.Calculator
	reconciler *planning.Reconciler
	shopfloor  *shopfloor.Service
	leadTimes  *leadtime.Service
	scenarios  []entities.Scenario
	journal    events.EventStore
	logger     *logrus.Logger
	now        func() time.Time
}

// NewPlanningService wires the calculators to the repositories
func NewPlanningService(repos Repositories, opts Options) (*PlanningService, error) {
	if repos.SKUs == nil || repos.Machines == nil || repos.BOM == nil || repos.Stock == nil || repos.Plan == nil {
		return nil, fmt.Errorf("all repositories are required")
	}

	classifier := inventory.DefaultClassifier()
	if opts.CriticalRatio != 0 {
		c, err := inventory.NewClassifier(opts.CriticalRatio)
		if err != nil {
			return nil, err
		}
		classifier = c
	}

	engine, err := costing.NewEngine(repos.BOM, opts.CostCacheEntries)
	if err != nil {
		return nil, err
	}

	scenarios := opts.Scenarios
	if len(scenarios) == 0 {
		scenarios = planning.DefaultScenarios()
	}
	for _, s := range scenarios {
		if err := planning.ValidateMultiplier(s.Multiplier); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Key, err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &PlanningService{
		repos:      repos,
		engine:     engine,
		classifier: classifier,
		eoq:        lotsizing.NewCalculator(opts.SafetyStockPolicy),
		reconciler: planning.NewReconciler(opts.StatusPolicy),
		shopfloor:  shopfloor.NewService(repos.SKUs, engine),
		leadTimes:  leadtime.NewService(repos.SKUs, repos.BOM),
		scenarios:  scenarios,
		journal:    opts.Journal,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// GetSKUs returns the SKU catalog in load order
func (s *PlanningService) GetSKUs() ([]*entities.SKU, error) {
	return s.repos.SKUs.GetAllSKUs()
}

// GetSKU returns one SKU; unknown ids fail with ErrUnknownSKU
func (s *PlanningService) GetSKU(id entities.SKUID) (*entities.SKU, error) {
	return s.repos.SKUs.GetSKU(id)
}

// GetMachines returns all machines in load order
func (s *PlanningService) GetMachines() ([]*entities.Machine, error) {
	return s.repos.Machines.GetAllMachines()
}

// LeadTime returns the SKU's own lead time in days
func (s *PlanningService) LeadTime(id entities.SKUID) (int, error) {
	sku, err := s.repos.SKUs.GetSKU(id)
	if err != nil {
		return 0, err
	}
	return sku.LeadTimeDays, nil
}

// LeadTimeAnalysis ranks the BOM paths of a SKU by cumulative lead time
func (s *PlanningService) LeadTimeAnalysis(ctx context.Context, id entities.SKUID, topN int) (*dto.LeadTimeAnalysis, error) {
	return s.leadTimes.Analyze(ctx, id, topN)
}

// LoadBOMItems adds BOM lines to the catalog and drops memoized costs.
// The repository rejects the whole batch on any invalid line or cycle.
func (s *PlanningService) LoadBOMItems(items []*entities.BOMItem) error {
	if err := s.repos.BOM.LoadBOMItems(items); err != nil {
		return err
	}
	s.engine.Purge()
	return nil
}

// Explode returns the direct components of a SKU
func (s *PlanningService) Explode(id entities.SKUID) ([]entities.BOMItem, error) {
	return s.engine.Explode(id)
}

// TotalCost is the unit material cost of a SKU
func (s *PlanningService) TotalCost(id entities.SKUID) (decimal.Decimal, error) {
	return s.engine.TotalCost(id)
}

// TotalCostAtQuantity is the material cost of a production quantity
func (s *PlanningService) TotalCostAtQuantity(id entities.SKUID, qty entities.Quantity) (decimal.Decimal, error) {
	return s.engine.TotalCostAtQuantity(id, qty)
}

// CostBreakdown returns a SKU's components with its unit cost
func (s *PlanningService) CostBreakdown(id entities.SKUID) (dto.CostBreakdown, error) {
	return s.engine.Breakdown(id)
}

// PlanMaterials nets and lot-sizes the multi-level requirements of a production quantity
func (s *PlanningService) PlanMaterials(ctx context.Context, id entities.SKUID, qty entities.Quantity,
	needDate time.Time, onHand map[entities.SKUID]entities.Quantity) (*dto.MaterialPlan, error) {
	plan, err := s.engine.PlanMaterials(ctx, id, qty, needDate, onHand)
	if err != nil {
		return nil, err
	}
	s.record(events.NewMaterialsPlannedEvent(events.MaterialsPlanned{
		SKU:       plan.SKU,
		Quantity:  plan.Quantity,
		NeedDate:  plan.NeedDate,
		Lines:     len(plan.Lines),
		TotalCost: plan.TotalCost,
	}, s.now()))
	return plan, nil
}

// Classify applies the configured stock thresholds
func (s *PlanningService) Classify(current, minStock, maxStock entities.Quantity) entities.StockStatus {
	return s.classifier.Classify(current, minStock, maxStock)
}

// WeeksCoverage is current stock over weekly demand; +Inf without demand
func (s *PlanningService) WeeksCoverage(current entities.Quantity, weeklyDemand float64) float64 {
	return inventory.WeeksCoverage(current, weeklyDemand)
}

// ProgressRatio places stock within its min/max band as a percentage
func (s *PlanningService) ProgressRatio(current, minStock, maxStock entities.Quantity) float64 {
	return inventory.ProgressRatio(current, minStock, maxStock)
}

// AssessStock classifies every stock snapshot
func (s *PlanningService) AssessStock() ([]dto.StockAssessment, error) {
	items, err := s.repos.Stock.GetAllStockItems()
	if err != nil {
		return nil, fmt.Errorf("failed to get stock items: %w", err)
	}
	assessments := s.classifier.AssessAll(items)
	for _, a := range assessments {
		if a.Status == entities.StockCritical {
			s.record(events.NewStockAlertRaisedEvent(events.StockAlertRaised{Item: a.Item, Status: a.Status}, s.now()))
		}
	}
	return assessments, nil
}

// ComputeEOQ sizes an order lot with the configured safety stock policy
func (s *PlanningService) ComputeEOQ(params lotsizing.EOQParams) (dto.EOQReport, error) {
	result, err := s.eoq.Compute(params)
	if err != nil {
		return dto.EOQReport{}, err
	}
	return dto.EOQReport{Params: params, Result: result, Policy: s.eoq.Policy().Name()}, nil
}

// Scenarios lists the configured demand scenarios
func (s *PlanningService) Scenarios() []entities.Scenario {
	out := make([]entities.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// ApplyScenario scales a period sequence by a multiplier
func (s *PlanningService) ApplyScenario(periods []entities.PMPItem, multiplier float64) ([]entities.PMPItem, error) {
	return planning.ApplyScenario(periods, multiplier)
}

// Status flags one period with the per-period rule
func (s *PlanningService) Status(period entities.PMPItem) entities.PeriodStatus {
	return planning.Status(period)
}

// ChainStocks enforces stock continuity across periods
func (s *PlanningService) ChainStocks(periods []entities.PMPItem) []entities.PMPItem {
	return planning.ChainStocks(periods)
}

// ReconcilePlan evaluates the stored master plan under the named scenario
func (s *PlanningService) ReconcilePlan(scenarioKey string) (*dto.PlanReport, error) {
	scenario, err := planning.FindScenario(s.scenarios, scenarioKey)
	if err != nil {
		return nil, err
	}

	periods, err := s.repos.Plan.GetPeriods()
	if err != nil {
		return nil, fmt.Errorf("failed to get plan periods: %w", err)
	}
	report, err := s.reconciler.Reconcile(periods, scenario)
	if err != nil {
		return nil, err
	}
	s.record(events.NewPlanReconciledEvent(events.PlanReconciled{
		Scenario:       report.Scenario,
		Policy:         report.Policy,
		DeficitPeriods: report.DeficitPeriods,
		EndingStock:    report.EndingStock,
	}, s.now()))
	return report, nil
}

// ScheduleAdherence summarizes the master production schedule by period
func (s *PlanningService) ScheduleAdherence() ([]dto.MPSSummary, error) {
	items, err := s.repos.Plan.GetSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return planning.SummarizeMPS(items), nil
}

// CostOrders prices the material of every released production order
func (s *PlanningService) CostOrders() ([]dto.OrderCost, error) {
	orders, err := s.repos.Plan.GetProductionOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get production orders: %w", err)
	}
	return s.shopfloor.CostOrders(orders)
}

// MachineLoads computes the open workload of every machine
func (s *PlanningService) MachineLoads() ([]dto.MachineLoad, error) {
	machines, err := s.repos.Machines.GetAllMachines()
	if err != nil {
		return nil, fmt.Errorf("failed to get machines: %w", err)
	}
	orders, err := s.repos.Plan.GetProductionOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get production orders: %w", err)
	}
	return shopfloor.MachineLoads(machines, orders), nil
}

// Snapshot computes every report in one pass under the named scenario
func (s *PlanningService) Snapshot(ctx context.Context, scenarioKey string) (*dto.PlanningSnapshot, error) {
	snap := &dto.PlanningSnapshot{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now(),
	}

	skus, err := s.GetSKUs()
	if err != nil {
		return nil, err
	}
	for _, sku := range skus {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snap.SKUs = append(snap.SKUs, *sku)

		breakdown, err := s.engine.Breakdown(sku.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to cost %s: %w", sku.ID, err)
		}
		snap.Costs = append(snap.Costs, breakdown)
	}

	machines, err := s.GetMachines()
	if err != nil {
		return nil, err
	}
	for _, m := range machines {
		snap.Machines = append(snap.Machines, *m)
	}

	if snap.Stock, err = s.AssessStock(); err != nil {
		return nil, err
	}
	if snap.Plan, err = s.ReconcilePlan(scenarioKey); err != nil {
		return nil, err
	}
	if snap.Schedule, err = s.ScheduleAdherence(); err != nil {
		return nil, err
	}
	if snap.Orders, err = s.CostOrders(); err != nil {
		return nil, err
	}
	if snap.MachineLoads, err = s.MachineLoads(); err != nil {
		return nil, err
	}

	s.record(events.NewSnapshotGeneratedEvent(events.SnapshotGenerated{
		RunID:    snap.RunID,
		Scenario: snap.Plan.Scenario.Key,
		SKUs:     len(snap.SKUs),
	}, snap.GeneratedAt))
	return snap, nil
}

// Journal returns recorded planning events from a position, oldest first
func (s *PlanningService) Journal(fromPosition int) ([]events.Event, error) {
	if s.journal == nil {
		return []events.Event{}, nil
	}
	return s.journal.ReadAllEvents(fromPosition)
}

func (s *PlanningService) record(event events.Event) {
	if s.journal == nil {
		return
	}
	if err := s.journal.AppendEvent(event.StreamID(), event); err != nil {
		logging.LogError(s.logger, "orchestration", "record", event.StreamID(), event.Type(), err)
	}
}
