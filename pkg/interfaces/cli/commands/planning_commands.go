package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/interfaces/cli/output"
)

// parse runs the flag set and hides -h from callers
func parse(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	if fs.NArg() > 0 {
		return false, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return false, nil
}

func runCatalog(ctx context.Context, a *App, args []string) error {
	var opts Options
	fs := a.flagSet("catalog", &opts)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	skus, err := env.Service.GetSKUs()
	if err != nil {
		return err
	}
	machines, err := env.Service.GetMachines()
	if err != nil {
		return err
	}

	return a.emit(env, opts, output.Report{
		RunID:  uuid.NewString(),
		Data:   map[string]any{"skus": skus, "machines": machines},
		Tables: []output.Table{output.SKUTable(skus), output.MachineTable(machines)},
	})
}

func runBOM(ctx context.Context, a *App, args []string) error {
	var opts Options
	var sku, needDate, onHand string
	var quantity int64
	var paths int
	fs := a.flagSet("bom", &opts)
	fs.StringVar(&sku, "sku", "", "SKU to explode (required)")
	fs.Int64Var(&quantity, "quantity", 0, "Plan material orders for this many units")
	fs.StringVar(&needDate, "need-date", "", "Date the finished units are needed, YYYY-MM-DD (default: today)")
	fs.StringVar(&onHand, "on-hand", "", "On-hand stock per component, e.g. SKU002:500,SKU003:20")
	fs.IntVar(&paths, "paths", 0, "Also rank the N longest lead time paths")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}
	if sku == "" {
		return fmt.Errorf("-sku is required")
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	breakdown, err := env.Service.CostBreakdown(entities.SKUID(sku))
	if err != nil {
		return err
	}

	data := map[string]any{"cost": breakdown}
	report := output.Report{
		RunID:  uuid.NewString(),
		Data:   data,
		Tables: []output.Table{output.CostTable(breakdown)},
	}

	if paths > 0 {
		analysis, err := env.Service.LeadTimeAnalysis(ctx, entities.SKUID(sku), paths)
		if err != nil {
			return err
		}
		data["lead_time"] = analysis
		report.Tables = append(report.Tables, output.LeadTimeTable(analysis))
	}

	if quantity != 0 {
		date := time.Now().UTC().Truncate(24 * time.Hour)
		if needDate != "" {
			if date, err = time.Parse("2006-01-02", needDate); err != nil {
				return fmt.Errorf("invalid -need-date %q: expected YYYY-MM-DD", needDate)
			}
		}
		stock, err := parseOnHand(onHand)
		if err != nil {
			return err
		}

		plan, err := env.Service.PlanMaterials(ctx, entities.SKUID(sku), entities.Quantity(quantity), date, stock)
		if err != nil {
			return err
		}
		data["plan"] = plan
		report.Tables = append(report.Tables, output.MaterialPlanTable(plan))
	}

	return a.emit(env, opts, report)
}

// parseOnHand reads "SKU:qty" pairs separated by commas
func parseOnHand(s string) (map[entities.SKUID]entities.Quantity, error) {
	pairs := splitList(s)
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[entities.SKUID]entities.Quantity, len(pairs))
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid -on-hand entry %q: expected SKU:quantity", pair)
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid -on-hand quantity for %s: %q", id, raw)
		}
		out[entities.SKUID(id)] = entities.Quantity(n)
	}
	return out, nil
}

func runStock(ctx context.Context, a *App, args []string) error {
	var opts Options
	fs := a.flagSet("stock", &opts)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	items, err := env.Service.AssessStock()
	if err != nil {
		return err
	}

	return a.emit(env, opts, output.Report{
		RunID:  uuid.NewString(),
		Data:   items,
		Tables: []output.Table{output.StockTable(items)},
	})
}

func runEOQ(ctx context.Context, a *App, args []string) error {
	var opts Options
	var params lotsizing.EOQParams
	fs := a.flagSet("eoq", &opts)
	fs.Float64Var(&params.Demand, "demand", 0, "Annual demand in units (required)")
	fs.Float64Var(&params.OrderCost, "order-cost", 0, "Fixed cost per order (required)")
	fs.Float64Var(&params.HoldingCost, "holding-cost", 0, "Yearly holding cost per unit (required)")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	report, err := env.Service.ComputeEOQ(params)
	if err != nil {
		return err
	}

	return a.emit(env, opts, output.Report{
		RunID:  uuid.NewString(),
		Data:   report,
		Tables: []output.Table{output.EOQTable(report)},
	})
}

func runPMP(ctx context.Context, a *App, args []string) error {
	var opts Options
	var scenario string
	fs := a.flagSet("pmp", &opts)
	fs.StringVar(&scenario, "scenario", "", "Demand scenario key (default: from config)")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	if scenario == "" {
		scenario = env.Config.Planning.DefaultScenario
	}

	plan, err := env.Service.ReconcilePlan(scenario)
	if err != nil {
		return err
	}
	schedule, err := env.Service.ScheduleAdherence()
	if err != nil {
		return err
	}

	if plan.DeficitPeriods > 0 {
		env.Logger.WithField("scenario", scenario).Warnf("%d period(s) end in deficit", plan.DeficitPeriods)
	}

	return a.emit(env, opts, output.Report{
		RunID:  uuid.NewString(),
		Data:   map[string]any{"plan": plan, "schedule": schedule},
		Tables: []output.Table{output.PlanTable(plan), output.ScheduleTable(schedule)},
	})
}

func runOrders(ctx context.Context, a *App, args []string) error {
	var opts Options
	fs := a.flagSet("orders", &opts)
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	orders, err := env.Service.CostOrders()
	if err != nil {
		return err
	}
	loads, err := env.Service.MachineLoads()
	if err != nil {
		return err
	}

	return a.emit(env, opts, output.Report{
		RunID:  uuid.NewString(),
		Data:   map[string]any{"orders": orders, "machine_loads": loads},
		Tables: []output.Table{output.OrderTable(orders), output.MachineLoadTable(loads)},
	})
}

func runReport(ctx context.Context, a *App, args []string) error {
	var opts Options
	var scenario string
	fs := a.flagSet("report", &opts)
	fs.StringVar(&scenario, "scenario", "", "Demand scenario key (default: from config)")
	if help, err := parse(fs, args); help || err != nil {
		return err
	}

	env, err := a.setup(opts)
	if err != nil {
		return err
	}
	if scenario == "" {
		scenario = env.Config.Planning.DefaultScenario
	}

	snapshot, err := env.Service.Snapshot(ctx, scenario)
	if err != nil {
		return err
	}
	env.Logger.WithField("run_id", snapshot.RunID).Info("planning snapshot generated")
	return a.emit(env, opts, output.SnapshotReport(snapshot))
}
