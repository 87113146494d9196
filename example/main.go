package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/application/services/orchestration"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/infrastructure/catalog"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
)

func main() {
	ctx := context.Background()

	logger, err := logging.New("warn", "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Built-in dataset
	c, err := catalog.Bootstrap("", logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := orchestration.NewPlanningService(orchestration.Repositories{
		SKUs:     c.SKUs,
		Machines: c.Machines,
		BOM:      c.BOM,
		Stock:    c.Stock,
		Plan:     c.Plan,
	}, orchestration.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sku := entities.SKUID("SKU004")
	cost, err := svc.TotalCost(sku)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Unit material cost of %s: %s\n\n", sku, cost.StringFixed(2))

	// Material orders for 500 units needed on the 1st of March
	needDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	plan, err := svc.PlanMaterials(ctx, sku, 500, needDate, map[entities.SKUID]entities.Quantity{"SKU002": 200})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Material plan for %d x %s (need %s):\n", plan.Quantity, plan.SKU, needDate.Format("2006-01-02"))
	for _, line := range plan.Lines {
		fmt.Printf("  L%d %-8s gross %6d  on hand %6d  net %6d  order %6d (%s) by %s\n",
			line.Level, line.ComponentID, line.GrossNeed, line.OnHand, line.NetNeed, line.FinalOrder,
			line.LotRule, line.OrderDate.Format("2006-01-02"))
	}
	fmt.Printf("  Total: %s\n\n", plan.TotalCost.StringFixed(2))

	eoq, err := svc.ComputeEOQ(lotsizing.EOQParams{Demand: 12000, OrderCost: 250, HoldingCost: 15})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("EOQ: %d units, %.1f orders/year, safety stock %d (%s)\n\n",
		eoq.Result.OptimalQuantity, eoq.Result.OrdersPerYear, eoq.Result.SafetyStock, eoq.Policy)

	for _, key := range []string{"baseline", "growth", "contraction"} {
		report, err := svc.ReconcilePlan(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Scenario %-11s demand %6d  production %6d  deficit periods %d  ending stock %d\n",
			report.Scenario.Key, report.TotalDemand, report.TotalProduction, report.DeficitPeriods, report.EndingStock)
	}
}
