package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/services/bom_validator"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
	"github.com/vsinha/pcp/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/pcp/pkg/infrastructure/repositories/memory"
)

// Catalog holds the loaded, read-only planning data
type Catalog struct {
	SKUs     *memory.SKURepository
	Machines *memory.MachineRepository
	BOM      *memory.BOMRepository
	Stock    *memory.StockRepository
	Plan     *memory.PlanRepository
}

// Bootstrap loads every entity from CSV files in dataDir. An empty dataDir,
// or a missing file, falls back to the built-in dataset for that entity.
// Any malformed file or invalid entry aborts the load.
func Bootstrap(dataDir string, logger *logrus.Logger) (*Catalog, error) {
	loader := csv.NewLoader()
	c := &Catalog{
		SKUs:     memory.NewSKURepository(16),
		Machines: memory.NewMachineRepository(8),
		BOM:      memory.NewBOMRepository(16),
		Stock:    memory.NewStockRepository(),
		Plan:     memory.NewPlanRepository(),
	}

	skus, err := source(dataDir, csv.SKUsFile, logger, loader.LoadSKUs, BuiltinSKUs)
	if err != nil {
		return nil, err
	}
	if err := c.SKUs.LoadSKUs(skus); err != nil {
		return nil, fail(logger, "load SKUs", err)
	}

	machines, err := source(dataDir, csv.MachinesFile, logger, loader.LoadMachines, BuiltinMachines)
	if err != nil {
		return nil, err
	}
	if err := c.Machines.LoadMachines(machines); err != nil {
		return nil, fail(logger, "load machines", err)
	}

	bom, err := source(dataDir, csv.BOMFile, logger, loader.LoadBOM, BuiltinBOM)
	if err != nil {
		return nil, err
	}
	if err := c.BOM.LoadBOMItems(bom); err != nil {
		return nil, fail(logger, "load BOM", err)
	}
	warnOrphanedParents(c, logger)

	stock, err := source(dataDir, csv.StockFile, logger, loader.LoadStock, BuiltinStock)
	if err != nil {
		return nil, err
	}
	if err := c.Stock.LoadStockItems(stock); err != nil {
		return nil, fail(logger, "load stock", err)
	}

	periods, err := source(dataDir, csv.PlanFile, logger, loader.LoadPlan, BuiltinPeriods)
	if err != nil {
		return nil, err
	}
	if err := c.Plan.LoadPeriods(periods); err != nil {
		return nil, fail(logger, "load plan", err)
	}

	schedule, err := source(dataDir, csv.ScheduleFile, logger, loader.LoadSchedule, BuiltinSchedule)
	if err != nil {
		return nil, err
	}
	if err := c.Plan.LoadSchedule(schedule); err != nil {
		return nil, fail(logger, "load schedule", err)
	}

	orders, err := source(dataDir, csv.OrdersFile, logger, loader.LoadOrders, BuiltinOrders)
	if err != nil {
		return nil, err
	}
	if err := c.Plan.LoadProductionOrders(orders); err != nil {
		return nil, fail(logger, "load orders", err)
	}

	logger.WithFields(logrus.Fields{
		"skus":     len(skus),
		"machines": len(machines),
		"bom":      len(bom),
		"stock":    len(stock),
		"periods":  len(periods),
		"orders":   len(orders),
	}).Info("catalog loaded")
	return c, nil
}

// source reads one entity file, or the built-in data when it is absent
func source[T any](dataDir, file string, logger *logrus.Logger, load func(string) ([]T, error), builtin func() []T) ([]T, error) {
	if dataDir == "" {
		return builtin(), nil
	}

	path := filepath.Join(dataDir, file)
	items, err := load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.WithField("file", path).Debug("data file not found, using built-in data")
		return builtin(), nil
	}
	if err != nil {
		return nil, fail(logger, "read "+file, err)
	}
	logger.WithFields(logrus.Fields{"file": path, "rows": len(items)}).Debug("data file loaded")
	return items, nil
}

func fail(logger *logrus.Logger, context string, err error) error {
	logging.LogError(logger, "catalog", "Bootstrap", context, nil, err)
	return fmt.Errorf("failed to %s: %w", context, err)
}

// warnOrphanedParents logs BOM parents that are not catalog SKUs. Costing
// still works for them, so this is not fatal.
func warnOrphanedParents(c *Catalog, logger *logrus.Logger) {
	skus, _ := c.SKUs.GetAllSKUs()
	items, _ := c.BOM.GetAllBOMItems()

	skuValues := make([]entities.SKU, 0, len(skus))
	for _, s := range skus {
		skuValues = append(skuValues, *s)
	}
	itemValues := make([]entities.BOMItem, 0, len(items))
	for _, i := range items {
		itemValues = append(itemValues, *i)
	}

	result := bom_validator.ValidateBOMCatalogConsistency(itemValues, skuValues)
	if len(result.OrphanedParts) > 0 {
		logger.WithField("parents", result.OrphanedParts).Warn("BOM parents missing from SKU catalog")
	}
}

// SKUIDs lists the catalog's SKU ids in load order
func (c *Catalog) SKUIDs() ([]entities.SKUID, error) {
	skus, err := c.SKUs.GetAllSKUs()
	if err != nil {
		return nil, err
	}
	ids := make([]entities.SKUID, 0, len(skus))
	for _, s := range skus {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
