package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsinha/pcp/pkg/application/services/lotsizing"
	"github.com/vsinha/pcp/pkg/application/services/orchestration"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/infrastructure/logging"
	"github.com/vsinha/pcp/pkg/interfaces/cli/output"
)

// NewRouter builds the read-only planning API
func NewRouter(svc *orchestration.PlanningService, defaultScenario string, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.GET("/skus", listSKUsHandler(svc, logger))
	api.GET("/skus/:id", getSKUHandler(svc))
	api.GET("/machines", listMachinesHandler(svc, logger))
	api.GET("/bom/:sku", explodeHandler(svc, logger))
	api.GET("/bom/:sku/cost", costHandler(svc, logger))
	api.GET("/bom/:sku/plan", materialPlanHandler(svc, logger))
	api.GET("/bom/:sku/leadtime", leadTimeHandler(svc, logger))
	api.GET("/stock", stockHandler(svc, logger))
	api.GET("/eoq", eoqHandler(svc))
	api.GET("/scenarios", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"scenarios": svc.Scenarios()})
	})
	api.GET("/pmp", pmpHandler(svc, defaultScenario, logger))
	api.GET("/mps", scheduleHandler(svc, logger))
	api.GET("/orders", ordersHandler(svc, logger))
	api.GET("/machines/load", machineLoadHandler(svc, logger))
	api.GET("/report.xlsx", reportHandler(svc, defaultScenario, logger))
	api.GET("/events", journalHandler(svc, logger))

	return router
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrUnknownSKU), errors.Is(err, entities.ErrUnknownMachine):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidEOQInput),
		errors.Is(err, entities.ErrInvalidQuantity),
		errors.Is(err, entities.ErrInvalidMultiplier),
		errors.Is(err, entities.ErrUnknownScenario):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, logger *logrus.Logger, funcName string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && logger != nil {
		logging.LogError(logger, "http", funcName, c.Request.URL.Path, nil, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func listSKUsHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		skus, err := svc.GetSKUs()
		if err != nil {
			fail(c, logger, "listSKUs", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"skus": skus})
	}
}

func getSKUHandler(svc *orchestration.PlanningService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sku, err := svc.GetSKU(entities.SKUID(c.Param("id")))
		if err != nil {
			fail(c, nil, "getSKU", err)
			return
		}
		c.JSON(http.StatusOK, sku)
	}
}

func listMachinesHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		machines, err := svc.GetMachines()
		if err != nil {
			fail(c, logger, "listMachines", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"machines": machines})
	}
}

func explodeHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Explode(entities.SKUID(c.Param("sku")))
		if err != nil {
			fail(c, logger, "explode", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sku": c.Param("sku"), "components": items})
	}
}

// costHandler returns the unit cost, or the cost of ?quantity= units
func costHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sku := entities.SKUID(c.Param("sku"))
		quantity := int64(1)
		if q := c.Query("quantity"); q != "" {
			parsed, err := strconv.ParseInt(q, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer"})
				return
			}
			quantity = parsed
		}

		cost, err := svc.TotalCostAtQuantity(sku, entities.Quantity(quantity))
		if err != nil {
			fail(c, logger, "cost", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sku": sku, "quantity": quantity, "cost": cost})
	}
}

// materialPlanHandler plans ?quantity= units needed on ?need_date= (YYYY-MM-DD, default today)
func materialPlanHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity, err := strconv.ParseInt(c.DefaultQuery("quantity", "1"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be an integer"})
			return
		}
		needDate := time.Now().UTC().Truncate(24 * time.Hour)
		if d := c.Query("need_date"); d != "" {
			if needDate, err = time.Parse("2006-01-02", d); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "need_date must be YYYY-MM-DD"})
				return
			}
		}

		plan, err := svc.PlanMaterials(c.Request.Context(), entities.SKUID(c.Param("sku")), entities.Quantity(quantity), needDate, nil)
		if err != nil {
			fail(c, logger, "materialPlan", err)
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

// leadTimeHandler ranks the ?top= (default 3) longest lead time paths
func leadTimeHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := strconv.Atoi(c.DefaultQuery("top", "3"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be an integer"})
			return
		}

		analysis, err := svc.LeadTimeAnalysis(c.Request.Context(), entities.SKUID(c.Param("sku")), top)
		if err != nil {
			fail(c, logger, "leadTime", err)
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}

func stockHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.AssessStock()
		if err != nil {
			fail(c, logger, "stock", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stock": items})
	}
}

type eoqQuery struct {
	Demand      float64 `form:"demand"`
	OrderCost   float64 `form:"order_cost"`
	HoldingCost float64 `form:"holding_cost"`
}

func eoqHandler(svc *orchestration.PlanningService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q eoqQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		report, err := svc.ComputeEOQ(lotsizing.EOQParams{Demand: q.Demand, OrderCost: q.OrderCost, HoldingCost: q.HoldingCost})
		if err != nil {
			fail(c, nil, "eoq", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func pmpHandler(svc *orchestration.PlanningService, defaultScenario string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := svc.ReconcilePlan(c.DefaultQuery("scenario", defaultScenario))
		if err != nil {
			fail(c, logger, "pmp", err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func scheduleHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := svc.ScheduleAdherence()
		if err != nil {
			fail(c, logger, "schedule", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"periods": summaries})
	}
}

func ordersHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.CostOrders()
		if err != nil {
			fail(c, logger, "orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func machineLoadHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		loads, err := svc.MachineLoads()
		if err != nil {
			fail(c, logger, "machineLoad", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"machines": loads})
	}
}

// reportHandler downloads the full planning snapshot as a workbook
func reportHandler(svc *orchestration.PlanningService, defaultScenario string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := svc.Snapshot(c.Request.Context(), c.DefaultQuery("scenario", defaultScenario))
		if err != nil {
			fail(c, logger, "report", err)
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=pcp-"+snap.RunID+".xlsx")
		if err := output.WriteXLSX(c.Writer, output.SnapshotReport(snap)); err != nil {
			logging.LogError(logger, "http", "report", snap.RunID, nil, err)
			c.Status(http.StatusInternalServerError)
		}
	}
}

// journalHandler lists recorded planning events from ?from= (0-based position)
func journalHandler(svc *orchestration.PlanningService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
		if err != nil || from < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a non-negative integer"})
			return
		}

		journal, err := svc.Journal(from)
		if err != nil {
			fail(c, logger, "journal", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"from": from, "events": journal})
	}
}
