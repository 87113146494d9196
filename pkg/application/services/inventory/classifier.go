package inventory

import (
	"fmt"
	"math"

	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// DefaultCriticalRatio is the share of minimum stock below which a level is Critical
const DefaultCriticalRatio = 0.75

// Classifier assigns a StockStatus to stock levels
type Classifier struct {
	criticalRatio float64
}

// NewClassifier creates a classifier with the given critical boundary, a
// fraction of minimum stock in (0,1]
func NewClassifier(criticalRatio float64) (*Classifier, error) {
	if !(criticalRatio > 0) || criticalRatio > 1 {
		return nil, fmt.Errorf("critical ratio must be in (0,1], got %g", criticalRatio)
	}
	return &Classifier{criticalRatio: criticalRatio}, nil
}

// DefaultClassifier returns a classifier using DefaultCriticalRatio
func DefaultClassifier() *Classifier {
	return &Classifier{criticalRatio: DefaultCriticalRatio}
}

// CriticalRatio returns the configured critical boundary
func (c *Classifier) CriticalRatio() float64 {
	return c.criticalRatio
}

// Classify applies the thresholds in priority order, first match wins:
// below min×ratio is Critical, below min is Low, above max is Excess.
func (c *Classifier) Classify(current, minStock, maxStock entities.Quantity) entities.StockStatus {
	switch {
	case float64(current) < float64(minStock)*c.criticalRatio:
		return entities.StockCritical
	case current < minStock:
		return entities.StockLow
	case current > maxStock:
		return entities.StockExcess
	default:
		return entities.StockNormal
	}
}

// Assess derives coverage, status and progress for a stock snapshot
func (c *Classifier) Assess(item entities.StockItem) dto.StockAssessment {
	coverage := WeeksCoverage(item.CurrentStock, item.WeeklyDemand)
	return dto.StockAssessment{
		Item:            item,
		WeeksCoverage:   dto.Weeks(coverage),
		NoDepletionRisk: math.IsInf(coverage, 1),
		Status:          c.Classify(item.CurrentStock, item.MinStock, item.MaxStock),
		ProgressPercent: ProgressRatio(item.CurrentStock, item.MinStock, item.MaxStock),
	}
}

// AssessAll assesses every snapshot, preserving order
func (c *Classifier) AssessAll(items []*entities.StockItem) []dto.StockAssessment {
	out := make([]dto.StockAssessment, 0, len(items))
	for _, item := range items {
		out = append(out, c.Assess(*item))
	}
	return out
}

var defaultClassifier = DefaultClassifier()

// Classify uses the default 0.75 critical boundary
func Classify(current, minStock, maxStock entities.Quantity) entities.StockStatus {
	return defaultClassifier.Classify(current, minStock, maxStock)
}

// WeeksCoverage returns how many weeks the current stock lasts at the given
// weekly demand. A zero (or negative) rate means no depletion: +Inf.
func WeeksCoverage(current entities.Quantity, weeklyDemandRate float64) float64 {
	if !(weeklyDemandRate > 0) {
		return math.Inf(1)
	}
	return float64(current) / weeklyDemandRate
}

// ProgressRatio places the current stock within the min/max band as a
// percentage clamped to [0,100]. A degenerate band (max == min) yields 100 at
// or above max and 0 below it.
func ProgressRatio(current, minStock, maxStock entities.Quantity) float64 {
	if maxStock == minStock {
		if current >= maxStock {
			return 100
		}
		return 0
	}
	ratio := float64(current-minStock) / float64(maxStock-minStock) * 100
	return math.Max(0, math.Min(100, ratio))
}
