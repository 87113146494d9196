package planning

import (
	"math"

	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
)

// Adherence is actual over planned production as a percentage with one
// decimal. Nothing planned yields 0.
func Adherence(item entities.MPSItem) float64 {
	return adherence(item.PlannedProduction, item.ActualProduction)
}

func adherence(planned, actual entities.Quantity) float64 {
	if planned <= 0 {
		return 0
	}
	return math.Round(float64(actual)/float64(planned)*1000) / 10
}

// SummarizeMPS groups schedule lines by period, keeping first-seen period order
func SummarizeMPS(items []entities.MPSItem) []dto.MPSSummary {
	index := make(map[string]int)
	var summaries []dto.MPSSummary

	for _, item := range items {
		i, ok := index[item.Period]
		if !ok {
			i = len(summaries)
			index[item.Period] = i
			summaries = append(summaries, dto.MPSSummary{Period: item.Period})
		}
		summaries[i].Planned += item.PlannedProduction
		summaries[i].Actual += item.ActualProduction
		summaries[i].Lines++
	}

	for i := range summaries {
		summaries[i].AdherencePercent = adherence(summaries[i].Planned, summaries[i].Actual)
	}
	return summaries
}
