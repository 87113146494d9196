package leadtime

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vsinha/pcp/pkg/application/dto"
	"github.com/vsinha/pcp/pkg/domain/entities"
	"github.com/vsinha/pcp/pkg/domain/repositories"
)

// Service finds the BOM paths that dominate a SKU's replenishment time
type Service struct {
	skuRepo repositories.SKURepository
	bomRepo repositories.BOMRepository
}

// NewService creates a lead time service
func NewService(skuRepo repositories.SKURepository, bomRepo repositories.BOMRepository) *Service {
	return &Service{skuRepo: skuRepo, bomRepo: bomRepo}
}

// Analyze walks every root-to-leaf path under sku and returns the topN
// longest by cumulative lead time. topN <= 0 returns all paths.
func (s *Service) Analyze(ctx context.Context, sku entities.SKUID, topN int) (*dto.LeadTimeAnalysis, error) {
	root := dto.LeadTimeNode{SKU: sku}
	item, err := s.skuRepo.GetSKU(sku)
	switch {
	case err == nil:
		root.Name = item.Name
		root.LeadTimeDays = item.LeadTimeDays
	case errors.Is(err, entities.ErrUnknownSKU) && s.bomRepo.IsParent(sku):
		// intermediate assembly known only through the BOM
	default:
		return nil, err
	}

	paths, err := s.walk(ctx, []dto.LeadTimeNode{root}, root.LeadTimeDays, map[entities.SKUID]bool{sku: true})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze lead time for %s: %w", sku, err)
	}

	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].TotalLeadTimeDays != paths[j].TotalLeadTimeDays {
			return paths[i].TotalLeadTimeDays > paths[j].TotalLeadTimeDays
		}
		if len(paths[i].Nodes) != len(paths[j].Nodes) {
			return len(paths[i].Nodes) > len(paths[j].Nodes)
		}
		return leaf(paths[i]) < leaf(paths[j])
	})

	top := paths
	if topN > 0 && len(paths) > topN {
		top = paths[:topN]
	}
	return &dto.LeadTimeAnalysis{
		SKU:          sku,
		CriticalPath: paths[0],
		TopPaths:     top,
		TotalPaths:   len(paths),
	}, nil
}

func (s *Service) walk(ctx context.Context, prefix []dto.LeadTimeNode, total int, onPath map[entities.SKUID]bool) ([]dto.LeadTimePath, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current := prefix[len(prefix)-1].SKU
	components, err := s.bomRepo.GetComponents(current)
	if err != nil {
		return nil, fmt.Errorf("failed to get components for %s: %w", current, err)
	}
	if len(components) == 0 {
		nodes := make([]dto.LeadTimeNode, len(prefix))
		copy(nodes, prefix)
		return []dto.LeadTimePath{{Nodes: nodes, TotalLeadTimeDays: total}}, nil
	}

	var paths []dto.LeadTimePath
	for _, c := range components {
		if onPath[c.ComponentID] {
			return nil, fmt.Errorf("%w: %s reached again below %s", entities.ErrBOMCycle, c.ComponentID, current)
		}
		node := dto.LeadTimeNode{
			SKU:          c.ComponentID,
			Name:         c.ComponentName,
			Level:        len(prefix),
			LeadTimeDays: c.LeadTimeDays,
		}

		onPath[c.ComponentID] = true
		sub, err := s.walk(ctx, append(prefix[:len(prefix):len(prefix)], node), total+c.LeadTimeDays, onPath)
		delete(onPath, c.ComponentID)
		if err != nil {
			return nil, err
		}
		paths = append(paths, sub...)
	}
	return paths, nil
}

func leaf(p dto.LeadTimePath) entities.SKUID {
	return p.Nodes[len(p.Nodes)-1].SKU
}
