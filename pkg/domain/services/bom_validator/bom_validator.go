package bom_validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/pcp/pkg/domain/entities"
)

// ValidationResult contains the results of BOM validation
type ValidationResult struct {
	HasCycles      bool
	CyclePaths     [][]entities.SKUID
	DuplicateItems []entities.BOMItem
	InvalidItems   []entities.BOMItem
	OrphanedParts  []entities.SKUID
	Errors         []string
}

// Err folds the result into a single error. Cycles wrap ErrBOMCycle, bad entries
// wrap ErrInvalidBOMEntry.
func (r *ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	var sentinels []error
	if r.HasCycles {
		sentinels = append(sentinels, entities.ErrBOMCycle)
	}
	if len(r.InvalidItems) > 0 || len(r.DuplicateItems) > 0 {
		sentinels = append(sentinels, entities.ErrInvalidBOMEntry)
	}
	return fmt.Errorf("BOM validation failed: %w: %s", errors.Join(sentinels...), strings.Join(r.Errors, "; "))
}

// ValidateBOM performs comprehensive validation on a set of BOM items
func ValidateBOM(items []entities.BOMItem) *ValidationResult {
	result := &ValidationResult{
		CyclePaths:     make([][]entities.SKUID, 0),
		DuplicateItems: make([]entities.BOMItem, 0),
		InvalidItems:   make([]entities.BOMItem, 0),
		OrphanedParts:  make([]entities.SKUID, 0),
		Errors:         make([]string, 0),
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			result.InvalidItems = append(result.InvalidItems, item)
			// Err wraps the sentinel once for the whole result
			result.Errors = append(result.Errors, strings.TrimPrefix(err.Error(), entities.ErrInvalidBOMEntry.Error()+": "))
		}
	}

	adjacencyMap := buildAdjacencyMap(items)

	cycles := detectCycles(adjacencyMap)
	result.HasCycles = len(cycles) > 0
	result.CyclePaths = cycles

	result.DuplicateItems = detectDuplicateItems(items)

	for _, cycle := range result.CyclePaths {
		result.Errors = append(result.Errors, fmt.Sprintf("cycle %v", cycle))
	}

	if len(result.DuplicateItems) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Found %d duplicate BOM items", len(result.DuplicateItems)))
	}

	return result
}

// buildAdjacencyMap creates a map of parent -> component relationships
func buildAdjacencyMap(items []entities.BOMItem) map[entities.SKUID][]entities.SKUID {
	adjacencyMap := make(map[entities.SKUID][]entities.SKUID)

	for _, item := range items {
		children := adjacencyMap[item.ParentSKU]

		found := false
		for _, child := range children {
			if child == item.ComponentID {
				found = true
				break
			}
		}

		if !found {
			adjacencyMap[item.ParentSKU] = append(children, item.ComponentID)
		}
	}

	return adjacencyMap
}

// detectCycles uses DFS with a recursion stack to find cycles. Parents are
// visited in sorted order so the reported paths are stable.
func detectCycles(adjacencyMap map[entities.SKUID][]entities.SKUID) [][]entities.SKUID {
	visited := make(map[entities.SKUID]bool)
	recursionStack := make(map[entities.SKUID]bool)
	cycles := make([][]entities.SKUID, 0)

	parents := make([]entities.SKUID, 0, len(adjacencyMap))
	for parent := range adjacencyMap {
		parents = append(parents, parent)
	}
	sort.Slice(parents, func(i, j int) bool { return parents[i] < parents[j] })

	for _, parent := range parents {
		if !visited[parent] {
			dfsDetectCycle(parent, adjacencyMap, visited, recursionStack, nil, &cycles)
		}
	}

	return cycles
}

func dfsDetectCycle(
	current entities.SKUID,
	adjacencyMap map[entities.SKUID][]entities.SKUID,
	visited map[entities.SKUID]bool,
	recursionStack map[entities.SKUID]bool,
	path []entities.SKUID,
	cycles *[][]entities.SKUID,
) {
	visited[current] = true
	recursionStack[current] = true
	path = append(path, current)

	for _, child := range adjacencyMap[current] {
		if !visited[child] {
			dfsDetectCycle(child, adjacencyMap, visited, recursionStack, path, cycles)
		} else if recursionStack[child] {
			for i, part := range path {
				if part == child {
					cycle := make([]entities.SKUID, 0, len(path)-i+1)
					cycle = append(cycle, path[i:]...)
					cycle = append(cycle, child)
					*cycles = append(*cycles, cycle)
					break
				}
			}
		}
	}

	recursionStack[current] = false
}

// detectDuplicateItems finds BOM items repeating the same parent and component
func detectDuplicateItems(items []entities.BOMItem) []entities.BOMItem {
	seen := make(map[string]entities.BOMItem)
	duplicates := make([]entities.BOMItem, 0)

	for _, item := range items {
		key := fmt.Sprintf("%s|%s", item.ParentSKU, item.ComponentID)

		if existing, exists := seen[key]; exists {
			duplicates = append(duplicates, item, existing)
		} else {
			seen[key] = item
		}
	}

	return duplicates
}

// ValidateSKUUniqueness validates that SKU ids are unique across the catalog
func ValidateSKUUniqueness(skus []entities.SKU) *ValidationResult {
	result := &ValidationResult{
		Errors: make([]string, 0),
	}

	seen := make(map[entities.SKUID]bool)
	duplicates := make([]entities.SKUID, 0)

	for _, sku := range skus {
		if seen[sku.ID] {
			duplicates = append(duplicates, sku.ID)
		} else {
			seen[sku.ID] = true
		}
	}

	if len(duplicates) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate SKU ids found: %v", duplicates))
	}

	return result
}

// ValidateBOMCatalogConsistency reports BOM parents that are missing from the
// SKU catalog. Components are not required to be catalog SKUs since raw
// materials are bought, not sold.
func ValidateBOMCatalogConsistency(items []entities.BOMItem, skus []entities.SKU) *ValidationResult {
	result := &ValidationResult{
		OrphanedParts: make([]entities.SKUID, 0),
		Errors:        make([]string, 0),
	}

	known := make(map[entities.SKUID]bool, len(skus))
	for _, sku := range skus {
		known[sku.ID] = true
	}

	reported := make(map[entities.SKUID]bool)
	for _, item := range items {
		if !known[item.ParentSKU] && !reported[item.ParentSKU] {
			reported[item.ParentSKU] = true
			result.OrphanedParts = append(result.OrphanedParts, item.ParentSKU)
		}
	}

	if len(result.OrphanedParts) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("BOM parents missing from SKU catalog: %v", result.OrphanedParts))
	}

	return result
}
