package entities

import "errors"

// Sentinel errors shared by the planning packages. Callers match them with errors.Is;
// producers wrap them with fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidBOMEntry marks BOM data with a non-positive quantity, cost or lot size.
	// It is fatal at load time.
	ErrInvalidBOMEntry = errors.New("invalid BOM entry")

	// ErrInvalidEOQInput marks a non-positive demand, order cost or holding cost.
	ErrInvalidEOQInput = errors.New("invalid EOQ input")

	// ErrUnknownSKU is returned by operations that need the SKU's own attributes.
	// BOM explosion and costing never return it.
	ErrUnknownSKU = errors.New("unknown SKU")

	ErrUnknownMachine = errors.New("unknown machine")

	// ErrBOMCycle marks a component that is, directly or transitively, its own parent.
	ErrBOMCycle = errors.New("BOM cycle detected")

	ErrUnknownScenario   = errors.New("unknown scenario")
	ErrInvalidMultiplier = errors.New("invalid scenario multiplier")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidStock      = errors.New("invalid stock item")
	ErrInvalidCatalog    = errors.New("invalid catalog entry")
	ErrInvalidPlan       = errors.New("invalid plan period")
	ErrInvalidOrder      = errors.New("invalid production order")
)
