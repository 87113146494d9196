package lotsizing

import "github.com/vsinha/pcp/pkg/domain/entities"

// ApplyLotRule sizes an order for a net requirement. EOQ and Multiple round
// the net need up to whole lots; Minimum orders at least one lot. A zero net
// need never triggers an order.
func ApplyLotRule(rule entities.LotRule, net, lotSize entities.Quantity) entities.Quantity {
	if net <= 0 {
		return 0
	}
	if lotSize <= 0 {
		return net
	}

	switch rule {
	case entities.LotRuleEOQ, entities.LotRuleMultiple:
		lots := (net + lotSize - 1) / lotSize
		return lots * lotSize
	case entities.LotRuleMinimum:
		if net < lotSize {
			return lotSize
		}
		return net
	default:
		return net
	}
}
