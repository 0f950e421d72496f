// Package trigger infers the intent of protective trigger orders. The
// underlying order records carry no intent field; whether an order is a take
// profit or a stop loss is decided purely from its numeric attributes and the
// direction of the position it would reduce.
package trigger

import "github.com/perpview/perpview/internal/domain"

// Label is the inferred intent of a trigger order.
type Label int

const (
	// LabelNone marks an order that does not classify against the position
	// at hand (wrong direction, or not a protective candidate at all).
	LabelNone Label = iota
	LabelTakeProfit
	LabelStopLoss
	// LabelTrigger marks a protective candidate on a market with no open
	// position to give it a take-profit or stop-loss meaning.
	LabelTrigger
)

func (l Label) String() string {
	switch l {
	case LabelTakeProfit:
		return "Take Profit"
	case LabelStopLoss:
		return "Stop Loss"
	case LabelTrigger:
		return "Trigger"
	default:
		return ""
	}
}

// IsCandidate reports whether an order is a protective-exit candidate:
// a reduce-only perp trigger order.
func IsCandidate(o domain.RawOrder) bool {
	if o.InstrumentClass != domain.ClassPerp {
		return false
	}
	if o.Category != domain.OrderTriggerMarket && o.Category != domain.OrderTriggerLimit {
		return false
	}
	return o.ReduceOnly
}

// Classify labels a candidate order against a position of the given side.
// Only opposite-direction candidates classify; everything else is LabelNone.
//
//	Long  + above -> Take Profit    Long  + below -> Stop Loss
//	Short + below -> Take Profit    Short + above -> Stop Loss
func Classify(side domain.PositionSide, o domain.RawOrder) Label {
	if !IsCandidate(o) {
		return LabelNone
	}

	opposite := (side == domain.SideLong && o.Direction == domain.DirectionShort) ||
		(side == domain.SideShort && o.Direction == domain.DirectionLong)
	if !opposite {
		return LabelNone
	}

	above := o.TriggerCondition == domain.TriggerAbove
	if (side == domain.SideLong) == above {
		return LabelTakeProfit
	}
	return LabelStopLoss
}

// ClassifyStandalone labels a candidate order without a fixed position
// reference: the market's current position, if open, anchors the decision
// table; otherwise the order is a bare trigger. Candidates that point the
// same way as the open position also fall back to LabelTrigger since they
// are not protective exits for it.
func ClassifyStandalone(current *domain.RawPosition, o domain.RawOrder) Label {
	if !IsCandidate(o) {
		return LabelNone
	}
	if current == nil || !current.IsOpen() {
		return LabelTrigger
	}
	if l := Classify(current.Side(), o); l != LabelNone {
		return l
	}
	return LabelTrigger
}
