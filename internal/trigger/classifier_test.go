package trigger

import (
	"testing"

	"github.com/perpview/perpview/internal/domain"
)

func candidate(dir domain.OrderDirection, cond domain.TriggerCondition) domain.RawOrder {
	return domain.RawOrder{
		MarketIndex:      0,
		Direction:        dir,
		Category:         domain.OrderTriggerMarket,
		TriggerCondition: cond,
		ReduceOnly:       true,
		InstrumentClass:  domain.ClassPerp,
	}
}

func TestIsCandidate(t *testing.T) {
	tests := []struct {
		name  string
		order domain.RawOrder
		want  bool
	}{
		{"trigger market reduce-only perp", candidate(domain.DirectionShort, domain.TriggerAbove), true},
		{"trigger limit", func() domain.RawOrder {
			o := candidate(domain.DirectionShort, domain.TriggerAbove)
			o.Category = domain.OrderTriggerLimit
			return o
		}(), true},
		{"plain limit", func() domain.RawOrder {
			o := candidate(domain.DirectionShort, domain.TriggerAbove)
			o.Category = domain.OrderLimit
			return o
		}(), false},
		{"not reduce-only", func() domain.RawOrder {
			o := candidate(domain.DirectionShort, domain.TriggerAbove)
			o.ReduceOnly = false
			return o
		}(), false},
		{"spot order", func() domain.RawOrder {
			o := candidate(domain.DirectionShort, domain.TriggerAbove)
			o.InstrumentClass = domain.ClassSpot
			return o
		}(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCandidate(tt.order); got != tt.want {
				t.Errorf("IsCandidate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyDecisionTable(t *testing.T) {
	tests := []struct {
		name string
		side domain.PositionSide
		dir  domain.OrderDirection
		cond domain.TriggerCondition
		want Label
	}{
		{"long sell above is take profit", domain.SideLong, domain.DirectionShort, domain.TriggerAbove, LabelTakeProfit},
		{"long sell below is stop loss", domain.SideLong, domain.DirectionShort, domain.TriggerBelow, LabelStopLoss},
		{"short buy below is take profit", domain.SideShort, domain.DirectionLong, domain.TriggerBelow, LabelTakeProfit},
		{"short buy above is stop loss", domain.SideShort, domain.DirectionLong, domain.TriggerAbove, LabelStopLoss},
		{"long buy is ignored", domain.SideLong, domain.DirectionLong, domain.TriggerAbove, LabelNone},
		{"short sell is ignored", domain.SideShort, domain.DirectionShort, domain.TriggerBelow, LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.side, candidate(tt.dir, tt.cond)); got != tt.want {
				t.Errorf("Classify(%s, %s/%s) = %v, want %v", tt.side, tt.dir, tt.cond, got, tt.want)
			}
		})
	}
}

func TestClassifyRejectsNonCandidates(t *testing.T) {
	o := candidate(domain.DirectionShort, domain.TriggerAbove)
	o.ReduceOnly = false
	if got := Classify(domain.SideLong, o); got != LabelNone {
		t.Errorf("non reduce-only order classified as %v", got)
	}
}

func TestClassifyStandalone(t *testing.T) {
	long := &domain.RawPosition{MarketIndex: 0, BaseAmount: "10000000000"}
	flat := &domain.RawPosition{MarketIndex: 0, BaseAmount: "0"}

	tests := []struct {
		name    string
		current *domain.RawPosition
		order   domain.RawOrder
		want    Label
	}{
		{"against open long", long, candidate(domain.DirectionShort, domain.TriggerAbove), LabelTakeProfit},
		{"no position", nil, candidate(domain.DirectionShort, domain.TriggerAbove), LabelTrigger},
		{"flat position", flat, candidate(domain.DirectionShort, domain.TriggerBelow), LabelTrigger},
		{"same direction falls back", long, candidate(domain.DirectionLong, domain.TriggerAbove), LabelTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStandalone(tt.current, tt.order); got != tt.want {
				t.Errorf("ClassifyStandalone = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelString(t *testing.T) {
	if LabelTakeProfit.String() != "Take Profit" {
		t.Error("take profit label text")
	}
	if LabelStopLoss.String() != "Stop Loss" {
		t.Error("stop loss label text")
	}
	if LabelTrigger.String() != "Trigger" {
		t.Error("trigger label text")
	}
	if LabelNone.String() != "" {
		t.Error("none label should be empty")
	}
}
