package balance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/perpview/perpview/internal/domain"
)

type mockOracle struct {
	// prices maps market index to a raw fixed-point price string.
	prices map[int]string
	// failing markets return an error.
	failing map[int]bool
}

func (m *mockOracle) OraclePrice(_ context.Context, marketIndex int, _ domain.InstrumentClass) (domain.OraclePrice, error) {
	if m.failing[marketIndex] {
		return domain.OraclePrice{}, errors.New("oracle unavailable")
	}
	p, ok := m.prices[marketIndex]
	if !ok {
		return domain.OraclePrice{}, fmt.Errorf("no price for market %d", marketIndex)
	}
	return domain.OraclePrice{Price: p}, nil
}

func TestAggregateZeroBalancesFiltered(t *testing.T) {
	svc := NewService(&mockOracle{prices: map[int]string{0: "1000000"}}, domain.VenueMainnet)

	rows, skips := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 0, RawAmount: "0"},
		{MarketIndex: 0, RawAmount: ""},
	})
	if len(rows) != 0 {
		t.Errorf("rows = %+v, want empty", rows)
	}
	if len(skips) != 0 {
		t.Errorf("skips = %+v, want none", skips)
	}
}

func TestAggregateUnknownMarketSkipped(t *testing.T) {
	svc := NewService(&mockOracle{prices: map[int]string{}}, domain.VenueMainnet)

	rows, skips := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 9999, RawAmount: "1000000"},
	})
	if len(rows) != 0 {
		t.Errorf("rows = %+v, want empty", rows)
	}
	if len(skips) != 1 || skips[0].MarketIndex != 9999 {
		t.Errorf("skips = %+v, want one for market 9999", skips)
	}
}

func TestAggregateOracleFailureKeepsRow(t *testing.T) {
	svc := NewService(&mockOracle{failing: map[int]bool{0: true}}, domain.VenueMainnet)

	rows, skips := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 0, RawAmount: "5000000"},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %+v, want one", rows)
	}
	if rows[0].Value != "$0.00" {
		t.Errorf("value = %q, want $0.00", rows[0].Value)
	}
	if rows[0].Amount != "5.000000" {
		t.Errorf("amount = %q, want 5.000000", rows[0].Amount)
	}
	if len(skips) != 1 {
		t.Errorf("skips = %+v, want one degraded-price record", skips)
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	// Asset with precision 6, raw amount 1_000_000, oracle price 2.00.
	svc := NewService(&mockOracle{prices: map[int]string{0: "2000000"}}, domain.VenueMainnet)

	rows, skips := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 0, RawAmount: "1000000"},
	})
	if len(skips) != 0 {
		t.Fatalf("skips = %+v", skips)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %+v, want one", rows)
	}
	if rows[0].Token != "USDC" || rows[0].Amount != "1.000000" || rows[0].Value != "$2.00" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestAggregateDeduplicatesLastWins(t *testing.T) {
	svc := NewService(&mockOracle{prices: map[int]string{0: "1000000"}}, domain.VenueMainnet)

	rows, _ := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 0, RawAmount: "1000000"},
		{MarketIndex: 0, RawAmount: "7000000"},
	})
	if len(rows) != 1 {
		t.Fatalf("rows = %+v, want one after dedup", rows)
	}
	if rows[0].Amount != "7.000000" {
		t.Errorf("amount = %q, want the later record's 7.000000", rows[0].Amount)
	}
}

func TestAggregateSortsByNumericValueDescending(t *testing.T) {
	oracle := &mockOracle{prices: map[int]string{
		0: "1000000",   // USDC $1
		1: "20000000",  // SOL $20
		3: "100000000", // wBTC $100
	}}
	svc := NewService(oracle, domain.VenueMainnet)

	rows, _ := svc.Aggregate(context.Background(), []domain.RawBalance{
		{MarketIndex: 0, RawAmount: "5000000000"},  // 5000 USDC -> $5,000
		{MarketIndex: 1, RawAmount: "123450000000"}, // 123.45 SOL -> $2,469
		{MarketIndex: 3, RawAmount: "1000000000"},  // 10 wBTC -> $1,000
	})
	if len(rows) != 3 {
		t.Fatalf("rows = %+v, want three", rows)
	}

	want := []string{"USDC", "SOL", "wBTC"}
	for i, token := range want {
		if rows[i].Token != token {
			t.Errorf("rows[%d].Token = %q, want %q", i, rows[i].Token, token)
		}
	}
	// Numeric order, not lexicographic order on the formatted strings.
	for i := 0; i+1 < len(rows); i++ {
		if domain.ParseUSD(rows[i].Value).LessThan(domain.ParseUSD(rows[i+1].Value)) {
			t.Errorf("rows out of order: %q before %q", rows[i].Value, rows[i+1].Value)
		}
	}
}
