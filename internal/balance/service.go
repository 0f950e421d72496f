// Package balance turns raw spot positions into deduplicated, value-sorted
// display balances.
package balance

import (
	"context"
	"log/slog"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/perpview/perpview/internal/domain"
)

// OracleSource provides oracle price lookups. A failed lookup degrades one
// row's valuation; it never suppresses the row.
type OracleSource interface {
	OraclePrice(ctx context.Context, marketIndex int, class domain.InstrumentClass) (domain.OraclePrice, error)
}

// Service aggregates raw spot balances for one subaccount.
type Service struct {
	oracle OracleSource
	venue  domain.Venue
}

// NewService creates a new balance Service.
func NewService(oracle OracleSource, venue domain.Venue) *Service {
	if oracle == nil {
		panic("balance.NewService: oracle is nil")
	}
	return &Service{oracle: oracle, venue: venue}
}

// Aggregate converts raw spot balances into display rows: zero amounts are
// filtered, unknown markets are skipped, rows are deduplicated by token
// (last write wins) and sorted descending by numeric USD value.
func (s *Service) Aggregate(ctx context.Context, balances []domain.RawBalance) ([]domain.Balance, []domain.Skip) {
	var skips []domain.Skip

	byToken := make(map[string]domain.Balance)
	for _, raw := range balances {
		amount := domain.SafeParse(raw.RawAmount)
		if amount.IsZero() {
			// A zero slot means the account once touched the asset but
			// holds nothing now.
			continue
		}

		market, ok := domain.SpotMarket(s.venue, raw.MarketIndex)
		if !ok {
			slog.Warn("unknown spot market, skipping balance", "marketIndex", raw.MarketIndex)
			skips = append(skips, domain.Skip{
				Stage: "balance", MarketIndex: raw.MarketIndex, Reason: "unknown market index",
			})
			continue
		}

		readable := domain.ConvertRawToReadable(raw.RawAmount, market.PrecisionExp).Abs()
		if readable.IsZero() {
			continue
		}

		value := readable.Mul(s.price(ctx, raw.MarketIndex, &skips))

		byToken[market.Symbol] = domain.Balance{
			Token:  market.Symbol,
			Amount: readable.StringFixed(market.PrecisionExp),
			Value:  domain.FormatUSD(value),
		}
	}

	rows := lo.Values(byToken)
	sort.Slice(rows, func(i, j int) bool {
		vi, vj := domain.ParseUSD(rows[i].Value), domain.ParseUSD(rows[j].Value)
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return rows[i].Token < rows[j].Token
	})

	return rows, skips
}

// price resolves the oracle price for a spot market, defaulting to zero when
// the oracle read fails.
func (s *Service) price(ctx context.Context, marketIndex int, skips *[]domain.Skip) decimal.Decimal {
	oracle, err := s.oracle.OraclePrice(ctx, marketIndex, domain.ClassSpot)
	if err != nil {
		slog.Warn("oracle price unavailable, valuing balance at zero",
			"marketIndex", marketIndex, "error", err)
		*skips = append(*skips, domain.Skip{
			Stage: "balance", MarketIndex: marketIndex, Reason: "oracle price unavailable, value defaulted to 0",
		})
		return decimal.Zero
	}
	return domain.ConvertRawToReadable(oracle.Price, domain.PricePrecisionExp)
}
