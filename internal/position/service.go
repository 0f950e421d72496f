// Package position turns raw perp positions into display rows with entry and
// mark prices, unrealized PnL, and inferred take-profit / stop-loss levels.
package position

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/perpview/perpview/internal/domain"
	"github.com/perpview/perpview/internal/trigger"
)

// PriceSource provides oracle prices and collaborator-computed unrealized
// PnL. Either read may fail per call; failures degrade one field to zero.
type PriceSource interface {
	OraclePrice(ctx context.Context, marketIndex int, class domain.InstrumentClass) (domain.OraclePrice, error)
	UnrealizedPnl(ctx context.Context, wallet string, subaccountID, marketIndex int) (string, error)
}

// Service formats raw perp positions for one subaccount.
type Service struct {
	prices PriceSource
	venue  domain.Venue
}

// NewService creates a new position Service.
func NewService(prices PriceSource, venue domain.Venue) *Service {
	if prices == nil {
		panic("position.NewService: prices is nil")
	}
	return &Service{prices: prices, venue: venue}
}

// Format converts every open perp position into a display row, sorted
// ascending by market symbol. Unknown markets are skipped; oracle and PnL
// failures default the affected field to zero without dropping the row.
func (s *Service) Format(ctx context.Context, wallet string, subaccountID int, snap domain.AccountSnapshot) ([]domain.Position, []domain.Skip) {
	var rows []domain.Position
	var skips []domain.Skip

	for _, raw := range snap.PerpPositions {
		if !raw.IsOpen() {
			continue
		}

		market, ok := domain.PerpMarket(s.venue, raw.MarketIndex)
		if !ok {
			slog.Warn("unknown perp market, skipping position", "marketIndex", raw.MarketIndex)
			skips = append(skips, domain.Skip{
				Stage: "position", MarketIndex: raw.MarketIndex, Reason: "unknown market index",
			})
			continue
		}

		base := domain.SafeParse(raw.BaseAmount)
		size := base.Abs().Shift(-domain.BasePrecisionExp)

		row := domain.Position{
			Market:      market.Symbol,
			MarketIndex: raw.MarketIndex,
			Side:        raw.Side(),
			Size:        size.String(),
			EntryPrice:  entryPrice(raw).StringFixed(2),
			MarkPrice:   s.markPrice(ctx, raw.MarketIndex, &skips).StringFixed(2),
			PnL:         s.unrealizedPnl(ctx, wallet, subaccountID, raw.MarketIndex, &skips).StringFixed(2),
		}
		row.TakeProfitPrice, row.StopLossPrice = protectiveLevels(raw, snap.OpenOrders)

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Market < rows[j].Market
	})

	return rows, skips
}

// entryPrice reconstructs the average entry price from the cumulative quote
// notional: quote * base scale / base amount, then rescaled out of quote
// precision.
func entryPrice(raw domain.RawPosition) decimal.Decimal {
	base := domain.SafeParse(raw.BaseAmount)
	if base.IsZero() {
		return decimal.Zero
	}
	quote := domain.SafeParse(raw.QuoteEntryAmount)
	scaled := quote.Mul(decimal.New(1, domain.BasePrecisionExp)).Div(base)
	return scaled.Shift(-domain.QuotePrecisionExp)
}

func (s *Service) markPrice(ctx context.Context, marketIndex int, skips *[]domain.Skip) decimal.Decimal {
	oracle, err := s.prices.OraclePrice(ctx, marketIndex, domain.ClassPerp)
	if err != nil {
		slog.Warn("oracle price unavailable, mark price defaulted to zero",
			"marketIndex", marketIndex, "error", err)
		*skips = append(*skips, domain.Skip{
			Stage: "position", MarketIndex: marketIndex, Reason: "oracle price unavailable, mark price defaulted to 0",
		})
		return decimal.Zero
	}
	return domain.ConvertRawToReadable(oracle.Price, domain.PricePrecisionExp)
}

func (s *Service) unrealizedPnl(ctx context.Context, wallet string, subaccountID, marketIndex int, skips *[]domain.Skip) decimal.Decimal {
	pnl, err := s.prices.UnrealizedPnl(ctx, wallet, subaccountID, marketIndex)
	if err != nil {
		slog.Warn("unrealized pnl unavailable, defaulted to zero",
			"marketIndex", marketIndex, "error", err)
		*skips = append(*skips, domain.Skip{
			Stage: "position", MarketIndex: marketIndex, Reason: "unrealized pnl unavailable, defaulted to 0",
		})
		return decimal.Zero
	}
	return domain.ConvertRawToReadable(pnl, domain.QuotePrecisionExp)
}

// protectiveLevels resolves the position's take-profit and stop-loss prices
// from its market's protective trigger orders. When several orders share a
// label, the last one in input order wins.
func protectiveLevels(pos domain.RawPosition, orders []domain.RawOrder) (takeProfit, stopLoss *string) {
	side := pos.Side()
	for _, order := range orders {
		if order.MarketIndex != pos.MarketIndex {
			continue
		}
		price := domain.ConvertRawToReadable(order.TriggerPrice, domain.PricePrecisionExp).StringFixed(2)
		switch trigger.Classify(side, order) {
		case trigger.LabelTakeProfit:
			takeProfit = &price
		case trigger.LabelStopLoss:
			stopLoss = &price
		}
	}
	return takeProfit, stopLoss
}
