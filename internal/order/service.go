// Package order builds the standalone trigger-order list: every protective
// candidate on the account, labeled against whatever position is currently
// open on its market.
package order

import (
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"github.com/perpview/perpview/internal/domain"
	"github.com/perpview/perpview/internal/trigger"
)

// Service formats raw open orders for one subaccount.
type Service struct {
	venue domain.Venue
}

// NewService creates a new order Service.
func NewService(venue domain.Venue) *Service {
	return &Service{venue: venue}
}

// Format filters the open-order list down to protective candidates, labels
// each against its market's current position, and sorts ascending by market
// symbol. Orders on unknown markets are skipped.
func (s *Service) Format(snap domain.AccountSnapshot) ([]domain.TriggerOrder, []domain.Skip) {
	var rows []domain.TriggerOrder
	var skips []domain.Skip

	candidates := lo.Filter(snap.OpenOrders, func(o domain.RawOrder, _ int) bool {
		return trigger.IsCandidate(o)
	})

	for _, raw := range candidates {
		market, ok := domain.PerpMarket(s.venue, raw.MarketIndex)
		if !ok {
			slog.Warn("unknown perp market, skipping trigger order",
				"marketIndex", raw.MarketIndex, "orderId", raw.OrderID)
			skips = append(skips, domain.Skip{
				Stage: "order", MarketIndex: raw.MarketIndex, Reason: "unknown market index",
			})
			continue
		}

		label := trigger.ClassifyStandalone(currentPosition(snap, raw.MarketIndex), raw)

		rows = append(rows, domain.TriggerOrder{
			Market:       market.Symbol,
			Label:        label.String(),
			Size:         domain.ConvertRawToReadable(raw.BaseAmount, domain.BasePrecisionExp).String(),
			TriggerPrice: domain.ConvertRawToReadable(raw.TriggerPrice, domain.PricePrecisionExp).StringFixed(2),
			OrderID:      raw.OrderID,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Market < rows[j].Market
	})

	return rows, skips
}

// currentPosition finds the perp position open on a market, if any.
func currentPosition(snap domain.AccountSnapshot, marketIndex int) *domain.RawPosition {
	for i := range snap.PerpPositions {
		if snap.PerpPositions[i].MarketIndex == marketIndex {
			return &snap.PerpPositions[i]
		}
	}
	return nil
}
