package drift

import "github.com/perpview/perpview/internal/domain"

// Wire types for the Drift data-gateway JSON API. Fixed-point integers travel
// as decimal strings; the subaccount name travels as a raw byte array.

type userStatsResponse struct {
	NumberOfSubAccountsCreated int `json:"numberOfSubAccountsCreated"`
}

type spotPositionWire struct {
	MarketIndex int    `json:"marketIndex"`
	TokenAmount string `json:"tokenAmount"`
}

type perpPositionWire struct {
	MarketIndex      int    `json:"marketIndex"`
	BaseAssetAmount  string `json:"baseAssetAmount"`
	QuoteEntryAmount string `json:"quoteEntryAmount"`
}

type orderWire struct {
	MarketIndex      int    `json:"marketIndex"`
	OrderID          int    `json:"orderId"`
	Direction        string `json:"direction"`
	OrderType        string `json:"orderType"`
	TriggerCondition string `json:"triggerCondition"`
	TriggerPrice     string `json:"triggerPrice"`
	BaseAssetAmount  string `json:"baseAssetAmount"`
	ReduceOnly       bool   `json:"reduceOnly"`
	MarketType       string `json:"marketType"`
}

type userResponse struct {
	Name          []int              `json:"name"`
	SpotPositions []spotPositionWire `json:"spotPositions"`
	PerpPositions []perpPositionWire `json:"perpPositions"`
	Orders        []orderWire        `json:"orders"`
}

type oraclePriceResponse struct {
	Price string `json:"price"`
}

type unrealizedPnlResponse struct {
	UnrealizedPnl string `json:"unrealizedPnl"`
}

func (u userResponse) toSnapshot() domain.AccountSnapshot {
	name := make([]byte, len(u.Name))
	for i, c := range u.Name {
		name[i] = byte(c)
	}

	snap := domain.AccountSnapshot{RawName: name}

	for _, p := range u.SpotPositions {
		snap.SpotBalances = append(snap.SpotBalances, domain.RawBalance{
			MarketIndex: p.MarketIndex,
			RawAmount:   p.TokenAmount,
		})
	}
	for _, p := range u.PerpPositions {
		snap.PerpPositions = append(snap.PerpPositions, domain.RawPosition{
			MarketIndex:      p.MarketIndex,
			BaseAmount:       p.BaseAssetAmount,
			QuoteEntryAmount: p.QuoteEntryAmount,
		})
	}
	for _, o := range u.Orders {
		snap.OpenOrders = append(snap.OpenOrders, domain.RawOrder{
			MarketIndex:      o.MarketIndex,
			OrderID:          o.OrderID,
			Direction:        domain.OrderDirection(o.Direction),
			Category:         domain.OrderCategory(o.OrderType),
			TriggerCondition: domain.TriggerCondition(o.TriggerCondition),
			TriggerPrice:     o.TriggerPrice,
			BaseAmount:       o.BaseAssetAmount,
			ReduceOnly:       o.ReduceOnly,
			InstrumentClass:  domain.InstrumentClass(o.MarketType),
		})
	}

	return snap
}
