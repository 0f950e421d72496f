package domain

import "github.com/samber/lo"

// Venue selects which static market reference tables are used.
type Venue string

const (
	VenueMainnet Venue = "mainnet"
	VenueDevnet  Venue = "devnet"
)

// Protocol-wide fixed-point precision exponents.
const (
	// PricePrecisionExp is the scale of every oracle price, independent of
	// the asset's own precision.
	PricePrecisionExp int32 = 6
	// QuotePrecisionExp is the scale of quote/settlement amounts, including
	// quote entry notional and unrealized PnL.
	QuotePrecisionExp int32 = 6
	// BasePrecisionExp is the scale of perp base asset amounts.
	BasePrecisionExp int32 = 9
)

// MarketInfo describes one entry of the static market reference table.
type MarketInfo struct {
	MarketIndex  int    `json:"marketIndex"`
	Symbol       string `json:"symbol"`
	PrecisionExp int32  `json:"precisionExp"`
}

// mainnetSpotMarkets maps spot market index to token symbol and precision.
var mainnetSpotMarkets = []MarketInfo{
	{MarketIndex: 0, Symbol: "USDC", PrecisionExp: 6},
	{MarketIndex: 1, Symbol: "SOL", PrecisionExp: 9},
	{MarketIndex: 2, Symbol: "mSOL", PrecisionExp: 9},
	{MarketIndex: 3, Symbol: "wBTC", PrecisionExp: 8},
	{MarketIndex: 4, Symbol: "wETH", PrecisionExp: 8},
	{MarketIndex: 5, Symbol: "USDT", PrecisionExp: 6},
	{MarketIndex: 6, Symbol: "jitoSOL", PrecisionExp: 9},
	{MarketIndex: 7, Symbol: "PYTH", PrecisionExp: 6},
	{MarketIndex: 8, Symbol: "bSOL", PrecisionExp: 9},
	{MarketIndex: 9, Symbol: "JTO", PrecisionExp: 9},
	{MarketIndex: 10, Symbol: "WIF", PrecisionExp: 6},
	{MarketIndex: 11, Symbol: "JUP", PrecisionExp: 6},
	{MarketIndex: 12, Symbol: "RENDER", PrecisionExp: 8},
	{MarketIndex: 13, Symbol: "W", PrecisionExp: 6},
	{MarketIndex: 14, Symbol: "TNSR", PrecisionExp: 9},
	{MarketIndex: 15, Symbol: "DRIFT", PrecisionExp: 6},
	{MarketIndex: 16, Symbol: "INF", PrecisionExp: 9},
	{MarketIndex: 17, Symbol: "dSOL", PrecisionExp: 9},
	{MarketIndex: 18, Symbol: "USDY", PrecisionExp: 6},
	{MarketIndex: 19, Symbol: "JLP", PrecisionExp: 6},
	{MarketIndex: 20, Symbol: "POPCAT", PrecisionExp: 9},
}

// mainnetPerpMarkets maps perp market index to market symbol. The base asset
// amount of every perp market uses BasePrecisionExp.
var mainnetPerpMarkets = []MarketInfo{
	{MarketIndex: 0, Symbol: "SOL-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 1, Symbol: "BTC-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 2, Symbol: "ETH-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 3, Symbol: "APT-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 4, Symbol: "1MBONK-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 5, Symbol: "POL-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 6, Symbol: "ARB-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 7, Symbol: "DOGE-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 8, Symbol: "BNB-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 9, Symbol: "SUI-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 10, Symbol: "1MPEPE-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 11, Symbol: "OP-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 12, Symbol: "RENDER-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 13, Symbol: "XRP-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 14, Symbol: "HNT-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 15, Symbol: "INJ-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 16, Symbol: "LINK-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 17, Symbol: "RLB-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 18, Symbol: "PYTH-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 19, Symbol: "TIA-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 20, Symbol: "JTO-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 21, Symbol: "SEI-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 22, Symbol: "AVAX-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 23, Symbol: "WIF-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 24, Symbol: "JUP-PERP", PrecisionExp: BasePrecisionExp},
}

var devnetSpotMarkets = []MarketInfo{
	{MarketIndex: 0, Symbol: "USDC", PrecisionExp: 6},
	{MarketIndex: 1, Symbol: "SOL", PrecisionExp: 9},
	{MarketIndex: 2, Symbol: "wBTC", PrecisionExp: 8},
}

var devnetPerpMarkets = []MarketInfo{
	{MarketIndex: 0, Symbol: "SOL-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 1, Symbol: "BTC-PERP", PrecisionExp: BasePrecisionExp},
	{MarketIndex: 2, Symbol: "ETH-PERP", PrecisionExp: BasePrecisionExp},
}

// SpotMarket looks up a spot market by index for a venue.
// Returns false for indices the static table has not learned yet.
func SpotMarket(venue Venue, marketIndex int) (MarketInfo, bool) {
	return findMarket(spotTable(venue), marketIndex)
}

// PerpMarket looks up a perp market by index for a venue.
// Returns false for indices the static table has not learned yet.
func PerpMarket(venue Venue, marketIndex int) (MarketInfo, bool) {
	return findMarket(perpTable(venue), marketIndex)
}

func spotTable(venue Venue) []MarketInfo {
	if venue == VenueDevnet {
		return devnetSpotMarkets
	}
	return mainnetSpotMarkets
}

func perpTable(venue Venue) []MarketInfo {
	if venue == VenueDevnet {
		return devnetPerpMarkets
	}
	return mainnetPerpMarkets
}

func findMarket(table []MarketInfo, marketIndex int) (MarketInfo, bool) {
	return lo.Find(table, func(m MarketInfo) bool {
		return m.MarketIndex == marketIndex
	})
}
