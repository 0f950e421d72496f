package domain

import "fmt"

// Balance is a display-ready spot balance row.
type Balance struct {
	Token  string `json:"token"`
	Amount string `json:"amount"`
	Value  string `json:"value"`
}

// Position is a display-ready perp position row. TakeProfitPrice and
// StopLossPrice are recomputed from the current order list on every
// derivation; LiquidationPrice is never computed and stays nil.
type Position struct {
	Market           string       `json:"market"`
	MarketIndex      int          `json:"marketIndex"`
	Side             PositionSide `json:"side"`
	Size             string       `json:"size"`
	EntryPrice       string       `json:"entryPrice"`
	MarkPrice        string       `json:"markPrice"`
	PnL              string       `json:"pnl"`
	TakeProfitPrice  *string      `json:"takeProfitPrice"`
	StopLossPrice    *string      `json:"stopLossPrice"`
	LiquidationPrice *string      `json:"liquidationPrice"`
}

// TriggerOrder is a display-ready protective trigger order row. Label is
// "Take Profit", "Stop Loss", or "Trigger" when no open position gives the
// order a protective meaning.
type TriggerOrder struct {
	Market       string `json:"market"`
	Label        string `json:"type"`
	Size         string `json:"size"`
	TriggerPrice string `json:"triggerPrice"`
	OrderID      int    `json:"orderId"`
}

// Subaccount is the derived view of one materialized subaccount.
type Subaccount struct {
	SubaccountID int            `json:"subaccountId"`
	Name         string         `json:"name"`
	Balances     []Balance      `json:"balances"`
	Positions    []Position     `json:"positions"`
	Orders       []TriggerOrder `json:"orders"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// WalletPortfolio is the full derived view for one wallet.
type WalletPortfolio struct {
	Wallet      string       `json:"wallet"`
	Subaccounts []Subaccount `json:"subaccounts"`
}

// Skip records one fail-soft incident: a dropped row or a numeric field that
// fell back to zero. No row poisons its batch; incidents are surfaced instead
// of silently discarded.
type Skip struct {
	Stage       string
	MarketIndex int
	Reason      string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: market %d skipped: %s", s.Stage, s.MarketIndex, s.Reason)
}

// SkipWarnings renders skips into the warnings form carried on a Subaccount.
func SkipWarnings(skips []Skip) []string {
	if len(skips) == 0 {
		return nil
	}
	warnings := make([]string, len(skips))
	for i, s := range skips {
		warnings[i] = s.String()
	}
	return warnings
}
