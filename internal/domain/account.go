package domain

import (
	"bytes"
	"strings"
)

// PositionSide is the direction of an open perp position.
type PositionSide string

const (
	SideLong  PositionSide = "Long"
	SideShort PositionSide = "Short"
)

// Opposite returns the other side.
func (s PositionSide) Opposite() PositionSide {
	if s == SideLong {
		return SideShort
	}
	return SideLong
}

// OrderDirection is the taker direction of an order.
type OrderDirection string

const (
	DirectionLong  OrderDirection = "long"
	DirectionShort OrderDirection = "short"
)

// OrderCategory is the execution category of an order.
type OrderCategory string

const (
	OrderMarket        OrderCategory = "market"
	OrderLimit         OrderCategory = "limit"
	OrderTriggerMarket OrderCategory = "triggerMarket"
	OrderTriggerLimit  OrderCategory = "triggerLimit"
)

// TriggerCondition is the direction the reference price must cross the
// trigger price for a trigger order to activate.
type TriggerCondition string

const (
	TriggerAbove TriggerCondition = "above"
	TriggerBelow TriggerCondition = "below"
)

// InstrumentClass distinguishes perp and spot instruments.
type InstrumentClass string

const (
	ClassPerp InstrumentClass = "perp"
	ClassSpot InstrumentClass = "spot"
)

// RawBalance is one spot position slot of an account. The account keeps a slot
// for every asset it has ever touched; a zero amount means no balance.
// Amounts are fixed-point integers carried as decimal strings.
type RawBalance struct {
	MarketIndex int    `json:"marketIndex"`
	RawAmount   string `json:"rawAmount"`
}

// RawPosition is one perp position slot of an account. BaseAmount sign encodes
// direction (positive long, negative short); zero means no open position.
// QuoteEntryAmount is the signed cumulative notional paid or received to reach
// the current base amount.
type RawPosition struct {
	MarketIndex      int    `json:"marketIndex"`
	BaseAmount       string `json:"baseAssetAmount"`
	QuoteEntryAmount string `json:"quoteEntryAmount"`
}

// IsOpen reports whether the position has a nonzero base amount.
func (p RawPosition) IsOpen() bool {
	return !SafeParse(p.BaseAmount).IsZero()
}

// Side derives the position direction from the base amount sign.
// Only meaningful when IsOpen.
func (p RawPosition) Side() PositionSide {
	if SafeParse(p.BaseAmount).Sign() < 0 {
		return SideShort
	}
	return SideLong
}

// RawOrder is one open order of an account.
type RawOrder struct {
	MarketIndex      int              `json:"marketIndex"`
	OrderID          int              `json:"orderId"`
	Direction        OrderDirection   `json:"direction"`
	Category         OrderCategory    `json:"orderType"`
	TriggerCondition TriggerCondition `json:"triggerCondition"`
	TriggerPrice     string           `json:"triggerPrice"`
	BaseAmount       string           `json:"baseAssetAmount"`
	ReduceOnly       bool             `json:"reduceOnly"`
	InstrumentClass  InstrumentClass  `json:"marketType"`
}

// OraclePrice is a point-in-time oracle price snapshot for one market.
// The price is a fixed-point integer string at PricePrecisionExp.
type OraclePrice struct {
	Price string `json:"price"`
}

// AccountSnapshot is the raw state of one subaccount.
type AccountSnapshot struct {
	RawName       []byte        `json:"name"`
	SpotBalances  []RawBalance  `json:"spotPositions"`
	PerpPositions []RawPosition `json:"perpPositions"`
	OpenOrders    []RawOrder    `json:"orders"`
}

// DecodeSubaccountName decodes the fixed-length display-name buffer of a
// subaccount: trailing NUL padding is stripped, then surrounding whitespace.
func DecodeSubaccountName(raw []byte) string {
	trimmed := bytes.TrimRight(raw, "\x00")
	return strings.TrimSpace(string(trimmed))
}
