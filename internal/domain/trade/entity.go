package trade

import (
	"github.com/shopspring/decimal"
)

// AssetType defines the asset class of a trade
type AssetType string

const (
	AssetEquity AssetType = "equity"
	AssetOption AssetType = "option"
	AssetFuture AssetType = "future"
)

// Valid checks if asset type is valid
func (a AssetType) Valid() bool {
	switch a {
	case AssetEquity, AssetOption, AssetFuture:
		return true
	}
	return false
}

// String returns string representation
func (a AssetType) String() string {
	return string(a)
}

// RiskMethod defines how the dollar risk budget is derived
type RiskMethod string

const (
	MethodPercentage  RiskMethod = "percentage"
	MethodFixedAmount RiskMethod = "fixed_amount"
	MethodLevelBased  RiskMethod = "level_based"
)

// Valid checks if risk method is valid
func (m RiskMethod) Valid() bool {
	switch m {
	case MethodPercentage, MethodFixedAmount, MethodLevelBased:
		return true
	}
	return false
}

// String returns string representation
func (m RiskMethod) String() string {
	return string(m)
}

// UsesStopLoss reports whether the method derives risk distance from the stop-loss price
func (m RiskMethod) UsesStopLoss() bool {
	return m == MethodPercentage || m == MethodFixedAmount
}

// UsesLevel reports whether the method derives risk distance from a support/resistance level
func (m RiskMethod) UsesLevel() bool {
	return m == MethodLevelBased
}

// Direction defines the side of a trade. Equities and futures trade
// LONG/SHORT; options trade call/put.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
	DirectionCall  Direction = "call"
	DirectionPut   Direction = "put"
)

// Valid checks if direction is valid for any asset type
func (d Direction) Valid() bool {
	switch d {
	case DirectionLong, DirectionShort, DirectionCall, DirectionPut:
		return true
	}
	return false
}

// ValidFor checks if direction is admissible for the given asset type
func (d Direction) ValidFor(asset AssetType) bool {
	switch asset {
	case AssetEquity, AssetFuture:
		return d == DirectionLong || d == DirectionShort
	case AssetOption:
		return d == DirectionCall || d == DirectionPut
	}
	return false
}

// String returns string representation
func (d Direction) String() string {
	return string(d)
}

// DefaultContractMultiplier is the standard shares-per-contract for listed options
const DefaultContractMultiplier int64 = 100

// RiskProfile holds the risk-budget fields shared by every asset class.
// RiskPercentage and FixedRiskAmount are zero when not selected by Method.
type RiskProfile struct {
	AccountSize     decimal.Decimal
	Method          RiskMethod
	RiskPercentage  decimal.Decimal
	FixedRiskAmount decimal.Decimal
}

// Trade is the closed set of asset-class trade records consumed by the
// calculator and the cross-field validator
type Trade interface {
	Asset() AssetType
	Profile() RiskProfile
	Export() map[string]string
}

// Equity is a share trade sized against a stop-loss or technical level
type Equity struct {
	RiskProfile

	Symbol                 string
	EntryPrice             decimal.Decimal
	StopLossPrice          decimal.Decimal
	SupportResistanceLevel decimal.Decimal
	Direction              Direction
}

// Asset returns the asset class
func (t *Equity) Asset() AssetType { return AssetEquity }

// Profile returns the shared risk-budget fields
func (t *Equity) Profile() RiskProfile { return t.RiskProfile }

// Option is a contract trade sized against premium cost per contract
type Option struct {
	RiskProfile

	OptionSymbol       string
	Premium            decimal.Decimal
	ContractMultiplier int64
	SupportLevel       decimal.Decimal
	ResistanceLevel    decimal.Decimal
	EntryPrice         decimal.Decimal
	StopLossPrice      decimal.Decimal
	Direction          Direction
}

// Asset returns the asset class
func (t *Option) Asset() AssetType { return AssetOption }

// Profile returns the shared risk-budget fields
func (t *Option) Profile() RiskProfile { return t.RiskProfile }

// Multiplier returns the contract multiplier, falling back to the listed default
func (t *Option) Multiplier() int64 {
	if t.ContractMultiplier <= 0 {
		return DefaultContractMultiplier
	}
	return t.ContractMultiplier
}

// Future is a futures contract trade sized through tick value and tick size
type Future struct {
	RiskProfile

	ContractSymbol         string
	EntryPrice             decimal.Decimal
	StopLossPrice          decimal.Decimal
	SupportResistanceLevel decimal.Decimal
	TickValue              decimal.Decimal
	TickSize               decimal.Decimal
	MarginRequirement      decimal.Decimal
	Direction              Direction
}

// Asset returns the asset class
func (t *Future) Asset() AssetType { return AssetFuture }

// Profile returns the shared risk-budget fields
func (t *Future) Profile() RiskProfile { return t.RiskProfile }
