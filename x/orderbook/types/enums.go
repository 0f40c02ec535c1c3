package types

// ExchangeTag is an opaque venue identifier carried by orders and trades.
// The catalog that resolves it to a real venue lives outside the core.
type ExchangeTag string

// Side is the closed set of order sides.
type Side int32

const (
	SideUnspecified Side = iota
	SideBuy
	SideSell
)

var sideName = map[Side]string{
	SideUnspecified: "UNSPECIFIED",
	SideBuy:         "BUY",
	SideSell:        "SELL",
}

func (s Side) String() string { return sideName[s] }

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType is the closed set of order types the core recognizes. Only
// LIMIT and MARKET are matched; STOP is accepted by construction but every
// matching path for it is unimplemented, per spec.
type OrderType int32

const (
	OrderTypeUnspecified OrderType = iota
	OrderTypeLimit
	OrderTypeMarket
	OrderTypeStop
)

var orderTypeName = map[OrderType]string{
	OrderTypeUnspecified: "UNSPECIFIED",
	OrderTypeLimit:       "LIMIT",
	OrderTypeMarket:      "MARKET",
	OrderTypeStop:        "STOP",
}

func (t OrderType) String() string { return orderTypeName[t] }

// OrderFlag is the closed set of order flags. Only NONE is matched by the
// crossing loop; the others are recognized at construction. Add rejects
// them with ErrUnsupportedFlag unless the book was built to allow them; an
// allowed one surfaces Unimplemented when a resting order carrying it is
// matched against, or when an order carrying it has an unfilled remainder.
type OrderFlag int32

const (
	OrderFlagNone OrderFlag = iota
	OrderFlagFillOrKill
	OrderFlagAllOrNone
	OrderFlagImmediateOrCancel
)

var orderFlagName = map[OrderFlag]string{
	OrderFlagNone:              "NONE",
	OrderFlagFillOrKill:        "FILL_OR_KILL",
	OrderFlagAllOrNone:         "ALL_OR_NONE",
	OrderFlagImmediateOrCancel: "IMMEDIATE_OR_CANCEL",
}

func (f OrderFlag) String() string { return orderFlagName[f] }

// EventType is the closed set of event tags the core and its downstream
// consumers dispatch on.
type EventType int32

const (
	EventTypeHeartbeat EventType = iota
	EventTypeTrade
	EventTypeOpen
	EventTypeCancel
	EventTypeChange
	EventTypeFill
	EventTypeData
	EventTypeHalt
	EventTypeContinue
	EventTypeError
	EventTypeStart
	EventTypeExit
	EventTypeBought
	EventTypeSold
	EventTypeReceived
	EventTypeRejected
	EventTypeCanceled
)

var eventTypeName = map[EventType]string{
	EventTypeHeartbeat: "HEARTBEAT",
	EventTypeTrade:     "TRADE",
	EventTypeOpen:      "OPEN",
	EventTypeCancel:    "CANCEL",
	EventTypeChange:    "CHANGE",
	EventTypeFill:      "FILL",
	EventTypeData:      "DATA",
	EventTypeHalt:      "HALT",
	EventTypeContinue:  "CONTINUE",
	EventTypeError:     "ERROR",
	EventTypeStart:     "START",
	EventTypeExit:      "EXIT",
	EventTypeBought:    "BOUGHT",
	EventTypeSold:      "SOLD",
	EventTypeReceived:  "RECEIVED",
	EventTypeRejected:  "REJECTED",
	EventTypeCanceled:  "CANCELED",
}

func (t EventType) String() string { return eventTypeName[t] }

// The following enumerations are part of the closed vocabulary the spec
// defines for the wider system but are not referenced by the matching core
// itself (no instrument catalog, no options pricing, no session/trading
// mode switch lives in this package).

// InstrumentType enumerates instrument kinds known to the wider system.
type InstrumentType int32

const (
	InstrumentTypeOther InstrumentType = iota
	InstrumentTypeEquity
	InstrumentTypeBond
	InstrumentTypeOption
	InstrumentTypeFuture
	InstrumentTypeSpread
	InstrumentTypeFuturesOption
	InstrumentTypePerpetualFuture
	InstrumentTypeMutualFund
	InstrumentTypeCommodity
	InstrumentTypeCurrency
	InstrumentTypePair
	InstrumentTypeIndex
)

// OptionType enumerates option contract kinds.
type OptionType int32

const (
	OptionTypeCall OptionType = iota
	OptionTypePut
)

// TradingType enumerates the session a book is being driven under.
type TradingType int32

const (
	TradingTypeLive TradingType = iota
	TradingTypeSimulation
	TradingTypeSandbox
	TradingTypeBacktest
)

// ExitRoutine enumerates how an engine session should wind down.
type ExitRoutine int32

const (
	ExitRoutineNone ExitRoutine = iota
	ExitRoutineCloseAll
)
