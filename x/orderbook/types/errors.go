package types

import (
	"cosmossdk.io/errors"
)

// Module error codes. InvalidOrder and NotFound are ordinary,
// caller-handleable errors. Unimplemented and Corruption are registered the
// same way but are always raised through engine's fatal path rather than
// returned quietly. Fixed-point overflow is registered in its own codespace
// by fixedpoint.ErrOverflow, since that package has no dependency on this one.
var (
	ErrInvalidOrder    = errors.Register("orderbook", 1, "order failed construction-time validation")
	ErrNotFound        = errors.Register("orderbook", 2, "no record with that id")
	ErrUnimplemented   = errors.Register("orderbook", 3, "code path deferred by the source design")
	ErrCorruption      = errors.Register("orderbook", 4, "order book invariant violated")
	ErrUnsupportedFlag = errors.Register("orderbook", 6, "order flag not accepted by this book")
)
