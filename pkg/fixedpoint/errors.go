package fixedpoint

import "cosmossdk.io/errors"

// ErrOverflow is returned when a conversion would not fit in the scaled
// int64 range. Registered under its own codespace, distinct from
// orderbook's, since fixedpoint has no dependency on the orderbook package.
var ErrOverflow = errors.Register("fixedpoint", 1, "conversion out of scaled int64 range")
