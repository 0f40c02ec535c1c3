package engine

import (
	"fmt"

	"github.com/openalpha/lob-core/x/orderbook/types"
)

// fatal logs and panics. Unimplemented and Corruption are never returned to
// the caller: a matching path the source leaves unimplemented, or a
// detected invariant violation, halts the calling goroutine rather than let
// it observe a half-applied mutation.
func (b *LimitOrderBook) fatal(err error) {
	b.logger.Error("fatal orderbook condition", "err", err)
	panic(err)
}

// requireNone panics with ErrUnimplemented unless flag is NONE. The
// crossing loop in Add implements only the NONE path for both the taker and
// any maker it touches; every other flag is recognized at construction but
// deferred here, matching the source.
func (b *LimitOrderBook) requireNone(flag types.OrderFlag) {
	if flag != types.OrderFlagNone {
		b.fatal(fmt.Errorf("%w: order flag %s", types.ErrUnimplemented, flag))
	}
}
