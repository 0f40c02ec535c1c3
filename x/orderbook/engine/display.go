package engine

import (
	"strconv"
	"strings"
)

// String renders the book as a two-sided ladder: asks from the deepest
// price down to the best ask, a ruler, then bids from best down to
// deepest. Empty levels (volume drained to zero but not yet removed) are
// skipped, matching the source's display.
func (b *LimitOrderBook) String() string {
	var sb strings.Builder
	sb.WriteString("OrderBook {\n")

	askRows := make([]string, 0, b.sells.Len())
	b.sells.Each(func(lvl *level) bool {
		if vol := b.volumeAtLevel(lvl); vol.IsPositive() {
			askRows = append(askRows, "\t\t"+lvl.price.String()+"\t"+vol.String()+"\t"+strconv.Itoa(lvl.Len())+"\n")
		}
		return true
	})
	for i := len(askRows) - 1; i >= 0; i-- {
		sb.WriteString(askRows[i])
	}

	sb.WriteString("====================================\n")

	b.buys.Each(func(lvl *level) bool {
		if vol := b.volumeAtLevel(lvl); vol.IsPositive() {
			sb.WriteString("\t" + vol.String() + "\t" + lvl.price.String() + "\t\t" + strconv.Itoa(lvl.Len()) + "\n")
		}
		return true
	})

	sb.WriteString("}")
	return sb.String()
}
