package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/openalpha/lob-core/pkg/fixedpoint"
	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/depth"
	"github.com/openalpha/lob-core/x/orderbook/engine"
	"github.com/openalpha/lob-core/x/orderbook/registry"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Open an interactive session against one book",
		RunE:  runRepl,
	}
}

// session bundles one book with the registry and depth cache it needs, the
// same collaborators a real process would wire together.
type session struct {
	book   *engine.LimitOrderBook
	orders *registry.OrderRegistry
	cache  *depth.Cache
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.OutOrStdout()).With("session", cfg.Instrument.Symbol)
	orders := registry.NewOrderRegistry()
	cache := depth.NewCache()
	book := engine.New(
		id.Id(1),
		types.ExchangeTag(cfg.Instrument.Exchange),
		nil,
		orders,
		engine.WithLogger(logger),
		engine.WithDepthSink(cache),
	)
	sess := &session{book: book, orders: orders, cache: cache}

	fmt.Fprintf(cmd.OutOrStdout(), "lobctl: %s on %s. Type 'help' for commands.\n", cfg.Instrument.Symbol, cfg.Instrument.Exchange)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		sess.dispatch(cmd, line)
	}
}

func (s *session) dispatch(cmd *cobra.Command, line string) {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case "help":
		fmt.Fprintln(out, "commands: buy <volume> <price> | sell <volume> <price> | cancel <id> | book | level <k> | spread | quit")
	case "buy", "sell":
		s.submitLimit(out, fields)
	case "cancel":
		s.cancel(out, fields)
	case "book":
		fmt.Fprintln(out, s.book.String())
	case "level":
		s.level(out, fields)
	case "spread":
		fmt.Fprintln(out, s.cache.Spread())
	default:
		fmt.Fprintf(out, "unknown command %q\n", fields[0])
	}
}

func (s *session) submitLimit(out io.Writer, fields []string) {
	if len(fields) != 3 {
		fmt.Fprintln(out, "usage: buy|sell <volume> <price>")
		return
	}
	volume, err := parsePrice(fields[1])
	if err != nil {
		fmt.Fprintln(out, "bad volume:", err)
		return
	}
	price, err := parsePrice(fields[2])
	if err != nil {
		fmt.Fprintln(out, "bad price:", err)
		return
	}

	side := types.SideBuy
	if fields[0] == "sell" {
		side = types.SideSell
	}

	order, err := s.orders.NewLimit(s.book.GetInstrumentID(), s.book.GetExchange(), volume, price, side, id.None[types.OrderFlag]())
	if err != nil {
		fmt.Fprintln(out, "rejected:", err)
		return
	}

	events, err := s.book.Add(order.ID)
	if err != nil {
		fmt.Fprintln(out, "rejected:", err)
		return
	}
	fmt.Fprintf(out, "order %s resting/matched, %d event(s)\n", order.ID, len(events))
	for _, e := range events {
		fmt.Fprintf(out, "  %s\n", e.Type)
	}
}

func (s *session) cancel(out io.Writer, fields []string) {
	if len(fields) != 2 {
		fmt.Fprintln(out, "usage: cancel <id>")
		return
	}
	raw, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		fmt.Fprintln(out, "bad id:", err)
		return
	}
	s.book.Cancel(id.Id(raw))
	fmt.Fprintln(out, "cancelled", raw)
}

func (s *session) level(out io.Writer, fields []string) {
	k := 0
	if len(fields) == 2 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(out, "bad level:", err)
			return
		}
		k = parsed
	}
	bid, ask := s.book.GetLevel(k)
	fmt.Fprintf(out, "bid: %+v  ask: %+v\n", bid, ask)
}

func parsePrice(s string) (fixedpoint.Price, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fixedpoint.Price{}, err
	}
	return fixedpoint.FromFloat(v)
}
