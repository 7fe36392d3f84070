package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type txCmd struct {
	kind string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "show the transactions" }
func (*txCmd) Usage() string {
	return `tx [-k investment|earning]

Show the recorded transactions, oldest first, and the totals.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "", "only the transactions of that type: investment or earning")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var kind dropdeck.Kind
	if c.kind != "" {
		var err error
		if kind, err = dropdeck.ParseKind(c.kind); err != nil {
			return usageError("tx: %v", err)
		}
	}
	return withApp(ctx, func(a *app) error {
		l := renderer.Ledger{
			Kind:         kind,
			Transactions: a.state.Transactions(),
			Investment:   a.state.TotalInvestment(),
			Earnings:     a.state.TotalEarnings(),
		}
		if kind != "" {
			l.Transactions = a.state.TransactionsOf(kind)
		}
		printMarkdown(renderer.RenderLedger(l))
		return nil
	})
}

type txAddCmd struct {
	kind        string
	amount      string
	description string
}

func (*txAddCmd) Name() string     { return "tx-add" }
func (*txAddCmd) Synopsis() string { return "record an investment or an earning" }
func (*txAddCmd) Usage() string {
	return `tx-add -k investment|earning -a <amount> [-m <description>]

Record a transaction dated now. The amount is in dollars and must be
positive. The id of the new transaction is printed.
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "k", "", "transaction type: investment or earning")
	f.StringVar(&c.amount, "a", "", "amount, e.g. 12.50")
	f.StringVar(&c.description, "m", "", "description")
}

func (c *txAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := dropdeck.ParseKind(c.kind)
	if err != nil {
		return usageError("tx-add: %v", err)
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return usageError("tx-add: invalid amount %q: %v", c.amount, err)
	}
	if err := dropdeck.ValidateAmount(amount); err != nil {
		return usageError("tx-add: %v", err)
	}
	return withApp(ctx, func(a *app) error {
		tx, err := a.state.AddTransaction(ctx, kind, amount, c.description)
		if err != nil {
			return err
		}
		fmt.Println(tx.ID)
		return nil
	})
}

type txRmCmd struct{}

func (*txRmCmd) Name() string     { return "tx-rm" }
func (*txRmCmd) Synopsis() string { return "remove transactions" }
func (*txRmCmd) Usage() string {
	return `tx-rm <id>...

Remove transactions.
`
}

func (*txRmCmd) SetFlags(f *flag.FlagSet) {}

func (*txRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usageError("tx-rm takes at least one transaction id")
	}
	return withApp(ctx, func(a *app) error {
		known := make(map[string]bool)
		for _, tx := range a.state.Transactions() {
			known[tx.ID] = true
		}
		for _, id := range f.Args() {
			if !known[id] {
				return fmt.Errorf("unknown transaction %q", id)
			}
			if err := a.state.RemoveTransaction(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}
