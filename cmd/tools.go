package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/dropdeck/schedule"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the state with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `query <jsonpath>

Evaluate a JSONPath expression over the JSON form of the whole state and
print the result as JSON. See 'topic query'.
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("query takes exactly one JSONPath expression")
	}
	return withApp(ctx, func(a *app) error {
		val, err := a.state.Query(ctx, f.Arg(0))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(val)
	})
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the state to an Excel workbook" }
func (*exportCmd) Usage() string {
	return `export -o <file.xlsx>

Write the projects, the tasks and the transactions to an Excel workbook,
one sheet each.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "dropdeck.xlsx", "output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		return usageError("export: -o <file> is required")
	}
	return withApp(ctx, func(a *app) error {
		out, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("cannot create %q: %w", c.output, err)
		}
		if err := a.state.Export(out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", c.output)
		return nil
	})
}

type resetCmd struct{}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "run the daily task reset check" }
func (*resetCmd) Usage() string {
	return `reset

Delete every task if they were not already deleted today, and tell if they
were. Every command does this check first, see 'topic reset'.
`
}

func (*resetCmd) SetFlags(f *flag.FlagSet) {}

func (*resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		done, err := a.state.ResetIfNewDay(ctx)
		if err != nil {
			return err
		}
		if done || a.state.ResetOnOpen() {
			fmt.Printf("Tasks cleared for %s\n", a.state.LastReset())
		} else {
			fmt.Printf("Tasks already reset on %s\n", a.state.LastReset())
		}
		return nil
	})
}

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the daily task reset until interrupted" }
func (*watchCmd) Usage() string {
	return `watch

Check periodically, every reset.interval, if the tasks must be reset for a
new day, until interrupted.
`
}

func (*watchCmd) SetFlags(f *flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return withApp(ctx, func(a *app) error {
		s, err := schedule.Start(a.state, a.config.Reset.Interval, a.log)
		if err != nil {
			return err
		}
		a.log.WithField("interval", a.config.Reset.Interval).Info("watching for new days")
		<-ctx.Done()
		return s.Stop()
	})
}
