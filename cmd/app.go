// Package cmd implements the dropdeck command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/config"
	"github.com/etnz/dropdeck/store"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range Groups {
		for _, cmd := range g.Commands {
			c.Register(cmd, g.Name)
		}
	}
}

// Group is a set of related commands, as listed by the help command.
type Group struct {
	Name     string
	Commands []subcommands.Command
}

// Groups lists every dropdeck subcommand.
var Groups = []Group{
	{"projects", []subcommands.Command{&projectsCmd{}, &projectCmd{}, joinCmd, leaveCmd, favoriteCmd}},
	{"tasks", []subcommands.Command{&tasksCmd{}, &taskAddCmd{}, &taskEditCmd{}, &taskRmCmd{}}},
	{"transactions", []subcommands.Command{&txCmd{}, &txAddCmd{}, &txRmCmd{}}},
	{"reports", []subcommands.Command{&dashboardCmd{}, &statsCmd{}, &newsCmd{}, &newsItemCmd{}}},
	{"tools", []subcommands.Command{&queryCmd{}, &exportCmd{}, &resetCmd{}, &watchCmd{}, &topicCmd{}}},
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, g := range Groups {
		for _, cmd := range g.Commands {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "Path to the YAML configuration file, see 'topic config'")

// Verbose turns debug logging on, whatever the configured log level.
var Verbose = flag.Bool("v", os.Getenv(EnvVerbose) == "true", "log debug information")

var rawMarkdown = flag.Bool("raw", false, "print markdown as is, without terminal rendering")

// app is what a command needs to run, opened by openApp and released by Close.
type app struct {
	config *config.Config
	log    *log.Logger
	state  *dropdeck.State

	db        store.DB
	logCloser io.Closer
}

// openApp loads the configuration, opens the store and loads the state.
// Loading the state runs the daily reset check.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *Verbose {
		cfg.Log.Level = "debug"
	}
	logger, logCloser, err := cfg.Log.NewLogger()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("cannot open %s store: %w", cfg.Store.Backend, err)
	}
	logger.WithField("backend", cfg.Store.Backend).Debug("store opened")

	opts := []dropdeck.Option{dropdeck.WithLogger(logger)}
	if now, ok := testingNow(); ok {
		opts = append(opts, dropdeck.WithClock(func() time.Time { return now }))
	}
	state, err := dropdeck.Open(ctx, db, opts...)
	if err != nil {
		db.Close()
		logCloser.Close()
		return nil, fmt.Errorf("cannot load state: %w", err)
	}
	return &app{config: cfg, log: logger, state: state, db: db, logCloser: logCloser}, nil
}

// Close releases the store and the log file.
func (a *app) Close() error {
	return errors.Join(a.db.Close(), a.logCloser.Close())
}

// testingNow returns the fixed time set in EnvTestingNow, if any.
func testingNow() (time.Time, bool) {
	v := os.Getenv(EnvTestingNow)
	if v == "" {
		return time.Time{}, false
	}
	now, err := time.ParseInLocation(time.DateTime, v, time.Local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring invalid %s=%q: %v\n", EnvTestingNow, v, err)
		return time.Time{}, false
	}
	return now, true
}

// withApp opens the app, runs f and closes the app, mapping errors to exit statuses.
func withApp(ctx context.Context, f func(*app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	err = f(a)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}

// failure prints err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usageError prints a usage error and returns the matching exit status.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown prints md rendered for the terminal.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
