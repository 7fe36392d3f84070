// Command dropdeck tracks airdrop projects, their daily tasks and the money
// invested in and earned from them.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/cmd"
	"github.com/etnz/dropdeck/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(sub) && !isBuiltin(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isBuiltin(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}

// completion describes the command line for shell completion.
// Install it with COMP_INSTALL=1 dropdeck.
func completion(name string) *complete.Command {
	var projects predict.Set
	for _, p := range dropdeck.Catalog() {
		projects = append(projects, p.ID)
	}
	topics, _ := docs.GetAllTopics()
	kinds := predict.Set{string(dropdeck.Investment), string(dropdeck.Earning)}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
			"raw":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"projects":  {Flags: map[string]complete.Predictor{"q": predict.Something, "joined": predict.Nothing, "favorites": predict.Nothing}},
			"project":   {Args: projects},
			"join":      {Args: projects},
			"leave":     {Args: projects},
			"favorite":  {Args: projects},
			"tasks":     {},
			"task-add":  {Flags: map[string]complete.Predictor{"p": projects, "n": predict.Something, "done": predict.Nothing}},
			"task-edit": {Flags: map[string]complete.Predictor{"p": projects, "n": predict.Something, "done": predict.Set{"true", "false"}}},
			"task-rm":   {},
			"tx":        {Flags: map[string]complete.Predictor{"k": kinds}},
			"tx-add":    {Flags: map[string]complete.Predictor{"k": kinds, "a": predict.Something, "m": predict.Something}},
			"tx-rm":     {},
			"dashboard": {},
			"stats":     {Flags: map[string]complete.Predictor{"months": predict.Something, "top": predict.Something}},
			"news":      {Flags: map[string]complete.Predictor{"tag": predict.Something}},
			"news-item": {},
			"query":     {Args: predict.Something},
			"export":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.xlsx")}},
			"reset":     {},
			"watch":     {},
			"topic":     {Flags: map[string]complete.Predictor{"list": predict.Nothing}, Args: predict.Set(topics)},
			"help":      {},
		},
	}
}
