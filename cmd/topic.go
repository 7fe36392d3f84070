package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/dropdeck/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the dropdeck documentation" }
func (*topicCmd) Usage() string {
	return `topic [-list] [<topic>...]

Show the documentation topics one after the other, '*' for all of them.
Without topic, show the index: what dropdeck does and the topics to read,
such as 'reset' for the daily deletion of the tasks.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "print the topic names only, one per line")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	all, err := docs.GetAllTopics()
	if err != nil {
		return failure(err)
	}
	if c.list {
		fmt.Println(strings.Join(all, "\n"))
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	for _, t := range topics {
		if t != "*" && t != "readme" && !slices.Contains(all, t) {
			return failure(fmt.Errorf("unknown topic %q, the topics are: %s", t, strings.Join(all, ", ")))
		}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return failure(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
