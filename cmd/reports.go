package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dropdeck/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the headline figures" }
func (*dashboardCmd) Usage() string {
	return `dashboard

Show the totals invested and earned, the return on investment, the task
completion rate and the number of joined projects.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		printMarkdown(renderer.RenderDashboard(a.state.Dashboard()))
		return nil
	})
}

type statsCmd struct {
	months int
	top    int
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the statistics" }
func (*statsCmd) Usage() string {
	return `stats [-months <n>] [-top <n>]

Show the return on investment, the monthly average earning, the monthly
investments and earnings, and the best funded projects.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", 6, "number of months to show, ending with the current one")
	f.IntVar(&c.top, "top", 5, "number of projects in the funding leaderboard")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.months < 0 || c.top < 0 {
		return usageError("stats: -months and -top must not be negative")
	}
	return withApp(ctx, func(a *app) error {
		printMarkdown(renderer.RenderStats(renderer.Stats{
			ROI:            a.state.ROI(),
			MonthlyAverage: a.state.MonthlyAverageEarning(),
			Monthly:        a.state.Monthly(c.months),
			Leaderboard:    a.state.Leaderboard(c.top),
		}))
		return nil
	})
}

type newsCmd struct {
	tag string
}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "show the news feed" }
func (*newsCmd) Usage() string {
	return `news [-tag <tag>]

Show the news feed, optionally only the items with a tag.
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tag, "tag", "", "only the news with this tag")
}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		printMarkdown(renderer.RenderNews(renderer.NewsList{
			Tag:   c.tag,
			Items: a.state.NewsByTag(c.tag),
			Tags:  a.state.NewsTags(),
		}))
		return nil
	})
}

type newsItemCmd struct{}

func (*newsItemCmd) Name() string     { return "news-item" }
func (*newsItemCmd) Synopsis() string { return "show a news article" }
func (*newsItemCmd) Usage() string {
	return `news-item <id>

Show a whole news article.
`
}

func (*newsItemCmd) SetFlags(f *flag.FlagSet) {}

func (*newsItemCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("news-item takes exactly one news id")
	}
	id := f.Arg(0)
	return withApp(ctx, func(a *app) error {
		n, ok := a.state.NewsItem(id)
		if !ok {
			return fmt.Errorf("unknown news %q", id)
		}
		printMarkdown(renderer.RenderNewsItem(n))
		return nil
	})
}
