package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/renderer"
	"github.com/google/subcommands"
)

type projectsCmd struct {
	query     string
	joined    bool
	favorites bool
}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "list and search the project catalog" }
func (*projectsCmd) Usage() string {
	return `projects [-q <text>] [-joined] [-favorites]

List the projects of the catalog. The search is case insensitive and looks
into the name, the description and the tags of each project.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "search text")
	f.BoolVar(&c.joined, "joined", false, "only the joined projects")
	f.BoolVar(&c.favorites, "favorites", false, "only the favorite projects")
}

func (c *projectsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		return usageError("projects takes no argument, use -q to search")
	}
	return withApp(ctx, func(a *app) error {
		l := renderer.ProjectList{Title: "Explore", Query: c.query, Projects: a.state.SearchProjects(c.query)}
		switch {
		case c.joined:
			l.Title = "My projects"
		case c.favorites:
			l.Title = "Favorites"
		}
		l.Projects = filter(l.Projects, func(p dropdeck.Project) bool {
			return (!c.joined || p.Joined) && (!c.favorites || p.Favorite)
		})
		printMarkdown(renderer.RenderProjects(l))
		return nil
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	res := items[:0]
	for _, it := range items {
		if keep(it) {
			res = append(res, it)
		}
	}
	return res
}

type projectCmd struct{}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "show a project and its tasks" }
func (*projectCmd) Usage() string {
	return `project <id>

Show the details of a project and its tasks.
`
}

func (*projectCmd) SetFlags(f *flag.FlagSet) {}

func (*projectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("project takes exactly one project id")
	}
	id := f.Arg(0)
	return withApp(ctx, func(a *app) error {
		p, ok := a.state.Project(id)
		if !ok {
			return fmt.Errorf("unknown project %q", id)
		}
		printMarkdown(renderer.RenderProject(renderer.ProjectDetails{Project: p, Tasks: a.state.ProjectTasks(id)}))
		return nil
	})
}

// projectAction is a command applying one State operation to projects.
type projectAction struct {
	name, synopsis, usage string
	do                    func(s *dropdeck.State, ctx context.Context, id string) error
	done                  func(p dropdeck.Project) string
}

func (c *projectAction) Name() string     { return c.name }
func (c *projectAction) Synopsis() string { return c.synopsis }
func (c *projectAction) Usage() string    { return c.name + " <id>...\n\n" + c.usage + "\n" }

func (*projectAction) SetFlags(f *flag.FlagSet) {}

func (c *projectAction) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usageError("%s takes at least one project id", c.name)
	}
	return withApp(ctx, func(a *app) error {
		for _, id := range f.Args() {
			// the state ignores unknown ids, but a typo deserves a message.
			if _, ok := a.state.Project(id); !ok {
				return fmt.Errorf("unknown project %q", id)
			}
			if err := c.do(a.state, ctx, id); err != nil {
				return err
			}
			p, _ := a.state.Project(id)
			fmt.Println(c.done(p))
		}
		return nil
	})
}

var (
	joinCmd = &projectAction{
		name:     "join",
		synopsis: "join projects",
		usage:    "Join projects, their tasks can then be tracked.",
		do:       (*dropdeck.State).JoinProject,
		done:     func(p dropdeck.Project) string { return "Joined " + p.Name },
	}
	leaveCmd = &projectAction{
		name:     "leave",
		synopsis: "leave projects, deleting their tasks",
		usage:    "Leave projects. All the tasks of the projects are deleted.",
		do:       (*dropdeck.State).LeaveProject,
		done:     func(p dropdeck.Project) string { return "Left " + p.Name },
	}
	favoriteCmd = &projectAction{
		name:     "favorite",
		synopsis: "toggle the favorite flag of projects",
		usage:    "Add projects to the favorites, or remove them if they already are.",
		do:       (*dropdeck.State).ToggleFavorite,
		done: func(p dropdeck.Project) string {
			if p.Favorite {
				return p.Name + " is a favorite"
			}
			return p.Name + " is no longer a favorite"
		},
	}
)
