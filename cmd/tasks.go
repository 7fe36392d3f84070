package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/renderer"
	"github.com/google/subcommands"
)

type tasksCmd struct{}

func (*tasksCmd) Name() string     { return "tasks" }
func (*tasksCmd) Synopsis() string { return "show the tasks of the joined projects" }
func (*tasksCmd) Usage() string {
	return `tasks

Show the tasks of every joined project, with their completion rate.

Tasks are deleted every day, see 'topic reset'.
`
}

func (*tasksCmd) SetFlags(f *flag.FlagSet) {}

func (*tasksCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		printMarkdown(renderer.RenderProgress(a.state.Progress()))
		return nil
	})
}

type taskAddCmd struct {
	project string
	name    string
	done    bool
}

func (*taskAddCmd) Name() string     { return "task-add" }
func (*taskAddCmd) Synopsis() string { return "add a task to a project" }
func (*taskAddCmd) Usage() string {
	return `task-add -p <project> -n <name> [-done]

Add a task to a joined project. The id of the new task is printed.
`
}

func (c *taskAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.project, "p", "", "project id")
	f.StringVar(&c.name, "n", "", "task name")
	f.BoolVar(&c.done, "done", false, "the task is already completed")
}

func (c *taskAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(c.name)
	if name == "" {
		return usageError("task-add: -n <name> is required")
	}
	if c.project == "" {
		return usageError("task-add: -p <project> is required")
	}
	return withApp(ctx, func(a *app) error {
		p, ok := a.state.Project(c.project)
		if !ok {
			return fmt.Errorf("unknown project %q", c.project)
		}
		if !p.Joined {
			return fmt.Errorf("project %q is not joined, see 'join'", p.ID)
		}
		t, err := a.state.AddTask(ctx, p.ID, name, c.done)
		if err != nil {
			return err
		}
		fmt.Println(t.ID)
		return nil
	})
}

// optionalBool is a flag.Value that remembers if it was set.
type optionalBool struct{ v *bool }

func (b *optionalBool) String() string {
	if b.v == nil {
		return ""
	}
	return strconv.FormatBool(*b.v)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.v = &v
	return nil
}

// optionalString is a flag.Value that remembers if it was set.
type optionalString struct{ v *string }

func (s *optionalString) String() string {
	if s.v == nil {
		return ""
	}
	return *s.v
}

func (s *optionalString) Set(v string) error {
	s.v = &v
	return nil
}

type taskEditCmd struct {
	name    optionalString
	project optionalString
	done    optionalBool
}

func (*taskEditCmd) Name() string     { return "task-edit" }
func (*taskEditCmd) Synopsis() string { return "change a task" }
func (*taskEditCmd) Usage() string {
	return `task-edit <id> [-n <name>] [-p <project>] [-done true|false]

Change the name, the project or the completion of a task. Only the given
flags are changed. The new project must be joined.
`
}

func (c *taskEditCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.name, "n", "new task name")
	f.Var(&c.project, "p", "new project id")
	f.Var(&c.done, "done", "completion: true or false")
}

func (c *taskEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("task-edit takes exactly one task id")
	}
	id := f.Arg(0)
	u := dropdeck.TaskUpdate{Name: c.name.v, ProjectID: c.project.v, Completed: c.done.v}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return usageError("task-edit: the name cannot be empty")
	}
	return withApp(ctx, func(a *app) error {
		if _, ok := a.state.Task(id); !ok {
			return fmt.Errorf("unknown task %q", id)
		}
		if u.ProjectID != nil {
			p, ok := a.state.Project(*u.ProjectID)
			if !ok {
				return fmt.Errorf("unknown project %q", *u.ProjectID)
			}
			if !p.Joined {
				return fmt.Errorf("project %q is not joined, see 'join'", p.ID)
			}
		}
		return a.state.UpdateTask(ctx, id, u)
	})
}

type taskRmCmd struct{}

func (*taskRmCmd) Name() string     { return "task-rm" }
func (*taskRmCmd) Synopsis() string { return "remove tasks" }
func (*taskRmCmd) Usage() string {
	return `task-rm <id>...

Remove tasks.
`
}

func (*taskRmCmd) SetFlags(f *flag.FlagSet) {}

func (*taskRmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return usageError("task-rm takes at least one task id")
	}
	return withApp(ctx, func(a *app) error {
		for _, id := range f.Args() {
			if _, ok := a.state.Task(id); !ok {
				return fmt.Errorf("unknown task %q", id)
			}
			if err := a.state.RemoveTask(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}
