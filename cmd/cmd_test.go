package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/dropdeck"
	"github.com/etnz/dropdeck/store"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus/hooks/test"
)

const testNow = "2025-04-15 10:00:00"

// setup points the configuration to a fresh file store and returns its folder.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	dir := filepath.Join(home, "state")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("DROPDECK_STORE_BACKEND", store.File)
	t.Setenv("DROPDECK_STORE_DIR", dir)
	t.Setenv("DROPDECK_LOG_LEVEL", "error")
	t.Setenv(EnvTestingNow, testNow)
	*rawMarkdown = true
	return dir
}

// run executes c with args, the way the commander would.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s %v: cannot parse flags: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func mustRun(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if got := run(t, c, args...); got != subcommands.ExitSuccess {
		t.Fatalf("%s %v = %v, want success", c.Name(), args, got)
	}
}

// load reads the state the commands left in dir, on the same day.
func load(t *testing.T, dir string) *dropdeck.State {
	t.Helper()
	st, err := store.OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() error = %v", err)
	}
	now, err := time.ParseInLocation(time.DateTime, testNow, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := test.NewNullLogger()
	s, err := dropdeck.Open(context.Background(), st, dropdeck.WithClock(func() time.Time { return now }), dropdeck.WithLogger(logger))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestProjectCommands(t *testing.T) {
	dir := setup(t)

	mustRun(t, joinCmd, "blockmesh", "taker")
	mustRun(t, favoriteCmd, "grass")
	mustRun(t, leaveCmd, "taker")

	s := load(t, dir)
	var joined []string
	for _, p := range s.MyProjects() {
		joined = append(joined, p.ID)
	}
	if len(joined) != 1 || joined[0] != "blockmesh" {
		t.Errorf("joined projects = %v, want [blockmesh]", joined)
	}
	if favs := s.Favorites(); len(favs) != 1 || favs[0].ID != "grass" {
		t.Errorf("Favorites() = %v, want grass", favs)
	}

	if got := run(t, joinCmd, "no-such-project"); got != subcommands.ExitFailure {
		t.Errorf("join unknown = %v, want failure", got)
	}
	if got := run(t, joinCmd); got != subcommands.ExitUsageError {
		t.Errorf("join without id = %v, want usage error", got)
	}
	if got := run(t, &projectCmd{}, "blockmesh"); got != subcommands.ExitSuccess {
		t.Errorf("project blockmesh = %v, want success", got)
	}
	if got := run(t, &projectCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("project without id = %v, want usage error", got)
	}
	if got := run(t, &projectsCmd{}, "-q", "storage", "-joined"); got != subcommands.ExitSuccess {
		t.Errorf("projects -q storage -joined = %v, want success", got)
	}
}

func TestTaskCommands(t *testing.T) {
	dir := setup(t)
	mustRun(t, joinCmd, "blockmesh")
	mustRun(t, &taskAddCmd{}, "-p", "blockmesh", "-n", "Complete KYC")
	mustRun(t, &taskAddCmd{}, "-p", "blockmesh", "-n", "Run node", "-done")

	tasks := load(t, dir).Tasks()
	if len(tasks) != 2 || tasks[0].Name != "Complete KYC" || tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("Tasks() = %+v, want KYC to do and node done", tasks)
	}
	id := tasks[0].ID

	for _, tt := range []struct {
		args []string
		want subcommands.ExitStatus
	}{
		{[]string{"-p", "blockmesh"}, subcommands.ExitUsageError},
		{[]string{"-p", "blockmesh", "-n", "   "}, subcommands.ExitUsageError},
		{[]string{"-n", "orphan"}, subcommands.ExitUsageError},
		{[]string{"-p", "no-such-project", "-n", "x"}, subcommands.ExitFailure},
		{[]string{"-p", "taker", "-n", "not joined"}, subcommands.ExitFailure},
	} {
		if got := run(t, &taskAddCmd{}, tt.args...); got != tt.want {
			t.Errorf("task-add %v = %v, want %v", tt.args, got, tt.want)
		}
	}

	if got := len(load(t, dir).Tasks()); got != 2 {
		t.Errorf("len(Tasks()) after rejected task-add = %d, want 2", got)
	}

	mustRun(t, &taskEditCmd{}, "-done", "true", "-n", "KYC", id)
	task, ok := load(t, dir).Task(id)
	if !ok || task.Name != "KYC" || !task.Completed || task.ProjectID != "blockmesh" {
		t.Errorf("edited task = %+v, want KYC completed on blockmesh", task)
	}
	if got := run(t, &taskEditCmd{}, "-p", "no-such-project", id); got != subcommands.ExitFailure {
		t.Errorf("task-edit -p unknown = %v, want failure", got)
	}
	if got := run(t, &taskEditCmd{}, "-p", "cess", id); got != subcommands.ExitFailure {
		t.Errorf("task-edit -p cess (not joined) = %v, want failure", got)
	}
	if task, _ := load(t, dir).Task(id); task.ProjectID != "blockmesh" {
		t.Errorf("task project after rejected task-edit = %q, want blockmesh", task.ProjectID)
	}
	mustRun(t, joinCmd, "cess")
	mustRun(t, &taskEditCmd{}, "-p", "cess", id)
	mustRun(t, &taskEditCmd{}, "-p", "blockmesh", id)
	if got := run(t, &taskEditCmd{}, "-n", " ", id); got != subcommands.ExitUsageError {
		t.Errorf("task-edit -n blank = %v, want usage error", got)
	}
	if got := run(t, &taskEditCmd{}, "no-such-task"); got != subcommands.ExitFailure {
		t.Errorf("task-edit unknown = %v, want failure", got)
	}

	mustRun(t, &tasksCmd{})
	mustRun(t, &taskRmCmd{}, id)
	if _, ok := load(t, dir).Task(id); ok {
		t.Errorf("task %q still exists after task-rm", id)
	}
	if got := run(t, &taskRmCmd{}, id); got != subcommands.ExitFailure {
		t.Errorf("task-rm twice = %v, want failure", got)
	}

	// leaving deletes the remaining task.
	mustRun(t, leaveCmd, "blockmesh")
	if got := load(t, dir).Tasks(); len(got) != 0 {
		t.Errorf("Tasks() after leave = %+v, want none", got)
	}
}

func TestTxCommands(t *testing.T) {
	dir := setup(t)
	mustRun(t, &txAddCmd{}, "-k", "investment", "-a", "100", "-m", "node license")
	mustRun(t, &txAddCmd{}, "-k", "earn", "-a", "42.5")

	for _, tt := range [][]string{
		{"-k", "earning", "-a", "0"},
		{"-k", "earning", "-a", "-3"},
		{"-k", "earning", "-a", "a lot"},
		{"-k", "refund", "-a", "3"},
		{"-a", "3"},
	} {
		if got := run(t, &txAddCmd{}, tt...); got != subcommands.ExitUsageError {
			t.Errorf("tx-add %v = %v, want usage error", tt, got)
		}
	}

	s := load(t, dir)
	if got := s.TotalInvestment().String(); got != "100" {
		t.Errorf("TotalInvestment() = %s, want 100", got)
	}
	if got := s.TotalEarnings().String(); got != "42.5" {
		t.Errorf("TotalEarnings() = %s, want 42.5", got)
	}
	txs := s.Transactions()
	if len(txs) != 2 || txs[0].Description != "node license" {
		t.Fatalf("Transactions() = %+v, want 2 starting with the node license", txs)
	}

	mustRun(t, &txCmd{})
	mustRun(t, &txCmd{}, "-k", "earning")
	if got := run(t, &txCmd{}, "-k", "refund"); got != subcommands.ExitUsageError {
		t.Errorf("tx -k refund = %v, want usage error", got)
	}

	mustRun(t, &txRmCmd{}, txs[0].ID)
	if got := load(t, dir).Transactions(); len(got) != 1 || got[0].ID != txs[1].ID {
		t.Errorf("Transactions() after tx-rm = %+v, want only %s", got, txs[1].ID)
	}
	if got := run(t, &txRmCmd{}, "transaction-0"); got != subcommands.ExitFailure {
		t.Errorf("tx-rm unknown = %v, want failure", got)
	}
}

func TestReportCommands(t *testing.T) {
	setup(t)
	mustRun(t, joinCmd, "grass")
	mustRun(t, &txAddCmd{}, "-k", "investment", "-a", "10")

	for _, tt := range []struct {
		c    subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{&dashboardCmd{}, nil, subcommands.ExitSuccess},
		{&statsCmd{}, []string{"-months", "3", "-top", "2"}, subcommands.ExitSuccess},
		{&statsCmd{}, []string{"-months", "-1"}, subcommands.ExitUsageError},
		{&newsCmd{}, []string{"-tag", "airdrop"}, subcommands.ExitSuccess},
		{&newsItemCmd{}, []string{"news1"}, subcommands.ExitSuccess},
		{&newsItemCmd{}, []string{"news9"}, subcommands.ExitFailure},
		{&newsItemCmd{}, nil, subcommands.ExitUsageError},
		{&queryCmd{}, []string{"$.myProjects[*].id"}, subcommands.ExitSuccess},
		{&queryCmd{}, []string{"$.["}, subcommands.ExitFailure},
		{&topicCmd{}, []string{"reset"}, subcommands.ExitSuccess},
		{&topicCmd{}, []string{"no-such-topic"}, subcommands.ExitFailure},
		{&topicCmd{}, []string{"reset", "no-such-topic"}, subcommands.ExitFailure},
		{&topicCmd{}, []string{"*"}, subcommands.ExitSuccess},
		{&topicCmd{}, []string{"-list"}, subcommands.ExitSuccess},
		{&topicCmd{}, nil, subcommands.ExitSuccess},
	} {
		if got := run(t, tt.c, tt.args...); got != tt.want {
			t.Errorf("%s %v = %v, want %v", tt.c.Name(), tt.args, got, tt.want)
		}
	}
}

func TestExportCommand(t *testing.T) {
	setup(t)
	out := filepath.Join(t.TempDir(), "dropdeck.xlsx")
	mustRun(t, &exportCmd{}, "-o", out)
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("export did not write %s: %v", out, err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", out)
	}
}

func TestResetCommand(t *testing.T) {
	dir := setup(t)
	mustRun(t, joinCmd, "blockmesh")
	mustRun(t, &taskAddCmd{}, "-p", "blockmesh", "-n", "Daily check-in")
	mustRun(t, &resetCmd{})
	if got := len(load(t, dir).Tasks()); got != 1 {
		t.Fatalf("len(Tasks()) after a reset the same day = %d, want 1", got)
	}

	t.Setenv(EnvTestingNow, "2025-04-16 08:00:00")
	mustRun(t, &resetCmd{})

	st, err := store.OpenDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, err := st.Get(context.Background(), dropdeck.KeyTasks)
	if err != nil {
		t.Fatalf("Get(tasks) error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("stored tasks = %s, want []", data)
	}
}

func TestConfigErrors(t *testing.T) {
	setup(t)
	t.Setenv("DROPDECK_STORE_BACKEND", "floppy")
	if got := run(t, &dashboardCmd{}); got != subcommands.ExitFailure {
		t.Errorf("dashboard with an invalid backend = %v, want failure", got)
	}
}

func TestIsCommand(t *testing.T) {
	for _, g := range Groups {
		for _, c := range g.Commands {
			if !IsCommand(c.Name()) {
				t.Errorf("IsCommand(%q) = false, want true", c.Name())
			}
			if c.Synopsis() == "" || c.Usage() == "" {
				t.Errorf("command %q has no synopsis or usage", c.Name())
			}
		}
	}
	if IsCommand("hello") {
		t.Errorf("IsCommand(hello) = true, want false")
	}
}
