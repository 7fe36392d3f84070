package dropdeck

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/etnz/dropdeck/date"
	"github.com/etnz/dropdeck/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// State is the single source of truth for projects, tasks and transactions.
//
// Every mutation updates the collections in memory and then writes the
// affected collections to the store, both under the same lock: the periodic
// daily reset and user actions never interleave. Reads return copies.
//
// Mutations addressing an unknown id are silent no-ops.
type State struct {
	mu    sync.Mutex
	store store.Store
	log   log.FieldLogger
	now   func() time.Time
	newID func(prefix string) string

	projects     []Project
	tasks        []Task
	transactions []Transaction
	news         []NewsItem
	lastReset    date.Date
	openReset    bool

	catalog func() []Project
}

// Option configures a State created by Open.
type Option func(*State)

// WithClock sets the function giving the current time, time.Now by default.
// The daily reset uses the calendar day in the location of the returned time.
func WithClock(now func() time.Time) Option { return func(s *State) { s.now = now } }

// WithLogger sets the logger, logrus standard logger by default.
func WithLogger(l log.FieldLogger) Option { return func(s *State) { s.log = l } }

// WithCatalog replaces the built-in catalog used when no projects are stored.
func WithCatalog(projects []Project) Option {
	return func(s *State) {
		s.catalog = func() []Project {
			c := make([]Project, len(projects))
			for i, p := range projects {
				c[i] = p.clone()
			}
			return c
		}
	}
}

// WithNews replaces the built-in news feed.
func WithNews(news []NewsItem) Option {
	return func(s *State) { s.news = slices.Clone(news) }
}

// WithIDs sets the id generator of new tasks and transactions. By default
// ids are the prefix, a dash, and a version 7 UUID, ordered by creation time.
func WithIDs(newID func(prefix string) string) Option { return func(s *State) { s.newID = newID } }

func newUUIDv7(prefix string) string { return prefix + "-" + uuid.Must(uuid.NewV7()).String() }

// Open loads the state from st, falling back to the built-in catalog and
// empty tasks and transactions for collections that are missing or
// unparsable, then runs the daily reset check.
func Open(ctx context.Context, st store.Store, opts ...Option) (*State, error) {
	s := &State{
		store:   st,
		log:     log.StandardLogger(),
		now:     time.Now,
		newID:   newUUIDv7,
		catalog: Catalog,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.news == nil {
		s.news = SeedNews()
	}

	var err error
	if s.projects, err = loadCollection(ctx, s, KeyProjects, s.catalog); err != nil {
		return nil, err
	}
	if s.tasks, err = loadCollection(ctx, s, KeyTasks, func() []Task { return []Task{} }); err != nil {
		return nil, err
	}
	if s.transactions, err = loadCollection(ctx, s, KeyTransactions, func() []Transaction { return []Transaction{} }); err != nil {
		return nil, err
	}
	if s.lastReset, err = s.loadLastReset(ctx); err != nil {
		return nil, err
	}

	if s.openReset, err = s.ResetIfNewDay(ctx); err != nil {
		return nil, fmt.Errorf("startup daily reset: %w", err)
	}
	return s, nil
}

// updateProject applies f to the project with that id, if any.
func (s *State) updateProject(id string, f func(*Project)) {
	if i := findProject(s.projects, id); i >= 0 {
		f(&s.projects[i])
	}
}

// JoinProject marks the project as joined.
func (s *State) JoinProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateProject(id, func(p *Project) { p.Joined = true })
	return s.saveProjects(ctx)
}

// LeaveProject marks the project as not joined, and deletes all its tasks.
func (s *State) LeaveProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateProject(id, func(p *Project) { p.Joined = false })
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.ProjectID == id })
	if err := s.saveProjects(ctx); err != nil {
		return err
	}
	return s.saveTasks(ctx)
}

// ToggleFavorite flips the favorite flag of the project.
func (s *State) ToggleFavorite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateProject(id, func(p *Project) { p.Favorite = !p.Favorite })
	return s.saveProjects(ctx)
}

// AddTask creates a task for project projectID and returns it.
//
// It does not check that the project exists or is joined.
func (s *State) AddTask(ctx context.Context, projectID, name string, completed bool) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Task{
		ID:        s.newID("task"),
		ProjectID: projectID,
		Name:      name,
		Completed: completed,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, t)
	return t, s.saveTasks(ctx)
}

// UpdateTask merges u into the task with that id.
func (s *State) UpdateTask(ctx context.Context, id string, u TaskUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id }); i >= 0 {
		s.tasks[i] = u.apply(s.tasks[i])
	}
	return s.saveTasks(ctx)
}

// RemoveTask deletes the task with that id.
func (s *State) RemoveTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t Task) bool { return t.ID == id })
	return s.saveTasks(ctx)
}

// AddTransaction records a transaction and returns it.
//
// The amount is not validated, see ValidateAmount.
func (s *State) AddTransaction(ctx context.Context, kind Kind, amount decimal.Decimal, description string) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := Transaction{
		ID:          s.newID("transaction"),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Date:        s.now(),
	}
	s.transactions = append(s.transactions, tx)
	return tx, s.saveTransactions(ctx)
}

// RemoveTransaction deletes the transaction with that id.
func (s *State) RemoveTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = slices.DeleteFunc(s.transactions, func(tx Transaction) bool { return tx.ID == id })
	return s.saveTransactions(ctx)
}

// ResetIfNewDay deletes every task if the last reset did not happen today,
// and records today as the last reset day. It reports whether the reset
// happened.
//
// Starting each day with no task is the intended product behavior.
func (s *State) ResetIfNewDay(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := date.Of(s.now())
	if s.lastReset == today {
		return false, nil
	}

	cleared := len(s.tasks)
	s.tasks = []Task{}
	if err := s.saveTasks(ctx); err != nil {
		// lastReset is unchanged: the next check tries again.
		return false, err
	}
	if err := s.save(ctx, KeyLastReset, today); err != nil {
		return true, err
	}
	s.lastReset = today
	s.log.WithFields(log.Fields{"day": today.String(), "cleared": cleared}).Info("daily reset")
	return true, nil
}

// ResetOnOpen reports whether Open cleared the tasks for a new day.
func (s *State) ResetOnOpen() bool { return s.openReset }

// LastReset returns the day of the last daily reset.
func (s *State) LastReset() date.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReset
}
