package dropdeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/dropdeck/date"
	"github.com/etnz/dropdeck/store"
)

// Keys of the collections in the durable store.
const (
	KeyProjects     = "dropdeck_projects"
	KeyTasks        = "dropdeck_tasks"
	KeyTransactions = "dropdeck_transactions"
	KeyLastReset    = "dropdeck_last_reset"
)

// loadCollection reads the snapshot stored under key.
//
// A missing or unparsable snapshot is not an error: fallback is returned
// instead, and a warning is logged for the unparsable case. Only a failure of
// the store itself is returned.
func loadCollection[T any](ctx context.Context, s *State, key string, fallback func() []T) ([]T, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		s.log.WithField("key", key).Debug("no snapshot, using defaults")
		return fallback(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load %q: %w", key, err)
	}

	var v []T
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("unparsable snapshot, using defaults")
		return fallback(), nil
	}
	if v == nil { // "null"
		return fallback(), nil
	}
	return v, nil
}

// loadLastReset reads the day of the last daily reset, zero if unknown.
func (s *State) loadLastReset(ctx context.Context) (date.Date, error) {
	data, err := s.store.Get(ctx, KeyLastReset)
	if errors.Is(err, store.ErrNotFound) {
		return date.Date{}, nil
	}
	if err != nil {
		return date.Date{}, fmt.Errorf("cannot load %q: %w", KeyLastReset, err)
	}
	var on date.Date
	if err := json.Unmarshal(data, &on); err != nil {
		s.log.WithError(err).WithField("key", KeyLastReset).Warn("unparsable last reset date, a reset is due")
		return date.Date{}, nil
	}
	return on, nil
}

// save replaces the snapshot stored under key with v.
func (s *State) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("cannot persist %q: %w", key, err)
	}
	return nil
}

func (s *State) saveProjects(ctx context.Context) error { return s.save(ctx, KeyProjects, s.projects) }
func (s *State) saveTasks(ctx context.Context) error    { return s.save(ctx, KeyTasks, s.tasks) }
func (s *State) saveTransactions(ctx context.Context) error {
	return s.save(ctx, KeyTransactions, s.transactions)
}
