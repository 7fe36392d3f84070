package dropdeck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dropdeck/date"
	"github.com/shopspring/decimal"
)

// Totals holds the aggregates of a Snapshot.
type Totals struct {
	Investment     decimal.Decimal `json:"investment"`
	Earnings       decimal.Decimal `json:"earnings"`
	ROI            Percent         `json:"roi"`
	CompletionRate Percent         `json:"taskCompletionRate"`
}

// Snapshot is a consistent copy of the whole state, taken under a single lock.
type Snapshot struct {
	Projects     []Project     `json:"projects"`
	MyProjects   []Project     `json:"myProjects"`
	Tasks        []Task        `json:"tasks"`
	Transactions []Transaction `json:"transactions"`
	News         []NewsItem    `json:"news"`
	LastReset    date.Date     `json:"lastReset"`
	Totals       Totals        `json:"totals"`
}

// Snapshot returns a copy of the whole state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, earn := Sum(s.transactions, Investment), Sum(s.transactions, Earning)
	snap := Snapshot{
		Projects:     filterProjects(s.projects, func(Project) bool { return true }),
		MyProjects:   filterProjects(s.projects, func(p Project) bool { return p.Joined }),
		Tasks:        append([]Task{}, s.tasks...),
		Transactions: append([]Transaction{}, s.transactions...),
		News:         make([]NewsItem, 0, len(s.news)),
		LastReset:    s.lastReset,
		Totals: Totals{
			Investment:     inv,
			Earnings:       earn,
			ROI:            ROI(inv, earn),
			CompletionRate: CompletionRate(s.tasks),
		},
	}
	for _, n := range s.news {
		snap.News = append(snap.News, n.clone())
	}
	return snap
}

// Query evaluates a JSONPath expression over the JSON form of the snapshot,
// e.g. "$.transactions[?(@.type=='earning')].amount".
func (s *State) Query(ctx context.Context, expr string) (any, error) {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	eval, err := jsonpath.New(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	val, err := eval(ctx, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", expr, err)
	}
	return val, nil
}
