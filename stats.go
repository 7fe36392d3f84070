package dropdeck

import (
	"slices"
	"time"

	"github.com/etnz/dropdeck/date"
	"github.com/shopspring/decimal"
)

// averagingMonths is the fixed window of the monthly average earning.
const averagingMonths = 6

// Sum returns the sum of the amounts of the transactions of that kind.
func Sum(txs []Transaction, kind Kind) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Kind == kind {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func countCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// CompletionRate returns the percentage of completed tasks, 0 when there is no task.
func CompletionRate(tasks []Task) Percent {
	if len(tasks) == 0 {
		return 0
	}
	return Percent(100 * float64(countCompleted(tasks)) / float64(len(tasks)))
}

// ROI returns the return on investment in percent: what was earned on top of
// what was invested, relative to the investment. It is 0 without investment.
func ROI(investment, earnings decimal.Decimal) Percent {
	if !investment.IsPositive() {
		return 0
	}
	roi := earnings.Sub(investment).Div(investment).Shift(2)
	return Percent(roi.InexactFloat64())
}

// MonthlyAggregate sums the transactions of one calendar month.
type MonthlyAggregate struct {
	Month      date.Month
	Investment decimal.Decimal
	Earning    decimal.Decimal
	Profit     decimal.Decimal // Earning - Investment
}

// Monthly aggregates txs over months. A transaction belongs to the month of
// its calendar day in loc.
func Monthly(txs []Transaction, months []date.Month, loc *time.Location) []MonthlyAggregate {
	res := make([]MonthlyAggregate, len(months))
	index := make(map[date.Month]int, len(months))
	for i, m := range months {
		res[i] = MonthlyAggregate{Month: m, Investment: decimal.Zero, Earning: decimal.Zero}
		index[m] = i
	}
	for _, tx := range txs {
		i, ok := index[date.MonthOf(date.Of(tx.Date.In(loc)))]
		if !ok {
			continue
		}
		switch tx.Kind {
		case Investment:
			res[i].Investment = res[i].Investment.Add(tx.Amount)
		case Earning:
			res[i].Earning = res[i].Earning.Add(tx.Amount)
		}
	}
	for i := range res {
		res[i].Profit = res[i].Earning.Sub(res[i].Investment)
	}
	return res
}

// Leaderboard returns the n projects with the highest funding value, the
// catalog order breaks ties.
func Leaderboard(projects []Project, n int) []Project {
	sorted := make([]Project, len(projects))
	for i, p := range projects {
		sorted[i] = p.clone()
	}
	slices.SortStableFunc(sorted, func(a, b Project) int {
		return b.FundingValue().Cmp(a.FundingValue())
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TotalInvestment returns the sum of all investments.
func (s *State) TotalInvestment() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Sum(s.transactions, Investment)
}

// TotalEarnings returns the sum of all earnings.
func (s *State) TotalEarnings() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Sum(s.transactions, Earning)
}

// TaskCompletionRate returns the percentage of completed tasks.
func (s *State) TaskCompletionRate() Percent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CompletionRate(s.tasks)
}

// ROI returns the return on all investments, in percent.
func (s *State) ROI() Percent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ROI(Sum(s.transactions, Investment), Sum(s.transactions, Earning))
}

// MonthlyAverageEarning returns the total earnings spread over six months.
func (s *State) MonthlyAverageEarning() decimal.Decimal {
	return s.TotalEarnings().Div(decimal.NewFromInt(averagingMonths))
}

// Monthly aggregates the transactions of the n months ending with the
// current one, oldest first.
func (s *State) Monthly(n int) []MonthlyAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	months := date.LastMonths(date.MonthOf(date.Of(now)), n)
	return Monthly(s.transactions, months, now.Location())
}

// Leaderboard returns the n best funded projects of the catalog.
func (s *State) Leaderboard(n int) []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Leaderboard(s.projects, n)
}

// Dashboard holds the headline figures of the tracker.
type Dashboard struct {
	TotalInvestment decimal.Decimal
	TotalEarnings   decimal.Decimal
	ROI             Percent
	CompletionRate  Percent
	CompletedTasks  int
	TotalTasks      int
	JoinedProjects  int
	CatalogProjects int
	Favorites       int
}

// Dashboard computes the headline figures.
func (s *State) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Dashboard{
		TotalInvestment: Sum(s.transactions, Investment),
		TotalEarnings:   Sum(s.transactions, Earning),
		CompletionRate:  CompletionRate(s.tasks),
		CompletedTasks:  countCompleted(s.tasks),
		TotalTasks:      len(s.tasks),
		CatalogProjects: len(s.projects),
	}
	d.ROI = ROI(d.TotalInvestment, d.TotalEarnings)
	for _, p := range s.projects {
		if p.Joined {
			d.JoinedProjects++
		}
		if p.Favorite {
			d.Favorites++
		}
	}
	return d
}
