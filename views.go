package dropdeck

import (
	"slices"
	"sort"
)

// Projects returns the whole catalog, in catalog order.
func (s *State) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterProjects(s.projects, func(Project) bool { return true })
}

// Project returns the project with that id.
func (s *State) Project(id string) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := findProject(s.projects, id)
	if i < 0 {
		return Project{}, false
	}
	return s.projects[i].clone(), true
}

// MyProjects returns the joined projects, in catalog order.
func (s *State) MyProjects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterProjects(s.projects, func(p Project) bool { return p.Joined })
}

// Favorites returns the favorite projects, in catalog order.
func (s *State) Favorites() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterProjects(s.projects, func(p Project) bool { return p.Favorite })
}

// SearchProjects returns the projects matching query, see Project.Matches.
func (s *State) SearchProjects(query string) []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterProjects(s.projects, func(p Project) bool { return p.Matches(query) })
}

func filterProjects(projects []Project, keep func(Project) bool) []Project {
	res := make([]Project, 0, len(projects))
	for _, p := range projects {
		if keep(p) {
			res = append(res, p.clone())
		}
	}
	return res
}

// Tasks returns all the tasks, in creation order.
func (s *State) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Task returns the task with that id.
func (s *State) Task(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// ProjectTasks returns the tasks of a project, in creation order.
func (s *State) ProjectTasks(projectID string) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tasksOf(s.tasks, projectID)
}

func tasksOf(tasks []Task, projectID string) []Task {
	res := make([]Task, 0)
	for _, t := range tasks {
		if t.ProjectID == projectID {
			res = append(res, t)
		}
	}
	return res
}

// ProjectProgress is the task progress of a joined project.
type ProjectProgress struct {
	Project   Project
	Tasks     []Task
	Completed int
	Total     int
	Rate      Percent
}

// Progress returns the task progress of every joined project, in catalog order.
func (s *State) Progress() []ProjectProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []ProjectProgress
	for _, p := range s.projects {
		if !p.Joined {
			continue
		}
		tasks := tasksOf(s.tasks, p.ID)
		res = append(res, ProjectProgress{
			Project:   p.clone(),
			Tasks:     tasks,
			Completed: countCompleted(tasks),
			Total:     len(tasks),
			Rate:      CompletionRate(tasks),
		})
	}
	return res
}

// Transactions returns all the transactions, in recording order.
func (s *State) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

// TransactionsOf returns the transactions of that kind, in recording order.
func (s *State) TransactionsOf(kind Kind) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Transaction, 0)
	for _, tx := range s.transactions {
		if tx.Kind == kind {
			res = append(res, tx)
		}
	}
	return res
}

// News returns the news feed.
func (s *State) News() []NewsItem { return s.NewsByTag("") }

// NewsItem returns the news item with that id.
func (s *State) NewsItem(id string) (NewsItem, bool) {
	for _, n := range s.news {
		if n.ID == id {
			return n.clone(), true
		}
	}
	return NewsItem{}, false
}

// NewsByTag returns the news items tagged with tag, all of them if tag is empty.
//
// The feed is read-only, it does not need the lock.
func (s *State) NewsByTag(tag string) []NewsItem {
	res := make([]NewsItem, 0, len(s.news))
	for _, n := range s.news {
		if tag == "" || n.HasTag(tag) {
			res = append(res, n.clone())
		}
	}
	return res
}

// NewsTags returns every tag used in the news feed, sorted.
func (s *State) NewsTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, n := range s.news {
		for _, t := range n.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
