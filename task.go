package dropdeck

import "time"

// Task is a to-do item attached to a joined project.
type Task struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskUpdate lists the fields to change in a task, nil fields are left untouched.
type TaskUpdate struct {
	Name      *string
	Completed *bool
	ProjectID *string
}

// apply returns t with the update merged in.
func (u TaskUpdate) apply(t Task) Task {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	return t
}

// SetName returns a TaskUpdate changing only the name.
func SetName(name string) TaskUpdate { return TaskUpdate{Name: &name} }

// SetCompleted returns a TaskUpdate changing only the completion flag.
func SetCompleted(done bool) TaskUpdate { return TaskUpdate{Completed: &done} }
