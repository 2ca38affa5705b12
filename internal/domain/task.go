package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single entry of the session's to-do list.
type Task struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// NewTask creates a pending task with the given title.
func NewTask(title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	return &Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: time.Now(),
	}, nil
}

// TaskList is an ordered, in-memory list of tasks. It is not safe for
// concurrent use; services.TaskService adds the locking.
type TaskList struct {
	tasks []*Task
}

// NewTaskList returns an empty list.
func NewTaskList() *TaskList {
	return &TaskList{}
}

// Add appends a new task and returns it.
func (l *TaskList) Add(title string) (*Task, error) {
	task, err := NewTask(title)
	if err != nil {
		return nil, err
	}
	l.tasks = append(l.tasks, task)
	return task, nil
}

// Remove deletes the task with the given ID, keeping the order of the rest.
func (l *TaskList) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return nil
}

// Toggle flips the completion flag of a task.
func (l *TaskList) Toggle(id string) error {
	i := l.index(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return nil
}

// Count returns the number of tasks.
func (l *TaskList) Count() int {
	return len(l.tasks)
}

// Pending returns the number of tasks not yet completed.
func (l *TaskList) Pending() int {
	n := 0
	for _, t := range l.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// All returns copies of the tasks in insertion order.
func (l *TaskList) All() []Task {
	out := make([]Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = *t
	}
	return out
}

func (l *TaskList) index(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
