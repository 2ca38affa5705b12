package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// TaskService handles the in-memory task list use cases. The list lives only
// as long as the process.
type TaskService struct {
	mu      sync.Mutex
	tasks   *domain.TaskList
	counter ports.ViewHandle
	logger  *slog.Logger
}

// NewTaskService creates a task service. counter may be nil; when set it is
// kept in sync with the number of tasks.
func NewTaskService(counter ports.ViewHandle, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskService{
		tasks:   domain.NewTaskList(),
		counter: counter,
		logger:  logger,
	}
	RenderTaskCount(0, counter)
	return s
}

// AddTask appends a task with the given title.
func (s *TaskService) AddTask(ctx context.Context, title string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Add(title)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}
	s.logger.DebugContext(ctx, "task added", "id", task.ID)
	RenderTaskCount(s.tasks.Count(), s.counter)
	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Remove(id); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	s.logger.DebugContext(ctx, "task deleted", "id", id)
	RenderTaskCount(s.tasks.Count(), s.counter)
	return nil
}

// ToggleTask flips a task between pending and completed.
func (s *TaskService) ToggleTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tasks.Toggle(id); err != nil {
		return fmt.Errorf("failed to toggle task %s: %w", id, err)
	}
	s.logger.DebugContext(ctx, "task toggled", "id", id)
	return nil
}

// ListTasks returns the tasks in insertion order.
func (s *TaskService) ListTasks(ctx context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

// Count returns the number of tasks and how many are still pending.
func (s *TaskService) Count() (total, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Count(), s.tasks.Pending()
}
