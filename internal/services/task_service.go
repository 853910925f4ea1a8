package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"suilog/internal/models"
	"suilog/internal/recurrence"
	"suilog/internal/repositories"
	"suilog/internal/timeutil"
	"suilog/internal/wallet"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	// Create stores the task; a recurring task is expanded into all of its
	// weekly instances at creation time. Returns everything created.
	Create(ctx context.Context, task *models.Task) ([]models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id string, updateData *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error

	UpdateStatus(ctx context.Context, id string, to models.TaskStatus) (*models.Task, error)
	Complete(ctx context.Context, id string, actualTime *int) (*models.Task, error)
	Assign(ctx context.Context, id string, address *string) (*models.Task, error)
}

type taskService struct {
	repo repositories.TaskRepository
	tg   *TelegramService
}

// NewTaskService creates a new instance of TaskService. tg may be nil.
func NewTaskService(repo repositories.TaskRepository, tg *TelegramService) TaskService {
	return &taskService{repo: repo, tg: tg}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) ([]models.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if !task.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, task.Status)
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, task.Priority)
	}

	// The estimate derives from the scheduled times when both are present.
	if task.ScheduledStartTime != "" && task.ScheduledEndTime != "" {
		duration, err := timeutil.Duration(task.ScheduledStartTime, task.ScheduledEndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("%w: scheduled end time must be after start time", ErrInvalidInput)
		}
		task.EstimatedTime = duration
	}
	if task.EstimatedTime <= 0 {
		return nil, fmt.Errorf("%w: estimated time must be positive", ErrInvalidInput)
	}

	if task.IsRecurring {
		if task.RecurringEndDate == nil || task.RecurringDayOfWeek == nil {
			return nil, fmt.Errorf("%w: recurring task requires end date and day of week", ErrInvalidInput)
		}
		if dow := *task.RecurringDayOfWeek; dow < 0 || dow > 6 {
			return nil, fmt.Errorf("%w: recurring day of week must be 0-6", ErrInvalidInput)
		}
		task.RecurringPattern = models.RecurringWeekly
	}

	if task.AssignedTo != nil {
		normalized := wallet.Normalize(*task.AssignedTo)
		if !wallet.IsValidAddress(normalized) {
			return nil, fmt.Errorf("%w: invalid assignee address", ErrInvalidInput)
		}
		task.AssignedTo = &normalized
	}

	now := time.Now()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = now
	task.ActualTime = nil
	task.CompletedAt = nil

	instances := recurrence.Expand(*task, now)
	if err := s.repo.StoreBatch(ctx, instances); err != nil {
		return nil, err
	}

	if task.AssignedTo != nil {
		s.tg.NotifyTaskAssigned(&instances[0])
	}
	return instances, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.AssignedTo != nil {
		normalized := wallet.Normalize(*filter.AssignedTo)
		filter.AssignedTo = &normalized
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id string, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updateData.Title != "" {
		existingTask.Title = updateData.Title
	}
	existingTask.Description = updateData.Description
	if updateData.Priority != "" {
		if !updateData.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, updateData.Priority)
		}
		existingTask.Priority = updateData.Priority
	}
	if !updateData.ScheduledDate.IsZero() {
		existingTask.ScheduledDate = updateData.ScheduledDate
	}
	if updateData.ScheduledStartTime != "" && updateData.ScheduledEndTime != "" {
		duration, err := timeutil.Duration(updateData.ScheduledStartTime, updateData.ScheduledEndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("%w: scheduled end time must be after start time", ErrInvalidInput)
		}
		existingTask.ScheduledStartTime = updateData.ScheduledStartTime
		existingTask.ScheduledEndTime = updateData.ScheduledEndTime
		existingTask.EstimatedTime = duration
	} else if updateData.EstimatedTime > 0 {
		existingTask.EstimatedTime = updateData.EstimatedTime
	}
	if !updateData.StartDate.IsZero() {
		existingTask.StartDate = updateData.StartDate
	}
	if !updateData.DueDate.IsZero() {
		existingTask.DueDate = updateData.DueDate
	}

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, to models.TaskStatus) (*models.Task, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(task.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, to)
	}

	// Moving into completed always stamps the completion pair; without a
	// recorded actual time the estimate stands in for it.
	if to == models.StatusCompleted {
		return s.Complete(ctx, id, nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) Complete(ctx context.Context, id string, actualTime *int) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(task.Status, models.StatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, models.StatusCompleted)
	}

	actual := task.EstimatedTime
	if actualTime != nil {
		if *actualTime <= 0 {
			return nil, fmt.Errorf("%w: actual time must be positive", ErrInvalidInput)
		}
		actual = *actualTime
	}

	completedAt := time.Now()
	if err := s.repo.Complete(ctx, id, actual, completedAt); err != nil {
		return nil, err
	}

	completed, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.tg.NotifyTaskCompleted(completed)
	return completed, nil
}

func (s *taskService) Assign(ctx context.Context, id string, address *string) (*models.Task, error) {
	if address != nil {
		normalized := wallet.Normalize(*address)
		if !wallet.IsValidAddress(normalized) {
			return nil, fmt.Errorf("%w: invalid assignee address", ErrInvalidInput)
		}
		address = &normalized
	}

	if err := s.repo.UpdateAssignee(ctx, id, address); err != nil {
		return nil, err
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if address != nil {
		s.tg.NotifyTaskAssigned(task)
	}
	return task, nil
}
