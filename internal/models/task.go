// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Weight is the fixed contribution weight of a priority.
func (p TaskPriority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 5
	}
	return 1
}

// RecurringWeekly is the only supported recurrence pattern.
const RecurringWeekly = "weekly"

// Task represents the structure of a task in the system.
// EstimatedTime and ActualTime are minutes; ActualTime and CompletedAt are
// set exactly when the task transitions to completed.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`

	EstimatedTime int  `json:"estimated_time"`
	ActualTime    *int `json:"actual_time,omitempty"`

	ScheduledDate      time.Time `json:"scheduled_date"`
	ScheduledStartTime string    `json:"scheduled_start_time"` // "13:00"
	ScheduledEndTime   string    `json:"scheduled_end_time"`   // "14:00"

	IsRecurring        bool       `json:"is_recurring"`
	RecurringPattern   string     `json:"recurring_pattern,omitempty"`
	RecurringEndDate   *time.Time `json:"recurring_end_date,omitempty"`
	RecurringDayOfWeek *int       `json:"recurring_day_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	RecurringParentID  *string    `json:"recurring_parent_id,omitempty"`

	StartDate time.Time  `json:"start_date"`
	DueDate   time.Time  `json:"due_date"`
	Status    TaskStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Wallet address of the assignee; nil means unassigned.
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Status            *TaskStatus
	Priority          *TaskPriority
	AssignedTo        *string
	Unassigned        bool
	RecurringParentID *string
}
