package services

import (
	"context"
	"time"

	"suilog/internal/contribution"
	"suilog/internal/gantt"
	"suilog/internal/models"
	"suilog/internal/repositories"
	"suilog/internal/schedule"
	"suilog/internal/wallet"
)

// ReportService feeds the stats panel, weekly chart and Gantt chart. It is
// a thin layer over the pure calculators; all state comes from the task
// repository per call.
type ReportService struct {
	tasks repositories.TaskRepository
}

func NewReportService(tasks repositories.TaskRepository) *ReportService {
	return &ReportService{tasks: tasks}
}

// Summary is the dashboard header: the contribution figures plus live
// status counts.
type Summary struct {
	Contribution contribution.Summary `json:"contribution"`
	Pending      int                  `json:"pending"`
	InProgress   int                  `json:"in_progress"`
	Overdue      int                  `json:"overdue"`
}

// Contribution computes the score over all tasks, or over one member's
// tasks when assignedTo is set (address comparison is normalized).
func (s *ReportService) Contribution(ctx context.Context, assignedTo *string) (contribution.Summary, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return contribution.Summary{}, err
	}
	if assignedTo != nil {
		var filtered []models.Task
		for _, t := range tasks {
			if t.AssignedTo != nil && wallet.Equal(*t.AssignedTo, *assignedTo) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return contribution.Calculate(tasks), nil
}

// Schedule returns the 14-day forward view keyed on scheduled dates.
func (s *ReportService) Schedule(ctx context.Context) ([]schedule.Day, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return schedule.TwoWeek(tasks, time.Now()), nil
}

// WeeklyHours returns the legacy 7-day view keyed on due dates.
func (s *ReportService) WeeklyHours(ctx context.Context) ([]schedule.WorkHoursDay, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return schedule.WeeklyWorkHours(tasks, time.Now()), nil
}

// Gantt returns the timeline layout for all tasks.
func (s *ReportService) Gantt(ctx context.Context) (gantt.Chart, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return gantt.Chart{}, err
	}
	return gantt.Build(tasks, time.Now()), nil
}

// GetSummary aggregates the dashboard header figures.
func (s *ReportService) GetSummary(ctx context.Context) (Summary, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return Summary{}, err
	}

	now := time.Now()
	summary := Summary{Contribution: contribution.Calculate(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			summary.Pending++
		case models.StatusInProgress:
			summary.InProgress++
		}
		if contribution.IsOverdue(t, now) {
			summary.Overdue++
		}
	}
	return summary, nil
}
