// Package gantt computes the shared time axis and bar layout for the
// project timeline view.
package gantt

import (
	"time"

	"suilog/internal/models"
)

// Bar is one task row on the chart.
type Bar struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	StartDate time.Time           `json:"start_date"`
	DueDate   time.Time           `json:"due_date"`
	Progress  int                 `json:"progress"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
}

// Chart is the full layout input for rendering: every bar plus the shared
// min/max date axis.
type Chart struct {
	Tasks   []Bar     `json:"tasks"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// Position is a bar's horizontal placement on a 0-100 percentage scale.
type Position struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Progress maps a status to its fixed bar fill. This is a display
// heuristic, not a computed completion ratio.
func Progress(status models.TaskStatus) int {
	switch status {
	case models.StatusCompleted:
		return 100
	case models.StatusInProgress:
		return 50
	}
	return 0
}

// Build computes the chart for a task list. An empty list yields a one-day
// window anchored at now. A degenerate window (all tasks share one instant)
// is widened by a day so positions stay well-defined.
func Build(tasks []models.Task, now time.Time) Chart {
	if len(tasks) == 0 {
		return Chart{
			Tasks:   []Bar{},
			MinDate: now,
			MaxDate: now.Add(24 * time.Hour),
		}
	}

	bars := make([]Bar, 0, len(tasks))
	minDate := tasks[0].StartDate
	maxDate := tasks[0].DueDate
	for _, t := range tasks {
		bars = append(bars, Bar{
			ID:        t.ID,
			Title:     t.Title,
			StartDate: t.StartDate,
			DueDate:   t.DueDate,
			Progress:  Progress(t.Status),
			Status:    t.Status,
			Priority:  t.Priority,
		})
		if t.StartDate.Before(minDate) {
			minDate = t.StartDate
		}
		if t.DueDate.After(maxDate) {
			maxDate = t.DueDate
		}
	}

	if !maxDate.After(minDate) {
		maxDate = minDate.Add(24 * time.Hour)
	}

	return Chart{Tasks: bars, MinDate: minDate, MaxDate: maxDate}
}

// DaysInRange enumerates every calendar day (truncated to midnight) from
// minDate to maxDate inclusive.
func DaysInRange(minDate, maxDate time.Time) []time.Time {
	var days []time.Time
	current := truncateToDay(minDate)
	for !current.After(maxDate) {
		days = append(days, current)
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// TaskPosition maps a task's span onto the 0-100 scale of the shared axis.
// A zero-width axis yields a zero position instead of dividing by zero.
func TaskPosition(taskStart, taskEnd, minDate, maxDate time.Time) Position {
	total := maxDate.Sub(minDate)
	if total <= 0 {
		return Position{}
	}
	return Position{
		Left:  float64(taskStart.Sub(minDate)) / float64(total) * 100,
		Width: float64(taskEnd.Sub(taskStart)) / float64(total) * 100,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
