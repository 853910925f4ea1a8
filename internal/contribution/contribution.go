// Package contribution implements the weighted contribution score over
// completed tasks.
package contribution

import (
	"fmt"
	"math"
	"time"

	"suilog/internal/models"
)

// Summary aggregates the task list into the figures shown on the stats
// panel and passed to the completion-proof mint.
type Summary struct {
	TotalTasks         int     `json:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks"`
	TotalEstimatedTime int     `json:"total_estimated_time"`
	TotalActualTime    int     `json:"total_actual_time"`
	ContributionScore  float64 `json:"contribution_score"`
}

// efficiencyScore rewards finishing under estimate and penalizes overruns,
// bounded to [0.5, 1.5]. Without a recorded actual time it is neutral.
func efficiencyScore(estimated int, actual *int) float64 {
	if actual == nil || *actual == 0 {
		return 1.0
	}
	ratio := float64(estimated) / float64(*actual)
	return math.Min(1.5, math.Max(0.5, ratio))
}

// timelinessScore is 1.0 for completion on or before the due date, then
// decays by 0.1 per day late, floored at 0.5.
func timelinessScore(dueDate time.Time, completedAt *time.Time) float64 {
	if completedAt == nil {
		return 0
	}
	late := completedAt.Sub(dueDate)
	if late <= 0 {
		return 1.0
	}
	daysLate := math.Ceil(late.Hours() / 24)
	return math.Max(0.5, 1.0-daysLate*0.1)
}

// Calculate computes the contribution summary for a task list. Only
// completed tasks contribute to the score and time totals; actual time
// falls back to the estimate when absent. The score is the sum of
// priority-weight x efficiency x timeliness, rounded to one decimal.
func Calculate(tasks []models.Task) Summary {
	var completed []models.Task
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			completed = append(completed, t)
		}
	}

	totalEstimated := 0
	totalActual := 0
	score := 0.0
	for _, t := range completed {
		totalEstimated += t.EstimatedTime
		if t.ActualTime != nil {
			totalActual += *t.ActualTime
		} else {
			totalActual += t.EstimatedTime
		}

		v := float64(t.Priority.Weight())
		e := efficiencyScore(t.EstimatedTime, t.ActualTime)
		ts := timelinessScore(t.DueDate, t.CompletedAt)
		score += v * e * ts
	}

	return Summary{
		TotalTasks:         len(tasks),
		CompletedTasks:     len(completed),
		TotalEstimatedTime: totalEstimated,
		TotalActualTime:    totalActual,
		ContributionScore:  math.Round(score*10) / 10,
	}
}

// IsOverdue reports whether a non-completed task is past its due date.
func IsOverdue(t models.Task, now time.Time) bool {
	return t.Status != models.StatusCompleted && now.After(t.DueDate)
}

// DaysUntilDue returns the number of days until the due date, rounded up.
// Negative for overdue tasks.
func DaysUntilDue(t models.Task, now time.Time) int {
	return int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
}

// FormatMinutes renders minutes as "2h 30m", "2h" or "30m".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
