package contribution_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"suilog/internal/contribution"
	"suilog/internal/models"
)

func intPtr(v int) *int              { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func completedTask(priority models.TaskPriority, estimated int, actual *int, due, completedAt time.Time) models.Task {
	return models.Task{
		ID:            "t",
		Priority:      priority,
		EstimatedTime: estimated,
		ActualTime:    actual,
		DueDate:       due,
		Status:        models.StatusCompleted,
		CompletedAt:   timePtr(completedAt),
	}
}

func TestCalculateOnTimeUrgentTask(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	task := completedTask(models.PriorityUrgent, 60, intPtr(60), due, due)

	summary := contribution.Calculate([]models.Task{task})
	// V=5, E=1.0, T=1.0.
	require.Equal(t, 5.0, summary.ContributionScore)
	require.Equal(t, 1, summary.TotalTasks)
	require.Equal(t, 1, summary.CompletedTasks)
	require.Equal(t, 60, summary.TotalEstimatedTime)
	require.Equal(t, 60, summary.TotalActualTime)
}

func TestCalculateThreeDaysLate(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	task := completedTask(models.PriorityUrgent, 60, intPtr(60), due, due.AddDate(0, 0, 3))

	summary := contribution.Calculate([]models.Task{task})
	// T = max(0.5, 1.0 - 3*0.1) = 0.7, so 5 * 1.0 * 0.7.
	require.Equal(t, 3.5, summary.ContributionScore)
}

func TestCalculateTimelinessFloor(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	task := completedTask(models.PriorityLow, 60, intPtr(60), due, due.AddDate(0, 0, 30))

	summary := contribution.Calculate([]models.Task{task})
	// 30 days late decays past the 0.5 floor.
	require.Equal(t, 0.5, summary.ContributionScore)
}

func TestCalculateEfficiencyClamps(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	// Finished in a third of the estimate: ratio 3.0 clamps to 1.5.
	fast := completedTask(models.PriorityLow, 90, intPtr(30), due, due)
	require.Equal(t, 1.5, contribution.Calculate([]models.Task{fast}).ContributionScore)

	// Took three times the estimate: ratio clamps to 0.5.
	slow := completedTask(models.PriorityLow, 30, intPtr(90), due, due)
	require.Equal(t, 0.5, contribution.Calculate([]models.Task{slow}).ContributionScore)

	// No recorded actual time is neutral.
	neutral := completedTask(models.PriorityLow, 30, nil, due, due)
	require.Equal(t, 1.0, contribution.Calculate([]models.Task{neutral}).ContributionScore)
}

func TestCalculateIgnoresIncompleteTasks(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "p", Priority: models.PriorityUrgent, EstimatedTime: 600, DueDate: due, Status: models.StatusPending},
		{ID: "w", Priority: models.PriorityHigh, EstimatedTime: 300, DueDate: due, Status: models.StatusInProgress},
		completedTask(models.PriorityMedium, 60, intPtr(80), due, due),
	}

	summary := contribution.Calculate(tasks)
	require.Equal(t, 3, summary.TotalTasks)
	require.Equal(t, 1, summary.CompletedTasks)
	// Time totals cover completed tasks only.
	require.Equal(t, 60, summary.TotalEstimatedTime)
	require.Equal(t, 80, summary.TotalActualTime)
	// V=2, E=60/80=0.75, T=1.0 -> 1.5.
	require.Equal(t, 1.5, summary.ContributionScore)
}

func TestCalculateIsIdempotent(t *testing.T) {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		completedTask(models.PriorityUrgent, 60, intPtr(45), due, due.AddDate(0, 0, 1)),
		completedTask(models.PriorityLow, 120, nil, due, due),
	}

	first := contribution.Calculate(tasks)
	second := contribution.Calculate(tasks)
	require.Equal(t, first, second)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	require.True(t, contribution.IsOverdue(models.Task{DueDate: due, Status: models.StatusPending}, now))
	require.False(t, contribution.IsOverdue(models.Task{DueDate: due, Status: models.StatusCompleted}, now))
	require.False(t, contribution.IsOverdue(models.Task{DueDate: now.AddDate(0, 0, 1), Status: models.StatusPending}, now))
}

func TestFormatMinutes(t *testing.T) {
	require.Equal(t, "30m", contribution.FormatMinutes(30))
	require.Equal(t, "2h", contribution.FormatMinutes(120))
	require.Equal(t, "2h 30m", contribution.FormatMinutes(150))
	require.Equal(t, "0m", contribution.FormatMinutes(0))
}
