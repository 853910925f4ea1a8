package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"suilog/internal/models"
	"suilog/internal/schedule"
)

func TestReportServiceContributionFilter(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTaskRepo()
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	mine := completedTask(due)
	mine.ID = "mine"
	addr := testAddr
	mine.AssignedTo = &addr

	other := completedTask(due)
	other.ID = "other"
	otherAddr := "0x1111111111111111111111111111111111111111"
	other.AssignedTo = &otherAddr

	require.NoError(t, repo.StoreBatch(ctx, []models.Task{mine, other}))

	svc := NewReportService(repo)

	all, err := svc.Contribution(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 2, all.CompletedTasks)
	require.Equal(t, 10.0, all.ContributionScore)

	// Filter matches case-insensitively.
	upper := "0x7A1B2C3D4E5F60718293A4B5C6D7E8F901234567"
	filtered, err := svc.Contribution(ctx, &upper)
	require.NoError(t, err)
	require.Equal(t, 1, filtered.CompletedTasks)
	require.Equal(t, 1, filtered.TotalTasks)
	require.Equal(t, 5.0, filtered.ContributionScore)
}

func TestReportServiceScheduleAndGantt(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTaskRepo()
	tomorrow := time.Now().AddDate(0, 0, 1)
	require.NoError(t, repo.StoreBatch(ctx, []models.Task{{
		ID:            "t1",
		Title:         "Tomorrow",
		EstimatedTime: 90,
		ScheduledDate: tomorrow,
		StartDate:     tomorrow,
		DueDate:       tomorrow.AddDate(0, 0, 1),
		Status:        models.StatusPending,
	}}))

	svc := NewReportService(repo)

	days, err := svc.Schedule(ctx)
	require.NoError(t, err)
	require.Len(t, days, schedule.ScheduleDays)
	require.Equal(t, 90, days[1].ScheduledMinutes)

	chart, err := svc.Gantt(ctx)
	require.NoError(t, err)
	require.Len(t, chart.Tasks, 1)
	require.Equal(t, 0, chart.Tasks[0].Progress)
}

func TestReportServiceSummary(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTaskRepo()
	now := time.Now()
	due := now.AddDate(0, 0, -1)
	require.NoError(t, repo.StoreBatch(ctx, []models.Task{
		{ID: "a", Status: models.StatusPending, DueDate: due, EstimatedTime: 30},
		{ID: "b", Status: models.StatusInProgress, DueDate: now.AddDate(0, 0, 2), EstimatedTime: 30},
		completedTask(now.AddDate(0, 0, -3)),
	}))

	svc := NewReportService(repo)
	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Pending)
	require.Equal(t, 1, summary.InProgress)
	require.Equal(t, 1, summary.Overdue)
	require.Equal(t, 3, summary.Contribution.TotalTasks)
	require.Equal(t, 1, summary.Contribution.CompletedTasks)
}
