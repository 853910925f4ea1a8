// Package schedule buckets tasks by calendar day for the weekly chart.
package schedule

import (
	"time"

	"suilog/internal/models"
)

// OvertimeThreshold is the daily workload above which a day is flagged,
// in minutes (8 hours).
const OvertimeThreshold = 480

// ScheduleDays is the length of the forward window of the two-week view.
const ScheduleDays = 14

// Day is one daily bucket of the two-week schedule. Scheduled minutes cover
// tasks planned for the day that are not yet completed; actual minutes cover
// the day's completed tasks (falling back to the estimate when no actual
// time was recorded).
type Day struct {
	Date             string        `json:"date"` // YYYY-MM-DD
	DayOfWeek        string        `json:"day_of_week"`
	ScheduledMinutes int           `json:"scheduled_minutes"`
	ActualMinutes    int           `json:"actual_minutes"`
	IsToday          bool          `json:"is_today"`
	IsOvertime       bool          `json:"is_overtime"`
	ScheduledTasks   []models.Task `json:"scheduled_tasks"`
	CompletedTasks   []models.Task `json:"completed_tasks"`
}

// WorkHoursDay is one bucket of the legacy 7-day view, which is keyed on
// due date rather than scheduled date and reports a single total.
type WorkHoursDay struct {
	Date         string `json:"date"` // YYYY-MM-DD
	DayOfWeek    string `json:"day_of_week"`
	TotalMinutes int    `json:"total_minutes"`
	IsToday      bool   `json:"is_today"`
	IsOvertime   bool   `json:"is_overtime"`
}

// TwoWeek produces exactly 14 consecutive daily buckets starting at now's
// calendar day, keyed on each task's scheduled date.
func TwoWeek(tasks []models.Task, now time.Time) []Day {
	today := truncateToDay(now)
	days := make([]Day, 0, ScheduleDays)

	for i := 0; i < ScheduleDays; i++ {
		targetDate := today.AddDate(0, 0, i)
		nextDay := targetDate.AddDate(0, 0, 1)

		var scheduledTasks []models.Task
		for _, t := range tasks {
			if !t.ScheduledDate.Before(targetDate) && t.ScheduledDate.Before(nextDay) {
				scheduledTasks = append(scheduledTasks, t)
			}
		}

		var completedTasks []models.Task
		scheduledMinutes := 0
		actualMinutes := 0
		for _, t := range scheduledTasks {
			if t.Status == models.StatusCompleted {
				completedTasks = append(completedTasks, t)
				if t.ActualTime != nil {
					actualMinutes += *t.ActualTime
				} else {
					actualMinutes += t.EstimatedTime
				}
				continue
			}
			scheduledMinutes += t.EstimatedTime
		}

		days = append(days, Day{
			Date:             targetDate.Format("2006-01-02"),
			DayOfWeek:        targetDate.Format("Mon"),
			ScheduledMinutes: scheduledMinutes,
			ActualMinutes:    actualMinutes,
			IsToday:          targetDate.Equal(today),
			IsOvertime:       scheduledMinutes > OvertimeThreshold || actualMinutes > OvertimeThreshold,
			ScheduledTasks:   scheduledTasks,
			CompletedTasks:   completedTasks,
		})
	}

	return days
}

// WeeklyWorkHours produces the 7-day forward view keyed on due date.
// Distinct from TwoWeek on purpose: the bucketing key differs.
func WeeklyWorkHours(tasks []models.Task, now time.Time) []WorkHoursDay {
	today := truncateToDay(now)
	days := make([]WorkHoursDay, 0, 7)

	for i := 0; i < 7; i++ {
		targetDate := today.AddDate(0, 0, i)
		nextDay := targetDate.AddDate(0, 0, 1)

		totalMinutes := 0
		for _, t := range tasks {
			if !t.DueDate.Before(targetDate) && t.DueDate.Before(nextDay) {
				totalMinutes += t.EstimatedTime
			}
		}

		days = append(days, WorkHoursDay{
			Date:         targetDate.Format("2006-01-02"),
			DayOfWeek:    targetDate.Format("Mon"),
			TotalMinutes: totalMinutes,
			IsToday:      targetDate.Equal(today),
			IsOvertime:   totalMinutes > OvertimeThreshold,
		})
	}

	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
