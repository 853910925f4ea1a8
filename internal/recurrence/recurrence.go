// Package recurrence expands weekly recurring tasks into concrete instances.
package recurrence

import (
	"time"

	"github.com/google/uuid"

	"suilog/internal/models"
)

// Expand materializes a recurring task into the full ordered sequence of
// weekly instances: the original first, then one instance per week with the
// scheduled/start/due dates advanced by 7 days, stopping once the advanced
// date would pass RecurringEndDate (boundary inclusive).
//
// Expansion is one-shot: instances are stored independently and editing one
// later does not affect the others. A task that is not recurring, or that is
// missing its recurrence fields, expands to just itself.
func Expand(base models.Task, now time.Time) []models.Task {
	if !base.IsRecurring || base.RecurringEndDate == nil || base.RecurringDayOfWeek == nil {
		return []models.Task{base}
	}

	parentID := base.ID
	endDate := *base.RecurringEndDate

	first := base
	first.RecurringParentID = &parentID
	tasks := []models.Task{first}

	current := base.ScheduledDate
	for {
		current = current.AddDate(0, 0, 7)
		if current.After(endDate) {
			break
		}

		instance := base
		instance.ID = uuid.NewString()
		instance.ScheduledDate = current
		instance.StartDate = current
		instance.DueDate = current
		instance.CreatedAt = now
		instance.RecurringParentID = &parentID
		tasks = append(tasks, instance)
	}

	return tasks
}
