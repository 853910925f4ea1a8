package services

import "suilog/internal/models"

// Allowed task status transitions. Completed is terminal; finishing a task
// goes through Complete so the completion pair gets stamped.
var taskTransitions = map[models.TaskStatus]map[models.TaskStatus]bool{
	models.StatusPending:    {models.StatusInProgress: true, models.StatusCompleted: true},
	models.StatusInProgress: {models.StatusPending: true, models.StatusCompleted: true},
	models.StatusCompleted:  {},
}

func canTransition(current, to models.TaskStatus) bool {
	nexts, ok := taskTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}
