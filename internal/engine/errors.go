package engine

import "fmt"

// NotFoundError indicates a fulfillment referenced a task the user does not
// own. No state changes when it is returned.
type NotFoundError struct {
	TaskID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.TaskID)
}

// FrequencyError indicates a recurrence rule that cannot produce a sane
// schedule. Tasks with such a rule must not be persisted.
type FrequencyError struct {
	Hours int
}

func (e FrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency %dh: must be a positive number of hours", e.Hours)
}
