package engine

import "time"

// Status is the live classification of one occurrence.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusMissed    Status = "missed"
)

// ResolveStatus classifies an occurrence relative to now. A recorded ledger
// entry always wins; otherwise an occurrence in the past is missed and a
// future one is pending. Resolution is never cached — callers re-resolve on
// every render so ledger writes show up immediately.
func ResolveStatus(u *User, taskID string, occurrenceAt, now time.Time) Status {
	if log := u.FindLog(taskID, occurrenceAt); log != nil {
		switch log.Status {
		case LogFulfilled:
			return StatusFulfilled
		case LogMissed:
			return StatusMissed
		}
	}
	if now.After(occurrenceAt) {
		return StatusMissed
	}
	return StatusPending
}

// DueSoon reports whether a pending occurrence falls inside the advisory
// reminder window. It is UI state only and never persisted.
func (r Rules) DueSoon(status Status, occurrenceAt, now time.Time) bool {
	if status != StatusPending {
		return false
	}
	until := occurrenceAt.Sub(now)
	return until >= 0 && until < r.DueSoonWindow
}
