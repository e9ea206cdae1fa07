package engine

import (
	"fmt"
	"time"
)

// FulfillOutcome reports what a single fulfillment changed.
type FulfillOutcome struct {
	TaskID      string
	ScheduledAt time.Time

	// Duplicate is set when the occurrence was already fulfilled; the call
	// was a no-op and nothing below is meaningful.
	Duplicate bool

	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	MapBefore   int
	MapAfter    int

	Unlocked []Achievement

	// Notice is the single human-readable message to surface, if any: the
	// first newly unlocked achievement wins over a map advance.
	Notice string
}

// ApplyFulfillment records a fulfilled adherence event for the
// (taskID, scheduledAt) occurrence and folds the reward into the snapshot:
// XP, level, map position and achievement unlocks. The input snapshot is
// never mutated; the returned one replaces it wholesale.
//
// Reapplying the same key is a no-op returning the snapshot unchanged, so a
// double submit can never double-award XP. A prior missed entry for the key
// is replaced (the "register late" flow) and still awards exactly once.
func ApplyFulfillment(u *User, r Rules, taskID string, scheduledAt, now time.Time) (*User, *FulfillOutcome, error) {
	task := u.Task(taskID)
	if task == nil {
		return nil, nil, NotFoundError{TaskID: taskID}
	}

	key := NormalizeStamp(scheduledAt)
	if prior := u.FindLog(taskID, key); prior != nil && prior.Status == LogFulfilled {
		return u, &FulfillOutcome{TaskID: taskID, ScheduledAt: key, Duplicate: true}, nil
	}

	next := u.Clone()
	next.upsertLog(LogEntry{
		TaskID:      taskID,
		ScheduledAt: key,
		Status:      LogFulfilled,
		ActionAt:    now,
	})

	award := r.BaseXP
	if task.IsMission {
		award = r.MissionXP
	}
	next.XP += award

	out := &FulfillOutcome{
		TaskID:      taskID,
		ScheduledAt: key,
		XPAwarded:   award,
		LevelBefore: next.Level,
		MapBefore:   next.MapProgress,
	}

	next.Level = r.LevelForXP(next.XP)
	out.LevelAfter = next.Level
	out.LevelUp = next.Level > out.LevelBefore
	next.MapProgress = r.AdvanceMap(next.MapProgress, out.LevelBefore, next.Level)
	out.MapAfter = next.MapProgress

	out.Unlocked = evaluateAchievements(next, r, now)

	switch {
	case len(out.Unlocked) > 0:
		out.Notice = fmt.Sprintf("Nova conquista: %s!", out.Unlocked[0].Name)
	case out.MapAfter > out.MapBefore:
		out.Notice = fmt.Sprintf("Você avançou no Mapa da Jornada: %s!", MapMilestones[out.MapAfter])
	case out.LevelUp:
		out.Notice = fmt.Sprintf("Você alcançou o nível %d!", out.LevelAfter)
	}

	return next, out, nil
}

// RecordMiss writes a missed adherence event for the occurrence. No XP or
// achievement processing happens; a later fulfillment replaces the entry.
func RecordMiss(u *User, taskID string, scheduledAt, now time.Time) (*User, error) {
	if u.Task(taskID) == nil {
		return nil, NotFoundError{TaskID: taskID}
	}
	next := u.Clone()
	next.upsertLog(LogEntry{
		TaskID:      taskID,
		ScheduledAt: NormalizeStamp(scheduledAt),
		Status:      LogMissed,
		ActionAt:    now,
	})
	return next, nil
}
