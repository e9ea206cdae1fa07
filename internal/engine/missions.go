package engine

import (
	"fmt"
	"time"
)

// MissionOutcome reports a quota gate decision.
type MissionOutcome struct {
	Accepted bool
	// Remaining acceptances for the day after this decision.
	Remaining int
	// Task is the created mission task on acceptance, nil on rejection.
	Task *Task
}

// TryAcceptMission runs the daily quota gate for an accepted suggestion. The
// counter is keyed by calendar day: the first acceptance on a new day resets
// it to 1 regardless of yesterday's total. On acceptance the suggestion
// becomes a mission-flagged task due once a day starting at the acceptance
// time; no XP is granted until that task's occurrences are fulfilled.
func TryAcceptMission(u *User, r Rules, s Suggestion, now time.Time) (*User, *MissionOutcome) {
	today := now.Format(DayFormat)

	count := 0
	if u.MissionDate == today {
		count = u.MissionCount
	}
	if count >= r.DailyMissionCap {
		return u, &MissionOutcome{Accepted: false, Remaining: 0}
	}

	reminder := s.Reminder
	if !reminder.IsValid() {
		reminder = DefaultReminder
	}

	task := Task{
		ID:             NewTaskID(),
		Name:           s.Name,
		Description:    s.Description,
		StartTime:      ClockTime{Hour: now.Hour(), Minute: now.Minute()},
		FrequencyHours: 24,
		Criticality:    DefaultCriticality,
		Reminder:       reminder,
		Kind:           KindGeneric,
		IsMission:      true,
		CreatedAt:      now,
	}

	next := u.Clone()
	next.Tasks = append(next.Tasks, task)
	next.MissionDate = today
	next.MissionCount = count + 1

	return next, &MissionOutcome{
		Accepted:  true,
		Remaining: r.DailyMissionCap - next.MissionCount,
		Task:      &next.Tasks[len(next.Tasks)-1],
	}
}

// MissionsAcceptedToday returns the stored counter if it belongs to today,
// otherwise zero.
func MissionsAcceptedToday(u *User, today string) int {
	if u.MissionDate == today {
		return u.MissionCount
	}
	return 0
}

// QuotaMessage is the feedback surfaced when the gate rejects.
func QuotaMessage(r Rules) string {
	return fmt.Sprintf("Você já aceitou %d missões hoje. Foco nas que já tem!", r.DailyMissionCap)
}
