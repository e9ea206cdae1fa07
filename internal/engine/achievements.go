package engine

import "time"

// Achievement is a badge the user can earn. Cond must be a pure predicate
// over the snapshot: it is re-evaluated on every progression step.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string

	Cond func(u *User, r Rules, now time.Time) bool
}

// AchievementTable returns the rule set in declared priority order. When a
// single progression step unlocks several achievements, only the first in
// this order is surfaced as a notification; the rest unlock silently.
func AchievementTable() []Achievement {
	return []Achievement{
		{
			ID:          "welcome_hero",
			Name:        "Boas-Vindas, Herói!",
			Description: "Complete a configuração inicial.",
			Icon:        "🦸",
			Cond: func(u *User, _ Rules, _ time.Time) bool {
				return u.OnboardingDone
			},
		},
		{
			ID:          "first_step",
			Name:        "Primeiro Passo",
			Description: "Conclua sua primeira tarefa.",
			Icon:        "✨",
			Cond: func(u *User, _ Rules, _ time.Time) bool {
				return fulfilledCount(u) >= 1
			},
		},
		{
			ID:          "morning_person",
			Name:        "Madrugador",
			Description: "Conclua 3 tarefas antes das 9h.",
			Icon:        "🌅",
			Cond: func(u *User, r Rules, _ time.Time) bool {
				return earlyFulfilledCount(u, r.EarlyHour) >= r.EarlyCount
			},
		},
		{
			ID:          "perfect_week",
			Name:        "Semana Perfeita",
			Description: "Sete dias seguidos sem perder nenhuma tarefa.",
			Icon:        "🏵️",
			Cond: func(u *User, r Rules, now time.Time) bool {
				fulfilled, missed := trailingWindowCounts(u, now, r.StreakDays)
				return missed == 0 && fulfilled > r.StreakMinFulfilled
			},
		},
	}
}

func fulfilledCount(u *User) int {
	n := 0
	for i := range u.History {
		if u.History[i].Status == LogFulfilled {
			n++
		}
	}
	return n
}

// earlyFulfilledCount counts fulfillments whose action time (local) is
// before the given hour. Entries without an action time fall back to the
// scheduled time.
func earlyFulfilledCount(u *User, hour int) int {
	n := 0
	for i := range u.History {
		e := &u.History[i]
		if e.Status != LogFulfilled {
			continue
		}
		at := e.ActionAt
		if at.IsZero() {
			at = e.ScheduledAt
		}
		if at.Local().Hour() < hour {
			n++
		}
	}
	return n
}

// trailingWindowCounts tallies ledger entries whose scheduled time falls in
// the trailing days-long window ending at now.
func trailingWindowCounts(u *User, now time.Time, days int) (fulfilled, missed int) {
	cutoff := now.AddDate(0, 0, -days)
	for i := range u.History {
		e := &u.History[i]
		if e.ScheduledAt.Before(cutoff) || e.ScheduledAt.After(now) {
			continue
		}
		switch e.Status {
		case LogFulfilled:
			fulfilled++
		case LogMissed:
			missed++
		}
	}
	return fulfilled, missed
}

// evaluateAchievements checks the full table against the snapshot and
// appends every newly satisfied achievement to the unlocked set, in table
// order. The snapshot must already be a private clone.
func evaluateAchievements(u *User, r Rules, now time.Time) []Achievement {
	var unlocked []Achievement
	for _, a := range AchievementTable() {
		if u.HasAchievement(a.ID) {
			continue
		}
		if !a.Cond(u, r, now) {
			continue
		}
		u.Achievements = append(u.Achievements, a.ID)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// AchievementByID returns the table entry for id, or nil.
func AchievementByID(id string) *Achievement {
	for _, a := range AchievementTable() {
		if a.ID == id {
			a := a
			return &a
		}
	}
	return nil
}
