package engine

import "time"

// Rules holds every tunable progression threshold. The defaults are the
// baseline behavior; deployments override them through the config file.
type Rules struct {
	// XP awarded when an occurrence transitions to fulfilled.
	BaseXP    int
	MissionXP int

	// Level = XP / XPPerLevel.
	XPPerLevel int

	// The map advances one milestone per MapEveryLevels level-ups.
	MapEveryLevels int

	// Window before a pending occurrence is flagged as due soon.
	DueSoonWindow time.Duration

	// Accepted suggested missions allowed per calendar day.
	DailyMissionCap int

	// "Early riser": EarlyCount fulfillments before EarlyHour (local).
	EarlyHour  int
	EarlyCount int

	// "Perfect streak": trailing StreakDays with no misses and more than
	// StreakMinFulfilled fulfillments.
	StreakDays         int
	StreakMinFulfilled int
}

func DefaultRules() Rules {
	return Rules{
		BaseXP:             10,
		MissionXP:          15,
		XPPerLevel:         100,
		MapEveryLevels:     1,
		DueSoonWindow:      time.Hour,
		DailyMissionCap:    5,
		EarlyHour:          9,
		EarlyCount:         3,
		StreakDays:         7,
		StreakMinFulfilled: 5,
	}
}

// MapMilestones is the fixed journey-map sequence. MapProgress indexes into
// it and never exceeds the final milestone.
var MapMilestones = []string{
	"Vila Inicial",
	"Floresta dos Hábitos",
	"Picos da Concentração",
	"Rio da Memória",
	"Campos da Serenidade",
	"Cidadela da Maestria",
}

// LevelForXP returns the level for a total XP amount.
func (r Rules) LevelForXP(xp int) int {
	if xp <= 0 || r.XPPerLevel <= 0 {
		return 0
	}
	return xp / r.XPPerLevel
}

// XPForLevel returns the XP threshold at which the given level starts.
func (r Rules) XPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return level * r.XPPerLevel
}

// AdvanceMap returns the new map position after a level change. The map only
// moves forward, one milestone per MapEveryLevels boundary crossed, capped at
// the last milestone.
func (r Rules) AdvanceMap(progress, oldLevel, newLevel int) int {
	if newLevel <= oldLevel {
		return progress
	}
	every := r.MapEveryLevels
	if every <= 0 {
		every = 1
	}
	steps := newLevel/every - oldLevel/every
	next := progress + steps
	if max := len(MapMilestones) - 1; next > max {
		next = max
	}
	if next < progress {
		return progress
	}
	return next
}
