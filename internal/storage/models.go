package storage

import "time"

type UserRow struct {
	Key            string
	Name           string
	Power          string
	XP             int
	Level          int
	MapProgress    int
	Achievements   []string
	MissionDate    string
	MissionCount   int
	OnboardingDone bool
	CreatedAt      time.Time
}

type TaskRow struct {
	ID             string
	UserKey        string
	Name           string
	Description    string
	StartHour      int
	StartMinute    int
	FrequencyHours int
	Criticality    string
	Reminder       string
	Kind           string
	Dosage         *string
	Instructions   *string
	Category       *string
	Subcategory    *string
	IsMission      bool
	CreatedAt      time.Time
}

// LogRow is one adherence event. ScheduledAt is persisted as Unix seconds so
// the (TaskID, ScheduledAt) key survives a save/load round trip exactly.
type LogRow struct {
	TaskID      string
	ScheduledAt time.Time
	Status      string
	ActionAt    time.Time
}
