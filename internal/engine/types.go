package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Criticality string

const (
	CriticalityHigh   Criticality = "high"
	CriticalityMedium Criticality = "medium"
	CriticalityLow    Criticality = "low"
)

func (c Criticality) IsValid() bool {
	switch c {
	case CriticalityHigh, CriticalityMedium, CriticalityLow:
		return true
	default:
		return false
	}
}

// DefaultCriticality is used when user input is missing/invalid.
const DefaultCriticality Criticality = CriticalityMedium

type ReminderKind string

const (
	ReminderAlarm     ReminderKind = "alarm"
	ReminderSensitive ReminderKind = "sensitive"
	ReminderLoud      ReminderKind = "loud"
	ReminderCall      ReminderKind = "call"
	ReminderGame      ReminderKind = "game"
	ReminderWhatsApp  ReminderKind = "whatsapp"
)

func (r ReminderKind) IsValid() bool {
	switch r {
	case ReminderAlarm, ReminderSensitive, ReminderLoud, ReminderCall, ReminderGame, ReminderWhatsApp:
		return true
	default:
		return false
	}
}

const DefaultReminder ReminderKind = ReminderAlarm

type TaskKind string

const (
	KindGeneric    TaskKind = "generic"
	KindMedication TaskKind = "medication"
)

func (k TaskKind) IsValid() bool {
	return k == KindGeneric || k == KindMedication
}

// Power is the character power chosen during onboarding; it only keys the
// suggestion catalog and has no effect on scheduling or rewards.
type Power string

const (
	PowerFocus   Power = "focus"
	PowerMemory  Power = "memory"
	PowerCalm    Power = "calm"
	PowerPatient Power = "patient"
)

func (p Power) IsValid() bool {
	switch p {
	case PowerFocus, PowerMemory, PowerCalm, PowerPatient:
		return true
	default:
		return false
	}
}

// ClockTime is a time-of-day anchor (the "HH:MM" start time of a routine).
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(input string) (ClockTime, error) {
	s := strings.TrimSpace(input)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid start time %q (want HH:MM)", input)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid start time %q (want HH:MM)", input)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid start time %q (want HH:MM)", input)
	}
	ct := ClockTime{Hour: h, Minute: m}
	if !ct.IsValid() {
		return ClockTime{}, fmt.Errorf("start time %q out of range", input)
	}
	return ct, nil
}

func (c ClockTime) IsValid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant at this time-of-day on day's calendar date, in
// day's location.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Task is a recurring routine. Tasks are immutable once created; there are
// no edit/delete operations.
type Task struct {
	ID             string
	Name           string
	Description    string
	StartTime      ClockTime
	FrequencyHours int
	Criticality    Criticality
	Reminder       ReminderKind
	Kind           TaskKind

	// Medication metadata, descriptive only.
	Dosage       *string
	Instructions *string
	Category     *string
	Subcategory  *string

	// IsMission marks tasks created from an accepted suggestion; it only
	// changes the fulfillment reward.
	IsMission bool

	CreatedAt time.Time
}

func NewTaskID() string {
	return uuid.NewString()
}

type LogStatus string

const (
	LogFulfilled LogStatus = "fulfilled"
	LogMissed    LogStatus = "missed"
)

// LogEntry is one recorded adherence outcome for a single occurrence.
// At most one entry exists per (TaskID, ScheduledAt) key.
type LogEntry struct {
	TaskID      string
	ScheduledAt time.Time
	Status      LogStatus
	ActionAt    time.Time
}

// NormalizeStamp is the single timestamp representation used as the ledger
// join key: UTC, second precision. Every ScheduledAt must pass through it
// before comparison or persistence.
func NormalizeStamp(t time.Time) time.Time {
	return t.Truncate(time.Second).UTC()
}

// Suggestion is a candidate mission descriptor produced by the suggestion
// collaborator. The engine only decides acceptance and the shape of the
// resulting task.
type Suggestion struct {
	Name        string
	Description string
	Reminder    ReminderKind
}

// User is the full progression snapshot. Engine calls never mutate a
// snapshot in place; they clone it and return the new value.
type User struct {
	ID    string
	Name  string
	Power Power

	XP          int
	Level       int
	MapProgress int

	Achievements []string

	MissionDate  string // calendar day of the stored acceptance counter
	MissionCount int

	OnboardingDone bool

	Tasks   []Task
	History []LogEntry
}

// Clone returns an independent copy with fresh slices.
func (u *User) Clone() *User {
	c := *u
	c.Achievements = append([]string(nil), u.Achievements...)
	c.Tasks = append([]Task(nil), u.Tasks...)
	c.History = append([]LogEntry(nil), u.History...)
	return &c
}

func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Task returns the task with the given id, or nil.
func (u *User) Task(id string) *Task {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			return &u.Tasks[i]
		}
	}
	return nil
}

// FindLog returns the ledger entry for the (taskID, scheduledAt) key, or nil.
// scheduledAt is normalized before matching.
func (u *User) FindLog(taskID string, scheduledAt time.Time) *LogEntry {
	key := NormalizeStamp(scheduledAt)
	for i := range u.History {
		if u.History[i].TaskID == taskID && u.History[i].ScheduledAt.Equal(key) {
			return &u.History[i]
		}
	}
	return nil
}

// upsertLog inserts or replaces the entry sharing (TaskID, ScheduledAt).
// Second write wins; entries are never duplicated.
func (u *User) upsertLog(e LogEntry) {
	e.ScheduledAt = NormalizeStamp(e.ScheduledAt)
	for i := range u.History {
		if u.History[i].TaskID == e.TaskID && u.History[i].ScheduledAt.Equal(e.ScheduledAt) {
			u.History[i] = e
			return
		}
	}
	u.History = append(u.History, e)
}
