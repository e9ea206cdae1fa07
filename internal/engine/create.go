package engine

import (
	"errors"
	"strings"
	"time"
)

// CreateTaskInput is the user-facing shape for adding a routine.
type CreateTaskInput struct {
	Name           string
	Description    string
	StartTime      string // HH:MM
	FrequencyHours int
	Criticality    Criticality
	Reminder       ReminderKind
	Kind           TaskKind

	Dosage       string
	Instructions string
	Category     string
	Subcategory  string
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// BuildTask validates the input and materializes an immutable Task. The
// frequency check mirrors the generator's: a rule it would reject is never
// allowed into the task list.
func BuildTask(in CreateTaskInput, now time.Time) (*Task, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.FrequencyHours <= 0 {
		return nil, FrequencyError{Hours: in.FrequencyHours}
	}
	start, err := ParseClockTime(in.StartTime)
	if err != nil {
		return nil, err
	}

	crit := in.Criticality
	if !crit.IsValid() {
		crit = DefaultCriticality
	}
	reminder := in.Reminder
	if !reminder.IsValid() {
		reminder = DefaultReminder
	}
	kind := in.Kind
	if !kind.IsValid() {
		kind = KindGeneric
	}

	t := &Task{
		ID:             NewTaskID(),
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		StartTime:      start,
		FrequencyHours: in.FrequencyHours,
		Criticality:    crit,
		Reminder:       reminder,
		Kind:           kind,
		CreatedAt:      now,
	}
	if kind == KindMedication {
		t.Dosage = optional(in.Dosage)
		t.Instructions = optional(in.Instructions)
		t.Category = optional(in.Category)
		t.Subcategory = optional(in.Subcategory)
	}
	return t, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StarterTasks is the onboarding routine set offered to new users.
func StarterTasks() []CreateTaskInput {
	return []CreateTaskInput{
		{Name: "Beber Água", Description: "Manter a hidratação", StartTime: "08:00", FrequencyHours: 2, Criticality: CriticalityLow, Reminder: ReminderSensitive, Kind: KindGeneric},
		{Name: "Meditar", Description: "5 minutos de mindfulness", StartTime: "07:30", FrequencyHours: 24, Criticality: CriticalityMedium, Reminder: ReminderAlarm, Kind: KindGeneric},
		{Name: "Fazer Pausa", Description: "Pausa para recarregar", StartTime: "15:00", FrequencyHours: 4, Criticality: CriticalityLow, Reminder: ReminderSensitive, Kind: KindGeneric},
		{Name: "Alongar", Description: "Movimentar o corpo", StartTime: "10:00", FrequencyHours: 3, Criticality: CriticalityLow, Reminder: ReminderAlarm, Kind: KindGeneric},
	}
}
