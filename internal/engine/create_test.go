package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskDefaultsAndTrimming(t *testing.T) {
	now := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)

	task, err := BuildTask(CreateTaskInput{
		Name:           "  Beber Água  ",
		Description:    " hidratação ",
		StartTime:      "08:00",
		FrequencyHours: 2,
		Criticality:    Criticality("extreme"),
		Reminder:       ReminderKind("siren"),
		Kind:           TaskKind("weird"),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Beber Água", task.Name)
	assert.Equal(t, "hidratação", task.Description)
	assert.Equal(t, DefaultCriticality, task.Criticality)
	assert.Equal(t, DefaultReminder, task.Reminder)
	assert.Equal(t, KindGeneric, task.Kind)
	assert.Equal(t, now, task.CreatedAt)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.IsMission)
}

func TestBuildTaskRejectsBadInput(t *testing.T) {
	now := time.Now()

	_, err := BuildTask(CreateTaskInput{Name: "  ", StartTime: "08:00", FrequencyHours: 2}, now)
	require.Error(t, err)

	_, err = BuildTask(CreateTaskInput{Name: "x", StartTime: "08:00", FrequencyHours: -1}, now)
	var fe FrequencyError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, -1, fe.Hours)

	_, err = BuildTask(CreateTaskInput{Name: "x", StartTime: "25:99", FrequencyHours: 2}, now)
	require.Error(t, err)
}

func TestBuildTaskMedicationMetadata(t *testing.T) {
	now := time.Now()

	med, err := BuildTask(CreateTaskInput{
		Name:           "Remédio",
		StartTime:      "08:30",
		FrequencyHours: 8,
		Kind:           KindMedication,
		Dosage:         " 10mg ",
		Instructions:   "",
	}, now)
	require.NoError(t, err)
	require.NotNil(t, med.Dosage)
	assert.Equal(t, "10mg", *med.Dosage)
	assert.Nil(t, med.Instructions, "blank optional fields stay unset")

	// Medication metadata never attaches to generic routines.
	generic, err := BuildTask(CreateTaskInput{
		Name:           "Alongar",
		StartTime:      "10:00",
		FrequencyHours: 3,
		Dosage:         "10mg",
	}, now)
	require.NoError(t, err)
	assert.Nil(t, generic.Dosage)
}

func TestStarterTasksAllBuild(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for _, in := range StarterTasks() {
		task, err := BuildTask(in, now)
		require.NoError(t, err, "starter %q", in.Name)
		assert.False(t, seen[task.Name], "starter names are unique")
		seen[task.Name] = true
	}
}
