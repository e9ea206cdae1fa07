package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleTask(start string, freqHours int) Task {
	ct, err := ParseClockTime(start)
	if err != nil {
		panic(err)
	}
	return Task{
		ID:             NewTaskID(),
		Name:           "routine",
		StartTime:      ct,
		FrequencyHours: freqHours,
		Criticality:    CriticalityLow,
		Reminder:       ReminderAlarm,
		Kind:           KindGeneric,
	}
}

func TestOccurrencesEveryTwoHours(t *testing.T) {
	task := scheduleTask("08:00", 2)
	ref := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)

	occs, err := OccurrencesFor(&task, ref)
	require.NoError(t, err)

	require.Len(t, occs, 8)
	for i, want := range []int{8, 10, 12, 14, 16, 18, 20, 22} {
		assert.Equal(t, want, occs[i].Hour())
		assert.Equal(t, 0, occs[i].Minute())
		y, m, d := occs[i].Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.June, m)
		assert.Equal(t, 11, d)
	}
}

func TestOccurrencesNeverCrossMidnight(t *testing.T) {
	// 20:00 every 3h: 20:00, 23:00, then 02:00 next day is dropped.
	task := scheduleTask("20:00", 3)
	ref := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	occs, err := OccurrencesFor(&task, ref)
	require.NoError(t, err)
	require.Len(t, occs, 2)
	assert.Equal(t, 20, occs[0].Hour())
	assert.Equal(t, 23, occs[1].Hour())
}

func TestOccurrencesDailyCadence(t *testing.T) {
	task := scheduleTask("07:30", 24)

	for day := 1; day <= 30; day++ {
		ref := time.Date(2024, 6, day, 12, 0, 0, 0, time.UTC)
		occs, err := OccurrencesFor(&task, ref)
		require.NoError(t, err)
		require.Len(t, occs, 1, "daily task must fire every day")
		assert.Equal(t, 7, occs[0].Hour())
		assert.Equal(t, 30, occs[0].Minute())
	}
}

func TestOccurrencesEveryOtherDayParity(t *testing.T) {
	task := scheduleTask("07:30", 48)

	// 2024-06-11 is 162 whole days after the 2024-01-01 epoch (even).
	even := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	occs, err := OccurrencesFor(&task, even)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, 7, occs[0].Hour())

	odd := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	occs, err = OccurrencesFor(&task, odd)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestOccurrencesCadenceFiresWithinPeriod(t *testing.T) {
	task := scheduleTask("09:00", 72) // every 3 days

	fired := 0
	for day := 0; day < 3; day++ {
		ref := time.Date(2024, 3, 4+day, 0, 0, 0, 0, time.UTC)
		occs, err := OccurrencesFor(&task, ref)
		require.NoError(t, err)
		fired += len(occs)
	}
	assert.Equal(t, 1, fired, "a 3-day cadence fires exactly once per 3-day span")
}

func TestOccurrencesFractionalDayTruncates(t *testing.T) {
	// 36h truncates to a 1-day cadence.
	task := scheduleTask("10:00", 36)

	for day := 10; day <= 12; day++ {
		ref := time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)
		occs, err := OccurrencesFor(&task, ref)
		require.NoError(t, err)
		require.Len(t, occs, 1)
	}
}

func TestOccurrencesInvalidFrequency(t *testing.T) {
	for _, freq := range []int{0, -1, -24} {
		task := scheduleTask("08:00", freq)
		_, err := OccurrencesFor(&task, time.Now())
		require.Error(t, err)
		var fe FrequencyError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, freq, fe.Hours)
	}
}

func TestOccurrencesDeterministic(t *testing.T) {
	task := scheduleTask("06:15", 5)
	ref := time.Date(2024, 6, 11, 23, 59, 0, 0, time.UTC)

	a, err := OccurrencesFor(&task, ref)
	require.NoError(t, err)
	b, err := OccurrencesFor(&task, ref)
	require.NoError(t, err)

	require.Equal(t, a, b)
	for i := 1; i < len(a); i++ {
		assert.True(t, a[i-1].Before(a[i]), "occurrences must be ascending")
	}
}
