package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuggestion(name string) Suggestion {
	return Suggestion{
		Name:        name,
		Description: "sugestão de teste",
		Reminder:    ReminderAlarm,
	}
}

func TestMissionQuotaGate(t *testing.T) {
	r := DefaultRules()
	now := time.Date(2024, 6, 11, 14, 30, 0, 0, time.UTC)
	u := &User{ID: "main_user"}

	for i := 0; i < r.DailyMissionCap; i++ {
		var out *MissionOutcome
		u, out = TryAcceptMission(u, r, testSuggestion("missão"), now)
		require.True(t, out.Accepted, "acceptance %d within the quota", i+1)
		assert.Equal(t, r.DailyMissionCap-(i+1), out.Remaining)
	}
	assert.Equal(t, r.DailyMissionCap, u.MissionCount)
	assert.Len(t, u.Tasks, r.DailyMissionCap)

	next, out := TryAcceptMission(u, r, testSuggestion("uma a mais"), now)
	assert.False(t, out.Accepted)
	assert.Zero(t, out.Remaining)
	assert.Nil(t, out.Task)
	assert.Same(t, u, next, "rejection leaves the snapshot untouched")
	assert.Equal(t, r.DailyMissionCap, next.MissionCount, "rejected acceptance does not bump the counter")
}

func TestMissionQuotaResetsAtMidnight(t *testing.T) {
	r := DefaultRules()
	u := &User{ID: "main_user"}

	day1 := time.Date(2024, 6, 11, 23, 50, 0, 0, time.UTC)
	for i := 0; i < r.DailyMissionCap; i++ {
		u, _ = TryAcceptMission(u, r, testSuggestion("missão"), day1)
	}
	_, out := TryAcceptMission(u, r, testSuggestion("missão"), day1)
	require.False(t, out.Accepted)

	day2 := day1.Add(15 * time.Minute)
	require.NotEqual(t, day1.Format(DayFormat), day2.Format(DayFormat))

	next, out := TryAcceptMission(u, r, testSuggestion("nova"), day2)
	require.True(t, out.Accepted, "calendar day change reopens the quota")
	assert.Equal(t, 1, next.MissionCount)
	assert.Equal(t, day2.Format(DayFormat), next.MissionDate)
	assert.Equal(t, r.DailyMissionCap-1, out.Remaining)
}

func TestAcceptedMissionTaskShape(t *testing.T) {
	now := time.Date(2024, 6, 11, 9, 15, 0, 0, time.UTC)
	u := &User{ID: "main_user"}

	next, out := TryAcceptMission(u, DefaultRules(), testSuggestion("Beber água"), now)
	require.True(t, out.Accepted)
	require.NotNil(t, out.Task)

	task := out.Task
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Beber água", task.Name)
	assert.True(t, task.IsMission)
	assert.Equal(t, 24, task.FrequencyHours)
	assert.Equal(t, ClockTime{Hour: 9, Minute: 15}, task.StartTime)
	assert.Equal(t, DefaultCriticality, task.Criticality)

	assert.Empty(t, u.Tasks, "input snapshot stays untouched")
	assert.Equal(t, task.ID, next.Tasks[len(next.Tasks)-1].ID)
}

func TestMissionsAcceptedToday(t *testing.T) {
	u := &User{MissionDate: "2024-06-11", MissionCount: 3}
	assert.Equal(t, 3, MissionsAcceptedToday(u, "2024-06-11"))
	assert.Zero(t, MissionsAcceptedToday(u, "2024-06-12"), "a stale counter reads as zero")
}
