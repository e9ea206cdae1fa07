package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressionUser(tasks ...Task) *User {
	return &User{
		ID:             "main_user",
		Name:           "Alex",
		OnboardingDone: true,
		Achievements:   []string{"welcome_hero"},
		Tasks:          tasks,
	}
}

func TestApplyFulfillmentAwardsBaseXP(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)
	now := at.Add(5 * time.Minute)

	next, out, err := ApplyFulfillment(u, DefaultRules(), task.ID, at, now)
	require.NoError(t, err)
	require.False(t, out.Duplicate)

	assert.Equal(t, 10, out.XPAwarded)
	assert.Equal(t, 10, next.XP)
	assert.Equal(t, 0, u.XP, "input snapshot must not be mutated")

	log := next.FindLog(task.ID, at)
	require.NotNil(t, log)
	assert.Equal(t, LogFulfilled, log.Status)
	assert.Equal(t, now, log.ActionAt)
}

func TestApplyFulfillmentMissionAwardsMore(t *testing.T) {
	task := scheduleTask("08:00", 24)
	task.IsMission = true
	u := progressionUser(task)
	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)

	next, out, err := ApplyFulfillment(u, DefaultRules(), task.ID, at, at)
	require.NoError(t, err)
	assert.Equal(t, 15, out.XPAwarded)
	assert.Equal(t, 15, next.XP)
}

func TestApplyFulfillmentIdempotent(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)

	r := DefaultRules()
	first, out1, err := ApplyFulfillment(u, r, task.ID, at, at)
	require.NoError(t, err)
	require.False(t, out1.Duplicate)

	second, out2, err := ApplyFulfillment(first, r, task.ID, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, out2.Duplicate)
	assert.Same(t, first, second, "duplicate submit returns the snapshot unchanged")
	assert.Equal(t, first.XP, second.XP)
	assert.Len(t, second.History, 1)
}

func TestApplyFulfillmentReplacesMissedEntry(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)
	later := at.Add(3 * time.Hour)

	withMiss, err := RecordMiss(u, task.ID, at, at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, withMiss.History, 1)
	assert.Equal(t, 0, withMiss.XP)

	// Registering late replaces the missed entry and still awards once.
	next, out, err := ApplyFulfillment(withMiss, DefaultRules(), task.ID, at, later)
	require.NoError(t, err)
	require.False(t, out.Duplicate)
	require.Len(t, next.History, 1)
	assert.Equal(t, LogFulfilled, next.History[0].Status)
	assert.Equal(t, 10, next.XP)
}

func TestApplyFulfillmentUnknownTask(t *testing.T) {
	u := progressionUser(scheduleTask("08:00", 24))

	_, _, err := ApplyFulfillment(u, DefaultRules(), "nope", time.Now(), time.Now())
	require.Error(t, err)
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.TaskID)
	assert.Empty(t, u.History, "no partial state change on not-found")
}

func TestLevelUpAdvancesMap(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	u.XP = 95
	u.Level = 0

	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)
	next, out, err := ApplyFulfillment(u, DefaultRules(), task.ID, at, at)
	require.NoError(t, err)

	assert.Equal(t, 105, next.XP)
	assert.Equal(t, 1, next.Level)
	assert.True(t, out.LevelUp)
	assert.Equal(t, 0, out.MapBefore)
	assert.Equal(t, 1, out.MapAfter)
	assert.Equal(t, 1, next.MapProgress)
}

func TestMapProgressCapped(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	u.XP = 995
	u.Level = 9
	u.MapProgress = len(MapMilestones) - 1

	at := time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC)
	next, out, err := ApplyFulfillment(u, DefaultRules(), task.ID, at, at)
	require.NoError(t, err)

	assert.True(t, out.LevelUp)
	assert.Equal(t, len(MapMilestones)-1, next.MapProgress, "map never exceeds the final milestone")
}

func TestMapEveryTwoLevelsPolicy(t *testing.T) {
	r := DefaultRules()
	r.MapEveryLevels = 2

	assert.Equal(t, 0, r.AdvanceMap(0, 0, 1), "odd level cross does not advance")
	assert.Equal(t, 1, r.AdvanceMap(0, 1, 2))
	assert.Equal(t, 1, r.AdvanceMap(1, 2, 3))
	assert.Equal(t, 2, r.AdvanceMap(1, 3, 4))
}

func TestLevelMonotonicity(t *testing.T) {
	r := DefaultRules()
	prev := 0
	for xp := 0; xp <= 1000; xp += 10 {
		l := r.LevelForXP(xp)
		assert.GreaterOrEqual(t, l, prev)
		prev = l
	}
	assert.Equal(t, 0, r.LevelForXP(99))
	assert.Equal(t, 1, r.LevelForXP(100))
	assert.Equal(t, 1, r.LevelForXP(199))
	assert.Equal(t, 2, r.LevelForXP(200))
}

func TestCloneIsIndependent(t *testing.T) {
	task := scheduleTask("08:00", 24)
	u := progressionUser(task)
	u.History = []LogEntry{{TaskID: task.ID, ScheduledAt: time.Now().UTC(), Status: LogMissed}}

	c := u.Clone()
	c.XP = 999
	c.Achievements = append(c.Achievements, "x")
	c.History[0].Status = LogFulfilled
	c.Tasks[0].Name = "changed"

	assert.Equal(t, 0, u.XP)
	assert.Equal(t, []string{"welcome_hero"}, u.Achievements)
	assert.Equal(t, LogMissed, u.History[0].Status)
	assert.Equal(t, "routine", u.Tasks[0].Name)
}
