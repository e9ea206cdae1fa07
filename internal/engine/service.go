package engine

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/Cortelete/tcc/internal/notify"
	"github.com/Cortelete/tcc/internal/storage"
)

// RegistrationBonusXP is granted once when the local user record is first
// created, together with the welcome badge.
const RegistrationBonusXP = 50

// Service wires the pure engine rules to the persistence and notification
// collaborators. It loads a full snapshot, applies a pure transformation and
// persists the result wholesale.
type Service struct {
	db       *sql.DB
	users    *storage.UserRepo
	tasks    *storage.TaskRepo
	logs     *storage.LogRepo
	rules    Rules
	clock    Clock
	notifier notify.Notifier
}

func NewService(db *sql.DB, rules Rules, clock Clock, notifier notify.Notifier) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Service{
		db:       db,
		users:    storage.NewUserRepo(db),
		tasks:    storage.NewTaskRepo(db),
		logs:     storage.NewLogRepo(db),
		rules:    rules,
		clock:    clock,
		notifier: notifier,
	}
}

func (s *Service) Rules() Rules { return s.rules }

func (s *Service) Clock() Clock { return s.clock }

// Snapshot assembles the full user state: progression row, task list and
// adherence history.
func (s *Service) Snapshot(ctx context.Context) (*User, error) {
	row, err := s.users.GetOrCreateMain(ctx, "Alex", RegistrationBonusXP, "welcome_hero")
	if err != nil {
		return nil, err
	}

	taskRows, err := s.tasks.ListByUser(ctx, row.Key)
	if err != nil {
		return nil, err
	}
	logRows, err := s.logs.ListByUser(ctx, row.Key)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:             row.Key,
		Name:           row.Name,
		Power:          Power(row.Power),
		XP:             row.XP,
		Level:          row.Level,
		MapProgress:    row.MapProgress,
		Achievements:   append([]string(nil), row.Achievements...),
		MissionDate:    row.MissionDate,
		MissionCount:   row.MissionCount,
		OnboardingDone: row.OnboardingDone,
	}
	for i := range taskRows {
		u.Tasks = append(u.Tasks, taskFromRow(&taskRows[i]))
	}
	for i := range logRows {
		u.History = append(u.History, LogEntry{
			TaskID:      logRows[i].TaskID,
			ScheduledAt: NormalizeStamp(logRows[i].ScheduledAt),
			Status:      LogStatus(logRows[i].Status),
			ActionAt:    logRows[i].ActionAt,
		})
	}

	// Level is derived state; recompute in case rules changed since the
	// last write.
	if computed := s.rules.LevelForXP(u.XP); computed != u.Level {
		u.Level = computed
		if err := s.saveUser(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// AddTask validates and persists a new routine.
func (s *Service) AddTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t, err := BuildTask(in, s.clock.Now())
	if err != nil {
		return nil, err
	}
	row := taskToRow(t, u.ID)
	if err := s.tasks.Insert(ctx, &row); err != nil {
		return nil, err
	}
	return t, nil
}

// InstallStarterTasks seeds the onboarding routine set, skipping names the
// user already has.
func (s *Service) InstallStarterTasks(ctx context.Context) ([]Task, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	existing := map[string]bool{}
	for i := range u.Tasks {
		existing[u.Tasks[i].Name] = true
	}

	var added []Task
	for _, in := range StarterTasks() {
		if existing[in.Name] {
			continue
		}
		t, err := BuildTask(in, s.clock.Now())
		if err != nil {
			return nil, err
		}
		row := taskToRow(t, u.ID)
		if err := s.tasks.Insert(ctx, &row); err != nil {
			return nil, err
		}
		added = append(added, *t)
	}
	return added, nil
}

// SetPower stores the chosen character power.
func (s *Service) SetPower(ctx context.Context, p Power) error {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !p.IsValid() {
		return nil
	}
	next := u.Clone()
	next.Power = p
	return s.saveUser(ctx, next)
}

// RecordFulfillment applies a fulfillment event end to end: pure engine
// transition, then ledger upsert and snapshot replacement inside one
// transaction, then the outcome notice.
func (s *Service) RecordFulfillment(ctx context.Context, taskID string, scheduledAt time.Time) (*FulfillOutcome, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next, out, err := ApplyFulfillment(u, s.rules, taskID, scheduledAt, now)
	if err != nil {
		return nil, err
	}
	if out.Duplicate {
		return out, nil
	}

	logRow := storage.LogRow{
		TaskID:      taskID,
		ScheduledAt: out.ScheduledAt,
		Status:      string(LogFulfilled),
		ActionAt:    now,
	}
	userRow := userToRow(next)
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.UpsertLogTx(ctx, tx, &logRow); err != nil {
			return err
		}
		return storage.UpdateTx(ctx, tx, &userRow)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(out.Notice)
	return out, nil
}

// RecordMiss stores a missed occurrence without touching progression.
func (s *Service) RecordMiss(ctx context.Context, taskID string, scheduledAt time.Time) error {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if _, err := RecordMiss(u, taskID, scheduledAt, s.clock.Now()); err != nil {
		return err
	}
	return s.logs.Upsert(ctx, &storage.LogRow{
		TaskID:      taskID,
		ScheduledAt: NormalizeStamp(scheduledAt),
		Status:      string(LogMissed),
		ActionAt:    s.clock.Now(),
	})
}

// AcceptMission runs the daily quota gate and, on acceptance, persists the
// new mission task and the updated counters atomically.
func (s *Service) AcceptMission(ctx context.Context, sugg Suggestion) (*MissionOutcome, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	next, out := TryAcceptMission(u, s.rules, sugg, s.clock.Now())
	if !out.Accepted {
		s.notifier.Notify(QuotaMessage(s.rules))
		return out, nil
	}

	taskRow := taskToRow(out.Task, next.ID)
	userRow := userToRow(next)
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := storage.InsertTx(ctx, tx, &taskRow); err != nil {
			return err
		}
		return storage.UpdateTx(ctx, tx, &userRow)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BoardEntry is one row of the day board: an occurrence with its resolved
// status and the advisory due-soon flag.
type BoardEntry struct {
	Task    Task
	At      time.Time
	Status  Status
	DueSoon bool
}

// TodayBoard expands every task for today and resolves each occurrence
// against the ledger, sorted by time.
func (s *Service) TodayBoard(ctx context.Context) ([]BoardEntry, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBoard(u, s.rules, s.clock.Now())
}

// BuildBoard is the pure assembly behind TodayBoard.
func BuildBoard(u *User, r Rules, now time.Time) ([]BoardEntry, error) {
	var out []BoardEntry
	for i := range u.Tasks {
		task := u.Tasks[i]
		occs, err := OccurrencesFor(&task, now)
		if err != nil {
			return nil, err
		}
		for _, at := range occs {
			st := ResolveStatus(u, task.ID, at, now)
			out = append(out, BoardEntry{
				Task:    task,
				At:      at,
				Status:  st,
				DueSoon: r.DueSoon(st, at, now),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// DaySummary aggregates recorded outcomes for one calendar day.
type DaySummary struct {
	Date      string
	Fulfilled int
	Missed    int
}

// WeekSummary tallies the trailing seven days of adherence, oldest first.
func (s *Service) WeekSummary(ctx context.Context) ([]DaySummary, error) {
	u, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	byDate := map[string]*DaySummary{}
	var days []DaySummary
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(DayFormat)
		days = append(days, DaySummary{Date: d})
	}
	for i := range days {
		byDate[days[i].Date] = &days[i]
	}

	for i := range u.History {
		e := &u.History[i]
		d, ok := byDate[e.ScheduledAt.Local().Format(DayFormat)]
		if !ok {
			continue
		}
		switch e.Status {
		case LogFulfilled:
			d.Fulfilled++
		case LogMissed:
			d.Missed++
		}
	}
	return days, nil
}

func (s *Service) saveUser(ctx context.Context, u *User) error {
	row := userToRow(u)
	return s.users.Update(ctx, &row)
}

func taskFromRow(r *storage.TaskRow) Task {
	return Task{
		ID:             r.ID,
		Name:           r.Name,
		Description:    r.Description,
		StartTime:      ClockTime{Hour: r.StartHour, Minute: r.StartMinute},
		FrequencyHours: r.FrequencyHours,
		Criticality:    Criticality(r.Criticality),
		Reminder:       ReminderKind(r.Reminder),
		Kind:           TaskKind(r.Kind),
		Dosage:         r.Dosage,
		Instructions:   r.Instructions,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		IsMission:      r.IsMission,
		CreatedAt:      r.CreatedAt,
	}
}

func taskToRow(t *Task, userKey string) storage.TaskRow {
	return storage.TaskRow{
		ID:             t.ID,
		UserKey:        userKey,
		Name:           t.Name,
		Description:    t.Description,
		StartHour:      t.StartTime.Hour,
		StartMinute:    t.StartTime.Minute,
		FrequencyHours: t.FrequencyHours,
		Criticality:    string(t.Criticality),
		Reminder:       string(t.Reminder),
		Kind:           string(t.Kind),
		Dosage:         t.Dosage,
		Instructions:   t.Instructions,
		Category:       t.Category,
		Subcategory:    t.Subcategory,
		IsMission:      t.IsMission,
		CreatedAt:      t.CreatedAt,
	}
}

func userToRow(u *User) storage.UserRow {
	return storage.UserRow{
		Key:            u.ID,
		Name:           u.Name,
		Power:          string(u.Power),
		XP:             u.XP,
		Level:          u.Level,
		MapProgress:    u.MapProgress,
		Achievements:   append([]string(nil), u.Achievements...),
		MissionDate:    u.MissionDate,
		MissionCount:   u.MissionCount,
		OnboardingDone: u.OnboardingDone,
	}
}
