package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	user    *engine.User
	entries []engine.BoardEntry

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user    *engine.User
	entries []engine.BoardEntry
	err     error
}

type fulfilledMsg struct {
	out *engine.FulfillOutcome
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.Snapshot(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		entries, err := m.svc.TodayBoard(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: u, entries: entries}
	}
}

func (m boardModel) fulfillCmd(taskID string, at time.Time) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.RecordFulfillment(m.ctx, taskID, at)
		return fulfilledMsg{out: out, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.entries = msg.entries
		if m.selected >= len(m.entries) {
			m.selected = len(m.entries) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case fulfilledMsg:
		if msg.err != nil {
			m.lastLog = "Register failed: " + msg.err.Error()
			return m, nil
		}
		if msg.out.Duplicate {
			m.lastLog = "Already registered."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("+%d XP (level %d → %d)", msg.out.XPAwarded, msg.out.LevelBefore, msg.out.LevelAfter)
		if msg.out.Notice != "" {
			m.lastLog = msg.out.Notice
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < 0 || m.selected >= len(m.entries) {
				return m, nil
			}
			e := m.entries[m.selected]
			if e.Status == engine.StatusFulfilled {
				m.lastLog = "Already registered."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Registering %s %s…", e.Task.Name, e.At.Format("15:04"))
			return m, m.fulfillCmd(e.Task.ID, e.At)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading {
		return "Loading…\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderEntries())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	if m.user == nil {
		return ui.Heading(ui.IconSparkle, "NeuroSync")
	}
	r := m.svc.Rules()
	toNext := r.XPForLevel(m.user.Level+1) - m.user.XP
	milestone := engine.MapMilestones[m.user.MapProgress]
	return ui.Heading(ui.IconSparkle, fmt.Sprintf("NeuroSync — %s", m.user.Name)) + "\n" +
		fmt.Sprintf("%s  %s  %s",
			ui.LabelValue("Level", m.user.Level),
			ui.LabelValue("XP", fmt.Sprintf("%d (%d to next)", m.user.XP, toNext)),
			ui.LabelValue("Map", milestone))
}

func (m boardModel) renderEntries() string {
	if len(m.entries) == 0 {
		return ui.Muted.Render("No occurrences today. Accept a mission with `ns missions`.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		icon := ui.KindIcon(e.Task.Kind == engine.KindMedication, e.Task.IsMission)
		line := fmt.Sprintf("%s %s %s  %s", e.At.Format("15:04"), icon, e.Task.Name, ui.StatusText(string(e.Status)))
		if e.DueSoon {
			line += " " + ui.Warn.Render(ui.IconSoon+" soon")
		}
		if i == m.selected {
			line = ui.SelectedRow.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m boardModel) renderFooter() string {
	help := ui.Muted.Render("↑/↓ move · enter register · r refresh · q quit")
	return help + "\n" + ui.Muted.Render(m.lastLog)
}
