package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NeuroSync theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMap     = "🗺️"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconMissed  = "⌛"
	IconPending = "⏰"
	IconSoon    = "🔔"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconPill    = "💊"
	IconMission = "🎯"
	IconBrain   = "🧠"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconMascot  = "🤖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText renders an occurrence status with its color.
func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "fulfilled":
		return Good.Render("fulfilled")
	case "missed":
		return Bad.Render("missed")
	case "pending":
		return Warn.Render("pending")
	default:
		return Muted.Render(status)
	}
}

// KindIcon picks the list icon for a task.
func KindIcon(isMedication bool, isMission bool) string {
	if isMedication {
		return IconPill
	}
	if isMission {
		return IconMission
	}
	return IconPending
}
