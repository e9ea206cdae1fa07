package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progression: level, map, achievements, week adherence",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			rules := svc.Rules()

			nextReq := rules.XPForLevel(u.Level + 1)
			toNext := nextReq - u.XP
			if toNext < 0 {
				toNext = 0
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, fmt.Sprintf("Olá, %s!", u.Name)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Level", u.Level))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("XP", fmt.Sprintf("%d (next at %d, %d to go)", u.XP, nextReq, toNext)))
			if u.Power.IsValid() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Power", string(u.Power)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconMap+" Mapa da Jornada"))
			for i, m := range engine.MapMilestones {
				marker := "○"
				style := ui.Muted
				switch {
				case i < u.MapProgress:
					marker, style = "●", ui.Good
				case i == u.MapProgress:
					marker, style = "◉", ui.Gold
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", style.Render(marker), style.Render(m))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Conquistas"))
			for _, a := range engine.AchievementTable() {
				if u.HasAchievement(a.ID) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.Description))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  🔒 %s %s\n", ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			week, err := svc.WeekSummary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Última semana"))
			for _, d := range week {
				bar := strings.Repeat("█", d.Fulfilled) + strings.Repeat("░", d.Missed)
				if bar == "" {
					bar = ui.Muted.Render("·")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n", ui.Muted.Render(d.Date), bar,
					ui.Muted.Render(fmt.Sprintf("(%d ok, %d missed)", d.Fulfilled, d.Missed)))
			}

			return nil
		},
	}

	return cmd
}
