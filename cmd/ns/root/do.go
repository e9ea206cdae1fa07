package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/ui"
)

func newDoCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "do <task>",
		Short: "Register a fulfilled occurrence (by task id prefix or name)",
		Long: `Register the fulfillment of one of today's occurrences.

Without --at, the earliest occurrence that is not yet fulfilled is used —
including missed ones, which counts as registering late.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.TodayBoard(ctx)
			if err != nil {
				return err
			}

			entry, err := pickEntry(entries, args[0], at)
			if err != nil {
				return err
			}

			out, err := svc.RecordFulfillment(ctx, entry.Task.ID, entry.At)
			if err != nil {
				return err
			}
			if out.Duplicate {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Already registered; nothing changed."))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconDone+" Registered"), entry.Task.Name,
				entry.At.Format("15:04"),
				ui.Gold.Render(fmt.Sprintf("+%d XP", out.XPAwarded)))
			if out.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp,
					ui.LabelValue("Level", fmt.Sprintf("%d → %d", out.LevelBefore, out.LevelAfter)))
			}
			if out.MapAfter > out.MapBefore {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Gold.Render(ui.IconMap+" Map"),
					engine.MapMilestones[out.MapAfter])
			}
			for _, a := range out.Unlocked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Gold.Render(ui.IconTrophy), a.Name, ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Occurrence time (HH:MM); default: earliest unfulfilled")

	return cmd
}

// pickEntry resolves a board entry from a task id prefix or exact name plus
// an optional HH:MM occurrence time.
func pickEntry(entries []engine.BoardEntry, task, at string) (*engine.BoardEntry, error) {
	var wantTime *engine.ClockTime
	if at != "" {
		ct, err := engine.ParseClockTime(at)
		if err != nil {
			return nil, err
		}
		wantTime = &ct
	}

	var candidates []engine.BoardEntry
	for _, e := range entries {
		if !strings.HasPrefix(e.Task.ID, task) && !strings.EqualFold(e.Task.Name, task) {
			continue
		}
		if wantTime != nil && (e.At.Hour() != wantTime.Hour || e.At.Minute() != wantTime.Minute) {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no occurrence today matches %q", task)
	}
	if wantTime != nil {
		return &candidates[0], nil
	}
	for i := range candidates {
		if candidates[i].Status != engine.StatusFulfilled {
			return &candidates[i], nil
		}
	}
	return nil, fmt.Errorf("every occurrence of %q today is already fulfilled", task)
}
