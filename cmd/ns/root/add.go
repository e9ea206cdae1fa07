package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		desc     string
		start    string
		every    int
		crit     string
		reminder string
		kind     string
		dosage   string
		instr    string
		category string
		subcat   string
		starter  bool
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a recurring routine (or --starter for the onboarding set)",
		Args: func(cmd *cobra.Command, args []string) error {
			if starter {
				return nil
			}
			if len(args) != 1 {
				return errors.New("name is required (or pass --starter)")
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

			if starter {
				added, err := svc.InstallStarterTasks(ctx)
				if err != nil {
					return err
				}
				for _, t := range added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
						ui.Good.Render(ui.IconDone+" Added"), t.Name,
						ui.Muted.Render(fmt.Sprintf("(%s, every %dh)", t.StartTime, t.FrequencyHours)))
				}
				if len(added) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Starter routines already installed."))
				}
				return nil
			}

			t, err := svc.AddTask(ctx, engine.CreateTaskInput{
				Name:           args[0],
				Description:    desc,
				StartTime:      start,
				FrequencyHours: every,
				Criticality:    engine.Criticality(crit),
				Reminder:       engine.ReminderKind(reminder),
				Kind:           engine.TaskKind(kind),
				Dosage:         dosage,
				Instructions:   instr,
				Category:       category,
				Subcategory:    subcat,
			})
			if err != nil {
				return err
			}

			icon := ui.KindIcon(t.Kind == engine.KindMedication, false)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconDone+" Added"), icon, t.Name,
				ui.Muted.Render(fmt.Sprintf("(%s, every %dh, id %.8s)", t.StartTime, t.FrequencyHours, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&start, "start", "08:00", "Start time (HH:MM)")
	cmd.Flags().IntVar(&every, "every", 24, "Frequency in hours (24+ means day cadence)")
	cmd.Flags().StringVar(&crit, "crit", "medium", "Criticality (high|medium|low)")
	cmd.Flags().StringVar(&reminder, "reminder", "alarm", "Reminder (alarm|sensitive|loud|call|game|whatsapp)")
	cmd.Flags().StringVar(&kind, "kind", "generic", "Kind (generic|medication)")
	cmd.Flags().StringVar(&dosage, "dosage", "", "Medication dosage")
	cmd.Flags().StringVar(&instr, "instructions", "", "Medication instructions")
	cmd.Flags().StringVar(&category, "category", "", "Medication category")
	cmd.Flags().StringVar(&subcat, "subcategory", "", "Medication subcategory")
	cmd.Flags().BoolVar(&starter, "starter", false, "Install the suggested onboarding routines")

	return cmd
}
