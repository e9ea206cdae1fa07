package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's occurrence board",
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

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPending, "Today"))
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No occurrences today. Try `ns missions` or `ns add`."))
				return nil
			}

			for _, e := range entries {
				icon := ui.KindIcon(e.Task.Kind == engine.KindMedication, e.Task.IsMission)
				line := fmt.Sprintf("%s %s %-24s %s", e.At.Format("15:04"), icon, e.Task.Name, ui.StatusText(string(e.Status)))
				if e.DueSoon {
					line += " " + ui.Warn.Render(ui.IconSoon+" soon")
				}
				line += " " + ui.Muted.Render(fmt.Sprintf("id %.8s", e.Task.ID))
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	return cmd
}
