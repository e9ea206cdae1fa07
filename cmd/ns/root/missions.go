package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/engine"
	"github.com/Cortelete/tcc/internal/suggest"
	"github.com/Cortelete/tcc/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	var accept int
	var power string

	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List suggested daily missions, optionally accepting one",
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

			p := u.Power
			if power != "" {
				p = engine.Power(power)
				if err := svc.SetPower(ctx, p); err != nil {
					return err
				}
			}
			if !p.IsValid() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Pick a power first: ns missions --power focus|memory|calm|patient"))
				return nil
			}

			var source suggest.Source = suggest.Catalog{}
			suggestions, err := source.Suggestions(ctx, p)
			if err != nil {
				// Collaborator failures surface as an empty list.
				suggestions = nil
			}

			rules := svc.Rules()
			taken := engine.MissionsAcceptedToday(u, svc.Clock().Today())
			remaining := rules.DailyMissionCap - taken
			if remaining < 0 {
				remaining = 0
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBrain, fmt.Sprintf("Missões Diárias (%d remaining)", remaining)))
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No suggestions right now. Rest, hero!"))
				return nil
			}
			for i, sg := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %s\n", i+1, ui.Key.Render(sg.Name), ui.Muted.Render(sg.Description))
			}

			if accept <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Accept one with --accept <n>."))
				return nil
			}
			if accept > len(suggestions) {
				return fmt.Errorf("no suggestion %s", strconv.Itoa(accept))
			}

			out, err := svc.AcceptMission(ctx, suggestions[accept-1])
			if err != nil {
				return err
			}
			if !out.Accepted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Daily mission limit reached."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconMission+" Accepted"), out.Task.Name,
				ui.Muted.Render(fmt.Sprintf("(daily at %s, %d left today)", out.Task.StartTime, out.Remaining)))
			return nil
		},
	}

	cmd.Flags().IntVar(&accept, "accept", 0, "Accept the nth listed suggestion")
	cmd.Flags().StringVar(&power, "power", "", "Set the character power (focus|memory|calm|patient)")

	return cmd
}
