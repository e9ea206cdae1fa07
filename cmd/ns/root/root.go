package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cortelete/tcc/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "ns",
	Short:         "NeuroSync — gamified routine & medication tracker",
	Long:          "NeuroSync is a local-first CLI/TUI routine tracker: recurring tasks become daily occurrences, adherence becomes XP, levels, map progress and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newTodayCmd(),
		newDoCmd(),
		newMissionsCmd(),
		newStatusCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
