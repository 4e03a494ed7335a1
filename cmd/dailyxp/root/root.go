package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "dailyxp",
	Short:         "DailyXP: level up your life, one task at a time",
	Long:          "DailyXP is a local-first gamified productivity tracker: complete tasks and quests, earn XP, level a character, keep streaks, and unlock rewards.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newListCmd(),
		newQuestCmd(),
		newStatusCmd(),
		newRewardsCmd(),
		newRenewCmd(),
		newResetCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
