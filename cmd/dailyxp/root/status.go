package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/engine"
	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show character stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Profile(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Character"))
			fmt.Fprintf(out, "%s  %s %s\n",
				ui.LabelValue("Level", snap.Level),
				ui.XPBar(snap.CurrentXP, snap.XPToNextLevel, 20),
				ui.Muted.Render(fmt.Sprintf("%d/%d XP to next", snap.CurrentXP, snap.XPToNextLevel)),
			)
			fmt.Fprintln(out, ui.LabelValue("Total XP", snap.TotalXP))
			fmt.Fprintf(out, "%s %s %d %s\n", ui.Key.Render("Streak:"), ui.IconStreak, snap.StreakDays, ui.Muted.Render("days"))
			fmt.Fprintf(out, "%s %d   %s %d\n",
				ui.Key.Render("Tasks done:"), snap.TasksCompleted,
				ui.Key.Render("Quests done:"), snap.QuestsCompleted,
			)
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			for _, a := range engine.AttributeNames() {
				fmt.Fprintf(out, "- %s %s: %d\n", attributeIcon(a), string(a), snap.Attributes[a])
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🗂  Category XP"))
			for _, c := range engine.Categories() {
				fmt.Fprintf(out, "- %s %s: %d\n", ui.CategoryIcon(string(c)), string(c), snap.CategoryXP[c])
			}
			return nil
		},
	}

	return cmd
}

func attributeIcon(a engine.Attribute) string {
	switch a {
	case engine.AttributeStrength:
		return "💪"
	case engine.AttributeIntelligence:
		return "🧠"
	case engine.AttributeCharisma:
		return "💬"
	case engine.AttributeDexterity:
		return "🎯"
	case engine.AttributeWisdom:
		return "🧘"
	case engine.AttributeVitality:
		return "❤️"
	default:
		return "❔"
	}
}
