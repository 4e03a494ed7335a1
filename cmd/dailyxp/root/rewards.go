package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/engine"
	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newRewardsCmd() *cobra.Command {
	var lockedToo bool

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show achievements, badges, and equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rewards, err := svc.Rewards(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sections := []struct {
				kind    engine.RewardKind
				heading string
			}{
				{engine.KindAchievement, ui.IconTrophy + " Achievements"},
				{engine.KindBadge, ui.IconBadge + " Badges"},
				{engine.KindEquipment, ui.IconGear + " Equipment"},
			}

			for _, sec := range sections {
				fmt.Fprintln(out, ui.H2.Render(sec.heading))
				shown := 0
				for _, r := range rewards {
					if r.Def.Kind != sec.kind {
						continue
					}
					if !r.Unlocked && !lockedToo {
						continue
					}
					if r.Unlocked {
						when := ""
						if r.UnlockedAt != nil {
							when = ui.Muted.Render(" (" + r.UnlockedAt.Format("2006-01-02") + ")")
						}
						fmt.Fprintf(out, "- %s %s%s — %s\n", r.Def.Icon, ui.Good.Render(r.Def.Name), when, ui.Muted.Render(r.Def.Description))
					} else {
						fmt.Fprintf(out, "- 🔒 %s — %s\n", r.Def.Name, ui.Muted.Render(r.Def.Description))
					}
					shown++
				}
				if shown == 0 {
					fmt.Fprintln(out, ui.Muted.Render("  none unlocked yet"))
				}
				fmt.Fprintln(out, "")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&lockedToo, "all", "a", false, "Include locked rewards")

	return cmd
}
