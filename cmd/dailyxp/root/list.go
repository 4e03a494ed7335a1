package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := svc.TaskRepo().ListAll(ctx)
			if err != nil {
				return err
			}

			shown := 0
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				mark := "⬜"
				if t.Completed {
					mark = ui.IconDone
				}
				kind := ""
				if t.Type != "one-time" {
					kind = " " + ui.IconLoop
				}
				streak := ""
				if t.StreakCount > 0 {
					streak = " " + ui.Muted.Render(fmt.Sprintf("%s%d", ui.IconStreak, t.StreakCount))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s%s %s%s %s\n",
					mark, ui.CategoryIcon(t.Category), t.Title, kind,
					ui.Gold.Render(fmt.Sprintf("+%d XP", t.XPValue)), streak,
					ui.Muted.Render("id "+t.ID),
				)
				subtasks, err := svc.TaskRepo().ListSubtasks(ctx, t.ID)
				if err != nil {
					return err
				}
				for _, st := range subtasks {
					smark := "⬜"
					if st.Completed {
						smark = ui.IconDone
					}
					fmt.Fprintf(cmd.OutOrStdout(), "   %s %s %s\n", smark, st.Title, ui.Muted.Render("id "+st.ID))
				}
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to do. Add a task with: dailyxp add \"Morning workout\""))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")

	return cmd
}
