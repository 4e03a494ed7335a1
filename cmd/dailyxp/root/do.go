package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newDoCmd() *cobra.Command {
	var subtaskID string

	cmd := &cobra.Command{
		Use:   "do <task_id>",
		Short: "Complete a task (or one of its subtasks)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task_id is required")
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

			if subtaskID != "" {
				res, err := svc.CompleteSubtask(ctx, args[0], subtaskID)
				if err != nil {
					return err
				}
				if res == nil {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Subtask done."))
					return nil
				}
				printCompletion(cmd, res.Title, res.XPAwarded, res.LevelBefore, res.LevelAfter, res.LevelUp)
				return nil
			}

			res, err := svc.CompleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			printCompletion(cmd, res.Title, res.XPAwarded, res.LevelBefore, res.LevelAfter, res.LevelUp)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", ui.IconStreak, res.StreakDays, ui.Muted.Render("day streak"))
			return nil
		},
	}

	cmd.Flags().StringVar(&subtaskID, "sub", "", "Complete a single subtask by id")

	return cmd
}

func printCompletion(cmd *cobra.Command, title string, xp, before, after int, levelUp bool) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		ui.Good.Render(ui.IconDone+" Completed"),
		title,
		ui.Gold.Render(fmt.Sprintf("+%d XP", xp)),
	)
	if levelUp {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.Muted.Render(fmt.Sprintf("level %d → %d", before, after)))
	}
}
