package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/engine"
	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newAddCmd() *cobra.Command {
	var desc string
	var taskType string
	var category string
	var difficulty string
	var due string
	var repeatDays []int
	var subtasks []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}

			in := engine.CreateTaskInput{
				Title:       args[0],
				Description: desc,
				Type:        engine.TaskType(taskType),
				Category:    cat,
				Difficulty:  engine.TaskDifficulty(difficulty),
				RepeatDays:  repeatDays,
				Subtasks:    subtasks,
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				in.DueDate = &d
			}

			task, err := svc.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconTask+" Added"),
				task.Title,
				ui.CategoryIcon(task.Category),
				ui.Muted.Render(fmt.Sprintf("(+%d XP, id %s)", task.XPValue, task.ID)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Task description")
	cmd.Flags().StringVarP(&taskType, "type", "t", "one-time", "Task type (daily|habit|one-time)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (health|work|creativity|social|learning)")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntSliceVar(&repeatDays, "repeat", nil, "Repeat weekdays for daily tasks (0=Sun .. 6=Sat)")
	cmd.Flags().StringArrayVar(&subtasks, "sub", nil, "Subtask title (repeatable)")

	return cmd
}
