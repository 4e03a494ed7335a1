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

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quests (multi-step goals)",
	}

	cmd.AddCommand(
		newQuestAddCmd(),
		newQuestListCmd(),
		newQuestStepCmd(),
	)

	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var desc string
	var category string
	var difficulty string
	var end string
	var steps []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest with steps",
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
			if len(steps) == 0 {
				return errors.New("at least one --step is required")
			}

			in := engine.CreateQuestInput{
				Title:       args[0],
				Description: desc,
				Category:    cat,
				Difficulty:  engine.QuestDifficulty(difficulty),
			}
			for _, s := range steps {
				in.Steps = append(in.Steps, engine.QuestStepSpec{Title: s})
			}
			if end != "" {
				d, err := time.Parse("2006-01-02", end)
				if err != nil {
					return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", end)
				}
				in.EndDate = &d
			}

			quest, err := svc.CreateQuest(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconQuest+" Quest accepted"),
				quest.Title,
				ui.CategoryIcon(quest.Category),
				ui.Muted.Render(fmt.Sprintf("(%d XP across %d steps, id %s)", quest.XPReward, len(steps), quest.ID)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Quest description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (health|work|creativity|social|learning)")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "easy", "Difficulty (easy|medium|hard|legendary)")
	cmd.Flags().StringVar(&end, "end", "", "Target end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Step title (repeatable)")

	return cmd
}

func newQuestListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests and their steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.QuestRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			if len(quests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No quests yet. Add one with: dailyxp quest add"))
				return nil
			}

			for _, q := range quests {
				status := ui.Warn.Render(q.Status)
				if q.Completed {
					status = ui.Good.Render("completed")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s [%s] %s %s\n",
					ui.IconQuest, q.Title, ui.CategoryIcon(q.Category), status,
					ui.XPBar(q.Progress, 100, 10),
					ui.Muted.Render(fmt.Sprintf("%d%% · %d XP · id %s", q.Progress, q.XPReward, q.ID)),
				)
				steps, err := svc.QuestRepo().ListSteps(ctx, q.ID)
				if err != nil {
					return err
				}
				for _, st := range steps {
					mark := "⬜"
					if st.Completed {
						mark = ui.IconDone
					}
					fmt.Fprintf(cmd.OutOrStdout(), "   %s %s %s\n", mark, st.Title, ui.Muted.Render("id "+st.ID))
				}
			}
			return nil
		},
	}

	return cmd
}

func newQuestStepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step <quest_id> <step_id>",
		Short: "Complete a quest step",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("quest_id and step_id are required")
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

			res, err := svc.CompleteQuestStep(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconStep+" Step done"),
				res.StepTitle,
				ui.Gold.Render(fmt.Sprintf("+%d XP", res.XPAwarded)),
				ui.Muted.Render(fmt.Sprintf("(%d%%)", res.Progress)),
			)
			if res.QuestCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconTrophy+" Quest complete!"))
			}
			if res.LevelUp {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.BadgeLevelUp, ui.Muted.Render(fmt.Sprintf("level %d → %d", res.LevelBefore, res.LevelAfter)))
			}
			return nil
		},
	}

	return cmd
}
