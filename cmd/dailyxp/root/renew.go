package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gravitonian77/DailyXP/internal/ui"
)

func newRenewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Reset daily and habit tasks for a new day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.ResetDailyTasks(ctx)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to renew."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s) ready again.\n", ui.Good.Render(ui.IconLoop+" Renewed"), n)
			return nil
		},
	}

	return cmd
}
