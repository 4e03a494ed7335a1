package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Gravitonian77/DailyXP/internal/engine"
	"github.com/Gravitonian77/DailyXP/internal/ui"
)

// RunBoard opens the interactive dashboard.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc), tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError + " " + m.err.Error())
	}

	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconSparkle, "DailyXP") + "\n")
	b.WriteString(fmt.Sprintf("%s  %s %s  %s %d %s\n",
		ui.LabelValue("Level", m.snapshot.Level),
		ui.XPBar(m.snapshot.CurrentXP, m.snapshot.XPToNextLevel, 20),
		ui.Muted.Render(fmt.Sprintf("%d/%d XP", m.snapshot.CurrentXP, m.snapshot.XPToNextLevel)),
		ui.IconStreak, m.snapshot.StreakDays, ui.Muted.Render("day streak"),
	))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(ui.Muted.Render("No tasks yet. Add one with: dailyxp add \"Morning workout\"") + "\n")
	}
	for i, t := range m.tasks {
		line := fmt.Sprintf("%s %s %s %s",
			statusIcon(t.Completed),
			ui.CategoryIcon(t.Category),
			t.Title,
			ui.Muted.Render(fmt.Sprintf("(+%d XP)", t.XPValue)),
		)
		if i == m.selected {
			line = ui.SelectedRow.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render(m.lastLog) + "\n")
	b.WriteString(ui.Muted.Render("j/k: move  c/space: complete  r: refresh  q: quit") + "\n")
	return b.String()
}

func statusIcon(completed bool) string {
	if completed {
		return ui.IconDone
	}
	return "⬜"
}
