package goals

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var (
	daily   int
	weekly  int
	monthly int
)

// GoalsCmd показывает цели по шагам
var GoalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Цели по шагам",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().GetGoals(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Goals(res.Value)
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Изменить цели",
	Long: `Изменяет цели по шагам. Не заданные флагами значения остаются прежними.
Недельная цель не обязана быть семикратной дневной.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		current := app.Sync().GetGoals(cmd.Context())
		if err := p.Status(current.Status, current.Err); err != nil {
			return err
		}

		g := current.Value
		if cmd.Flags().Changed("daily") {
			g.Daily = daily
		}
		if cmd.Flags().Changed("weekly") {
			g.Weekly = weekly
		}
		if cmd.Flags().Changed("monthly") {
			g.Monthly = monthly
		}
		if g.Daily < 0 || g.Weekly < 0 || g.Monthly < 0 {
			return fmt.Errorf("цели не могут быть отрицательными")
		}

		res := app.Sync().SaveGoals(cmd.Context(), g)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Goals(res.Value)
	},
}

func init() {
	setCmd.Flags().IntVar(&daily, "daily", 0, "шагов в день")
	setCmd.Flags().IntVar(&weekly, "weekly", 0, "шагов в неделю")
	setCmd.Flags().IntVar(&monthly, "monthly", 0, "шагов в месяц")
	GoalsCmd.AddCommand(setCmd)
}
