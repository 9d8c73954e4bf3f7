package walk

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/domain/walklog"
)

var statsCmd = &cobra.Command{
	Use:       "stats [today|week|month]",
	Short:     "Статистика за период",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(walklog.PeriodDay), string(walklog.PeriodWeek), string(walklog.PeriodMonth)},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		period := string(walklog.PeriodDay)
		if len(args) == 1 {
			period = args[0]
		}

		res := app.Stats(cmd.Context(), period)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Summary(res.Value)
	},
}
