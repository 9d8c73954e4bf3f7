package walk

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var (
	steps    int
	distance float64
)

var progressCmd = &cobra.Command{
	Use:   "progress <id>",
	Short: "Добавить шаги и дистанцию к активной прогулке",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.RecordProgress(cmd.Context(), args[0], steps, distance)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Walk(res.Value)
	},
}

func init() {
	progressCmd.Flags().IntVarP(&steps, "steps", "s", 0, "количество шагов")
	progressCmd.Flags().Float64VarP(&distance, "km", "d", 0, "дистанция в километрах")
}
