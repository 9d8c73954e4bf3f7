package walk

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var startAt locationFlags

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Начать прогулку",
	Long: `Создает активную прогулку. Несколько активных прогулок одновременно
допустимы; завершите лишние командой walk end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		loc, err := startAt.location(cmd)
		if err != nil {
			return err
		}

		res := app.StartWalk(cmd.Context(), loc)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Walk(res.Value)
	},
}

func init() {
	startAt.register(startCmd)
}
