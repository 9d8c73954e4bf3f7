package walk

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

// WalkCmd - родительская команда для прогулок
var WalkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Прогулки",
	Long:  `Начало и завершение прогулки, шаги, история и статистика.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "История прогулок",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().GetAllLogs(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Walks(res.Value)
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Текущая прогулка",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.ActiveWalk(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Walk(res.Value)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить прогулку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().DeleteLog(cmd.Context(), args[0])
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		p.Message("Прогулка %s удалена", args[0])
		return nil
	},
}

func init() {
	WalkCmd.AddCommand(startCmd, progressCmd, breakCmd, endCmd, listCmd, activeCmd, deleteCmd, statsCmd)
}
