package streak

import (
	"time"

	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/domain/streak"
)

// StreakCmd показывает серию дней подряд с прогулками
var StreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Серия дней подряд",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().GetStreak(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Streak(res.Value)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [YYYY-MM-DD]",
	Short: "Отметить прогулку в указанный день",
	Long:  `Учитывает прогулку в серии. Без аргумента используется сегодняшняя дата (UTC).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		date := time.Now().UTC().Format(streak.DateLayout)
		if len(args) == 1 {
			date = args[0]
		}

		res := app.Sync().UpdateStreak(cmd.Context(), date)
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Streak(res.Value)
	},
}

func init() {
	StreakCmd.AddCommand(updateCmd)
}
