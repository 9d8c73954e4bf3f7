package sync

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/internal/app/client/output"
)

// SyncCmd отправляет накопленные офлайн изменения
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизация с сервером",
	Long: `Отправляет на сервер изменения, сделанные без связи.

Изменения отправляются в порядке их появления; неудачные остаются
в очереди до следующей попытки.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().ReplayQueue(cmd.Context())
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Replay(res.Value)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние сервера и очереди",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		pending := app.Sync().PendingCount(cmd.Context())
		if err := p.Status(pending.Status, pending.Err); err != nil {
			return err
		}

		// GetGoals проверяет доступность сервера
		app.Sync().GetGoals(cmd.Context())

		return p.SyncState(output.SyncState{
			DeviceID:      app.DeviceID(),
			Online:        app.Sync().Online(),
			Authenticated: app.IsAuthenticated(),
			Pending:       pending.Value,
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Следить за сервером и отправлять очередь",
	Long:  `Периодически проверяет доступность сервера и отправляет очередь. Завершается по Ctrl+C.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		p := types.Printer(cmd)
		p.Message("Слежение запущено, устройство %s", app.DeviceID())
		app.Sync().SetStatusHandler(p.Connectivity)
		app.Run(cmd.Context())
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Перенести данные устройства в учетную запись",
	Long: `Сохраняет резервную копию локальных данных на сервере, затем переносит
прогулки, цели, серию и снимки. Локальные данные удаляются только
после успешного переноса.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		p := types.Printer(cmd)

		res := app.Sync().MigrateLocal(cmd.Context())
		if res.Err != nil && res.Value.BackupKey == "" {
			return res.Err
		}
		if err := p.Status(res.Status, res.Err); err != nil {
			return err
		}
		return p.Migration(res.Value)
	},
}

func init() {
	SyncCmd.AddCommand(statusCmd, watchCmd, migrateCmd)
}
