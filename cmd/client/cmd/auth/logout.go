package auth

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из учетной записи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			return err
		}

		types.Printer(cmd).Message("Выход выполнен")
		return nil
	},
}
