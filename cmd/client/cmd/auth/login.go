package auth

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в учетную запись",
	Long: `Аутентификация на сервере Mindful Steps.

После входа токен сохраняется локально для последующих операций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		name, password, err := readCredentials(cmd)
		if err != nil {
			return err
		}

		s, err := app.Login(cmd.Context(), name, password)
		if err != nil {
			return err
		}

		types.Printer(cmd).Message("Вход выполнен, владелец данных: %s", s.Owner)
		return nil
	},
}
