package auth

import (
	"github.com/spf13/cobra"

	"mindfulsteps/cmd/client/cmd/types"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Создать учетную запись",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		name, password, err := readCredentials(cmd)
		if err != nil {
			return err
		}

		s, err := app.Register(cmd.Context(), name, password)
		if err != nil {
			return err
		}

		types.Printer(cmd).Message("Учетная запись создана, владелец данных: %s", s.Owner)
		types.Printer(cmd).Message("Перенести данные устройства в учетную запись: mindful-steps sync migrate")
		return nil
	},
}
