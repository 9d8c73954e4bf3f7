package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var login string

// AuthCmd - родительская команда для всех операций с авторизацией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление учетной записью",
	Long: `Регистрация, вход и выход.

Без входа данные привязаны к идентификатору устройства. После входа
прогулки, цели и серия хранятся в учетной записи.`,
}

// readCredentials запрашивает логин (если не передан флагом) и пароль без эха
func readCredentials(cmd *cobra.Command) (string, string, error) {
	out := cmd.OutOrStdout()

	name := login
	if name == "" {
		fmt.Fprint(out, "Логин: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("ошибка чтения логина: %w", err)
		}
		name = strings.TrimSpace(line)
	}

	fmt.Fprint(out, "Пароль: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}

	return name, string(password), nil
}

func init() {
	AuthCmd.PersistentFlags().StringVarP(&login, "login", "l", "", "логин")
	AuthCmd.AddCommand(RegisterCmd, LoginCmd, LogoutCmd)
}
