package types

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindfulsteps/internal/app/client"
	"mindfulsteps/internal/app/client/output"
)

type contextKey string

const (
	ClientAppKey contextKey = "app"
	PrinterKey   contextKey = "printer"
)

// App достает клиентское приложение из контекста команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// Printer достает принтер вывода из контекста команды
func Printer(cmd *cobra.Command) *output.Printer {
	p, ok := cmd.Context().Value(PrinterKey).(*output.Printer)
	if !ok {
		return output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.FormatText)
	}
	return p
}
