package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"mindfulsteps/cmd/client/cmd/auth"
	"mindfulsteps/cmd/client/cmd/goals"
	"mindfulsteps/cmd/client/cmd/photo"
	"mindfulsteps/cmd/client/cmd/prompt"
	"mindfulsteps/cmd/client/cmd/streak"
	"mindfulsteps/cmd/client/cmd/sync"
	"mindfulsteps/cmd/client/cmd/types"
	"mindfulsteps/cmd/client/cmd/walk"
	"mindfulsteps/internal/app/client"
	"mindfulsteps/internal/app/client/config"
	"mindfulsteps/internal/app/client/output"
	"mindfulsteps/internal/utils/logger"
)

var (
	cfgFile      string
	serverAddr   string
	dataDir      string
	outputFormat string
	enableTLS    bool
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "mindful-steps",
	Short: "Mindful Steps - дневник осознанных прогулок",
	Long: `Mindful Steps записывает прогулки, шаги, цели и серию дней подряд.

Данные хранятся на сервере; без связи клиент работает с локальной базой
и отправляет изменения, когда сервер снова становится доступен.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

// Execute запускает CLI и возвращает код завершения
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		return 1
	}
	return 0
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverAddr != "" {
		cfg.ServerAddress = serverAddr
	}
	if cmd.Flags().Changed("tls") {
		cfg.EnableTLS = enableTLS
	}
	if dataDir != "" {
		cfg.SetDir(dataDir)
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	printer := output.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)

	ctx := context.WithValue(cmd.Context(), types.ClientAppKey, app)
	ctx = context.WithValue(ctx, types.PrinterKey, printer)
	cmd.SetContext(ctx)

	return nil
}

func closeApp(cmd *cobra.Command, _ []string) error {
	app, err := types.App(cmd)
	if err != nil {
		return nil
	}
	return app.Close()
}

// newLogger пишет логи в stderr только в режиме отладки, чтобы не смешивать их с выводом команд
func newLogger(cfg *config.Config) *slog.Logger {
	var console io.Writer = io.Discard
	if debug {
		console = os.Stderr
	}

	opts := []logger.Option{logger.WithOutput(console)}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.LogFile))
	}
	return logger.New(cfg.Env, opts...)
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "адрес сервера (host:port)")
	rootCmd.PersistentFlags().BoolVar(&enableTLS, "tls", false, "подключаться по HTTPS")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "каталог локальных данных")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "формат вывода (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "выводить логи в stderr")

	rootCmd.AddCommand(
		auth.AuthCmd,
		walk.WalkCmd,
		goals.GoalsCmd,
		streak.StreakCmd,
		photo.PhotoCmd,
		prompt.PromptCmd,
		sync.SyncCmd,
	)
}
