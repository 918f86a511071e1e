// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
	"canlog/internal/app/client/config"
	"canlog/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "canlog",
	Short: "Canlog - локальный журнал выпитых банок с синхронизацией",
	Long: `Canlog ведёт журнал выпитых энергетиков локально, без сети.

Каждая запись сначала попадает в локальную базу и видна сразу.
После входа в аккаунт журнал синхронизируется с сервером, так что
несколько устройств одного владельца сходятся к общему списку.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	// Приложение едет к подкомандам через контекст команды
	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))

	return nil
}

// closeApp дожидается фоновых задач (зеркалирование настроек, фоновая
// синхронизация) и закрывает локальное хранилище.
func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Canlog")
}
