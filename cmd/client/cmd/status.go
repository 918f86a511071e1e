// cmd/client/cmd/status.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние клиента и сервера",
	Long:  `Доступность сервера и текущее состояние аутентификации.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		if err := app.HealthCheck(ctx); err != nil {
			color.Yellow("Сервер:  недоступен (%v)", err)
			fmt.Println("Журнал продолжает работать локально.")
		} else {
			color.Green("Сервер:  доступен")
		}

		if app.IsAuthenticated() {
			fmt.Println("Аккаунт: вход выполнен")
		} else {
			fmt.Println("Аккаунт: вход не выполнен")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
