// cmd/client/cmd/auth/logout.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из аккаунта",
	Long: `Завершение сессии на сервере и удаление локального токена.

Локальный журнал остаётся на устройстве и продолжает работать без сети.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if !app.IsAuthenticated() {
			fmt.Println("Вход не выполнен")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Logout(ctx); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}

		fmt.Println("✓ Выход выполнен")

		return nil
	},
}
