// cmd/client/cmd/sync/sync.go
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Синхронизировать журнал с сервером",
	Long: `Полный прогон синхронизации: отложенные удаления, затем
получение чужих записей, затем отправка локальных.

Требуется выполненный вход (canlog auth login).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("требуется вход в аккаунт: canlog auth login")
		}

		fmt.Println("Синхронизация...")
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()

		result, err := app.Sync(ctx)
		if err != nil {
			if errors.Is(err, client.ErrSyncInProgress) {
				fmt.Println("Синхронизация уже выполняется")
				return nil
			}
			return fmt.Errorf("ошибка синхронизации: %w", err)
		}

		color.Green("✓ Синхронизация завершена")
		fmt.Printf("  Удалено на сервере: %d\n", result.Deleted)
		fmt.Printf("  Получено:           %d\n", result.Pulled)
		fmt.Printf("  Отправлено:         %d\n", result.Pushed)

		return nil
	},
}
