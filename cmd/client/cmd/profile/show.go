// cmd/client/cmd/profile/show.go
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать серверный профиль",
	Long:  `Профиль владельца как его видит сервер. Требуется выполненный вход.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if !app.IsAuthenticated() {
			return fmt.Errorf("требуется вход в аккаунт: canlog auth login")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		p, err := app.Profile(ctx)
		if err != nil {
			return fmt.Errorf("ошибка получения профиля: %w", err)
		}

		fmt.Printf("Имя:            %s\n", p.DisplayName)
		fmt.Printf("Достижения:     %s\n", visibility(p.ShowAchievements))
		fmt.Printf("Статистика:     %s\n", visibility(p.ShowStats))
		fmt.Printf("Обновлён:       %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))

		return nil
	},
}

func visibility(shown bool) string {
	if shown {
		return "открыты"
	}
	return "скрыты"
}
