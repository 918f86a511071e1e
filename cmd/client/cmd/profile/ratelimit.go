// cmd/client/cmd/profile/ratelimit.go
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var (
	rateEnabled string
	rateMax     string
	rateWindow  string
)

var RateLimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Настроить лимит записей",
	Long: `Лимит добавления записей: не больше N банок за скользящее окно.

По умолчанию лимит выключен. Максимум записей - от 1 до 10,
окно - от 1 до 60 минут; значения вне пределов обрезаются
при чтении.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		set := func(key, value string) error {
			if value == "" {
				return nil
			}
			if err := app.SetPreference(key, value); err != nil {
				return fmt.Errorf("ошибка сохранения %s: %w", key, err)
			}
			return nil
		}

		if err := set("rateLimitEnabled", rateEnabled); err != nil {
			return err
		}
		if err := set("rateLimitMax", rateMax); err != nil {
			return err
		}
		if err := set("rateLimitWindowMinutes", rateWindow); err != nil {
			return err
		}

		fmt.Println("✓ Настройки лимита сохранены")

		return nil
	},
}

func init() {
	RateLimitCmd.Flags().StringVar(&rateEnabled, "enabled", "", "включить лимит (true/false)")
	RateLimitCmd.Flags().StringVar(&rateMax, "max", "", "максимум записей в окне")
	RateLimitCmd.Flags().StringVar(&rateWindow, "window", "", "окно лимита в минутах")
}
