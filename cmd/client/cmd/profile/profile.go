// cmd/client/cmd/profile/profile.go
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

// ProfileCmd - родительская команда настроек и профиля.
// Без подкоманды показывает текущие локальные настройки.
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Настройки и профиль",
	Long: `Локальные настройки устройства и их зеркало в серверном профиле.

Настройки пишутся локально сразу; зеркалирование на сервер
выполняется в фоне и не блокирует команду.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		printPref := func(label, key, def string) {
			value, found, err := app.GetPreference(key)
			if err != nil || !found {
				value = def
			}
			fmt.Printf("%-22s %s\n", label+":", value)
		}

		printPref("Имя", "displayName", "User")
		printPref("Дневная цель", "dailyGoal", "не задана")
		printPref("Лимит включён", "rateLimitEnabled", "false")
		printPref("Лимит, записей", "rateLimitMax", "2")
		printPref("Лимит, окно (мин)", "rateLimitWindowMinutes", "10")

		return nil
	},
}
