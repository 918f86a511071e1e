// cmd/client/cmd/profile/goal.go
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var GoalCmd = &cobra.Command{
	Use:   "goal <число>",
	Short: "Задать дневную цель",
	Long:  `Дневная цель банок, от 0 до 10. Значения вне диапазона обрезаются.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.SetPreference("dailyGoal", args[0]); err != nil {
			return fmt.Errorf("ошибка сохранения цели: %w", err)
		}

		value, _, _ := app.GetPreference("dailyGoal")
		fmt.Printf("✓ Дневная цель: %s\n", value)

		return nil
	},
}
