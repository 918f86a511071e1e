// cmd/client/cmd/profile/name.go
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var NameCmd = &cobra.Command{
	Use:   "name <имя>",
	Short: "Задать отображаемое имя",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.SetPreference("displayName", args[0]); err != nil {
			return fmt.Errorf("ошибка сохранения имени: %w", err)
		}

		fmt.Printf("✓ Имя: %s\n", args[0])

		return nil
	},
}
