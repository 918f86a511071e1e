// cmd/client/cmd/entry/remove.go
package entry

import (
	"fmt"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
)

var RemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Удалить запись",
	Long: `Удаление записи из журнала по идентификатору.

Запись пропадает локально сразу; удаление на сервере выполняется
при ближайшей синхронизации.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if err := app.RemoveEntry(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		fmt.Println("✓ Запись удалена")

		return nil
	},
}
