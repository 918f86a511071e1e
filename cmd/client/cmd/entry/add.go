// cmd/client/cmd/entry/add.go
package entry

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
	"canlog/internal/domain/entry"
)

var addScanned bool

var AddCmd = &cobra.Command{
	Use:   "add <drink-id>",
	Short: "Записать выпитую банку",
	Long: `Добавление записи в локальный журнал.

Запись появляется сразу, сеть не требуется. Список допустимых
идентификаторов напитков: canlog entry catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		source := entry.SourceManual
		if addScanned {
			source = entry.SourceScan
		}

		e, err := app.AddEntry(cmd.Context(), args[0], source)
		if err != nil {
			var rateErr *client.RateLimitError
			if errors.As(err, &rateErr) {
				wait := time.Until(rateErr.WaitUntil)
				minutes := int(math.Ceil(wait.Minutes()))
				if minutes < 1 {
					minutes = 1
				}
				color.Yellow("Лимит записей исчерпан, попробуйте через %d мин.", minutes)
				return nil
			}
			return fmt.Errorf("ошибка добавления записи: %w", err)
		}

		drink, _ := entry.DrinkByID(e.DrinkID)
		color.Green("✓ Записано: %s (%s)", drink.Name, e.LoggedAt.Format("15:04"))

		return nil
	},
}

func init() {
	AddCmd.Flags().BoolVar(&addScanned, "scan", false, "запись получена сканированием банки")
}
