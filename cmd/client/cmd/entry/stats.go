// cmd/client/cmd/entry/stats.go
package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
	"canlog/internal/domain/entry"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Статистика журнала",
	Long: `Сводка по локальному журналу: общий счёт, серия дней подряд,
любимый напиток и гистограмма за последнюю неделю.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		summary, err := app.Stats()
		if err != nil {
			return fmt.Errorf("ошибка расчёта статистики: %w", err)
		}

		color.Cyan("=== Статистика ===")
		fmt.Printf("Всего банок:      %d\n", summary.Total)
		fmt.Printf("Сегодня:          %d%s\n", summary.Today, goalSuffix(app))
		fmt.Printf("Серия дней:       %d\n", summary.Streak)
		fmt.Printf("Активных дней:    %d\n", summary.ActiveDays)
		if summary.FavoriteDrink != "" {
			name := summary.FavoriteDrink
			if d, ok := entry.DrinkByID(summary.FavoriteDrink); ok {
				name = d.Name
			}
			fmt.Printf("Любимый напиток:  %s\n", name)
		}
		fmt.Printf("В среднем в день: %.1f\n", summary.AveragePerActiveDay)
		fmt.Printf("В среднем в нед.: %.1f\n", summary.AveragePerWeek)
		if summary.RecordDay != nil {
			fmt.Printf("Рекордный день:   %s (%d)\n",
				summary.RecordDay.Day.Format("2006-01-02"), summary.RecordDay.Count)
		}

		bars, err := app.Last7Days()
		if err != nil {
			return fmt.Errorf("ошибка расчёта гистограммы: %w", err)
		}

		fmt.Println()
		color.Cyan("=== Последние 7 дней ===")
		for _, b := range bars {
			fmt.Printf("%s  %-2d %s\n", b.Day.Format("Mon 02.01"), b.Count, strings.Repeat("█", b.Count))
		}

		return nil
	},
}

// goalSuffix дорисовывает прогресс дневной цели, если она задана.
func goalSuffix(app *client.App) string {
	raw, ok, err := app.GetPreference("dailyGoal")
	if err != nil || !ok {
		return ""
	}
	goal, err := strconv.Atoi(raw)
	if err != nil || goal <= 0 {
		return ""
	}
	return fmt.Sprintf(" / цель %d", goal)
}
