// cmd/client/cmd/entry/list.go
package entry

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"canlog/cmd/client/cmd/types"
	"canlog/internal/app/client"
	"canlog/internal/domain/entry"
)

var (
	listFormat string
	listLimit  int
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать журнал",
	Long: `Просмотр локального журнала, новые записи сверху.

Количество строк ограничивается флагом --limit.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		entries, err := app.ListEntries()
		if err != nil {
			return fmt.Errorf("ошибка чтения журнала: %w", err)
		}

		if listLimit > 0 && len(entries) > listLimit {
			entries = entries[:listLimit]
		}

		switch listFormat {
		case "json":
			return printEntriesJSON(entries)
		case "table":
			return printEntriesTable(entries)
		default:
			return printEntriesSimple(entries)
		}
	},
}

func printEntriesSimple(entries []entry.Entry) error {
	if len(entries) == 0 {
		fmt.Println("Журнал пуст")
		return nil
	}

	for _, e := range entries {
		name := e.DrinkID
		if d, ok := entry.DrinkByID(e.DrinkID); ok {
			name = d.Name
		}
		marker := ""
		if e.Source == entry.SourceScan {
			marker = " [scan]"
		}
		fmt.Printf("%s  %s  %s%s\n", e.ID, e.LoggedAt.Format("2006-01-02 15:04"), name, marker)
	}

	return nil
}

func printEntriesTable(entries []entry.Entry) error {
	if len(entries) == 0 {
		fmt.Println("Журнал пуст")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tВРЕМЯ\tНАПИТОК\tИСТОЧНИК")
	for _, e := range entries {
		name := e.DrinkID
		if d, ok := entry.DrinkByID(e.DrinkID); ok {
			name = d.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.LoggedAt.Format("2006-01-02 15:04"), name, e.Source)
	}

	return w.Flush()
}

func printEntriesJSON(entries []entry.Entry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "simple", "формат вывода (simple, table, json)")
	ListCmd.Flags().IntVar(&listLimit, "limit", 0, "максимум строк вывода (0 - без ограничения)")
}
