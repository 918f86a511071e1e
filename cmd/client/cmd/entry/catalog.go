// cmd/client/cmd/entry/catalog.go
package entry

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"canlog/internal/domain/entry"
)

var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Каталог напитков",
	Long:  `Список известных напитков с пищевой ценностью одной банки.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tККАЛ\tКОФЕИН, МГ\tСАХАР, Г\tОБЪЁМ, МЛ")
		for _, d := range entry.Catalog {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n",
				d.ID, d.Name, d.Nutrition.Kcal, d.Nutrition.Caffeine, d.Nutrition.Sugar, d.Nutrition.Volume)
		}
		return w.Flush()
	},
}
