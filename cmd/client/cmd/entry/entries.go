package entry

import (
	"github.com/spf13/cobra"
)

// EntryCmd - родительская команда для операций с журналом
var EntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Журнал выпитых банок",
	Long:  `Добавление, просмотр и удаление записей локального журнала.`,
}
