package entry

import (
	"time"
)

// Source - происхождение записи. Сканированные записи считаются более достоверными.
type Source string

const (
	SourceManual Source = "manual"
	SourceScan   Source = "scan"
)

// Entry - одна зарегистрированная банка.
// ID присваивается на устройстве в момент создания и никогда не перегенерируется.
type Entry struct {
	ID       string    `json:"id"`
	UserID   int       `json:"user_id,omitempty"`
	DrinkID  string    `json:"drink_id"`
	LoggedAt time.Time `json:"logged_at"`
	Source   Source    `json:"source"`
}

// ParseSource нормализует произвольную строку до известного источника.
func ParseSource(s string) Source {
	if Source(s) == SourceScan {
		return SourceScan
	}
	return SourceManual
}
