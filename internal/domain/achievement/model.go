package achievement

import (
	"time"
)

// Идентификаторы достижений. Набор фиксированный и общий для клиента и сервера.
const (
	FirstCan    = "first-can"
	TenCans     = "ten-cans"
	FiftyCans   = "fifty-cans"
	HundredCans = "hundred-cans"
	Streak7     = "streak-7"
	Streak30    = "streak-30"
	Collector   = "collector"
	EarlyBird   = "early-bird"
	NightOwl    = "night-owl"
)

// All - все известные идентификаторы в порядке отображения.
var All = []string{
	FirstCan, TenCans, FiftyCans, HundredCans,
	Streak7, Streak30, Collector, EarlyBird, NightOwl,
}

// Unlock - строка журнала достижений. Журнал только пополняется:
// однажды записанный unlock никогда не удаляется и не пересчитывается вниз.
type Unlock struct {
	UserID        int       `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// Known проверяет, что идентификатор входит в фиксированный набор.
func Known(id string) bool {
	for _, a := range All {
		if a == id {
			return true
		}
	}
	return false
}
