package achievement

import (
	"time"

	"canlog/internal/domain/entry"
)

// Пороговые значения условий разблокировки.
const (
	earlyBirdBeforeHour = 8
	nightOwlFromHour    = 23
)

// UnlockedIDs вычисляет набор достижений, условия которых выполняются сейчас.
// Чистая производная от журнала и готовых агрегатов; вызывается при каждом
// изменении истории, поэтому обязана быть дешевой.
//
// Часовые условия проверяются по каждой записи отдельно, в текущем часовом
// поясе устройства (см. DESIGN.md: пояс не замораживается в момент записи).
func UnlockedIDs(entries []entry.Entry, total, streak int, countByDrink map[string]int) []string {
	hasEarlyBird := false
	hasNightOwl := false
	for _, e := range entries {
		h := e.LoggedAt.In(time.Local).Hour()
		if h < earlyBirdBeforeHour {
			hasEarlyBird = true
		}
		if h >= nightOwlFromHour {
			hasNightOwl = true
		}
		if hasEarlyBird && hasNightOwl {
			break
		}
	}

	tried := 0
	for _, d := range entry.Catalog {
		if countByDrink[d.ID] > 0 {
			tried++
		}
	}

	var unlocked []string
	if total >= 1 {
		unlocked = append(unlocked, FirstCan)
	}
	if total >= 10 {
		unlocked = append(unlocked, TenCans)
	}
	if total >= 50 {
		unlocked = append(unlocked, FiftyCans)
	}
	if total >= 100 {
		unlocked = append(unlocked, HundredCans)
	}
	if streak >= 7 {
		unlocked = append(unlocked, Streak7)
	}
	if streak >= 30 {
		unlocked = append(unlocked, Streak30)
	}
	if tried >= len(entry.Catalog) {
		unlocked = append(unlocked, Collector)
	}
	if hasEarlyBird {
		unlocked = append(unlocked, EarlyBird)
	}
	if hasNightOwl {
		unlocked = append(unlocked, NightOwl)
	}

	return unlocked
}
