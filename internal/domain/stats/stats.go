// Package stats считает производные агрегаты по журналу записей.
// Все функции чистые: журнал на входе, числа на выходе, без обращений к хранилищу.
package stats

import (
	"time"

	"canlog/internal/domain/entry"
)

const streakScanDays = 365

// Summary - сводка по журналу, используется интерфейсом, достижениями и профилем.
type Summary struct {
	Total               int            `json:"total"`
	Today               int            `json:"today"`
	Streak              int            `json:"streak"`
	CountByDrink        map[string]int `json:"count_by_drink"`
	FavoriteDrink       string         `json:"favorite_drink,omitempty"`
	ActiveDays          int            `json:"active_days"`
	AveragePerActiveDay float64        `json:"average_per_active_day"`
	AveragePerWeek      float64        `json:"average_per_week"`
	RecordDay           *DayCount      `json:"record_day,omitempty"`
}

// DayCount - количество записей за один календарный день.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// DayBar - столбик дневной гистограммы.
type DayBar struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// Compute строит сводку. Календарные дни определяются в часовом поясе now:
// запись, сделанная в другом поясе, пересчитывается в текущий пояс устройства.
func Compute(entries []entry.Entry, now time.Time) Summary {
	s := Summary{
		Total:        len(entries),
		CountByDrink: make(map[string]int, len(entry.Catalog)),
	}

	loc := now.Location()
	todayKey := dayKey(now)
	dayCounts := make(map[string]*DayCount)

	for _, e := range entries {
		local := e.LoggedAt.In(loc)
		key := dayKey(local)

		if key == todayKey {
			s.Today++
		}
		s.CountByDrink[e.DrinkID]++

		dc, ok := dayCounts[key]
		if !ok {
			dc = &DayCount{Day: startOfDay(local)}
			dayCounts[key] = dc
		}
		dc.Count++
	}

	s.ActiveDays = len(dayCounts)

	for _, dc := range dayCounts {
		if s.RecordDay == nil || dc.Count > s.RecordDay.Count {
			rec := *dc
			s.RecordDay = &rec
		}
	}

	best := 0
	for id, n := range s.CountByDrink {
		if n > best {
			best = n
			s.FavoriteDrink = id
		}
	}

	// Текущая серия: идем назад от сегодняшнего дня, пока дни не прерываются.
	for i := 0; i < streakScanDays; i++ {
		key := dayKey(now.AddDate(0, 0, -i))
		if _, ok := dayCounts[key]; !ok {
			break
		}
		s.Streak++
	}

	if s.ActiveDays > 0 {
		s.AveragePerActiveDay = round1(float64(s.Total) / float64(s.ActiveDays))
	}

	cutoff := now.AddDate(0, 0, -28)
	last28 := 0
	for _, e := range entries {
		if !e.LoggedAt.Before(cutoff) {
			last28++
		}
	}
	s.AveragePerWeek = round1(float64(last28) / 4)

	return s
}

// Last7Days возвращает семь столбиков, старый день первым, сегодняшний последним.
func Last7Days(entries []entry.Entry, now time.Time) []DayBar {
	loc := now.Location()

	counts := make(map[string]int)
	for _, e := range entries {
		counts[dayKey(e.LoggedAt.In(loc))]++
	}

	bars := make([]DayBar, 7)
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, i-6)
		bars[i] = DayBar{
			Day:   startOfDay(d),
			Count: counts[dayKey(d)],
		}
	}
	return bars
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
