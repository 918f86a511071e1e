package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"canlog/internal/domain/entry"
)

func mkEntry(id, drink string, at time.Time) entry.Entry {
	return entry.Entry{ID: id, DrinkID: drink, LoggedAt: at, Source: entry.SourceManual}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, time.Now())

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, "", s.FavoriteDrink)
	assert.Nil(t, s.RecordDay)
	assert.Equal(t, 0.0, s.AveragePerWeek)
}

func TestCompute_TodayAndTotal(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	entries := []entry.Entry{
		mkEntry("1", "original-green", now.Add(-time.Hour)),
		mkEntry("2", "mango-loco", now.Add(-2*time.Hour)),
		mkEntry("3", "original-green", now.AddDate(0, 0, -3)),
	}

	s := Compute(entries, now)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Today)
	assert.Equal(t, "original-green", s.FavoriteDrink)
	assert.Equal(t, 2, s.CountByDrink["original-green"])
}

func TestCompute_Streak(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// Три дня подряд, включая сегодня, затем разрыв.
	entries := []entry.Entry{
		mkEntry("1", "original-green", now),
		mkEntry("2", "original-green", now.AddDate(0, 0, -1)),
		mkEntry("3", "original-green", now.AddDate(0, 0, -2)),
		mkEntry("4", "original-green", now.AddDate(0, 0, -5)),
	}

	s := Compute(entries, now)
	assert.Equal(t, 3, s.Streak)
}

func TestCompute_StreakBrokenToday(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// Без записи сегодня серия равна нулю.
	entries := []entry.Entry{
		mkEntry("1", "original-green", now.AddDate(0, 0, -1)),
		mkEntry("2", "original-green", now.AddDate(0, 0, -2)),
	}

	s := Compute(entries, now)
	assert.Equal(t, 0, s.Streak)
}

func TestCompute_RecordDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	busy := now.AddDate(0, 0, -2)

	entries := []entry.Entry{
		mkEntry("1", "original-green", now),
		mkEntry("2", "original-green", busy),
		mkEntry("3", "mango-loco", busy.Add(time.Hour)),
		mkEntry("4", "aussie-lemonade", busy.Add(2*time.Hour)),
	}

	s := Compute(entries, now)
	assert.NotNil(t, s.RecordDay)
	assert.Equal(t, 3, s.RecordDay.Count)
	assert.Equal(t, busy.Day(), s.RecordDay.Day.Day())
}

func TestCompute_Averages(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	entries := []entry.Entry{
		mkEntry("1", "original-green", now),
		mkEntry("2", "original-green", now.Add(-time.Hour)),
		mkEntry("3", "original-green", now.AddDate(0, 0, -1)),
	}

	s := Compute(entries, now)
	assert.Equal(t, 2, s.ActiveDays)
	assert.Equal(t, 1.5, s.AveragePerActiveDay)
	// 3 записи за 28 дней / 4 недели.
	assert.Equal(t, 0.8, s.AveragePerWeek)
}

func TestLast7Days(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	entries := []entry.Entry{
		mkEntry("1", "original-green", now),
		mkEntry("2", "original-green", now.AddDate(0, 0, -1)),
		mkEntry("3", "original-green", now.AddDate(0, 0, -8)), // вне окна
	}

	bars := Last7Days(entries, now)
	assert.Len(t, bars, 7)
	assert.Equal(t, 1, bars[6].Count)
	assert.Equal(t, 1, bars[5].Count)
	assert.Equal(t, 0, bars[0].Count)
}

func TestCompute_TimezoneOfNowWins(t *testing.T) {
	utcPlus3 := time.FixedZone("UTC+3", 3*60*60)
	// Запись 23:30 UTC попадает на следующий календарный день в UTC+3.
	loggedAt := time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, utcPlus3)

	s := Compute([]entry.Entry{mkEntry("1", "original-green", loggedAt)}, now)
	assert.Equal(t, 1, s.Today)
	assert.Equal(t, 1, s.Streak)
}
