package client

import (
	"strconv"
	"time"

	"canlog/internal/domain/entry"
)

// Ключи настроек лимита записей.
const (
	prefRateLimitEnabled = "rateLimitEnabled"
	prefRateLimitMax     = "rateLimitMax"
	prefRateLimitWindow  = "rateLimitWindowMinutes"
)

// Пределы и умолчания лимита.
const (
	defaultRateLimitMax    = 2
	minRateLimitMax        = 1
	maxRateLimitMax        = 10
	defaultRateLimitWindow = 10 * time.Minute
	minRateLimitWindow     = 1 * time.Minute
	maxRateLimitWindow     = 60 * time.Minute
)

// RateLimitConfig - конфигурация лимита записей. Читается из preferences,
// значения вне пределов загоняются в допустимый диапазон.
type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

// RateLimitResult - решение гейта для текущего момента.
type RateLimitResult struct {
	Allowed   bool
	Count     int
	WaitUntil time.Time
}

// CheckRateLimit - чистая функция: считает записи в окне [now-window, now]
// и разрешает новую запись строго при count < max. При отказе WaitUntil -
// момент самой старой записи окна плюс окно.
func CheckRateLimit(entries []entry.Entry, cfg RateLimitConfig, now time.Time) RateLimitResult {
	if !cfg.Enabled || cfg.Window <= 0 {
		return RateLimitResult{Allowed: true}
	}

	windowStart := now.Add(-cfg.Window)

	count := 0
	var oldest time.Time
	for _, e := range entries {
		if e.LoggedAt.Before(windowStart) || e.LoggedAt.After(now) {
			continue
		}
		count++
		if oldest.IsZero() || e.LoggedAt.Before(oldest) {
			oldest = e.LoggedAt
		}
	}

	if count < cfg.Max {
		return RateLimitResult{Allowed: true, Count: count}
	}

	return RateLimitResult{
		Allowed:   false,
		Count:     count,
		WaitUntil: oldest.Add(cfg.Window),
	}
}

// loadRateLimitConfig читает конфигурацию гейта из preferences.
func loadRateLimitConfig(s Storage) (RateLimitConfig, error) {
	cfg := RateLimitConfig{
		Enabled: false,
		Max:     defaultRateLimitMax,
		Window:  defaultRateLimitWindow,
	}

	if v, ok, err := s.GetPreference(prefRateLimitEnabled); err != nil {
		return cfg, err
	} else if ok {
		cfg.Enabled = v == "true" || v == "1"
	}

	if v, ok, err := s.GetPreference(prefRateLimitMax); err != nil {
		return cfg, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Max = clampInt(n, minRateLimitMax, maxRateLimitMax)
		}
	}

	if v, ok, err := s.GetPreference(prefRateLimitWindow); err != nil {
		return cfg, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			minutes := clampInt(n, int(minRateLimitWindow.Minutes()), int(maxRateLimitWindow.Minutes()))
			cfg.Window = time.Duration(minutes) * time.Minute
		}
	}

	return cfg, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
