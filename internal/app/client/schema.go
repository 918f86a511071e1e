package client

import (
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"
)

// schemaVersion - целевая версия локальной схемы. Версия хранится в
// PRAGMA user_version и двигается только вперёд.
const schemaVersion = 4

// schemaManager ведёт схему локальной базы: версионные шаги плюс
// ремонтный проход, который лечит разъехавшиеся установки.
type schemaManager struct {
	db  *sql.DB
	log *slog.Logger
}

func newSchemaManager(db *sql.DB, log *slog.Logger) *schemaManager {
	return &schemaManager{db: db, log: log}
}

func (m *schemaManager) currentVersion() (int, error) {
	var v int
	if err := m.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

func (m *schemaManager) setVersion(v int) error {
	// PRAGMA не принимает плейсхолдеры
	if _, err := m.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// migrate доводит схему до target. Каждый шаг проверяет наличие своих
// таблиц и колонок через интроспекцию и потому безопасен при повторе.
// После версионных шагов всегда выполняется ремонтный проход, и только
// затем версия двигается вперёд.
func (m *schemaManager) migrate(target int) error {
	current, err := m.currentVersion()
	if err != nil {
		return err
	}

	steps := []func() error{
		m.stepEntries,        // v1
		m.stepPreferences,    // v2
		m.stepSyncColumns,    // v3
		m.stepPendingDeletes, // v4
	}

	for v := current; v < target && v < len(steps); v++ {
		if err := steps[v](); err != nil {
			return fmt.Errorf("migration step %d: %w", v+1, err)
		}
		m.log.Debug("schema step applied", "version", v+1)
	}

	// Ремонтный проход выполняется на каждом старте, даже когда версия
	// актуальна: независимо перепроверяет каждую таблицу и колонку.
	if err := m.repair(); err != nil {
		return fmt.Errorf("schema repair: %w", err)
	}

	if current < target {
		if err := m.setVersion(target); err != nil {
			return err
		}
		m.log.Info("schema migrated", "from", current, "to", target)
	}

	return nil
}

// v1: таблица записей.
func (m *schemaManager) stepEntries() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			drink_id TEXT NOT NULL,
			logged_at DATETIME NOT NULL
		)`)
	return err
}

// v2: таблица настроек.
func (m *schemaManager) stepPreferences() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	return err
}

// v3: колонки synced и source. ALTER TABLE под защитой интроспекции,
// ошибки по тексту никогда не разбираем.
func (m *schemaManager) stepSyncColumns() error {
	for col, ddl := range map[string]string{
		"synced": "ALTER TABLE entries ADD COLUMN synced INTEGER NOT NULL DEFAULT 0",
		"source": "ALTER TABLE entries ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'",
	} {
		exists, err := m.columnExists("entries", col)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := m.db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// v4: очередь отложенных удалений.
func (m *schemaManager) stepPendingDeletes() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS pending_deletes (
			id TEXT PRIMARY KEY
		)`)
	return err
}

// repair независимо перепроверяет все ожидаемые таблицы и колонки и
// досоздаёт недостающее. Лечит базы, где версия говорит одно, а схема другое.
func (m *schemaManager) repair() error {
	if err := m.stepEntries(); err != nil {
		return err
	}
	if err := m.stepPreferences(); err != nil {
		return err
	}
	if err := m.stepSyncColumns(); err != nil {
		return err
	}
	if err := m.stepPendingDeletes(); err != nil {
		return err
	}
	return nil
}

// tableExists смотрит в sqlite_master.
func (m *schemaManager) tableExists(name string) (bool, error) {
	var n int
	err := m.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect table %s: %w", name, err)
	}
	return n > 0, nil
}

// columnExists смотрит в PRAGMA table_info.
func (m *schemaManager) columnExists(table, column string) (bool, error) {
	rows, err := m.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("inspect columns of %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scan table_info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
