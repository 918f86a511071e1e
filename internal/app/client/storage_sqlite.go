package client

import (
	"database/sql"
	"strconv"
	gosync "sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"canlog/internal/domain/entry"
)

// SQLiteStorage - локальное хранилище клиента поверх одного файла SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	log    *slog.Logger
	mu     gosync.Mutex
	lastID int64
	clock  func() time.Time
}

func NewSQLiteStorage(path string, log *slog.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, newStorageError("open", err)
	}

	storage := &SQLiteStorage{
		db:    db,
		log:   log,
		clock: time.Now,
	}

	// Версионные шаги и ремонтный проход выполняются на каждом старте
	if err := newSchemaManager(db, log).migrate(schemaVersion); err != nil {
		db.Close()
		return nil, newStorageError("migrate", err)
	}

	if err := storage.loadLastID(); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

// loadLastID восстанавливает верхнюю границу выданных id, чтобы новые id
// оставались строго возрастающими между перезапусками.
func (s *SQLiteStorage) loadLastID() error {
	var last sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(CAST(id AS INTEGER)) FROM entries").Scan(&last)
	if err != nil {
		return newStorageError("load last id", err)
	}
	if last.Valid {
		s.lastID = last.Int64
	}
	return nil
}

func (s *SQLiteStorage) ListEntries() ([]entry.Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, drink_id, logged_at, source
		FROM entries
		ORDER BY logged_at DESC`)
	if err != nil {
		return nil, newStorageError("list entries", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *SQLiteStorage) AddEntry(drinkID string, source entry.Source) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()

	// id на основе времени, строго возрастающий даже при записях в одну
	// миллисекунду
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	e := entry.Entry{
		ID:       strconv.FormatInt(id, 10),
		DrinkID:  drinkID,
		LoggedAt: now,
		Source:   source,
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (id, drink_id, logged_at, synced, source)
		VALUES (?, ?, ?, 0, ?)`,
		e.ID, e.DrinkID, e.LoggedAt.Format(time.RFC3339Nano), string(e.Source))
	if err != nil {
		return entry.Entry{}, newStorageError("add entry", err)
	}

	s.lastID = id
	return e, nil
}

func (s *SQLiteStorage) RemoveEntry(id string) error {
	// отсутствующий id не ошибка
	if _, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id); err != nil {
		return newStorageError("remove entry", err)
	}
	return nil
}

func (s *SQLiteStorage) ListUnsynced() ([]entry.Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, drink_id, logged_at, source
		FROM entries
		WHERE synced = 0
		ORDER BY logged_at ASC`)
	if err != nil {
		return nil, newStorageError("list unsynced", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (s *SQLiteStorage) MarkSynced(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return newStorageError("mark synced", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.Exec("UPDATE entries SET synced = 1 WHERE id = ?", id); err != nil {
			return newStorageError("mark synced", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newStorageError("mark synced", err)
	}
	return nil
}

func (s *SQLiteStorage) InsertIfAbsent(entries []entry.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, newStorageError("insert if absent", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, e := range entries {
		res, err := tx.Exec(`
			INSERT OR IGNORE INTO entries (id, drink_id, logged_at, synced, source)
			VALUES (?, ?, ?, 1, ?)`,
			e.ID, e.DrinkID, e.LoggedAt.Format(time.RFC3339Nano), string(e.Source))
		if err != nil {
			return 0, newStorageError("insert if absent", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, newStorageError("insert if absent", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, newStorageError("insert if absent", err)
	}
	return inserted, nil
}

func (s *SQLiteStorage) GetPreference(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, newStorageError("get preference", err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) SetPreference(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return newStorageError("set preference", err)
	}
	return nil
}

func (s *SQLiteStorage) EnqueuePendingDelete(id string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO pending_deletes (id) VALUES (?)", id)
	if err != nil {
		return newStorageError("enqueue pending delete", err)
	}
	return nil
}

// ListPendingDeletes возвращает очередь отложенных удалений. Отсутствие
// таблицы (база со старой схемой) трактуется как пустая очередь: сначала
// интроспекция, никогда не разбор текста ошибки.
func (s *SQLiteStorage) ListPendingDeletes() ([]string, error) {
	exists, err := newSchemaManager(s.db, s.log).tableExists("pending_deletes")
	if err != nil {
		return nil, newStorageError("list pending deletes", err)
	}
	if !exists {
		return nil, nil
	}

	rows, err := s.db.Query("SELECT id FROM pending_deletes ORDER BY id")
	if err != nil {
		return nil, newStorageError("list pending deletes", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, newStorageError("list pending deletes", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("list pending deletes", err)
	}
	return ids, nil
}

func (s *SQLiteStorage) RemovePendingDelete(id string) error {
	if _, err := s.db.Exec("DELETE FROM pending_deletes WHERE id = ?", id); err != nil {
		return newStorageError("remove pending delete", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]entry.Entry, error) {
	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		var loggedAt, source string
		if err := rows.Scan(&e.ID, &e.DrinkID, &loggedAt, &source); err != nil {
			return nil, newStorageError("scan entry", err)
		}
		t, err := time.Parse(time.RFC3339Nano, loggedAt)
		if err != nil {
			return nil, newStorageError("parse logged_at", err)
		}
		e.LoggedAt = t
		e.Source = entry.ParseSource(source)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("iterate entries", err)
	}
	return entries, nil
}
