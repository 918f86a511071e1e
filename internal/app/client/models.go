package client

import (
	"sort"
	"strconv"
	"time"

	"canlog/internal/domain/entry"
)

// Storage - локальное хранилище клиента. Единственная точка доступа к SQLite:
// никакой другой компонент в базу не ходит.
type Storage interface {
	// ListEntries возвращает записи от новых к старым. Состояние
	// синхронизации наружу не отдаётся.
	ListEntries() ([]entry.Entry, error)

	// AddEntry пишет запись локально: строго возрастающий id на основе
	// времени, logged_at = сейчас, synced = 0. Синхронно, без сети.
	AddEntry(drinkID string, source entry.Source) (entry.Entry, error)

	// RemoveEntry жёстко удаляет запись. Отсутствующий id не ошибка.
	RemoveEntry(id string) error

	// ListUnsynced возвращает неотправленные записи от старых к новым.
	ListUnsynced() ([]entry.Entry, error)

	// MarkSynced помечает ровно переданный набор id как отправленный.
	MarkSynced(ids []string) error

	// InsertIfAbsent вставляет чужие записи с synced = 1, пропуская уже
	// известные id. Возвращает количество реально вставленных.
	InsertIfAbsent(entries []entry.Entry) (int, error)

	GetPreference(key string) (string, bool, error)
	SetPreference(key, value string) error

	// EnqueuePendingDelete ставит id в очередь отложенных удалений,
	// повторная постановка безвредна.
	EnqueuePendingDelete(id string) error
	ListPendingDeletes() ([]string, error)
	RemovePendingDelete(id string) error

	Close() error
}

// MemoryStorage - запасное in-memory хранилище, также используется в тестах.
type MemoryStorage struct {
	entries map[string]entry.Entry
	synced  map[string]bool
	prefs   map[string]string
	pending map[string]struct{}
	lastID  int64
	clock   func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]entry.Entry),
		synced:  make(map[string]bool),
		prefs:   make(map[string]string),
		pending: make(map[string]struct{}),
		clock:   time.Now,
	}
}

func (m *MemoryStorage) ListEntries() ([]entry.Entry, error) {
	out := make([]entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	return out, nil
}

func (m *MemoryStorage) AddEntry(drinkID string, source entry.Source) (entry.Entry, error) {
	now := m.clock()

	id := now.UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id

	e := entry.Entry{
		ID:       strconv.FormatInt(id, 10),
		DrinkID:  drinkID,
		LoggedAt: now,
		Source:   source,
	}
	m.entries[e.ID] = e
	m.synced[e.ID] = false
	return e, nil
}

func (m *MemoryStorage) RemoveEntry(id string) error {
	delete(m.entries, id)
	delete(m.synced, id)
	return nil
}

func (m *MemoryStorage) ListUnsynced() ([]entry.Entry, error) {
	var out []entry.Entry
	for id, e := range m.entries {
		if !m.synced[id] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoggedAt.Before(out[j].LoggedAt)
	})
	return out, nil
}

func (m *MemoryStorage) MarkSynced(ids []string) error {
	for _, id := range ids {
		if _, ok := m.entries[id]; ok {
			m.synced[id] = true
		}
	}
	return nil
}

func (m *MemoryStorage) InsertIfAbsent(entries []entry.Entry) (int, error) {
	inserted := 0
	for _, e := range entries {
		if _, exists := m.entries[e.ID]; exists {
			continue
		}
		m.entries[e.ID] = e
		m.synced[e.ID] = true
		inserted++
	}
	return inserted, nil
}

func (m *MemoryStorage) GetPreference(key string) (string, bool, error) {
	v, ok := m.prefs[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetPreference(key, value string) error {
	m.prefs[key] = value
	return nil
}

func (m *MemoryStorage) EnqueuePendingDelete(id string) error {
	m.pending[id] = struct{}{}
	return nil
}

func (m *MemoryStorage) ListPendingDeletes() ([]string, error) {
	out := make([]string, 0, len(m.pending))
	for id := range m.pending {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStorage) RemovePendingDelete(id string) error {
	delete(m.pending, id)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
