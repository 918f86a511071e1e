package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrSyncInProgress - попытка запустить второй прогон синхронизации поверх
// текущего. Не фатальна: следующий триггер повторит прогон целиком.
var ErrSyncInProgress = errors.New("sync already in progress")

// StorageError - отказ локального движка. Всегда доводится до вызывающего,
// молча не глотается.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// RateLimitError - ожидаемое типизированное состояние: лимит записей в окне
// исчерпан. Несёт момент, когда запись снова станет возможной.
type RateLimitError struct {
	WaitUntil time.Time
}

func (e *RateLimitError) Error() string {
	wait := time.Until(e.WaitUntil).Round(time.Second)
	if wait < 0 {
		wait = 0
	}
	return fmt.Sprintf("rate limited, retry in %s", wait)
}
