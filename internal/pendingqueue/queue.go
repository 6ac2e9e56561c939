// internal/pendingqueue/queue.go
package pendingqueue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileVersion tags the on-disk format. Files written by a newer build
// are refused instead of silently reinterpreted.
const fileVersion = 1

// Entry is one order parked for later settlement. It carries everything
// needed to resume or re-print the order without the original cart.
type Entry struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TerminalID  string          `json:"terminal_id"`
	Total       int64           `json:"total"`
	Payload     json.RawMessage `json:"payload"`
	QueuedAt    time.Time       `json:"queued_at"`
}

type fileFormat struct {
	Version int     `json:"version"`
	Orders  []Entry `json:"orders"`
}

// PersistenceError reports a failed write of the queue file. The
// in-memory queue was rolled back, so the caller knows the order was
// not durably recorded.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("pending queue %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Queue is a durable FIFO of pending orders backed by a single JSON
// file. Every mutation rewrites the file atomically, so a crash leaves
// either the old or the new contents, never a partial write.
type Queue struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// Open loads the queue from path, creating the parent directory if
// needed. A missing file is an empty queue.
func Open(path string) (*Queue, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create queue directory: %w", err)
	}

	q := &Queue{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read pending queue: %w", err)
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pending queue: %w", err)
	}
	if file.Version > fileVersion {
		return nil, fmt.Errorf("pending queue file version %d is newer than supported version %d", file.Version, fileVersion)
	}

	q.entries = file.Orders
	return q, nil
}

// Append adds the entry to the tail of the queue and persists
func (q *Queue) Append(entry Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, entry)
	if err := q.persistLocked(); err != nil {
		q.entries = q.entries[:len(q.entries)-1]
		return &PersistenceError{Op: "append", Err: err}
	}
	return nil
}

// List returns the queued entries in arrival order
func (q *Queue) List() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len reports how many orders are queued
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Remove deletes the entry with the given order id. Removing an id that
// is not queued is a no-op, so settle and remove can be retried safely.
func (q *Queue) Remove(orderID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := -1
	for i, e := range q.entries {
		if e.OrderID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := q.entries[idx]
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	if err := q.persistLocked(); err != nil {
		q.entries = append(q.entries[:idx], append([]Entry{removed}, q.entries[idx:]...)...)
		return &PersistenceError{Op: "remove", Err: err}
	}
	return nil
}

// Clear drops every queued order
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	previous := q.entries
	q.entries = nil
	if err := q.persistLocked(); err != nil {
		q.entries = previous
		return &PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// persistLocked writes the whole queue to a temp file and renames it
// over the live one. Callers hold q.mu.
func (q *Queue) persistLocked() error {
	file := fileFormat{Version: fileVersion, Orders: q.entries}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode pending queue: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(q.path), ".pending-*.json")
	if err != nil {
		return fmt.Errorf("create temp queue file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp queue file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp queue file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp queue file: %w", err)
	}

	if err := os.Rename(tmpName, q.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace pending queue: %w", err)
	}
	return nil
}
