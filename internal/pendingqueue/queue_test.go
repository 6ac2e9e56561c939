// internal/pendingqueue/queue_test.go
package pendingqueue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(id string) Entry {
	return Entry{
		OrderID:     id,
		OrderNumber: "0831" + id,
		TerminalID:  "till-1",
		Total:       1850,
		Payload:     json.RawMessage(`{"items":[]}`),
		QueuedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestOpenMissingFileIsEmptyQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	assert.Zero(t, q.Len())
}

func TestAppendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, q.Append(testEntry("a")))
	require.NoError(t, q.Append(testEntry("b")))

	reopened, err := Open(path)
	require.NoError(t, err)

	entries := reopened.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].OrderID)
	assert.Equal(t, "b", entries[1].OrderID)
}

func TestRemoveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, q.Append(testEntry("a")))
	require.NoError(t, q.Append(testEntry("b")))

	require.NoError(t, q.Remove("a"))
	require.NoError(t, q.Remove("a"))
	require.NoError(t, q.Remove("never-queued"))

	entries := q.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].OrderID)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, q.Append(testEntry("a")))
	require.NoError(t, q.Clear())
	assert.Zero(t, q.Len())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Zero(t, reopened.Len())
}

func TestOpenRejectsNewerFileVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "orders": []}`), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "orders": [`), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestAppendPersistFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, q.Append(testEntry("a")))

	// removing the directory makes the next write fail
	require.NoError(t, os.RemoveAll(dir))

	err = q.Append(testEntry("b"))
	require.Error(t, err)

	var persistence *PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "append", persistence.Op)
	assert.Equal(t, 1, q.Len())
}

func TestListReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.json")

	q, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, q.Append(testEntry("a")))

	entries := q.List()
	entries[0].OrderID = "mutated"

	assert.Equal(t, "a", q.List()[0].OrderID)
}
