package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/voidrunner/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func entry(id, lang string, at time.Time) types.HistoryEntry {
	return types.HistoryEntry{
		ID:        id,
		Timestamp: at,
		Language:  lang,
		Code:      "print(1)",
		Stdin:     "",
		Outcome:   "success",
		Output:    "1\n",
		Duration:  1500 * time.Millisecond,
	}
}

func TestRecordAndGet(t *testing.T) {
	m := newTestManager(t)
	at := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)

	e := entry("run-1", "python", at)
	e.Stdin = "5\n"
	require.NoError(t, m.Record(e))

	got, err := m.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.True(t, at.Equal(got.Timestamp))
	assert.Equal(t, "python", got.Language)
	assert.Equal(t, "print(1)", got.Code)
	assert.Equal(t, "5\n", got.Stdin)
	assert.Equal(t, "success", got.Outcome)
	assert.Equal(t, "1\n", got.Output)
	assert.Empty(t, got.Message)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
}

func TestGetUnknown(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordFailure(t *testing.T) {
	m := newTestManager(t)

	e := entry("run-f", "cpp", time.Now())
	e.Outcome = "failure"
	e.Output = ""
	e.Message = "Network or server error."
	e.Cause = "execution service unreachable: dial tcp"
	require.NoError(t, m.Record(e))

	got, err := m.Get("run-f")
	require.NoError(t, err)
	assert.Equal(t, "failure", got.Outcome)
	assert.Equal(t, e.Message, got.Message)
	assert.Equal(t, e.Cause, got.Cause)
}

func TestRecordDuplicateID(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.Record(entry("dup", "c", time.Now())))
	assert.Error(t, m.Record(entry("dup", "c", time.Now())))
}

func TestListNewestFirst(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// fractional seconds of varying width must still order correctly
	require.NoError(t, m.Record(entry("a", "cpp", base)))
	require.NoError(t, m.Record(entry("b", "python", base.Add(100*time.Millisecond))))
	require.NoError(t, m.Record(entry("c", "cpp", base.Add(time.Second))))

	all, err := m.List(0, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(all))

	limited, err := m.List(2, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(limited))

	cpp, err := m.List(0, "cpp")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(cpp))
}

func TestListEmpty(t *testing.T) {
	m := newTestManager(t)

	entries, err := m.List(10, "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCountAndClear(t *testing.T) {
	m := newTestManager(t)

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, m.Record(entry(id, "java", time.Now())))
	}

	count, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, m.Clear())

	count, err = m.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Record(entry("keep", "javascript", time.Now())))
	require.NoError(t, m.Close())

	m, err = NewManager(path)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.Get("keep")
	require.NoError(t, err)
	assert.Equal(t, "javascript", got.Language)
}

func ids(entries []types.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSharesDatabaseFileSafely(t *testing.T) {
	m := newTestManager(t)

	var mode string
	require.NoError(t, m.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, m.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}
