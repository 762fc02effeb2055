package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := openStore(t)

	snap := Snapshot{
		AnalysisID:  "run-1",
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		FileCount:   12,
		EntityCount: 40,
		ImportCount: 55,
		HitCount:    52,
		MissCount:   3,
		CycleCount:  1,
		DurationMS:  180,
	}
	require.NoError(t, store.SaveSnapshot(snap))

	loaded, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "run-1", loaded[0].AnalysisID)
	require.Equal(t, 40, loaded[0].EntityCount)
	require.Equal(t, 3, loaded[0].MissCount)
	require.Equal(t, SchemaVersion, loaded[0].SchemaVersion)
	require.True(t, loaded[0].Timestamp.Equal(snap.Timestamp))
}

func TestSaveSnapshotUpsert(t *testing.T) {
	store := openStore(t)

	snap := Snapshot{AnalysisID: "run-1", FileCount: 1}
	require.NoError(t, store.SaveSnapshot(snap))
	snap.FileCount = 2
	require.NoError(t, store.SaveSnapshot(snap))

	loaded, err := store.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, 2, loaded[0].FileCount)
}

func TestLoadSnapshotsSince(t *testing.T) {
	store := openStore(t)

	old := Snapshot{AnalysisID: "old", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	recent := Snapshot{AnalysisID: "recent", Timestamp: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, store.SaveSnapshot(old))
	require.NoError(t, store.SaveSnapshot(recent))

	loaded, err := store.LoadSnapshots(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "recent", loaded[0].AnalysisID)
}

func TestSaveSnapshotRequiresID(t *testing.T) {
	store := openStore(t)
	require.Error(t, store.SaveSnapshot(Snapshot{}))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpenRejectsDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestOpenCreatesParentDirs(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nested", "deep", "history.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
