package manifest_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) manifest.Store

func entry(runID, artifactID, fileName string) manifest.Entry {
	return manifest.Entry{
		RunID:      runID,
		ArtifactID: artifactID,
		Pattern:    "@{artifactId}@-@{baseVersion}@.@{extension}@",
		FileName:   fileName,
	}
}

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(entry("run-1", "g:a:jar:1.0", "a-1.0.jar")))

		loaded, err := store.Load("run-1", "g:a:jar:1.0")
		require.NoError(t, err)
		assert.Equal(t, "run-1", loaded.RunID)
		assert.Equal(t, "g:a:jar:1.0", loaded.ArtifactID)
		assert.Equal(t, "a-1.0.jar", loaded.FileName)
		assert.Equal(t, "@{artifactId}@-@{baseVersion}@.@{extension}@", loaded.Pattern)
		assert.Equal(t, 1, loaded.Sequence)
		assert.False(t, loaded.Timestamp.IsZero())
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Load("run-nonexistent", "g:a:jar:1.0")
		assert.ErrorIs(t, err, manifest.ErrNotFound)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(entry("run-1", "a", "first.jar")))
		require.NoError(t, store.Save(entry("run-1", "b", "b.jar")))
		require.NoError(t, store.Save(entry("run-1", "a", "second.jar")))

		loaded, err := store.Load("run-1", "a")
		require.NoError(t, err)
		assert.Equal(t, "second.jar", loaded.FileName)
		assert.Equal(t, 3, loaded.Sequence)

		entries, err := store.List("run-1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "b", entries[0].ArtifactID)
		assert.Equal(t, "a", entries[1].ArtifactID)
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, store.Save(entry("run-1", id, id+".jar")))
		}
		require.NoError(t, store.Save(entry("run-2", "z", "z.jar")))

		entries, err := store.List("run-1")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, id := range []string{"c", "a", "b"} {
			assert.Equal(t, id, entries[i].ArtifactID)
			assert.Equal(t, i+1, entries[i].Sequence)
		}
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		entries, err := store.List("run-nonexistent")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run(name+"/Runs", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		runs, err := store.Runs()
		require.NoError(t, err)
		assert.Empty(t, runs)

		require.NoError(t, store.Save(entry("run-1", "a", "a.jar")))
		require.NoError(t, store.Save(entry("run-1", "b", "b.jar")))
		require.NoError(t, store.Save(entry("run-2", "a", "a.jar")))

		runs, err = store.Runs()
		require.NoError(t, err)
		require.Len(t, runs, 2)

		counts := map[string]int{}
		for _, r := range runs {
			counts[r.RunID] = r.Entries
			assert.False(t, r.Started.IsZero())
		}
		assert.Equal(t, map[string]int{"run-1": 2, "run-2": 1}, counts)
	})

	t.Run(name+"/DeleteRun", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(entry("run-1", "a", "a.jar")))
		require.NoError(t, store.Save(entry("run-2", "a", "a.jar")))

		require.NoError(t, store.DeleteRun("run-1"))
		require.NoError(t, store.DeleteRun("run-nonexistent"))

		_, err := store.Load("run-1", "a")
		assert.ErrorIs(t, err, manifest.ErrNotFound)

		_, err = store.Load("run-2", "a")
		assert.NoError(t, err)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Save(entry("run-1", "a", "a.jar")), manifest.ErrStoreClosed)
		_, err := store.Load("run-1", "a")
		assert.ErrorIs(t, err, manifest.ErrStoreClosed)
		_, err = store.List("run-1")
		assert.ErrorIs(t, err, manifest.ErrStoreClosed)
		_, err = store.Runs()
		assert.ErrorIs(t, err, manifest.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteRun("run-1"), manifest.ErrStoreClosed)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) manifest.Store {
		return manifest.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) manifest.Store {
		store, err := manifest.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}

func TestMemoryStore_Len(t *testing.T) {
	store := manifest.NewMemoryStore()
	require.NoError(t, store.Save(entry("run-1", "a", "a.jar")))
	require.NoError(t, store.Save(entry("run-2", "a", "a.jar")))
	assert.Equal(t, 2, store.Len())
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "manifest.db")

	store1, err := manifest.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Save(entry("run-1", "a", "persistent.jar")))
	require.NoError(t, store1.Close())

	store2, err := manifest.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.Load("run-1", "a")
	require.NoError(t, err)
	assert.Equal(t, "persistent.jar", loaded.FileName)
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := manifest.NewSQLiteStore("/nonexistent/path/manifest.db")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	store, err := manifest.NewSQLiteStore(":memory:")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	store, err := manifest.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	const numGoroutines = 20
	const numOps = 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			runID := "run-" + string(rune('a'+id%5))
			for j := 0; j < numOps; j++ {
				artifactID := "artifact-" + string(rune('0'+j))
				switch j % 3 {
				case 0, 1:
					_ = store.Save(entry(runID, artifactID, "x.jar"))
				case 2:
					_, _ = store.List(runID)
				}
			}
		}(i)
	}
	wg.Wait()

	runs, err := store.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 5)
}
