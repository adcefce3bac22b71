package benchmarks

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/randalmurphal/artifactname/pkg/mapping/batch"
	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
)

// BenchmarkMemoryStore_Save measures in-memory manifest save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := manifest.NewMemoryStore()
	e := benchEntry(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(e)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite manifest save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(benchEntry(i % 100))
	}
}

// BenchmarkSQLiteStore_List measures listing a run of 100 entries.
func BenchmarkSQLiteStore_List(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	for i := 0; i < 100; i++ {
		_ = store.Save(benchEntry(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.List("run-1")
	}
}

// BenchmarkMap_WithManifest measures a batch run recording to memory.
func BenchmarkMap_WithManifest(b *testing.B) {
	items := benchItems(20)
	store := manifest.NewMemoryStore()
	mapper := batch.New(batch.WithStore(store))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mapper.Map(context.Background(), items)
	}
}

// BenchmarkMap_WithoutManifest baseline without a manifest.
func BenchmarkMap_WithoutManifest(b *testing.B) {
	items := benchItems(20)
	mapper := batch.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mapper.Map(context.Background(), items)
	}
}

// Helper functions

func benchEntry(i int) manifest.Entry {
	return manifest.Entry{
		RunID:      "run-1",
		ArtifactID: "org.sample:lib" + strconv.Itoa(i) + ":jar:1.0",
		Pattern:    mapping.DefaultFileNameMapping,
		FileName:   "lib" + strconv.Itoa(i) + "-1.0.jar",
	}
}

func benchItems(n int) []batch.Item {
	items := make([]batch.Item, n)
	for i := range items {
		items[i] = batch.Item{Artifact: &mapping.Artifact{
			GroupID:    "org.sample",
			ArtifactID: "lib" + strconv.Itoa(i),
			Version:    "1.0",
			Type:       "jar",
			Handler:    mapping.HandlerFor("jar"),
		}}
	}
	return items
}

func createSQLiteStore(b *testing.B) (*manifest.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	store, err := manifest.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}

	return store, func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
}
