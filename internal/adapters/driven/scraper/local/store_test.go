package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JepStar990/plainapi/internal/core/domain"
)

func testDocs() []domain.RawDocument {
	return []domain.RawDocument{
		{
			URL:         "https://api.nasa.gov/#apod",
			Content:     "The apod endpoint returns the astronomy picture of the day.",
			ContentType: domain.ContentHTML,
			Headers:     map[string]string{"Content-Type": "text/html"},
			Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			URL:         "https://api.nasa.gov/#neo",
			Content:     "The neo endpoint lists near earth objects.",
			ContentType: domain.ContentHTML,
			Timestamp:   time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testDocs()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "https://api.nasa.gov/#apod", loaded[0].URL)
	assert.Equal(t, domain.ContentHTML, loaded[0].ContentType)
	assert.Equal(t, "text/html", loaded[0].Headers["Content-Type"])
	assert.True(t, loaded[0].Timestamp.Equal(testDocs()[0].Timestamp))
}

func TestStore_Save_Overwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	docs := testDocs()[:1]
	require.NoError(t, store.Save(ctx, docs))

	docs[0].Content = "updated content"
	require.NoError(t, store.Save(ctx, docs))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "updated content", loaded[0].Content)
}

func TestStore_Load_SkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testDocs()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zzz_corrupt.json"), []byte("{not json"), 0o644))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestStore_Load_Empty(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_Watch(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	docs, errs, err := store.Watch(ctx)
	require.NoError(t, err)

	want := testDocs()[0]
	data, err := json.Marshal(want)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000_new.json"), data, 0o644))

	select {
	case got := <-docs:
		assert.Equal(t, want.URL, got.URL)
		assert.Equal(t, want.Content, got.Content)
	case err := <-errs:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	// Cancellation closes both channels.
	cancel()
	select {
	case _, ok := <-docs:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestStore_Watch_IgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	docs, _, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case got := <-docs:
		t.Fatalf("unexpected document: %+v", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFilenameFor(t *testing.T) {
	got := filenameFor("https://api.nasa.gov/#apod")
	assert.Equal(t, "api.nasa.gov__apod", got)
	assert.NotContains(t, got, "/")
	assert.NotContains(t, got, "#")

	long := filenameFor("https://api.nasa.gov/" + string(make([]byte, 300)))
	assert.LessOrEqual(t, len(long), maxFilenameLen)
}
