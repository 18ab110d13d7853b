package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/fieldlog/internal/archive"
)

func TestLocalArchiveSaveAndGet(t *testing.T) {
	store, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "service_report_2024-03-01_2024-03-31.csv", "text/csv", strings.NewReader("Date,Time\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_service_report_2024-03-01_2024-03-31.csv"))

	reader, contentType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	assert.True(t, strings.HasPrefix(contentType, "text/csv"), contentType)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "Date,Time\n", string(data))
}

func TestLocalArchiveSaveStripsDirectories(t *testing.T) {
	store, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(context.Background(), "../../etc/report.csv", "text/csv", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, key, "/")
}

func TestLocalArchiveList(t *testing.T) {
	store, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, "a.csv", "text/csv", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "b.csv", "text/csv", strings.NewReader("22"))
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].Key)
	assert.Equal(t, second, entries[1].Key)
	assert.Equal(t, int64(2), entries[1].Size)
}

func TestLocalArchiveDelete(t *testing.T) {
	store, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, "a.csv", "text/csv", strings.NewReader("1"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, archive.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), archive.ErrNotFound)
}

func TestLocalArchivePathTraversal(t *testing.T) {
	store, err := NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "../../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, archive.ErrNotFound)
}
