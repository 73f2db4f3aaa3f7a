package formdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("note-%02d.txt", i))
		require.NoError(t, os.WriteFile(paths[i], []byte(fmt.Sprintf("note %d", i)), 0o600))
	}
	return paths
}

func TestLoadFiles_KeepsOrder(t *testing.T) {
	paths := writeFixtures(t, 12)

	files, err := LoadFiles(context.Background(), paths, WithLoadRunner(NewLimitedRunner(context.Background(), 3)))
	require.NoError(t, err)
	require.Len(t, files, len(paths))

	for i, f := range files {
		assert.Equal(t, filepath.Base(paths[i]), f.Filename())
		assert.Equal(t, fmt.Sprintf("note %d", i), string(f.Data()))
		assert.Equal(t, "text/plain", f.MimeType())
	}
}

func TestLoadFiles_Progress(t *testing.T) {
	paths := writeFixtures(t, 4)

	var mu sync.Mutex
	var seen []int
	_, err := LoadFiles(context.Background(), paths, WithLoadProgress(func(loaded, total int, path string) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 4, total)
		assert.NotEmpty(t, path)
		seen = append(seen, loaded)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
}

func TestLoadFiles_MissingFile(t *testing.T) {
	paths := append(writeFixtures(t, 2), filepath.Join(t.TempDir(), "missing.bin"))

	files, err := LoadFiles(context.Background(), paths)
	assert.Nil(t, files)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.bin")
}

func TestLoadFiles_CancelledContext(t *testing.T) {
	paths := writeFixtures(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadFiles(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFiles_CancelledContextWithCustomRunner(t *testing.T) {
	paths := writeFixtures(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files, err := LoadFiles(ctx, paths, WithLoadRunner(NewLimitedRunner(context.Background(), 2)))
	assert.Nil(t, files)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFiles_FeedsBuilder(t *testing.T) {
	paths := writeFixtures(t, 2)
	files, err := LoadFiles(context.Background(), paths)
	require.NoError(t, err)

	body, err := NewForTesting().Build(nil, NewFiles().AddMany("notes", files...))
	require.NoError(t, err)
	parts := readBody(t, body.Boundary, body.Data)
	require.Len(t, parts, 2)
	assert.Equal(t, "notes[0]", parts[0].name)
	assert.Equal(t, "note-00.txt", parts[0].filename)
}
