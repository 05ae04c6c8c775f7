package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDebounce = 30 * time.Millisecond

func receive(t *testing.T, ch <-chan struct{}, within time.Duration) bool {
	t.Helper()
	select {
	case _, ok := <-ch:
		return ok
	case <-time.After(within):
		return false
	}
}

func TestFile_NotifiesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "storage.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := File(ctx, path, testDebounce)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	assert.True(t, receive(t, ch, 2*time.Second), "expected a change notification")

	cancel()
	for range ch {
	}
}

func TestFile_DebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.db")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := File(ctx, path, testDebounce)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0644))
	}
	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0644))

	require.True(t, receive(t, ch, 2*time.Second))
	assert.False(t, receive(t, ch, 5*testDebounce), "burst should produce one notification")

	cancel()
	for range ch {
	}
}

func TestFile_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "storage.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := File(ctx, path, testDebounce)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{}"), 0644))
	assert.False(t, receive(t, ch, 5*testDebounce))

	cancel()
	for range ch {
	}
}

func TestFile_ClosesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := File(ctx, filepath.Join(t.TempDir(), "nested", "storage.json"), 0)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, matches("notes.db", "notes.db"))
	assert.True(t, matches("notes.db-wal", "notes.db"))
	assert.True(t, matches("notes.db-journal", "notes.db"))
	assert.False(t, matches("notes.db.bak", "notes.db"))
	assert.False(t, matches(".notepane-tmp-123", "storage.json"))
}
