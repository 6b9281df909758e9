package lockfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "suite_main.lock")
}

func TestAcquireRelease(t *testing.T) {
	path := lockPath(t)

	lock, err := Acquire(context.Background(), path)
	require.NoError(t, err)

	// The lock file exists while held...
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	require.NoError(t, lock.Release())

	// ...and stays on disk after release. Its presence is benign.
	_, statErr = os.Stat(path)
	assert.NoError(t, statErr)

	// A leftover file never blocks the next acquisition.
	again, err := Acquire(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestReleaseIsIdempotent(t *testing.T) {
	lock, err := Acquire(context.Background(), lockPath(t))
	require.NoError(t, err)
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
}

func TestContention(t *testing.T) {
	path := lockPath(t)

	held, err := Acquire(context.Background(), path)
	require.NoError(t, err)

	acquired := make(chan *Lock)
	go func() {
		l, err := Acquire(context.Background(), path)
		if err != nil {
			t.Error(err)
		}
		acquired <- l
	}()

	// The second acquirer must block while the first holds the lock.
	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while lock was held")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, held.Release())

	select {
	case l := <-acquired:
		require.NoError(t, l.Release())
	case <-time.After(2 * time.Second):
		t.Fatal("second acquire did not proceed after release")
	}
}

func TestAcquireHonorsContext(t *testing.T) {
	path := lockPath(t)

	held, err := Acquire(context.Background(), path)
	require.NoError(t, err)
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = Acquire(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoop(t *testing.T) {
	lock := Noop()
	assert.Empty(t, lock.Path())
	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
}

func TestDifferentPathsDoNotContend(t *testing.T) {
	dir := t.TempDir()

	a, err := Acquire(context.Background(), filepath.Join(dir, "a.lock"))
	require.NoError(t, err)
	defer a.Release()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	b, err := Acquire(ctx, filepath.Join(dir, "b.lock"))
	require.NoError(t, err)
	require.NoError(t, b.Release())
}
