package hostfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	testCases := []struct {
		name    string
		root    string
		rel     string
		want    string
		wantErr error
	}{
		{name: "real root", root: "", rel: EtcGroupRel, want: "/etc/group"},
		{name: "mounted root", root: "/host", rel: EtcShadowRel, want: "/host/etc/shadow"},
		{name: "leading slash", root: "/host", rel: "/etc/passwd", want: "/host/etc/passwd"},
		{name: "empty rel", root: "/host", rel: "", wantErr: ErrInvalidPath},
		{name: "escape", root: "/host", rel: "../etc/group", wantErr: ErrInvalidPath},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Path(tc.root, tc.rel)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group")
	require.NoError(t, os.WriteFile(path, []byte("staff:x:50:alice\n"), 0o600))

	b, err := ReadFile(context.Background(), path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "staff:x:50:alice\n", string(b))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope"), time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a FIFO without a writer blocks open(2) forever, the context must win
	fifo := newFIFO(t)

	_, err := ReadFile(ctx, fifo, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile_Timeout(t *testing.T) {
	fifo := newFIFO(t)

	_, err := ReadFile(context.Background(), fifo, 20*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadTimeout)
}

// newFIFO creates a FIFO without a writer, so opening it for reading blocks.
// Cleanup opens the write end once, which lets the pending read see EOF and return.
func newFIFO(t *testing.T) string {
	t.Helper()

	fifo := filepath.Join(t.TempDir(), "fifo")
	if err := mkfifo(fifo); err != nil {
		t.Skipf("mkfifo not available: %v", err)
	}

	t.Cleanup(func() {
		w, err := os.OpenFile(fifo, os.O_WRONLY, 0)
		if err != nil {
			t.Errorf("open fifo for writing: %v", err)
			return
		}

		_ = w.Close()
	})

	return fifo
}
