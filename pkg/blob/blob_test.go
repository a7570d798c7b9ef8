package blob_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/pkg/blob"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

func read(t *testing.T, s blob.Store, key string) string {
	t.Helper()

	r, err := s.Open(context.Background(), key)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(b)
}

func TestFS_PutOpen(t *testing.T) {
	ctx := context.Background()
	s, err := blob.NewFS(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	n, err := s.Put(ctx, "fills/1/input/TBMT.pdf", strings.NewReader("%PDF-1.7"))
	require.NoError(t, err)
	require.EqualValues(t, 8, n)
	require.Equal(t, "%PDF-1.7", read(t, s, "fills/1/input/TBMT.pdf"))

	// overwrite
	_, err = s.Put(ctx, "fills/1/input/TBMT.pdf", bytes.NewReader([]byte("new")))
	require.NoError(t, err)
	require.Equal(t, "new", read(t, s, "fills/1/input/TBMT.pdf"))

	_, err = s.Open(ctx, "fills/1/input/BMMT.pdf")
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestFS_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	s, err := blob.NewFS(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "/", "../escape", "fills/../../x", "fills//x"} {
		_, err := s.Put(ctx, key, strings.NewReader("x"))
		require.ErrorIs(t, err, serrors.ErrBadRequest, key)
	}
}

func TestFS_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	s, err := blob.NewFS(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"fills/1/input/a.pdf", "fills/1/output/b.docx", "fills/2/input/a.pdf"} {
		_, err := s.Put(ctx, key, strings.NewReader(key))
		require.NoError(t, err)
	}

	require.NoError(t, s.DeletePrefix(ctx, "fills/1"))
	_, err = s.Open(ctx, "fills/1/output/b.docx")
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.Equal(t, "fills/2/input/a.pdf", read(t, s, "fills/2/input/a.pdf"))

	// deleting a missing prefix is not an error
	require.NoError(t, s.DeletePrefix(ctx, "fills/3"))
}

func TestCopyTo(t *testing.T) {
	ctx := context.Background()
	s, err := blob.NewFS(t.TempDir())
	require.NoError(t, err)
	_, err = s.Put(ctx, "k/v", strings.NewReader("content"))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, blob.CopyTo(ctx, s, "k/v", dst))
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "content", string(b))

	require.ErrorIs(t, blob.CopyTo(ctx, s, "k/missing", dst), serrors.ErrNotFound)
}
