package mountfs

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"bazil.org/fuse"
	"github.com/dendrascience/matryoshka/nest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *nest.Node {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &nest.Node{
		Name: "root", Dir: true, Modified: when,
		Children: []*nest.Node{
			{Name: "a.txt", Mode: 0o644, Modified: when, Data: []byte("alpha")},
			{Name: "sub", Dir: true, Modified: when, Children: []*nest.Node{
				{Name: "c.txt", Mode: 0o600, Modified: when, Data: []byte("charlie")},
			}},
		},
	}
}

func TestRootAttr(t *testing.T) {
	f := New(sampleTree())
	root, err := f.Root()
	require.NoError(t, err)

	var a fuse.Attr
	require.NoError(t, root.Attr(context.Background(), &a))
	assert.Equal(t, uint64(1), a.Inode)
	assert.True(t, a.Mode.IsDir())
	assert.Equal(t, os.FileMode(0o555), a.Mode.Perm())
}

func TestReadDirAll(t *testing.T) {
	f := New(sampleTree())
	root, _ := f.Root()

	dirents, err := root.(*Dir).ReadDirAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []fuse.Dirent{
		{Inode: 2, Name: "a.txt", Type: fuse.DT_File},
		{Inode: 3, Name: "sub", Type: fuse.DT_Dir},
	}, dirents)
}

func TestLookupAndRead(t *testing.T) {
	f := New(sampleTree())
	root, _ := f.Root()
	ctx := context.Background()

	sub, err := root.(*Dir).Lookup(ctx, "sub")
	require.NoError(t, err)
	require.IsType(t, &Dir{}, sub)

	c, err := sub.(*Dir).Lookup(ctx, "c.txt")
	require.NoError(t, err)
	file, ok := c.(*File)
	require.True(t, ok)

	var a fuse.Attr
	require.NoError(t, file.Attr(ctx, &a))
	assert.Equal(t, uint64(4), a.Inode)
	assert.Equal(t, uint64(7), a.Size)
	assert.Equal(t, os.FileMode(0o400), a.Mode, "write bits masked")

	data, err := file.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "charlie", string(data))

	_, err = root.(*Dir).Lookup(ctx, "missing")
	assert.ErrorIs(t, err, syscall.ENOENT)
}
