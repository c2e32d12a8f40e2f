package bridge

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFoldersFlattensDepthFirst(t *testing.T) {
	leaf := newFakeFolder("Receipts")
	child := newFakeFolder("Archive")
	child.subs = []*fakeFolder{leaf}
	root := newFakeFolder("Inbox")
	root.subs = []*fakeFolder{child, newFakeFolder("Newsletters")}
	root.items.entries = []*fakeItem{newFakeItem("m1"), newFakeItem("m2")}

	acc := newFakeAccessor()
	acc.addFolder(root)
	b := New(acc, zerolog.Nop())

	got, err := b.ListFolders("")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Inbox", got[0].Name)
	assert.Equal(t, 0, got[0].Depth)
	assert.Equal(t, 2, got[0].ItemCount)
	assert.Empty(t, got[0].ParentName)

	assert.Equal(t, "Archive", got[1].Name)
	assert.Equal(t, 1, got[1].Depth)
	assert.Equal(t, "Inbox", got[1].ParentName)

	assert.Equal(t, "Receipts", got[2].Name)
	assert.Equal(t, 2, got[2].Depth)
	assert.Equal(t, "Archive", got[2].ParentName)

	assert.Equal(t, "Newsletters", got[3].Name)
	assert.Equal(t, 1, got[3].Depth)
}
