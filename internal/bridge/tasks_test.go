package bridge

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olbridge/outlook-mcp/internal/store"
)

func taskItem(id string, complete bool) *fakeItem {
	it := newFakeItem(id)
	it.fields["Subject"] = "Task " + id
	it.fields["Complete"] = complete
	it.fields["Status"] = taskStatusNotStarted
	if complete {
		it.fields["Status"] = taskStatusComplete
	}
	return it
}

func newTaskBridge(entries []*fakeItem) (*Bridge, *fakeFolder, *fakeAccessor) {
	folder := newFakeFolder("Tasks")
	ops := []string{}
	folder.items = &fakeItems{entries: entries, ops: &ops}

	acc := newFakeAccessor()
	acc.addFolder(folder)
	for _, e := range entries {
		acc.addItem(e)
	}
	return New(acc, zerolog.Nop()), folder, acc
}

func TestListTasksExcludesCompletedByDefault(t *testing.T) {
	open := taskItem("t-open", false)
	done := taskItem("t-done", true)

	// The fake ignores the restriction, exercising the local re-check.
	b, _, _ := newTaskBridge([]*fakeItem{open, done})

	got := b.ListTasks(false)
	require.Len(t, got, 1)
	assert.Equal(t, "t-open", got[0].ID)

	all := b.ListTasks(true)
	assert.Len(t, all, 2)
}

func TestListTasksAbortsOnStuckCursor(t *testing.T) {
	calls := 0
	folder := newFakeFolder("Tasks")
	folder.items = &fakeItems{
		entries:   []*fakeItem{taskItem("t-1", false)},
		cursorErr: assert.AnError,
		nextCalls: &calls,
	}

	acc := newFakeAccessor()
	acc.addFolder(folder)
	b := New(acc, zerolog.Nop())

	got := b.ListTasks(false)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, cursorFaultLimit, calls)
}

func TestGetTask(t *testing.T) {
	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)
	item := taskItem("t-1", false)
	item.fields["DueDate"] = due
	item.fields["Importance"] = 2
	item.fields["PercentComplete"] = 40

	b, _, _ := newTaskBridge([]*fakeItem{item})

	got, err := b.GetTask("t-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", got.DueDate)
	assert.Equal(t, 2, got.Priority)
	assert.Equal(t, 40, got.PercentComplete)

	_, err = b.GetTask("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateTaskPinsDueDateToNoon(t *testing.T) {
	b, folder, _ := newTaskBridge(nil)

	id, err := b.CreateTask("Review budget", "details", "2026-09-15", 2)
	require.NoError(t, err)

	require.Len(t, folder.added, 1)
	created := folder.added[0]
	assert.Equal(t, created.id, id)
	assert.True(t, created.saved)
	assert.Equal(t, "Review budget", created.sets["Subject"])
	assert.Equal(t, 2, created.sets["Importance"])

	due, ok := created.sets["DueDate"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 12, due.Hour())
	assert.Equal(t, time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local), due)
}

func TestCreateTaskRejectsBadDueDate(t *testing.T) {
	b, _, _ := newTaskBridge(nil)

	_, err := b.CreateTask("Review budget", "", "next tuesday", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestCompleteTask(t *testing.T) {
	item := taskItem("t-1", false)
	b, _, _ := newTaskBridge([]*fakeItem{item})

	require.NoError(t, b.CompleteTask("t-1"))
	assert.Equal(t, true, item.sets["Complete"])
	assert.Equal(t, 100, item.sets["PercentComplete"])
	assert.Equal(t, taskStatusComplete, item.sets["Status"])
	assert.True(t, item.saved)
}

func TestDeleteTask(t *testing.T) {
	item := taskItem("t-1", false)
	b, _, _ := newTaskBridge([]*fakeItem{item})

	require.NoError(t, b.DeleteTask("t-1"))
	assert.True(t, item.deleted)
}
