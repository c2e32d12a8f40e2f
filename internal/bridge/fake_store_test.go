package bridge

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Fakes for the store contract. Data-driven: tests assemble folders, items
// and table rows, and inspect the recorded call order afterwards.

type fakeAccessor struct {
	folders map[string]*fakeFolder
	items   map[string]*fakeItem

	folderErr error
	created   []*fakeItem

	userAddr string
	userErr  error
}

func newFakeAccessor() *fakeAccessor {
	return &fakeAccessor{
		folders:  map[string]*fakeFolder{},
		items:    map[string]*fakeItem{},
		userAddr: "me@example.com",
	}
}

func (a *fakeAccessor) addFolder(f *fakeFolder) *fakeFolder {
	a.folders[strings.ToLower(f.name)] = f
	return f
}

func (a *fakeAccessor) addItem(it *fakeItem) *fakeItem {
	a.items[it.id] = it
	return it
}

func (a *fakeAccessor) FolderByName(name string) (store.Folder, error) {
	if a.folderErr != nil {
		return nil, a.folderErr
	}
	f, ok := a.folders[strings.ToLower(name)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return f, nil
}

func (a *fakeAccessor) ItemByID(id string) (store.Item, error) {
	it, ok := a.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return it, nil
}

func (a *fakeAccessor) CreateItem(class store.ItemClass) (store.Item, error) {
	it := newFakeItem(fmt.Sprintf("created-%d-%d", class, len(a.created)))
	a.created = append(a.created, it)
	return it, nil
}

func (a *fakeAccessor) CurrentUserAddress() (string, error) {
	if a.userErr != nil {
		return "", a.userErr
	}
	return a.userAddr, nil
}

type fakeFolder struct {
	name string
	path string
	subs []*fakeFolder

	items    *fakeItems
	itemsErr error

	table     *fakeTable
	tableErr  error
	gotFilter string
	gotCols   []string

	added []*fakeItem
}

func newFakeFolder(name string) *fakeFolder {
	return &fakeFolder{name: name, path: "\\\\Store\\" + name, items: &fakeItems{}}
}

func (f *fakeFolder) ID() string   { return "folder-" + f.name }
func (f *fakeFolder) Name() string { return f.name }
func (f *fakeFolder) Path() string { return f.path }

func (f *fakeFolder) ItemCount() (int, error) {
	if f.itemsErr != nil {
		return 0, f.itemsErr
	}
	return len(f.items.entries), nil
}

func (f *fakeFolder) Subfolders() ([]store.Folder, error) {
	out := make([]store.Folder, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeFolder) Items() (store.Items, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items, nil
}

func (f *fakeFolder) Table(filter string, columns []string) (store.Table, error) {
	f.gotFilter = filter
	f.gotCols = columns
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	if f.table == nil {
		f.table = &fakeTable{}
	}
	return f.table, nil
}

func (f *fakeFolder) AddItem() (store.Item, error) {
	it := newFakeItem(fmt.Sprintf("%s-added-%d", f.name, len(f.added)))
	f.added = append(f.added, it)
	return it, nil
}

type fakeItems struct {
	entries []*fakeItem

	// ops records collection calls in order, shared with derived
	// collections so restriction chains stay observable.
	ops *[]string

	restrictFn func(filter string) *fakeItems

	sortErr     error
	restrictErr error
	recurErr    error
	countErr    error

	// cursorErr makes every Next fail without advancing, and nextCalls
	// counts Next calls across derived collections.
	cursorErr error
	nextCalls *int
}

func (it *fakeItems) record(op string) {
	if it.ops != nil {
		*it.ops = append(*it.ops, op)
	}
}

func (it *fakeItems) Restrict(filter string) (store.Items, error) {
	it.record("restrict:" + filter)
	if it.restrictErr != nil {
		return nil, it.restrictErr
	}
	if it.restrictFn != nil {
		derived := it.restrictFn(filter)
		derived.ops = it.ops
		return derived, nil
	}
	return &fakeItems{
		entries:   it.entries,
		ops:       it.ops,
		cursorErr: it.cursorErr,
		nextCalls: it.nextCalls,
	}, nil
}

func (it *fakeItems) Sort(field string, descending bool) error {
	it.record(fmt.Sprintf("sort:%s:%t", field, descending))
	return it.sortErr
}

func (it *fakeItems) SetIncludeRecurrences(v bool) error {
	it.record(fmt.Sprintf("recurrences:%t", v))
	return it.recurErr
}

func (it *fakeItems) Count() (int, error) {
	if it.countErr != nil {
		return 0, it.countErr
	}
	return len(it.entries), nil
}

func (it *fakeItems) Cursor() store.Cursor {
	it.record("cursor")
	return &fakeCursor{entries: it.entries, stuck: it.cursorErr, calls: it.nextCalls}
}

type fakeCursor struct {
	entries []*fakeItem
	pos     int

	stuck error
	calls *int
}

func (c *fakeCursor) Next() (store.Item, error) {
	if c.calls != nil {
		*c.calls++
	}
	if c.stuck != nil {
		return nil, c.stuck
	}
	if c.pos >= len(c.entries) {
		return nil, nil
	}
	entry := c.entries[c.pos]
	c.pos++
	if entry.faulty {
		return nil, errors.New("unreadable item")
	}
	return entry, nil
}

type fakeTable struct {
	rows []*fakeRow
	pos  int

	sortColumn string
	sortDesc   bool
	sortErr    error

	batchSizes []int
	batchErr   error
}

func (t *fakeTable) Sort(column string, descending bool) error {
	t.sortColumn = column
	t.sortDesc = descending
	return t.sortErr
}

func (t *fakeTable) NextBatch(max int) ([]store.Row, error) {
	t.batchSizes = append(t.batchSizes, max)
	if t.batchErr != nil {
		return nil, t.batchErr
	}
	out := []store.Row{}
	for len(out) < max && t.pos < len(t.rows) {
		out = append(out, t.rows[t.pos])
		t.pos++
	}
	return out, nil
}

type fakeRow struct {
	values  map[string]any
	badCols map[string]bool
}

func (r *fakeRow) get(column string) (any, error) {
	if r.badCols[column] {
		return nil, fmt.Errorf("column %q unreadable", column)
	}
	v, ok := r.values[column]
	if !ok {
		return nil, fmt.Errorf("column %q missing", column)
	}
	return v, nil
}

func (r *fakeRow) Bytes(column string) ([]byte, error) {
	v, err := r.get(column)
	if err != nil {
		return nil, err
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, fmt.Errorf("column %q not bytes", column)
}

func (r *fakeRow) String(column string) (string, error) {
	v, err := r.get(column)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("column %q not string", column)
	}
	return s, nil
}

func (r *fakeRow) Bool(column string) (bool, error) {
	v, err := r.get(column)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("column %q not bool", column)
	}
	return b, nil
}

func (r *fakeRow) Time(column string) (time.Time, error) {
	v, err := r.get(column)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("column %q not time", column)
	}
	return t, nil
}

type fakeItem struct {
	id     string
	idErr  error
	faulty bool

	fields map[string]any
	props  map[string]string

	mime      string
	exportErr error

	sets    map[string]any
	saved   bool
	sent    bool
	deleted bool
	movedTo store.Folder

	replyItem   *fakeItem
	forwardItem *fakeItem
	respondItem *fakeItem
	respondCode int

	attachments []*fakeAttachment
	attached    []string
}

func newFakeItem(id string) *fakeItem {
	return &fakeItem{
		id:     id,
		fields: map[string]any{},
		props:  map[string]string{},
		sets:   map[string]any{},
	}
}

func (i *fakeItem) ID() (string, error) {
	if i.idErr != nil {
		return "", i.idErr
	}
	return i.id, nil
}

func (i *fakeItem) field(name string) (any, error) {
	v, ok := i.fields[name]
	if !ok {
		return nil, fmt.Errorf("field %q missing", name)
	}
	return v, nil
}

func (i *fakeItem) String(name string) (string, error) {
	v, err := i.field(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q not string", name)
	}
	return s, nil
}

func (i *fakeItem) Bool(name string) (bool, error) {
	v, err := i.field(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q not bool", name)
	}
	return b, nil
}

func (i *fakeItem) Int(name string) (int, error) {
	v, err := i.field(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %q not int", name)
	}
	return n, nil
}

func (i *fakeItem) Time(name string) (time.Time, error) {
	v, err := i.field(name)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q not time", name)
	}
	return t, nil
}

func (i *fakeItem) Property(tag string) (string, error) {
	v, ok := i.props[tag]
	if !ok {
		return "", fmt.Errorf("property %q missing", tag)
	}
	return v, nil
}

func (i *fakeItem) Set(name string, value any) error {
	i.sets[name] = value
	i.fields[name] = value
	return nil
}

func (i *fakeItem) Save() error   { i.saved = true; return nil }
func (i *fakeItem) Send() error   { i.sent = true; return nil }
func (i *fakeItem) Delete() error { i.deleted = true; return nil }

func (i *fakeItem) Move(target store.Folder) error {
	i.movedTo = target
	return nil
}

func (i *fakeItem) Reply(all bool) (store.Item, error) {
	if i.replyItem == nil {
		i.replyItem = newFakeItem(i.id + "-reply")
	}
	i.replyItem.fields["_all"] = all
	return i.replyItem, nil
}

func (i *fakeItem) Forward() (store.Item, error) {
	if i.forwardItem == nil {
		i.forwardItem = newFakeItem(i.id + "-fwd")
	}
	return i.forwardItem, nil
}

func (i *fakeItem) Respond(code int) (store.Item, error) {
	i.respondCode = code
	if i.respondItem == nil {
		i.respondItem = newFakeItem(i.id + "-resp")
	}
	return i.respondItem, nil
}

func (i *fakeItem) Attachments() ([]store.Attachment, error) {
	out := make([]store.Attachment, 0, len(i.attachments))
	for _, a := range i.attachments {
		out = append(out, a)
	}
	return out, nil
}

func (i *fakeItem) AttachFile(path string) error {
	i.attached = append(i.attached, path)
	return nil
}

func (i *fakeItem) ExportMIME(path string) error {
	if i.exportErr != nil {
		return i.exportErr
	}
	return os.WriteFile(path, []byte(i.mime), 0600)
}

type fakeAttachment struct {
	name      string
	size      int64
	contentID string

	saveErr error
	savedTo string
}

func (a *fakeAttachment) FileName() (string, error)  { return a.name, nil }
func (a *fakeAttachment) Size() (int64, error)       { return a.size, nil }
func (a *fakeAttachment) ContentID() (string, error) { return a.contentID, nil }

func (a *fakeAttachment) SaveTo(path string) error {
	if a.saveErr != nil {
		return a.saveErr
	}
	a.savedTo = path
	return nil
}
