//go:build windows

// Package outlook implements the store contract on top of the desktop
// Outlook automation interface. All COM objects live in a single-threaded
// apartment: the connector must only ever be driven from one pinned worker
// (store.NewPool with size 1).
package outlook

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/rs/zerolog"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Default folder identifiers of the automation interface.
const (
	folderSentMail = 5
	folderInbox    = 6
	folderCalendar = 9
	folderDrafts   = 16
	folderTasks    = 13
)

const propTransportHeaders = "http://schemas.microsoft.com/mapi/proptag/0x007D001E"
const propAttachmentContentID = "http://schemas.microsoft.com/mapi/proptag/0x3712001F"

var defaultFolders = map[string]int{
	strings.ToLower(store.FolderInbox):     folderInbox,
	strings.ToLower(store.FolderCalendar):  folderCalendar,
	strings.ToLower(store.FolderTasks):     folderTasks,
	strings.ToLower(store.FolderDrafts):    folderDrafts,
	strings.ToLower(store.FolderSentItems): folderSentMail,
}

// NewApartment returns the per-thread COM initialization hooks.
func NewApartment() *store.Apartment {
	return &store.Apartment{
		Init: func() error {
			if err := ole.CoInitialize(0); err != nil {
				return fmt.Errorf("CoInitialize failed: %w", err)
			}
			return nil
		},
		Teardown: ole.CoUninitialize,
	}
}

// Connector is a lazy connection to the running Outlook instance. Not safe
// for concurrent use.
type Connector struct {
	log zerolog.Logger

	app *ole.IDispatch
	ns  *ole.IDispatch
}

// NewConnector creates an unconnected connector. The connection is
// established on first use, attaching to a running Outlook instance or
// starting one.
func NewConnector(log zerolog.Logger) *Connector {
	return &Connector{log: log}
}

func (c *Connector) ensure() (*ole.IDispatch, error) {
	if c.ns != nil {
		return c.ns, nil
	}

	unknown, err := oleutil.GetActiveObject("Outlook.Application")
	if err != nil {
		c.log.Debug().Err(err).Msg("no running instance, starting one")
		unknown, err = oleutil.CreateObject("Outlook.Application")
		if err != nil {
			return nil, fmt.Errorf("application dispatch failed: %w", err)
		}
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("IDispatch query failed: %w", err)
	}

	nsVar, err := oleutil.CallMethod(app, "GetNamespace", "MAPI")
	if err != nil {
		app.Release()
		return nil, fmt.Errorf("GetNamespace failed: %w", err)
	}

	c.app = app
	c.ns = nsVar.ToIDispatch()
	return c.ns, nil
}

// Close releases the automation objects. The pool teardown calls this on
// the pinned thread.
func (c *Connector) Close() {
	if c.ns != nil {
		c.ns.Release()
		c.ns = nil
	}
	if c.app != nil {
		c.app.Release()
		c.app = nil
	}
}

// FolderByName resolves well-known names through the default-folder table
// and anything else by walking the account hierarchy case-insensitively.
func (c *Connector) FolderByName(name string) (store.Folder, error) {
	ns, err := c.ensure()
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = store.FolderInbox
	}
	if id, ok := defaultFolders[strings.ToLower(name)]; ok {
		v, err := oleutil.CallMethod(ns, "GetDefaultFolder", id)
		if err != nil {
			return nil, fmt.Errorf("GetDefaultFolder %d failed: %w", id, err)
		}
		return &dispFolder{disp: v.ToIDispatch()}, nil
	}

	rootsVar, err := oleutil.GetProperty(ns, "Folders")
	if err != nil {
		return nil, fmt.Errorf("Folders read failed: %w", err)
	}
	found := searchFolders(rootsVar.ToIDispatch(), name, 4)
	if found == nil {
		return nil, store.ErrNotFound
	}
	return found, nil
}

func searchFolders(folders *ole.IDispatch, name string, depth int) *dispFolder {
	if depth < 0 {
		return nil
	}
	count, err := variantInt(oleutil.GetProperty(folders, "Count"))
	if err != nil {
		return nil
	}
	for i := 1; i <= count; i++ {
		v, err := oleutil.CallMethod(folders, "Item", i)
		if err != nil {
			continue
		}
		f := v.ToIDispatch()
		fname, err := variantString(oleutil.GetProperty(f, "Name"))
		if err == nil && strings.EqualFold(fname, name) {
			return &dispFolder{disp: f}
		}
		if subVar, err := oleutil.GetProperty(f, "Folders"); err == nil {
			if found := searchFolders(subVar.ToIDispatch(), name, depth-1); found != nil {
				return found
			}
		}
	}
	return nil
}

// ItemByID resolves an item by entry ID. An unresolvable identity maps to
// store.ErrNotFound.
func (c *Connector) ItemByID(id string) (store.Item, error) {
	ns, err := c.ensure()
	if err != nil {
		return nil, err
	}
	v, err := oleutil.CallMethod(ns, "GetItemFromID", id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

// CreateItem creates a detached item of the given class.
func (c *Connector) CreateItem(class store.ItemClass) (store.Item, error) {
	if _, err := c.ensure(); err != nil {
		return nil, err
	}
	v, err := oleutil.CallMethod(c.app, "CreateItem", int(class))
	if err != nil {
		return nil, fmt.Errorf("CreateItem %d failed: %w", class, err)
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

// CurrentUserAddress returns the signed-in user's address.
func (c *Connector) CurrentUserAddress() (string, error) {
	ns, err := c.ensure()
	if err != nil {
		return "", err
	}
	userVar, err := oleutil.GetProperty(ns, "CurrentUser")
	if err != nil {
		return "", fmt.Errorf("CurrentUser read failed: %w", err)
	}
	return variantString(oleutil.GetProperty(userVar.ToIDispatch(), "Address"))
}

type dispFolder struct {
	disp *ole.IDispatch
}

func (f *dispFolder) ID() string {
	id, _ := variantString(oleutil.GetProperty(f.disp, "EntryID"))
	return id
}

func (f *dispFolder) Name() string {
	name, _ := variantString(oleutil.GetProperty(f.disp, "Name"))
	return name
}

func (f *dispFolder) Path() string {
	path, _ := variantString(oleutil.GetProperty(f.disp, "FolderPath"))
	return path
}

func (f *dispFolder) ItemCount() (int, error) {
	itemsVar, err := oleutil.GetProperty(f.disp, "Items")
	if err != nil {
		return 0, fmt.Errorf("Items read failed: %w", err)
	}
	return variantInt(oleutil.GetProperty(itemsVar.ToIDispatch(), "Count"))
}

func (f *dispFolder) Subfolders() ([]store.Folder, error) {
	foldersVar, err := oleutil.GetProperty(f.disp, "Folders")
	if err != nil {
		return nil, fmt.Errorf("Folders read failed: %w", err)
	}
	folders := foldersVar.ToIDispatch()
	count, err := variantInt(oleutil.GetProperty(folders, "Count"))
	if err != nil {
		return nil, fmt.Errorf("Count read failed: %w", err)
	}

	subs := make([]store.Folder, 0, count)
	for i := 1; i <= count; i++ {
		v, err := oleutil.CallMethod(folders, "Item", i)
		if err != nil {
			continue
		}
		subs = append(subs, &dispFolder{disp: v.ToIDispatch()})
	}
	return subs, nil
}

func (f *dispFolder) Items() (store.Items, error) {
	itemsVar, err := oleutil.GetProperty(f.disp, "Items")
	if err != nil {
		return nil, fmt.Errorf("Items read failed: %w", err)
	}
	return &dispItems{disp: itemsVar.ToIDispatch()}, nil
}

func (f *dispFolder) Table(filter string, columns []string) (store.Table, error) {
	var tableVar *ole.VARIANT
	var err error
	if filter == "" {
		tableVar, err = oleutil.CallMethod(f.disp, "GetTable")
	} else {
		tableVar, err = oleutil.CallMethod(f.disp, "GetTable", filter)
	}
	if err != nil {
		return nil, fmt.Errorf("GetTable failed: %w", err)
	}
	table := tableVar.ToIDispatch()

	colsVar, err := oleutil.GetProperty(table, "Columns")
	if err != nil {
		return nil, fmt.Errorf("Columns read failed: %w", err)
	}
	cols := colsVar.ToIDispatch()
	if _, err := oleutil.CallMethod(cols, "RemoveAll"); err != nil {
		return nil, fmt.Errorf("column reset failed: %w", err)
	}
	for _, name := range columns {
		if _, err := oleutil.CallMethod(cols, "Add", name); err != nil {
			return nil, fmt.Errorf("column %q projection failed: %w", name, err)
		}
	}

	return &dispTable{disp: table}, nil
}

func (f *dispFolder) AddItem() (store.Item, error) {
	itemsVar, err := oleutil.GetProperty(f.disp, "Items")
	if err != nil {
		return nil, fmt.Errorf("Items read failed: %w", err)
	}
	v, err := oleutil.CallMethod(itemsVar.ToIDispatch(), "Add")
	if err != nil {
		return nil, fmt.Errorf("Add failed: %w", err)
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

type dispItems struct {
	disp *ole.IDispatch
}

func (it *dispItems) Restrict(filter string) (store.Items, error) {
	v, err := oleutil.CallMethod(it.disp, "Restrict", filter)
	if err != nil {
		return nil, fmt.Errorf("Restrict failed: %w", err)
	}
	return &dispItems{disp: v.ToIDispatch()}, nil
}

func (it *dispItems) Sort(field string, descending bool) error {
	if _, err := oleutil.CallMethod(it.disp, "Sort", field, descending); err != nil {
		return fmt.Errorf("Sort failed: %w", err)
	}
	return nil
}

func (it *dispItems) SetIncludeRecurrences(v bool) error {
	if _, err := oleutil.PutProperty(it.disp, "IncludeRecurrences", v); err != nil {
		return fmt.Errorf("IncludeRecurrences write failed: %w", err)
	}
	return nil
}

func (it *dispItems) Count() (int, error) {
	return variantInt(oleutil.GetProperty(it.disp, "Count"))
}

func (it *dispItems) Cursor() store.Cursor {
	return &dispCursor{items: it.disp}
}

type dispCursor struct {
	items   *ole.IDispatch
	started bool
}

func (c *dispCursor) Next() (store.Item, error) {
	method := "GetNext"
	if !c.started {
		method = "GetFirst"
		c.started = true
	}
	v, err := oleutil.CallMethod(c.items, method)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	disp := v.ToIDispatch()
	if disp == nil {
		return nil, nil
	}
	return &dispItem{disp: disp}, nil
}

type dispTable struct {
	disp *ole.IDispatch
}

func (t *dispTable) Sort(column string, descending bool) error {
	if _, err := oleutil.CallMethod(t.disp, "Sort", column, descending); err != nil {
		return fmt.Errorf("Sort failed: %w", err)
	}
	return nil
}

func (t *dispTable) NextBatch(max int) ([]store.Row, error) {
	rows := make([]store.Row, 0, max)
	for len(rows) < max {
		end, err := variantBool(oleutil.GetProperty(t.disp, "EndOfTable"))
		if err != nil {
			return nil, fmt.Errorf("EndOfTable read failed: %w", err)
		}
		if end {
			break
		}
		v, err := oleutil.CallMethod(t.disp, "GetNextRow")
		if err != nil {
			return nil, fmt.Errorf("GetNextRow failed: %w", err)
		}
		rows = append(rows, &dispRow{disp: v.ToIDispatch()})
	}
	return rows, nil
}

type dispRow struct {
	disp *ole.IDispatch
}

func (r *dispRow) column(name string) (*ole.VARIANT, error) {
	v, err := oleutil.CallMethod(r.disp, "Item", name)
	if err != nil {
		return nil, fmt.Errorf("column %q read failed: %w", name, err)
	}
	return v, nil
}

func (r *dispRow) Bytes(column string) ([]byte, error) {
	v, err := r.column(column)
	if err != nil {
		return nil, err
	}
	if v.VT&ole.VT_ARRAY != 0 {
		return v.ToArray().ToByteArray(), nil
	}
	return []byte(v.ToString()), nil
}

func (r *dispRow) String(column string) (string, error) {
	return variantString(r.column(column))
}

func (r *dispRow) Bool(column string) (bool, error) {
	return variantBool(r.column(column))
}

func (r *dispRow) Time(column string) (time.Time, error) {
	return variantTime(r.column(column))
}

type dispItem struct {
	disp *ole.IDispatch
}

func (i *dispItem) ID() (string, error) {
	return variantString(oleutil.GetProperty(i.disp, "EntryID"))
}

func (i *dispItem) String(field string) (string, error) {
	return variantString(oleutil.GetProperty(i.disp, field))
}

func (i *dispItem) Bool(field string) (bool, error) {
	return variantBool(oleutil.GetProperty(i.disp, field))
}

func (i *dispItem) Int(field string) (int, error) {
	return variantInt(oleutil.GetProperty(i.disp, field))
}

func (i *dispItem) Time(field string) (time.Time, error) {
	return variantTime(oleutil.GetProperty(i.disp, field))
}

func (i *dispItem) Property(tag string) (string, error) {
	paVar, err := oleutil.GetProperty(i.disp, "PropertyAccessor")
	if err != nil {
		return "", fmt.Errorf("PropertyAccessor read failed: %w", err)
	}
	return variantString(oleutil.CallMethod(paVar.ToIDispatch(), "GetProperty", tag))
}

func (i *dispItem) Set(field string, value any) error {
	// The automation layer accepts formatted local times more reliably than
	// raw variant dates.
	if t, ok := value.(time.Time); ok {
		value = t.Format("01/02/2006 3:04 PM")
	}
	if _, err := oleutil.PutProperty(i.disp, field, value); err != nil {
		return fmt.Errorf("%s write failed: %w", field, err)
	}
	return nil
}

func (i *dispItem) Save() error {
	_, err := oleutil.CallMethod(i.disp, "Save")
	if err != nil {
		return fmt.Errorf("Save failed: %w", err)
	}
	return nil
}

func (i *dispItem) Send() error {
	_, err := oleutil.CallMethod(i.disp, "Send")
	if err != nil {
		return fmt.Errorf("Send failed: %w", err)
	}
	return nil
}

func (i *dispItem) Delete() error {
	_, err := oleutil.CallMethod(i.disp, "Delete")
	if err != nil {
		return fmt.Errorf("Delete failed: %w", err)
	}
	return nil
}

func (i *dispItem) Move(target store.Folder) error {
	df, ok := target.(*dispFolder)
	if !ok {
		return errors.New("move target is not an automation folder")
	}
	if _, err := oleutil.CallMethod(i.disp, "Move", df.disp); err != nil {
		return fmt.Errorf("Move failed: %w", err)
	}
	return nil
}

func (i *dispItem) Reply(all bool) (store.Item, error) {
	method := "Reply"
	if all {
		method = "ReplyAll"
	}
	v, err := oleutil.CallMethod(i.disp, method)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", method, err)
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

func (i *dispItem) Forward() (store.Item, error) {
	v, err := oleutil.CallMethod(i.disp, "Forward")
	if err != nil {
		return nil, fmt.Errorf("Forward failed: %w", err)
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

func (i *dispItem) Respond(code int) (store.Item, error) {
	v, err := oleutil.CallMethod(i.disp, "Respond", code, true)
	if err != nil {
		return nil, fmt.Errorf("Respond failed: %w", err)
	}
	return &dispItem{disp: v.ToIDispatch()}, nil
}

func (i *dispItem) Attachments() ([]store.Attachment, error) {
	attVar, err := oleutil.GetProperty(i.disp, "Attachments")
	if err != nil {
		return nil, fmt.Errorf("Attachments read failed: %w", err)
	}
	atts := attVar.ToIDispatch()
	count, err := variantInt(oleutil.GetProperty(atts, "Count"))
	if err != nil {
		return nil, fmt.Errorf("Count read failed: %w", err)
	}

	out := make([]store.Attachment, 0, count)
	for n := 1; n <= count; n++ {
		v, err := oleutil.CallMethod(atts, "Item", n)
		if err != nil {
			continue
		}
		out = append(out, &dispAttachment{disp: v.ToIDispatch()})
	}
	return out, nil
}

func (i *dispItem) AttachFile(path string) error {
	attVar, err := oleutil.GetProperty(i.disp, "Attachments")
	if err != nil {
		return fmt.Errorf("Attachments read failed: %w", err)
	}
	if _, err := oleutil.CallMethod(attVar.ToIDispatch(), "Add", path); err != nil {
		return fmt.Errorf("Add failed: %w", err)
	}
	return nil
}

// ExportMIME reconstructs an RFC 5322 message from the stored transport
// headers and the item body. The automation interface has no native MIME
// export.
func (i *dispItem) ExportMIME(path string) error {
	headers, err := i.Property(propTransportHeaders)
	if err != nil {
		return fmt.Errorf("transport headers unavailable: %w", err)
	}
	if strings.TrimSpace(headers) == "" {
		return errors.New("transport headers empty")
	}
	body, err := i.String("Body")
	if err != nil {
		body = ""
	}

	headers = strings.TrimRight(headers, "\r\n")
	msg := headers + "\r\n\r\n" + body
	if err := os.WriteFile(path, []byte(msg), 0600); err != nil {
		return fmt.Errorf("message write failed: %w", err)
	}
	return nil
}

type dispAttachment struct {
	disp *ole.IDispatch
}

func (a *dispAttachment) FileName() (string, error) {
	return variantString(oleutil.GetProperty(a.disp, "FileName"))
}

func (a *dispAttachment) Size() (int64, error) {
	n, err := variantInt(oleutil.GetProperty(a.disp, "Size"))
	return int64(n), err
}

func (a *dispAttachment) ContentID() (string, error) {
	paVar, err := oleutil.GetProperty(a.disp, "PropertyAccessor")
	if err != nil {
		return "", fmt.Errorf("PropertyAccessor read failed: %w", err)
	}
	return variantString(oleutil.CallMethod(paVar.ToIDispatch(), "GetProperty", propAttachmentContentID))
}

func (a *dispAttachment) SaveTo(path string) error {
	if _, err := oleutil.CallMethod(a.disp, "SaveAsFile", path); err != nil {
		return fmt.Errorf("SaveAsFile failed: %w", err)
	}
	return nil
}

func variantString(v *ole.VARIANT, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

func variantBool(v *ole.VARIANT, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	b, ok := v.Value().(bool)
	if !ok {
		return false, fmt.Errorf("not a boolean: %v", v.Value())
	}
	return b, nil
}

func variantInt(v *ole.VARIANT, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	switch n := v.Value().(type) {
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("not an integer: %v", v.Value())
}

func variantTime(v *ole.VARIANT, err error) (time.Time, error) {
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.Value().(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("not a time: %v", v.Value())
	}
	return t, nil
}
