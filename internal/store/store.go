// Package store defines the contract to the external mail/calendar/task
// store. Implementations wrap a desktop automation interface whose field
// reads can fail independently and non-deterministically; callers are
// expected to treat every accessor call as fallible.
package store

import (
	"errors"
	"time"
)

// ErrNotFound reports that an identity does not resolve in the store. It is
// the only store error callers are expected to branch on.
var ErrNotFound = errors.New("store: item not found")

// Well-known folders resolvable without knowing the account layout.
const (
	FolderInbox     = "Inbox"
	FolderCalendar  = "Calendar"
	FolderTasks     = "Tasks"
	FolderDrafts    = "Drafts"
	FolderSentItems = "Sent Items"
)

// ItemClass selects the kind of item created by CreateItem.
type ItemClass int

const (
	ClassMail        ItemClass = 0
	ClassAppointment ItemClass = 1
	ClassTask        ItemClass = 3
)

// Accessor is the connection to the store. A single Accessor is shared
// across worker threads; implementations with thread-affinity requirements
// document them and are driven through an Apartment pool.
type Accessor interface {
	// FolderByName resolves a folder by its display name, case-insensitively,
	// searching the default account root first. Returns ErrNotFound when no
	// folder matches.
	FolderByName(name string) (Folder, error)

	// ItemByID resolves any item by its opaque identity. Returns ErrNotFound
	// when the identity does not resolve.
	ItemByID(id string) (Item, error)

	// CreateItem creates a detached item of the given class.
	CreateItem(class ItemClass) (Item, error)

	// CurrentUserAddress returns the signed-in user's address.
	CurrentUserAddress() (string, error)
}

// Folder is one folder in the store hierarchy.
type Folder interface {
	ID() string
	Name() string
	Path() string
	ItemCount() (int, error)
	Subfolders() ([]Folder, error)

	// Items returns the folder's live item collection.
	Items() (Items, error)

	// Table opens a column-projected read-only view over the folder,
	// restricted by filter when non-empty. Only the named columns are
	// materialized per row.
	Table(filter string, columns []string) (Table, error)

	// AddItem creates a new item stored in this folder.
	AddItem() (Item, error)
}

// Items is a restrictable, sortable item collection.
type Items interface {
	// Restrict returns a new collection filtered by the store's filter
	// expression syntax. The receiver is unchanged.
	Restrict(filter string) (Items, error)

	// Sort orders the collection by the given field.
	Sort(field string, descending bool) error

	// SetIncludeRecurrences toggles recurrence expansion. Iteration order is
	// only well-defined with expansion enabled when sorted ascending by
	// start time.
	SetIncludeRecurrences(v bool) error

	Count() (int, error)

	// Cursor starts iteration. Next returns (nil, nil) when exhausted; a
	// non-nil error reports a faulty item that the caller may skip.
	Cursor() Cursor
}

// Cursor iterates an item collection.
type Cursor interface {
	Next() (Item, error)
}

// Table is a column-projected batch reader.
type Table interface {
	// Sort orders the table by the given column before reading.
	Sort(column string, descending bool) error

	// NextBatch returns up to max rows in one store round-trip. An empty
	// slice signals exhaustion.
	NextBatch(max int) ([]Row, error)
}

// Row is one projected table row. Column reads may fail independently.
type Row interface {
	// Bytes returns the raw column value. Identity columns may carry binary
	// encodings that are not valid text.
	Bytes(column string) ([]byte, error)
	String(column string) (string, error)
	Bool(column string) (bool, error)
	Time(column string) (time.Time, error)
}

// Item is a single store item. Field access is dynamic: a field may be
// missing or unreadable depending on the item's class and the store's mood.
type Item interface {
	ID() (string, error)

	String(field string) (string, error)
	Bool(field string) (bool, error)
	Int(field string) (int, error)
	Time(field string) (time.Time, error)

	// Property reads an extended property (e.g. an internet header) by its
	// schema tag.
	Property(tag string) (string, error)

	Set(field string, value any) error
	Save() error
	Send() error
	Delete() error
	Move(target Folder) error

	Reply(all bool) (Item, error)
	Forward() (Item, error)

	// Respond answers a meeting invitation with the given response code and
	// returns the response item to send.
	Respond(code int) (Item, error)

	Attachments() ([]Attachment, error)
	AttachFile(path string) error

	// ExportMIME writes the item as an RFC 5322 message to path. The caller
	// owns and removes the file.
	ExportMIME(path string) error
}

// Attachment is attachment metadata; payloads are never loaded eagerly.
type Attachment interface {
	FileName() (string, error)
	Size() (int64, error)
	ContentID() (string, error)
	SaveTo(path string) error
}
