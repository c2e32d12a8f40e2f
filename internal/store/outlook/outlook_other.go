//go:build !windows

package outlook

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// ErrUnsupported reports that the desktop store only exists on Windows.
var ErrUnsupported = errors.New("outlook: desktop store requires windows")

// NewApartment returns no-op thread hooks on platforms without the store.
func NewApartment() *store.Apartment {
	return &store.Apartment{}
}

// Connector is a placeholder on platforms without the desktop store; every
// call fails with ErrUnsupported.
type Connector struct{}

// NewConnector creates the placeholder connector.
func NewConnector(_ zerolog.Logger) *Connector {
	return &Connector{}
}

// Close is a no-op.
func (c *Connector) Close() {}

func (c *Connector) FolderByName(string) (store.Folder, error)      { return nil, ErrUnsupported }
func (c *Connector) ItemByID(string) (store.Item, error)            { return nil, ErrUnsupported }
func (c *Connector) CreateItem(store.ItemClass) (store.Item, error) { return nil, ErrUnsupported }
func (c *Connector) CurrentUserAddress() (string, error)            { return "", ErrUnsupported }
