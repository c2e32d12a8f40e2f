package bridge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// DownloadAttachments saves every attachment of a message into dir,
// creating the directory when needed, and returns the saved paths. An
// attachment that cannot be named or saved is skipped with a warning.
// Returns store.ErrNotFound when the identity does not resolve.
func (b *Bridge) DownloadAttachments(id, dir string) ([]string, error) {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}

	atts, err := item.Attachments()
	if err != nil {
		return nil, fmt.Errorf("attachment listing failed: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("directory creation failed: %w", err)
	}

	saved := []string{}
	for _, att := range atts {
		name, err := att.FileName()
		if err != nil || name == "" {
			b.log.Warn().Err(err).Msg("unnamed attachment skipped")
			continue
		}
		// Base strips any path components an attachment name may smuggle in.
		path := filepath.Join(dir, filepath.Base(name))
		if err := att.SaveTo(path); err != nil {
			b.log.Warn().Err(err).Str("file", name).Msg("attachment save failed")
			continue
		}
		saved = append(saved, path)
	}
	return saved, nil
}

// CurrentUser returns the signed-in account's address.
func (b *Bridge) CurrentUser() (string, error) {
	addr, err := b.acc.CurrentUserAddress()
	if err != nil {
		return "", fmt.Errorf("current user lookup failed: %w", err)
	}
	return addr, nil
}
