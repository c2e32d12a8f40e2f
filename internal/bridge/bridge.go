// Package bridge implements the retrieval and normalization engine over a
// store accessor: batched folder listing, recurrence-safe calendar
// windowing, and the message deduplication pipeline, plus the thin item
// operations (send, move, tasks, appointments) the tool and CLI layers
// expose.
package bridge

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// cursorFaultLimit bounds consecutive cursor failures during iteration.
// A faulty item may be skipped, but the cursor contract does not promise
// advancement on error; a store fault that repeats this many times in a
// row is treated as terminal so iteration always finishes.
const cursorFaultLimit = 5

// Bridge wraps a store accessor. It holds no mutable state of its own; all
// records are built fresh per call from live store state.
type Bridge struct {
	acc store.Accessor
	log zerolog.Logger
}

// New creates a bridge over acc.
func New(acc store.Accessor, log zerolog.Logger) *Bridge {
	return &Bridge{acc: acc, log: log}
}

// Warmup makes one real store round-trip to verify the connection is
// responsive. Used by server startup retries.
func (b *Bridge) Warmup() error {
	inbox, err := b.acc.FolderByName(store.FolderInbox)
	if err != nil {
		return fmt.Errorf("inbox lookup failed: %w", err)
	}
	if _, err := inbox.ItemCount(); err != nil {
		return fmt.Errorf("inbox count failed: %w", err)
	}
	return nil
}

// folderOrInbox resolves a folder by name, falling back to the inbox when
// the name is empty or does not resolve.
func (b *Bridge) folderOrInbox(name string) (store.Folder, error) {
	if name != "" && name != store.FolderInbox {
		f, err := b.acc.FolderByName(name)
		if err == nil {
			return f, nil
		}
		b.log.Warn().Str("folder", name).Err(err).Msg("folder not found, using inbox")
	}
	return b.acc.FolderByName(store.FolderInbox)
}
