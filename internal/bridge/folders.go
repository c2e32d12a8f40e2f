package bridge

import (
	"fmt"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// ListFolders walks the folder tree under the named root folder (the
// inbox's account root when name is empty) and returns it flattened,
// depth-first.
func (b *Bridge) ListFolders(name string) ([]FolderInfo, error) {
	root, err := b.folderOrInbox(name)
	if err != nil {
		return nil, fmt.Errorf("root folder lookup failed: %w", err)
	}

	infos := []FolderInfo{}
	b.walkFolder(root, nil, 0, &infos)
	return infos, nil
}

func (b *Bridge) walkFolder(folder, parent store.Folder, depth int, out *[]FolderInfo) {
	count, err := folder.ItemCount()
	if err != nil {
		count = 0
	}

	info := FolderInfo{
		Name:      folder.Name(),
		ID:        folder.ID(),
		ItemCount: count,
		Path:      folder.Path(),
		Depth:     depth,
	}
	if parent != nil {
		info.ParentName = parent.Name()
		info.ParentID = parent.ID()
	}
	*out = append(*out, info)

	subs, err := folder.Subfolders()
	if err != nil {
		b.log.Debug().Err(err).Str("folder", folder.Name()).Msg("subfolder listing failed")
		return
	}
	for _, sub := range subs {
		b.walkFolder(sub, folder, depth+1, out)
	}
}
