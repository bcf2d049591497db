package hierarchy

import (
	"sort"
	"time"

	"github.com/fileforge/fileforge/internal/models"
)

// Item is the display projection of a file or folder used by the tab
// filter. Folders carry no modification time; HasModified distinguishes
// that from a zero timestamp.
type Item struct {
	ID          string
	Name        string
	IsFolder    bool
	Type        models.FileType
	Size        int64
	ModifiedAt  time.Time
	HasModified bool
	Starred     bool
	Shared      bool
}

// DisplayItems derives the item set for the active tab.
//
// The scoping is intentionally uneven and load-bearing: "all" and
// "recent" cover only the current folder's direct children, while
// "starred" and "shared" cover the entire tree.
func (s *Store) DisplayItems(tab models.Tab) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch tab {
	case models.TabRecent:
		return sortByModified(s.childrenLocked(s.cursor))
	case models.TabStarred:
		return s.collectFlaggedLocked(func(it Item) bool { return it.Starred })
	case models.TabShared:
		return s.collectFlaggedLocked(func(it Item) bool { return it.Shared })
	default:
		return s.childrenLocked(s.cursor)
	}
}

// childrenLocked returns the direct children of folder id, folders first.
func (s *Store) childrenLocked(id *string) []Item {
	items := make([]Item, 0)
	for _, f := range s.folders {
		if sameParent(f.ParentID, id) {
			items = append(items, folderItem(f))
		}
	}
	for _, f := range s.files {
		if sameParent(f.ParentID, id) {
			items = append(items, fileItem(f))
		}
	}
	return items
}

// collectFlaggedLocked walks the whole tree from the root with an
// explicit stack, visiting each folder, then its files, then its
// subfolders. Collection order is determined by record order, so repeated
// calls on an unchanged hierarchy yield identical results.
func (s *Store) collectFlaggedLocked(match func(Item) bool) []Item {
	result := make([]Item, 0)

	// Files at the root have no enclosing folder to visit them from.
	for _, f := range s.files {
		if f.ParentID == nil {
			if it := fileItem(f); match(it) {
				result = append(result, it)
			}
		}
	}

	stack := make([]string, 0)
	for i := len(s.folders) - 1; i >= 0; i-- {
		if s.folders[i].ParentID == nil {
			stack = append(stack, s.folders[i].ID)
		}
	}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, f := range s.folders {
			if f.ID == current {
				if it := folderItem(f); match(it) {
					result = append(result, it)
				}
				break
			}
		}

		for _, f := range s.files {
			if f.ParentID != nil && *f.ParentID == current {
				if it := fileItem(f); match(it) {
					result = append(result, it)
				}
			}
		}

		for i := len(s.folders) - 1; i >= 0; i-- {
			f := s.folders[i]
			if f.ParentID != nil && *f.ParentID == current {
				stack = append(stack, f.ID)
			}
		}
	}

	return result
}

// sortByModified orders items descending by modification time. Items
// without one (folders) compare equal to everything, so the stable sort
// keeps their relative order.
func sortByModified(items []Item) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].HasModified || !items[j].HasModified {
			return false
		}
		return items[j].ModifiedAt.Before(items[i].ModifiedAt)
	})
	return items
}

func fileItem(f models.FileRecord) Item {
	return Item{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Size:        f.Size,
		ModifiedAt:  f.ModifiedAt,
		HasModified: true,
		Starred:     f.Starred,
		Shared:      f.Shared,
	}
}

func folderItem(f models.FolderRecord) Item {
	return Item{
		ID:       f.ID,
		Name:     f.Name,
		IsFolder: true,
		Starred:  f.Starred,
		Shared:   f.Shared,
	}
}
