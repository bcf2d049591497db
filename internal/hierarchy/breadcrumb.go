package hierarchy

import (
	"errors"

	"github.com/fileforge/fileforge/internal/models"
)

// ErrCorruptHierarchy indicates a parent chain longer than the folder
// count, which can only happen when parent pointers form a cycle.
var ErrCorruptHierarchy = errors.New("folder parent chain exceeds folder count")

// Breadcrumbs derives the root-to-cursor path for the current folder.
func (s *Store) Breadcrumbs() ([]models.Breadcrumb, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deriveBreadcrumbs(s.folders, s.cursor)
}

// BreadcrumbsFor derives the root-to-folder path for an arbitrary folder id.
func (s *Store) BreadcrumbsFor(id *string) ([]models.Breadcrumb, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deriveBreadcrumbs(s.folders, id)
}

// deriveBreadcrumbs walks parent pointers from the cursor up to the root,
// prepending an entry per hop. A missing intermediate parent ends the walk
// silently; the path simply starts below the gap. The walk is bounded by
// the folder count so a cycle terminates with ErrCorruptHierarchy instead
// of looping.
func deriveBreadcrumbs(folders []models.FolderRecord, cursor *string) ([]models.Breadcrumb, error) {
	chain := []models.Breadcrumb{}

	hops := 0
	for cursor != nil {
		var folder *models.FolderRecord
		for i := range folders {
			if folders[i].ID == *cursor {
				folder = &folders[i]
				break
			}
		}
		if folder == nil {
			break
		}

		// An acyclic chain visits each folder at most once, so more
		// successful hops than folders means the pointers form a cycle.
		hops++
		if hops > len(folders) {
			return withRoot(chain), ErrCorruptHierarchy
		}

		chain = append([]models.Breadcrumb{{ID: folder.ID, Name: folder.Name}}, chain...)
		cursor = folder.ParentID
	}

	return withRoot(chain), nil
}

func withRoot(chain []models.Breadcrumb) []models.Breadcrumb {
	path := make([]models.Breadcrumb, 0, len(chain)+1)
	path = append(path, models.RootBreadcrumb)
	return append(path, chain...)
}
