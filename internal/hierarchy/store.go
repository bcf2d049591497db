// Package hierarchy owns the in-memory files and folders collections.
// All reads and writes to the hierarchy go through the Store; every
// mutation re-persists the full snapshot, publishes a change event and
// emits one user-visible notification.
package hierarchy

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fileforge/fileforge/internal/events"
	"github.com/fileforge/fileforge/internal/logging"
	"github.com/fileforge/fileforge/internal/models"
	"github.com/fileforge/fileforge/internal/notify"
	"github.com/fileforge/fileforge/internal/snapshot"
)

// ErrEmptyName rejects create/rename calls with a blank name before any
// state is touched.
var ErrEmptyName = errors.New("name must not be empty")

// Store is the sole owner of the files and folders collections.
//
// Mutations build replacement slices first and swap them in under the
// lock, so no error path can leave a partially-mutated collection visible.
// Not-found ids degrade to no-ops, matching the persisted-snapshot
// semantics callers rely on.
type Store struct {
	mu      sync.RWMutex
	files   []models.FileRecord
	folders []models.FolderRecord
	cursor  *string // current folder id, nil means root

	kv       snapshot.KV
	eventBus *events.EventBus
	notifier *notify.Notifier
	logger   *logging.Logger

	newID func() string
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides id generation (used by tests for determinism).
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock overrides the time source (used by tests for determinism).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store persisting through kv. Call Load to
// initialize from the persisted snapshot.
func NewStore(kv snapshot.KV, eventBus *events.EventBus, notifier *notify.Notifier, logger *logging.Logger, opts ...Option) *Store {
	s := &Store{
		files:    []models.FileRecord{},
		folders:  []models.FolderRecord{},
		kv:       kv,
		eventBus: eventBus,
		notifier: notifier,
		logger:   logger,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load initializes the collections and cursor from the persisted snapshot.
// Records the codec had to drop are logged and gone for good on the next
// persist; that matches the store's last-write-wins discipline.
func (s *Store) Load() error {
	h, stats, err := snapshot.LoadHierarchy(s.kv)
	if err != nil {
		return err
	}
	cursor, err := snapshot.LoadCursor(s.kv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.files = h.Files
	s.folders = h.Folders
	s.cursor = cursor
	s.mu.Unlock()

	if s.logger != nil && (stats.DroppedFiles > 0 || stats.DroppedFolders > 0) {
		s.logger.Warn().
			Int("dropped_files", stats.DroppedFiles).
			Int("dropped_folders", stats.DroppedFolders).
			Msg("Discarded malformed records while loading snapshot")
	}
	return nil
}

// Close persists the final snapshot.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// CreateFile constructs a file record under the current folder and appends
// it. Size is derived from the content byte length. There is no name
// uniqueness check.
func (s *Store) CreateFile(name string, fileType models.FileType, content string) (models.FileRecord, error) {
	if name == "" {
		return models.FileRecord{}, ErrEmptyName
	}
	if fileType == "" {
		fileType = models.TypeFromExtension(name)
	}

	s.mu.Lock()
	now := s.now()
	file := models.FileRecord{
		ID:         s.newID(),
		Name:       name,
		Type:       fileType,
		ParentID:   s.cursor,
		CreatedAt:  now,
		ModifiedAt: now,
		Content:    content,
		Size:       int64(len(content)),
	}
	s.files = append(s.files, file)
	s.afterMutationLocked("create_file", file.ID)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.FileCreated(name)
	}
	return file, nil
}

// RegisterUpload appends a file record for a completed upload under the
// current folder. The record carries the remote URL instead of content.
func (s *Store) RegisterUpload(name string, fileType models.FileType, size int64, url string) models.FileRecord {
	s.mu.Lock()
	now := s.now()
	file := models.FileRecord{
		ID:         s.newID(),
		Name:       name,
		Type:       fileType,
		ParentID:   s.cursor,
		CreatedAt:  now,
		ModifiedAt: now,
		Size:       size,
		URL:        url,
	}
	s.files = append(s.files, file)
	s.afterMutationLocked("register_upload", file.ID)
	s.mu.Unlock()

	return file
}

// CreateFolder constructs a folder record under the current folder.
// Children are always derived, never stored inline.
func (s *Store) CreateFolder(name string) (models.FolderRecord, error) {
	if name == "" {
		return models.FolderRecord{}, ErrEmptyName
	}

	s.mu.Lock()
	folder := models.FolderRecord{
		ID:        s.newID(),
		Name:      name,
		ParentID:  s.cursor,
		CreatedAt: s.now(),
	}
	s.folders = append(s.folders, folder)
	s.afterMutationLocked("create_folder", folder.ID)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.FolderCreated(name)
	}
	return folder, nil
}

// DeleteItem removes a file, or a folder with its entire subtree. The
// doomed folder set is collected breadth-first with an explicit work queue
// before anything is mutated; files are removed when their parent is in
// that set. Deleting an id that does not exist is a no-op.
func (s *Store) DeleteItem(id string, isFolder bool) {
	s.mu.Lock()
	if isFolder {
		doomed := s.collectSubtreeLocked(id)

		folders := make([]models.FolderRecord, 0, len(s.folders))
		for _, f := range s.folders {
			if !doomed[f.ID] {
				folders = append(folders, f)
			}
		}

		files := make([]models.FileRecord, 0, len(s.files))
		for _, f := range s.files {
			if f.ParentID == nil || !doomed[*f.ParentID] {
				files = append(files, f)
			}
		}

		s.folders = folders
		s.files = files
	} else {
		files := make([]models.FileRecord, 0, len(s.files))
		for _, f := range s.files {
			if f.ID != id {
				files = append(files, f)
			}
		}
		s.files = files
	}
	s.afterMutationLocked("delete", id)
	s.mu.Unlock()

	if s.notifier != nil {
		if isFolder {
			s.notifier.FolderDeleted()
		} else {
			s.notifier.FileDeleted()
		}
	}
}

// collectSubtreeLocked returns the set of folder ids rooted at id,
// including id itself. Iterative BFS: deep trees must not grow the call
// stack, and a cycle in parent pointers must not loop.
func (s *Store) collectSubtreeLocked(id string) map[string]bool {
	doomed := map[string]bool{id: true}
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, f := range s.folders {
			if f.ParentID != nil && *f.ParentID == current && !doomed[f.ID] {
				doomed[f.ID] = true
				queue = append(queue, f.ID)
			}
		}
	}
	return doomed
}

// NavigateToFolder sets the current folder cursor. The id is not
// validated; navigating to an unknown folder just yields empty listings.
// Nil means root.
func (s *Store) NavigateToFolder(id *string) {
	s.mu.Lock()
	s.cursor = id
	if err := snapshot.SaveCursor(s.kv, id); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist folder cursor")
	}
	s.mu.Unlock()

	if s.eventBus != nil {
		folderID := ""
		if id != nil {
			folderID = *id
		}
		s.eventBus.Publish(events.NewCursorChangedEvent(folderID))
	}
}

// CurrentFolder returns the current folder cursor (nil for root).
func (s *Store) CurrentFolder() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// FilesInFolder returns the files whose ParentID equals id (single level).
func (s *Store) FilesInFolder(id *string) []models.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.FileRecord, 0)
	for _, f := range s.files {
		if sameParent(f.ParentID, id) {
			result = append(result, f)
		}
	}
	return result
}

// FoldersInFolder returns the folders whose ParentID equals id.
func (s *Store) FoldersInFolder(id *string) []models.FolderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.FolderRecord, 0)
	for _, f := range s.folders {
		if sameParent(f.ParentID, id) {
			result = append(result, f)
		}
	}
	return result
}

// File returns the file with the given id.
func (s *Store) File(id string) (models.FileRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.ID == id {
			return f, true
		}
	}
	return models.FileRecord{}, false
}

// Folder returns the folder with the given id.
func (s *Store) Folder(id string) (models.FolderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.folders {
		if f.ID == id {
			return f, true
		}
	}
	return models.FolderRecord{}, false
}

// UpdateFile merges the given fields into an existing record and
// refreshes ModifiedAt. Updating content recomputes the size from the new
// content length. No-op if the id is not found.
func (s *Store) UpdateFile(id string, update models.FileUpdate) {
	var updatedName string
	found := false

	s.mu.Lock()
	files := make([]models.FileRecord, len(s.files))
	copy(files, s.files)
	for i, f := range files {
		if f.ID != id {
			continue
		}
		if update.Name != nil {
			f.Name = *update.Name
		}
		if update.Type != nil {
			f.Type = *update.Type
		}
		if update.Content != nil {
			f.Content = *update.Content
			f.Size = int64(len(*update.Content))
		}
		if update.Size != nil {
			f.Size = *update.Size
		}
		if update.URL != nil {
			f.URL = *update.URL
		}
		f.ModifiedAt = s.now()
		files[i] = f
		updatedName = f.Name
		found = true
		break
	}
	if found {
		s.files = files
		s.afterMutationLocked("update_file", id)
	}
	s.mu.Unlock()

	if found && s.notifier != nil {
		s.notifier.FileUpdated(updatedName)
	}
}

// RenameFolder sets a folder's name. No-op if the id is not found.
func (s *Store) RenameFolder(id, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	found := false
	s.mu.Lock()
	folders := make([]models.FolderRecord, len(s.folders))
	copy(folders, s.folders)
	for i, f := range folders {
		if f.ID == id {
			folders[i].Name = name
			found = true
			break
		}
	}
	if found {
		s.folders = folders
		s.afterMutationLocked("rename_folder", id)
	}
	s.mu.Unlock()

	if found && s.notifier != nil {
		s.notifier.Notify("Folder Renamed", "Folder renamed to \""+name+"\".")
	}
	return nil
}

// SetStarred flags or unflags an item for the starred tab. Flagging a
// file refreshes its ModifiedAt. No-op if the id is not found.
func (s *Store) SetStarred(id string, isFolder, starred bool) {
	s.setFlag(id, isFolder, starred, true)
}

// SetShared flags or unflags an item for the shared tab.
func (s *Store) SetShared(id string, isFolder, shared bool) {
	s.setFlag(id, isFolder, shared, false)
}

func (s *Store) setFlag(id string, isFolder, value, starredFlag bool) {
	found := false

	s.mu.Lock()
	if isFolder {
		folders := make([]models.FolderRecord, len(s.folders))
		copy(folders, s.folders)
		for i := range folders {
			if folders[i].ID == id {
				if starredFlag {
					folders[i].Starred = value
				} else {
					folders[i].Shared = value
				}
				found = true
				break
			}
		}
		if found {
			s.folders = folders
		}
	} else {
		files := make([]models.FileRecord, len(s.files))
		copy(files, s.files)
		for i := range files {
			if files[i].ID == id {
				if starredFlag {
					files[i].Starred = value
				} else {
					files[i].Shared = value
				}
				files[i].ModifiedAt = s.now()
				found = true
				break
			}
		}
		if found {
			s.files = files
		}
	}
	if found {
		s.afterMutationLocked("set_flag", id)
	}
	s.mu.Unlock()

	if found && s.notifier != nil {
		switch {
		case starredFlag && value:
			s.notifier.Notify("Starred", "Item added to starred.")
		case starredFlag:
			s.notifier.Notify("Unstarred", "Item removed from starred.")
		case value:
			s.notifier.Notify("Shared", "Item marked as shared.")
		default:
			s.notifier.Notify("Unshared", "Item is no longer shared.")
		}
	}
}

// Files returns a copy of the files collection.
func (s *Store) Files() []models.FileRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.FileRecord, len(s.files))
	copy(result, s.files)
	return result
}

// Folders returns a copy of the folders collection.
func (s *Store) Folders() []models.FolderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.FolderRecord, len(s.folders))
	copy(result, s.folders)
	return result
}

// afterMutationLocked persists the snapshot and publishes a change event.
// Persistence failures are logged, not propagated: the in-memory state is
// authoritative and the store is last-write-wins.
func (s *Store) afterMutationLocked(operation, itemID string) {
	if err := s.persistLocked(); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("operation", operation).Msg("Failed to persist hierarchy snapshot")
	}
	if s.eventBus != nil {
		s.eventBus.Publish(events.NewHierarchyChangedEvent(operation, itemID, len(s.files), len(s.folders)))
	}
}

func (s *Store) persistLocked() error {
	return snapshot.SaveHierarchy(s.kv, snapshot.Hierarchy{
		Files:   s.files,
		Folders: s.folders,
	})
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
