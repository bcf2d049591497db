package hierarchy

import (
	"fmt"
	"testing"
	"time"

	"github.com/fileforge/fileforge/internal/events"
	"github.com/fileforge/fileforge/internal/models"
	"github.com/fileforge/fileforge/internal/notify"
	"github.com/fileforge/fileforge/internal/snapshot"
)

// newTestStore returns a store with deterministic ids (id-1, id-2, ...)
// and a clock that advances one second per call.
func newTestStore(t *testing.T) (*Store, *snapshot.MemKV) {
	t.Helper()

	kv := snapshot.NewMemKV()
	idSeq := 0
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewStore(kv, nil, nil, nil,
		WithIDGenerator(func() string {
			idSeq++
			return fmt.Sprintf("id-%d", idSeq)
		}),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, kv
}

func TestCreateFile(t *testing.T) {
	s, _ := newTestStore(t)

	f, err := s.CreateFile("notes.txt", "", "hello")
	if err != nil {
		t.Fatalf("CreateFile failed: %v", err)
	}
	if f.ID == "" || f.Name != "notes.txt" {
		t.Errorf("Unexpected record: %+v", f)
	}
	if f.Type != models.TypeText {
		t.Errorf("Expected inferred text type, got %s", f.Type)
	}
	if f.Size != 5 {
		t.Errorf("Expected size from content length, got %d", f.Size)
	}
	if f.ParentID != nil {
		t.Errorf("Expected root parent, got %v", *f.ParentID)
	}
	if !f.ModifiedAt.Equal(f.CreatedAt) {
		t.Errorf("Expected modifiedAt == createdAt on create")
	}

	if got := len(s.Files()); got != 1 {
		t.Errorf("Expected 1 file in store, got %d", got)
	}
}

func TestCreateFileEmptyName(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.CreateFile("", "", ""); err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if len(s.Files()) != 0 {
		t.Error("Validation failure must not mutate state")
	}
}

func TestCreateFileNoUniquenessCheck(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateFile("dup.txt", "", "")
	s.CreateFile("dup.txt", "", "")

	if got := len(s.Files()); got != 2 {
		t.Errorf("Duplicate names are allowed, expected 2 files, got %d", got)
	}
}

func TestCreateFileUnderCurrentFolder(t *testing.T) {
	s, _ := newTestStore(t)

	folder, _ := s.CreateFolder("Documents")
	s.NavigateToFolder(&folder.ID)

	f, _ := s.CreateFile("inside.txt", "", "")
	if f.ParentID == nil || *f.ParentID != folder.ID {
		t.Errorf("Expected parent %s, got %v", folder.ID, f.ParentID)
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	// Folders A (root) -> B -> C; file f1 in B, file f2 at root.
	// Deleting A must leave only f2.
	s, _ := newTestStore(t)

	a, _ := s.CreateFolder("A")
	s.NavigateToFolder(&a.ID)
	b, _ := s.CreateFolder("B")
	s.NavigateToFolder(&b.ID)
	s.CreateFolder("C")
	s.CreateFile("f1.txt", "", "")
	s.NavigateToFolder(nil)
	f2, _ := s.CreateFile("f2.txt", "", "")

	s.DeleteItem(a.ID, true)

	if got := len(s.Folders()); got != 0 {
		t.Errorf("Expected all folders gone, got %d", got)
	}
	files := s.Files()
	if len(files) != 1 || files[0].ID != f2.ID {
		t.Errorf("Expected only f2 to survive, got %+v", files)
	}
}

func TestDeleteLeavesNoDanglingParents(t *testing.T) {
	s, _ := newTestStore(t)

	a, _ := s.CreateFolder("A")
	s.NavigateToFolder(&a.ID)
	b, _ := s.CreateFolder("B")
	s.NavigateToFolder(&b.ID)
	s.CreateFolder("C")
	s.CreateFile("deep.txt", "", "")
	s.NavigateToFolder(&a.ID)
	s.CreateFile("shallow.txt", "", "")
	s.NavigateToFolder(nil)
	s.CreateFile("top.txt", "", "")

	s.DeleteItem(b.ID, true)

	valid := map[string]bool{}
	for _, f := range s.Folders() {
		valid[f.ID] = true
	}
	for _, f := range s.Folders() {
		if f.ParentID != nil && !valid[*f.ParentID] {
			t.Errorf("Folder %s has dangling parent %s", f.ID, *f.ParentID)
		}
	}
	for _, f := range s.Files() {
		if f.ParentID != nil && !valid[*f.ParentID] {
			t.Errorf("File %s has dangling parent %s", f.ID, *f.ParentID)
		}
	}
}

func TestDeleteFile(t *testing.T) {
	s, _ := newTestStore(t)

	f, _ := s.CreateFile("a.txt", "", "")
	s.CreateFile("b.txt", "", "")

	s.DeleteItem(f.ID, false)

	files := s.Files()
	if len(files) != 1 || files[0].Name != "b.txt" {
		t.Errorf("Expected only b.txt, got %+v", files)
	}
}

func TestDeleteNonExistentIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateFile("keep.txt", "", "")
	s.CreateFolder("Keep")

	s.DeleteItem("nope", false)
	s.DeleteItem("nope", true)

	if len(s.Files()) != 1 || len(s.Folders()) != 1 {
		t.Error("Deleting a missing id must not change the collections")
	}
}

func TestSingleLevelPartition(t *testing.T) {
	// The union of FilesInFolder across all folder ids plus nil equals the
	// whole files collection, with no overlaps.
	s, _ := newTestStore(t)

	a, _ := s.CreateFolder("A")
	s.NavigateToFolder(&a.ID)
	b, _ := s.CreateFolder("B")
	s.CreateFile("inA.txt", "", "")
	s.NavigateToFolder(&b.ID)
	s.CreateFile("inB.txt", "", "")
	s.NavigateToFolder(nil)
	s.CreateFile("atRoot.txt", "", "")

	parents := []*string{nil, &a.ID, &b.ID}
	seen := map[string]int{}
	total := 0
	for _, p := range parents {
		for _, f := range s.FilesInFolder(p) {
			seen[f.ID]++
			total++
		}
	}

	if total != len(s.Files()) {
		t.Errorf("Union covers %d files, want %d", total, len(s.Files()))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("File %s appeared in %d partitions", id, count)
		}
	}
}

func TestUpdateFileRefreshesModified(t *testing.T) {
	s, _ := newTestStore(t)

	f, _ := s.CreateFile("a.txt", "", "old")
	before := f.ModifiedAt

	content := "new content"
	s.UpdateFile(f.ID, models.FileUpdate{Content: &content})

	got, ok := s.File(f.ID)
	if !ok {
		t.Fatal("File vanished")
	}
	if got.Content != "new content" {
		t.Errorf("Content not merged: %q", got.Content)
	}
	if got.Size != int64(len("new content")) {
		t.Errorf("Size not recomputed: %d", got.Size)
	}
	if !got.ModifiedAt.After(before) {
		t.Error("ModifiedAt not refreshed")
	}
	if got.ModifiedAt.Before(got.CreatedAt) {
		t.Error("modifiedAt must never precede createdAt")
	}
}

func TestUpdateFileNotFoundIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	f, _ := s.CreateFile("a.txt", "", "x")
	name := "renamed.txt"
	s.UpdateFile("missing", models.FileUpdate{Name: &name})

	got, _ := s.File(f.ID)
	if got.Name != "a.txt" {
		t.Error("Update of missing id must not touch other records")
	}
}

func TestNavigateDoesNotValidate(t *testing.T) {
	s, _ := newTestStore(t)

	ghost := "no-such-folder"
	s.NavigateToFolder(&ghost)

	if got := s.CurrentFolder(); got == nil || *got != ghost {
		t.Errorf("Cursor should be set verbatim, got %v", got)
	}
	if len(s.FilesInFolder(&ghost)) != 0 {
		t.Error("Unknown folder must list as empty")
	}
}

func TestPersistenceAcrossStores(t *testing.T) {
	s, kv := newTestStore(t)

	folder, _ := s.CreateFolder("Docs")
	s.NavigateToFolder(&folder.ID)
	s.CreateFile("inside.md", "", "# hi")

	// A second store over the same kv sees the same hierarchy and cursor.
	s2 := NewStore(kv, nil, nil, nil)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(s2.Folders()) != 1 || len(s2.Files()) != 1 {
		t.Fatalf("Snapshot not reloaded: %d folders, %d files", len(s2.Folders()), len(s2.Files()))
	}
	if cur := s2.CurrentFolder(); cur == nil || *cur != folder.ID {
		t.Errorf("Cursor not restored: %v", cur)
	}

	f := s2.Files()[0]
	if f.Content != "# hi" || f.Type != models.TypeText {
		t.Errorf("Record not faithfully restored: %+v", f)
	}
}

func TestOneNotificationPerMutation(t *testing.T) {
	bus := events.NewEventBus(64)
	defer bus.Close()
	ch := bus.Subscribe(events.EventNotification)

	kv := snapshot.NewMemKV()
	s := NewStore(kv, bus, notify.NewNotifier(bus, nil), nil)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	f, _ := s.CreateFile("a.txt", "", "")
	s.CreateFolder("B")
	s.DeleteItem(f.ID, false)
	s.DeleteItem("missing", true) // no-op delete still notifies

	want := 4
	got := 0
	timeout := time.After(200 * time.Millisecond)
	for got < want {
		select {
		case <-ch:
			got++
		case <-timeout:
			t.Fatalf("Expected %d notifications, got %d", want, got)
		}
	}

	select {
	case ev := <-ch:
		t.Errorf("Unexpected extra notification: %v", ev)
	default:
	}
}

func TestSetStarredAndShared(t *testing.T) {
	s, _ := newTestStore(t)

	f, _ := s.CreateFile("a.txt", "", "")
	d, _ := s.CreateFolder("D")

	s.SetStarred(f.ID, false, true)
	s.SetShared(d.ID, true, true)

	gotFile, _ := s.File(f.ID)
	if !gotFile.Starred {
		t.Error("File not starred")
	}
	gotFolder, _ := s.Folder(d.ID)
	if !gotFolder.Shared {
		t.Error("Folder not shared")
	}

	s.SetStarred(f.ID, false, false)
	gotFile, _ = s.File(f.ID)
	if gotFile.Starred {
		t.Error("File still starred after unset")
	}
}

func TestRenameFolder(t *testing.T) {
	s, _ := newTestStore(t)

	d, _ := s.CreateFolder("Old")
	if err := s.RenameFolder(d.ID, "New"); err != nil {
		t.Fatalf("RenameFolder failed: %v", err)
	}

	got, _ := s.Folder(d.ID)
	if got.Name != "New" {
		t.Errorf("Expected renamed folder, got %q", got.Name)
	}

	if err := s.RenameFolder(d.ID, ""); err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
}
