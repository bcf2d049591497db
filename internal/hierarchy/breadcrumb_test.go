package hierarchy

import (
	"errors"
	"testing"

	"github.com/fileforge/fileforge/internal/models"
)

func breadcrumbNames(path []models.Breadcrumb) []string {
	names := make([]string, len(path))
	for i, b := range path {
		names[i] = b.Name
	}
	return names
}

func TestBreadcrumbsRootToCursor(t *testing.T) {
	s, _ := newTestStore(t)

	f1, _ := s.CreateFolder("F1")
	s.NavigateToFolder(&f1.ID)
	f2, _ := s.CreateFolder("F2")
	s.NavigateToFolder(&f2.ID)
	f3, _ := s.CreateFolder("F3")
	s.NavigateToFolder(&f3.ID)

	path, err := s.Breadcrumbs()
	if err != nil {
		t.Fatalf("Breadcrumbs failed: %v", err)
	}

	want := []string{"Home", "F1", "F2", "F3"}
	got := breadcrumbNames(path)
	if len(got) != len(want) {
		t.Fatalf("Path length %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if path[0].ID != "root" {
		t.Errorf("Synthetic root entry must have id 'root', got %q", path[0].ID)
	}
}

func TestBreadcrumbsAtRoot(t *testing.T) {
	s, _ := newTestStore(t)

	path, err := s.Breadcrumbs()
	if err != nil {
		t.Fatalf("Breadcrumbs failed: %v", err)
	}
	if len(path) != 1 || path[0] != models.RootBreadcrumb {
		t.Errorf("Expected just the Home entry, got %v", path)
	}
}

func TestBreadcrumbsMissingParentStopsWalk(t *testing.T) {
	s, _ := newTestStore(t)

	// A folder whose parent id resolves to nothing: the walk ends at the
	// gap and the path starts below it.
	f1, _ := s.CreateFolder("F1")
	s.NavigateToFolder(&f1.ID)
	f2, _ := s.CreateFolder("F2")
	s.DeleteItem(f1.ID, true)

	// Resurrect f2's id as cursor even though its chain is broken.
	path, err := deriveBreadcrumbs([]models.FolderRecord{
		{ID: f2.ID, Name: "F2", ParentID: &f1.ID},
	}, &f2.ID)
	if err != nil {
		t.Fatalf("Expected silent termination, got %v", err)
	}

	want := []string{"Home", "F2"}
	got := breadcrumbNames(path)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestBreadcrumbsUnknownCursor(t *testing.T) {
	s, _ := newTestStore(t)

	ghost := "ghost"
	path, err := s.BreadcrumbsFor(&ghost)
	if err != nil {
		t.Fatalf("Breadcrumbs failed: %v", err)
	}
	if len(path) != 1 {
		t.Errorf("Unknown cursor should yield only Home, got %v", path)
	}
}

func TestBreadcrumbsCycleTerminates(t *testing.T) {
	a := "a"
	b := "b"
	folders := []models.FolderRecord{
		{ID: a, Name: "A", ParentID: &b},
		{ID: b, Name: "B", ParentID: &a},
	}

	path, err := deriveBreadcrumbs(folders, &a)
	if !errors.Is(err, ErrCorruptHierarchy) {
		t.Fatalf("Expected ErrCorruptHierarchy, got %v", err)
	}
	// The walk must still have terminated with a bounded path.
	if len(path) > len(folders)+1 {
		t.Errorf("Path longer than bound: %v", path)
	}
}

func TestBreadcrumbsSelfCycleTerminates(t *testing.T) {
	a := "a"
	folders := []models.FolderRecord{
		{ID: a, Name: "A", ParentID: &a},
	}

	if _, err := deriveBreadcrumbs(folders, &a); !errors.Is(err, ErrCorruptHierarchy) {
		t.Fatalf("Expected ErrCorruptHierarchy, got %v", err)
	}
}
