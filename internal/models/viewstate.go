package models

// ViewMode selects how the presentation layer lays out items.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Tab selects which derived item set is displayed.
type Tab string

const (
	TabAll     Tab = "all"
	TabRecent  Tab = "recent"
	TabStarred Tab = "starred"
	TabShared  Tab = "shared"
)

// Theme selects the color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ViewState holds per-user display preferences. It is persisted to the local
// store under its own key, independent of the hierarchy snapshot.
type ViewState struct {
	Mode      ViewMode `json:"mode"`
	ActiveTab Tab      `json:"activeTab"`
	Theme     Theme    `json:"theme"`
}

// DefaultViewState returns the view state used when nothing is persisted.
func DefaultViewState() ViewState {
	return ViewState{
		Mode:      ViewGrid,
		ActiveTab: TabAll,
		Theme:     ThemeSystem,
	}
}

// Normalize replaces unknown persisted values with defaults. Loaded view
// state is never trusted blindly since the store file is user-editable.
func (v ViewState) Normalize() ViewState {
	switch v.Mode {
	case ViewGrid, ViewList:
	default:
		v.Mode = ViewGrid
	}

	switch v.ActiveTab {
	case TabAll, TabRecent, TabStarred, TabShared:
	default:
		v.ActiveTab = TabAll
	}

	switch v.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		v.Theme = ThemeSystem
	}

	return v
}

// ParseTab converts a user-supplied tab name, falling back to TabAll.
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAll, TabRecent, TabStarred, TabShared:
		return Tab(s), true
	}
	return TabAll, false
}
