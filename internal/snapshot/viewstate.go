package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fileforge/fileforge/internal/constants"
	"github.com/fileforge/fileforge/internal/models"
)

// LoadViewState reads persisted display preferences, falling back to
// defaults when the key is absent or the value does not parse.
func LoadViewState(kv KV) (models.ViewState, error) {
	data, ok, err := kv.Get(constants.ViewStateKey)
	if err != nil {
		return models.DefaultViewState(), err
	}
	if !ok {
		return models.DefaultViewState(), nil
	}

	var vs models.ViewState
	if err := json.Unmarshal([]byte(data), &vs); err != nil {
		return models.DefaultViewState(), nil
	}
	return vs.Normalize(), nil
}

// SaveViewState persists display preferences under their own key.
func SaveViewState(kv KV, vs models.ViewState) error {
	data, err := json.Marshal(vs.Normalize())
	if err != nil {
		return fmt.Errorf("failed to encode view state: %w", err)
	}
	return kv.Set(constants.ViewStateKey, string(data))
}

// LoadCursor reads the persisted current-folder cursor. Nil means root.
func LoadCursor(kv KV) (*string, error) {
	data, ok, err := kv.Get(constants.CursorKey)
	if err != nil || !ok || data == "" {
		return nil, err
	}
	cursor := data
	return &cursor, nil
}

// SaveCursor persists the current-folder cursor. A nil cursor clears the key.
func SaveCursor(kv KV, cursor *string) error {
	if cursor == nil {
		return kv.Delete(constants.CursorKey)
	}
	return kv.Set(constants.CursorKey, *cursor)
}
