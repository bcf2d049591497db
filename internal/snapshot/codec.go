package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fileforge/fileforge/internal/constants"
	"github.com/fileforge/fileforge/internal/models"
)

// Hierarchy is the unit of persistence: the whole files + folders pair is
// re-serialized on every mutation.
type Hierarchy struct {
	Files   []models.FileRecord   `json:"files"`
	Folders []models.FolderRecord `json:"folders"`
}

// DecodeStats reports what a decode had to discard or repair. Loaded JSON is
// never trusted blindly: legacy or hand-edited snapshots may carry records
// missing required fields.
type DecodeStats struct {
	DroppedFiles   int
	DroppedFolders int
	CoercedDates   int
}

// rawHierarchy defers per-record parsing so one malformed record does not
// poison the whole snapshot.
type rawHierarchy struct {
	Files   []json.RawMessage `json:"files"`
	Folders []json.RawMessage `json:"folders"`
}

// EncodeHierarchy serializes the hierarchy to the persisted JSON form.
// Timestamps are RFC 3339 strings via the standard time.Time encoding.
func EncodeHierarchy(h Hierarchy) (string, error) {
	if h.Files == nil {
		h.Files = []models.FileRecord{}
	}
	if h.Folders == nil {
		h.Folders = []models.FolderRecord{}
	}

	data, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("failed to encode hierarchy: %w", err)
	}
	return string(data), nil
}

// DecodeHierarchy parses a persisted snapshot, reviving date fields and
// validating every record. Records without an id or name, or with
// unparsable dates, are dropped and counted. Files whose modifiedAt
// precedes createdAt are coerced to modifiedAt = createdAt.
func DecodeHierarchy(data string) (Hierarchy, DecodeStats, error) {
	var stats DecodeStats

	var raw rawHierarchy
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return Hierarchy{}, stats, fmt.Errorf("failed to decode hierarchy snapshot: %w", err)
	}

	h := Hierarchy{
		Files:   make([]models.FileRecord, 0, len(raw.Files)),
		Folders: make([]models.FolderRecord, 0, len(raw.Folders)),
	}

	for _, msg := range raw.Files {
		var f models.FileRecord
		if err := json.Unmarshal(msg, &f); err != nil || f.ID == "" || f.Name == "" || f.CreatedAt.IsZero() {
			stats.DroppedFiles++
			continue
		}
		if f.Type == "" {
			f.Type = models.TypeFromExtension(f.Name)
		}
		if f.ModifiedAt.IsZero() || f.ModifiedAt.Before(f.CreatedAt) {
			f.ModifiedAt = f.CreatedAt
			stats.CoercedDates++
		}
		h.Files = append(h.Files, f)
	}

	for _, msg := range raw.Folders {
		var f models.FolderRecord
		if err := json.Unmarshal(msg, &f); err != nil || f.ID == "" || f.Name == "" || f.CreatedAt.IsZero() {
			stats.DroppedFolders++
			continue
		}
		h.Folders = append(h.Folders, f)
	}

	return h, stats, nil
}

// LoadHierarchy reads the snapshot from the store. A missing key yields an
// empty hierarchy, not an error.
func LoadHierarchy(kv KV) (Hierarchy, DecodeStats, error) {
	data, ok, err := kv.Get(constants.HierarchyKey)
	if err != nil {
		return Hierarchy{}, DecodeStats{}, err
	}
	if !ok {
		return Hierarchy{Files: []models.FileRecord{}, Folders: []models.FolderRecord{}}, DecodeStats{}, nil
	}
	return DecodeHierarchy(data)
}

// SaveHierarchy writes the full snapshot to the store.
func SaveHierarchy(kv KV, h Hierarchy) error {
	data, err := EncodeHierarchy(h)
	if err != nil {
		return err
	}
	return kv.Set(constants.HierarchyKey, data)
}
