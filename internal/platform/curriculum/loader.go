package curriculum

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codetrail/internal/common"
	"codetrail/internal/domain/curriculum"
)

// LoadDir builds a Catalog from a directory of per-track JSON files
// (<track>.json). Files are read in lexical order so the catalog's track
// order is stable across restarts.
func LoadDir(dir, demoTrack string) (curriculum.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.Errorf("failed to read curriculum dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var tracks []curriculum.Track
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, common.Errorf("failed to read track file %s: %w", name, err)
		}
		var t curriculum.Track
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, common.Errorf("failed to parse track file %s: %w", name, err)
		}
		if t.ID == "" {
			t.ID = strings.TrimSuffix(name, ".json")
		}
		tracks = append(tracks, t)
	}

	return curriculum.NewCatalog(demoTrack, tracks...), nil
}
