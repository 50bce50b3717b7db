package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// FileCacheStore is a one-JSON-file-per-key fallback store: Save writes
// dir/fallback_<PalletL>x<PalletW>_<BoxL>x<BoxW>.json, Load reads it back.
// It exists for the case where the primary database is unreachable and
// generation has to keep working in a degraded mode.
type FileCacheStore struct {
	Dir string
}

// NewFileCacheStore returns a FileCacheStore rooted at dir. dir is created
// lazily on the first Save, not here.
func NewFileCacheStore(dir string) *FileCacheStore {
	return &FileCacheStore{Dir: dir}
}

func (s *FileCacheStore) filename(key Key) string {
	name := fmt.Sprintf("fallback_%dx%d_%dx%d.json", key.PalletL, key.PalletW, key.BoxL, key.BoxW)
	return filepath.Join(s.Dir, name)
}

// Save writes bundle to its key's file, creating the store directory if
// necessary.
func (s *FileCacheStore) Save(key Key, bundle model.Bundle) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling bundle: %w", err)
	}

	if err := os.WriteFile(s.filename(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Load reads the bundle for key, if its file exists. The second return
// value is false, with a nil error, when no cached bundle exists for key.
func (s *FileCacheStore) Load(key Key) (model.Bundle, bool, error) {
	data, err := os.ReadFile(s.filename(key))
	if os.IsNotExist(err) {
		return model.Bundle{}, false, nil
	}
	if err != nil {
		return model.Bundle{}, false, fmt.Errorf("reading cache file: %w", err)
	}

	var bundle model.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return model.Bundle{}, false, fmt.Errorf("unmarshaling cached bundle: %w", err)
	}
	return bundle, true, nil
}
