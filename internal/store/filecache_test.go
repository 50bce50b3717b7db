package store

import (
	"path/filepath"
	"testing"

	"github.com/Obstacleee/OptiPallet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheStore_SaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileCacheStore(dir)
	key := Key{PalletL: 1200, PalletW: 1000, BoxL: 300, BoxW: 200}

	bundle := model.Bundle{
		PalletDimensions: model.Pallet{L: 1200, W: 1000},
		BoxDimensions:    model.BoxDims{L: 300, W: 200, H: 150},
		Templates: []model.Template{
			{ID: "abc123", Score: 99.5, Layer1BoxCount: 2, Layer2BoxCount: 2},
		},
	}

	require.NoError(t, s.Save(key, bundle))

	loaded, found, err := s.Load(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, bundle.PalletDimensions, loaded.PalletDimensions)
	assert.Equal(t, bundle.BoxDimensions, loaded.BoxDimensions)
	require.Len(t, loaded.Templates, 1)
	assert.Equal(t, bundle.Templates[0].ID, loaded.Templates[0].ID)
}

func TestFileCacheStore_LoadMissingKeyReturnsNotFound(t *testing.T) {
	s := NewFileCacheStore(t.TempDir())
	_, found, err := s.Load(Key{PalletL: 1, PalletW: 1, BoxL: 1, BoxW: 1})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileCacheStore_FilenameIsKeyed(t *testing.T) {
	s := NewFileCacheStore("/tmp/cache")
	key := Key{PalletL: 1200, PalletW: 1000, BoxL: 300, BoxW: 200}
	assert.Equal(t, filepath.Join("/tmp/cache", "fallback_1200x1000_300x200.json"), s.filename(key))
}

func TestKeyOf(t *testing.T) {
	pallet := model.Pallet{L: 1200, W: 1000}
	box := model.BoxDims{L: 300, W: 200, H: 150}
	assert.Equal(t, Key{PalletL: 1200, PalletW: 1000, BoxL: 300, BoxW: 200}, KeyOf(pallet, box))
}
