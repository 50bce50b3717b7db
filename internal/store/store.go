// Package store persists generated template bundles, keyed by the pallet
// and box dimensions that produced them, so a repeat request for the same
// configuration can skip regeneration.
package store

import (
	"github.com/Obstacleee/OptiPallet/internal/model"
)

// Key identifies a pallet/box configuration a bundle was generated for.
type Key struct {
	PalletL int
	PalletW int
	BoxL    int
	BoxW    int
}

// KeyOf derives a Key from a pallet and box pair.
func KeyOf(pallet model.Pallet, box model.BoxDims) Key {
	return Key{PalletL: pallet.L, PalletW: pallet.W, BoxL: box.L, BoxW: box.W}
}

// TemplateStore loads and saves a bundle of templates for a given
// configuration key. A relational-database-backed implementation is the
// expected primary store in production; FileCacheStore here is the
// degraded-mode fallback used when that primary store is unreachable.
type TemplateStore interface {
	Save(key Key, bundle model.Bundle) error
	Load(key Key) (model.Bundle, bool, error)
}
