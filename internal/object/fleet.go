package object

import "github.com/tomz197/neodefender/internal/neo"

// Fleet keeps one live asteroid on the field for every catalog entry.
// Destroyed rocks are replaced by a fresh one falling from the top.
type Fleet struct {
	catalog []neo.Asteroid
	live    []bool // Scratch buffer, indexed by slot
}

// NewFleet creates a fleet for the given catalog.
func NewFleet(catalog []neo.Asteroid) *Fleet {
	return &Fleet{
		catalog: catalog,
		live:    make([]bool, len(catalog)),
	}
}

// Size returns the number of rocks the fleet maintains.
func (f *Fleet) Size() int {
	return len(f.catalog)
}

// Update spawns a rock for every catalog slot without a live asteroid.
func (f *Fleet) Update(ctx UpdateContext) (bool, error) {
	clear(f.live)
	for _, obj := range ctx.Objects {
		if a, ok := obj.(*Asteroid); ok && !a.Destroyed && a.Slot >= 0 && a.Slot < len(f.live) {
			f.live[a.Slot] = true
		}
	}

	for slot, alive := range f.live {
		if alive || ctx.Spawner == nil {
			continue
		}
		ctx.Spawner.Spawn(NewAsteroid(f.catalog[slot], slot, ctx.Field, ctx.Rand))
	}
	return false, nil
}

// Draw is a no-op; the fleet is not visible.
func (f *Fleet) Draw(_ DrawContext) error {
	return nil
}
