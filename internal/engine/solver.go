// Package engine implements the layout solver (C1), the gravity compactor
// (C2), the stability scorer (C3), the template generator (C4), and the
// template formatter (C5) described by the layout-engine specification.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Obstacleee/OptiPallet/internal/model"
)

// rect is an axis-aligned free rectangle tracked by the packer, in the same
// units as the pallet (integer millimetres in practice).
type rect struct {
	x, y, w, h int
}

// SolveLayer searches for a layer of non-overlapping, axis-aligned,
// optionally-rotated boxes of size (l, w) over a pallet of size (L, W),
// maximizing the number of boxes placed within timeLimit. workers
// independent randomized restarts race in parallel (the stand-in for a
// CP-SAT solver's internal search portfolio); seed, when non-zero, seeds
// each worker's random stream, though which layer is kept still depends on
// worker scheduling and on how many restarts fit in timeLimit. obstacle, if
// non-nil, is a keep-out
// rectangle no placement may overlap.
//
// SolveLayer never reports infeasibility as an error: an empty layer is
// always a valid result and is returned when the time budget expires
// before any feasible placement is found. Only malformed inputs return
// model.ErrInvalidInput.
func SolveLayer(pallet model.Pallet, box model.BoxDims, timeLimit time.Duration, workers int, seed int64, obstacle *model.Obstacle) (model.Layer, error) {
	if pallet.L <= 0 || pallet.W <= 0 || box.L <= 0 || box.W <= 0 {
		return nil, fmt.Errorf("%w: pallet and box dimensions must be positive", model.ErrInvalidInput)
	}
	if box.L > pallet.L || box.W > pallet.W {
		return nil, fmt.Errorf("%w: box does not fit pallet", model.ErrInvalidInput)
	}
	if timeLimit <= 0 {
		return nil, fmt.Errorf("%w: time limit must be positive", model.ErrInvalidInput)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("%w: worker count must be positive", model.ErrInvalidInput)
	}

	baseFree, err := initialFreeRects(pallet, obstacle)
	if err != nil {
		return nil, err
	}
	if len(baseFree) == 0 {
		return model.Layer{}, nil
	}

	maxN := (pallet.L * pallet.W) / (box.L * box.W)
	if maxN <= 0 {
		return model.Layer{}, nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeLimit)
	defer cancel()

	var mu sync.Mutex
	var best model.Layer

	var wg sync.WaitGroup
	for wIdx := 0; wIdx < workers; wIdx++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(workerSeed))
			for attempt := 0; ; attempt++ {
				select {
				case <-ctx.Done():
					return
				default:
				}

				candidate := randomizedPack(baseFree, box, rng)

				mu.Lock()
				if len(candidate) > len(best) {
					best = candidate
				}
				reachedMax := len(best) >= maxN
				mu.Unlock()

				if reachedMax {
					cancel()
					return
				}
			}
		}(seed + int64(wIdx)*1_000_003)
	}
	wg.Wait()

	if best == nil {
		best = model.Layer{}
	}
	return best, nil
}

// initialFreeRects returns the free rectangles available for packing: the
// full pallet, minus the obstacle if one is given. This is the same
// rectangle-subtraction trick a guillotine packer uses to carve exclusion
// zones (stock tabs, clamp zones) out of its starting free rectangle.
func initialFreeRects(pallet model.Pallet, obstacle *model.Obstacle) ([]rect, error) {
	base := rect{0, 0, pallet.L, pallet.W}
	if obstacle == nil {
		return []rect{base}, nil
	}
	if obstacle.W <= 0 || obstacle.H <= 0 {
		return nil, fmt.Errorf("%w: obstacle must have positive size", model.ErrInvalidInput)
	}
	excl := rect{obstacle.X, obstacle.Y, obstacle.W, obstacle.H}
	return subtractRect(base, excl), nil
}

// randomizedPack runs one greedy fill of free (a copy is made internally)
// using a best-area-fit heuristic, randomizing the orientation preference
// and the free-rectangle tie-break order so that repeated calls with
// different rng streams explore different maximal packings.
func randomizedPack(free []rect, box model.BoxDims, rng *rand.Rand) model.Layer {
	p := &packer{freeRects: append([]rect(nil), free...)}
	preferRotated := rng.Intn(2) == 1

	var layer model.Layer
	nextID := 0
	for {
		var ok bool
		var x, y int
		var rotated bool

		if box.L == box.W {
			ok, x, y = p.insert(box.L, box.W, rng)
		} else if preferRotated {
			if ok, x, y = p.insert(box.W, box.L, rng); ok {
				rotated = true
			} else {
				ok, x, y = p.insert(box.L, box.W, rng)
			}
		} else {
			if ok, x, y = p.insert(box.L, box.W, rng); !ok {
				if ok, x, y = p.insert(box.W, box.L, rng); ok {
					rotated = true
				}
			}
		}

		if !ok {
			break
		}

		w, h := box.L, box.W
		rot := model.Rotation0
		if rotated {
			w, h = box.W, box.L
			rot = model.Rotation90
		}
		layer = append(layer, model.Placement{
			ID:       nextID,
			X:        x,
			Y:        y,
			Width:    w,
			Height:   h,
			Rotation: rot,
		})
		nextID++
	}
	if layer == nil {
		layer = model.Layer{}
	}
	return layer
}

// packer implements a maximal-rectangles best-area-fit packer: on each
// insertion it removes every free rectangle overlapping the placed piece
// and regenerates the maximal non-overlapping remainder, then prunes
// rectangles fully contained in another. This yields larger reusable free
// areas than a pure guillotine split, which matters here because the same
// box size is reinserted many times.
type packer struct {
	freeRects []rect
}

// insert places a w x h piece using best-area-fit among rectangles that
// admit it; when rng is non-nil and several candidates share the best
// area-fit value it breaks the tie randomly instead of by index,
// which is what lets repeated randomizedPack calls diversify.
func (p *packer) insert(w, h int, rng *rand.Rand) (bool, int, int) {
	bestIdx := -1
	bestAreaFit := -1
	var ties []int

	for i, r := range p.freeRects {
		if w <= r.w && h <= r.h {
			areaFit := r.w*r.h - w*h
			switch {
			case bestIdx < 0 || areaFit < bestAreaFit:
				bestIdx = i
				bestAreaFit = areaFit
				ties = ties[:0]
				ties = append(ties, i)
			case areaFit == bestAreaFit:
				ties = append(ties, i)
			}
		}
	}
	if bestIdx < 0 {
		return false, 0, 0
	}
	if len(ties) > 1 && rng != nil {
		bestIdx = ties[rng.Intn(len(ties))]
	}

	chosen := p.freeRects[bestIdx]
	placed := rect{chosen.x, chosen.y, w, h}
	p.splitAroundPlacement(placed)
	return true, chosen.x, chosen.y
}

func (p *packer) splitAroundPlacement(placed rect) {
	var next []rect
	for _, r := range p.freeRects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}
		if placed.x > r.x {
			next = append(next, rect{r.x, r.y, placed.x - r.x, r.h})
		}
		if placed.x+placed.w < r.x+r.w {
			next = append(next, rect{placed.x + placed.w, r.y, (r.x + r.w) - (placed.x + placed.w), r.h})
		}
		if placed.y > r.y {
			next = append(next, rect{r.x, r.y, r.w, placed.y - r.y})
		}
		if placed.y+placed.h < r.y+r.h {
			next = append(next, rect{r.x, placed.y + placed.h, r.w, (r.y + r.h) - (placed.y + placed.h)})
		}
	}
	p.freeRects = pruneContained(next)
}

func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.x+outer.w >= inner.x+inner.w && outer.y+outer.h >= inner.y+inner.h
}

func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// subtractRect subtracts sub from base, returning up to four remaining
// rectangles. Classic rectangle-subtraction, generalized to int arithmetic.
func subtractRect(base, sub rect) []rect {
	ix := max(base.x, sub.x)
	iy := max(base.y, sub.y)
	iw := min(base.x+base.w, sub.x+sub.w) - ix
	ih := min(base.y+base.h, sub.y+sub.h) - iy
	if iw <= 0 || ih <= 0 {
		return []rect{base}
	}

	var result []rect
	if ix > base.x {
		result = append(result, rect{base.x, base.y, ix - base.x, base.h})
	}
	if ix+iw < base.x+base.w {
		result = append(result, rect{ix + iw, base.y, (base.x + base.w) - (ix + iw), base.h})
	}
	left, right := max(base.x, ix), min(base.x+base.w, ix+iw)
	if iy > base.y {
		result = append(result, rect{left, base.y, right - left, iy - base.y})
	}
	if iy+ih < base.y+base.h {
		result = append(result, rect{left, iy + ih, right - left, (base.y + base.h) - (iy + ih)})
	}

	var filtered []rect
	for _, r := range result {
		if r.w > 0 && r.h > 0 {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
