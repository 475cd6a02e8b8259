package edwards25519

import (
	"sync"

	"gitlab.com/yawning/edwards25519-core.git/scalar"
)

// defaultWindow is the window width used when callers do not request one
// explicitly.
const defaultWindow = 4

// PrecomputeTable holds, for a fixed base point B and window width W, the
// (2^W - 1) * ceil(256/W) precomputed multiples
//
//	{ k * (2^(W*i)) * B : i = 0..ceil(256/W)-1, k = 1..2^W-1 }
//
// used by Multiply to perform base-point scalar multiplication without any
// doublings at use time (the doublings are baked into the table at
// construction time).
type PrecomputeTable struct {
	w          int
	numWindows int
	// entries[i][k-1] = k * (2^(W*i)) * base
	entries [][]*ExtendedPoint
}

// W reports the table's window width.
func (t *PrecomputeTable) W() int { return t.w }

// buildPrecomputeTable constructs the table for the given base point and
// window width from scratch.
func buildPrecomputeTable(base *ExtendedPoint, w int) *PrecomputeTable {
	if w < 1 {
		panic("edwards25519: window width must be >= 1")
	}
	numWindows := (256 + w - 1) / w
	digitCount := (1 << uint(w)) - 1

	t := &PrecomputeTable{w: w, numWindows: numWindows}
	t.entries = make([][]*ExtendedPoint, numWindows)

	windowBase := new(ExtendedPoint).Set(base)
	for i := 0; i < numWindows; i++ {
		row := make([]*ExtendedPoint, digitCount)
		row[0] = new(ExtendedPoint).Set(windowBase)
		for k := 1; k < digitCount; k++ {
			row[k] = new(ExtendedPoint).Add(row[k-1], windowBase)
		}
		t.entries[i] = row

		if i != numWindows-1 {
			next := new(ExtendedPoint).Set(windowBase)
			for b := 0; b < w; b++ {
				next.Double(next)
			}
			windowBase = next
		}
	}
	return t
}

var (
	precomputeMu    sync.RWMutex
	precomputeCache = map[string]*PrecomputeTable{}
)

func cacheKey(base *ExtendedPoint, w int) string {
	enc := base.ToAffine().ToRawBytes()
	key := make([]byte, len(enc)+1)
	copy(key, enc)
	key[len(enc)] = byte(w)
	return string(key)
}

// tableFor returns the cached PrecomputeTable for (base, w), building and
// caching it on first use. Concurrent callers building the same table race
// harmlessly: they compute byte-identical tables and the map converges to
// one of them.
func tableFor(base *ExtendedPoint, w int) *PrecomputeTable {
	key := cacheKey(base, w)

	precomputeMu.RLock()
	t, ok := precomputeCache[key]
	precomputeMu.RUnlock()
	if ok {
		return t
	}

	t = buildPrecomputeTable(base, w)

	precomputeMu.Lock()
	precomputeCache[key] = t
	precomputeMu.Unlock()
	return t
}

// Precompute explicitly (re)builds and caches the table for (base, w),
// replacing any table already cached for that (point, w) pair. The
// replacement is published by a single map write under the cache lock, so
// concurrent readers observe either the old table or the fully-built new
// one, never a torn one. This is a test-only / opt-in operation: ordinary
// callers never need it, since Multiply builds and caches tables lazily.
func Precompute(w int, base *ExtendedPoint) *PrecomputeTable {
	key := cacheKey(base, w)
	t := buildPrecomputeTable(base, w)

	precomputeMu.Lock()
	precomputeCache[key] = t
	precomputeMu.Unlock()
	return t
}

// Multiply sets e = k*base using the windowed base-point table at the
// default window width (W=4), building and caching the table on first use,
// and returns e. k is assumed already reduced mod the group order.
func (e *ExtendedPoint) Multiply(k *scalar.Scalar, base *ExtendedPoint) *ExtendedPoint {
	return e.MultiplyWithWindow(k, base, defaultWindow)
}

// MultiplyWithWindow is Multiply with an explicit window width w (e.g. 8 for
// roughly 2x the speed of w=4 at a larger table-memory cost).
func (e *ExtendedPoint) MultiplyWithWindow(k *scalar.Scalar, base *ExtendedPoint, w int) *ExtendedPoint {
	t := tableFor(base, w)

	acc := NewIdentity()
	kBytes := k.BigInt()
	for i := 0; i < t.numWindows; i++ {
		digit := 0
		for b := 0; b < t.w; b++ {
			bitIndex := i*t.w + b
			if bitIndex >= 256 {
				break
			}
			if kBytes.Bit(bitIndex) == 1 {
				digit |= 1 << uint(b)
			}
		}
		if digit == 0 {
			continue
		}
		acc.Add(acc, t.entries[i][digit-1])
	}
	*e = *acc
	return e
}
