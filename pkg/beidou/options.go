package beidou

import "github.com/beidougrid/codec/internal/grid"

// HeightModel selects which of the two non-equivalent height-mapping
// constant sets observed in the standard's reference source an encoder
// or decoder uses. See internal/grid's HeightModel for the formulas.
type HeightModel = grid.HeightModel

const (
	HeightModelRadians = grid.HeightModelRadians
	HeightModelLegacy  = grid.HeightModelLegacy
)

// EncodeOptions configures a Codec. The zero value is DefaultEncodeOptions().
type EncodeOptions struct {
	// HeightModel selects the height mapping variant Encode3D/Decode3D use.
	HeightModel HeightModel
	// Workers bounds the worker pool EncodeMany and RangeQuery fan out
	// across. Zero means runtime.GOMAXPROCS(0).
	Workers int
	// Cache, if non-nil, memoizes decode results keyed by code string,
	// both for the Codec's Decode2D/Decode3D calls and for the candidate
	// decodes of Find2D/Find3D. When nil, nothing is cached.
	Cache *Cache
}

// DefaultEncodeOptions returns the options a zero-argument Codec uses:
// the radians height model, GOMAXPROCS workers, and no cache.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{HeightModel: HeightModelRadians}
}
