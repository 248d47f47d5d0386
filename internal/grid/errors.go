// Package grid implements the GB/T 39409-2020 BeiDou Grid Location Code
// hierarchical cell model: per-level constants, hemisphere classification,
// the 2D/3D encode and decode state machines, and child-cell enumeration.
//
// The package is the unexported engine behind github.com/beidougrid/codec/pkg/beidou;
// callers should use that package's Codec rather than importing grid directly.
package grid

import "fmt"

// InvalidArgumentError reports a caller-supplied value outside its valid
// domain: a NaN/Inf coordinate, a level outside [1,10], or an inverted
// range (hMin > hMax).
type InvalidArgumentError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// InvalidCodeError reports a code string that cannot be parsed: wrong
// length, an unparsable fragment, or a Z-order value outside the tabled
// set for its level.
type InvalidCodeError struct {
	Code   string
	Reason string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code %q: %s", e.Code, e.Reason)
}

// UnsupportedPolarError reports an operation that would require encoding
// or decoding a polar region (|lat| >= 88 deg), which GB/T 39409-2020
// does not define.
type UnsupportedPolarError struct {
	Reason string
}

func (e *UnsupportedPolarError) Error() string {
	return fmt.Sprintf("unsupported polar region: %s", e.Reason)
}
