package beidou

import "github.com/beidougrid/codec/internal/grid"

// InvalidArgumentError, InvalidCodeError and UnsupportedPolarError are
// aliases of the engine's error types rather than a second, duplicate
// set: internal/grid is part of this module, so there is exactly one
// definition of each error kind, re-exported here for callers who only
// import pkg/beidou.
type (
	InvalidArgumentError = grid.InvalidArgumentError
	InvalidCodeError      = grid.InvalidCodeError
	UnsupportedPolarError = grid.UnsupportedPolarError
)
