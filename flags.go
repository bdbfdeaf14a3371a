package xtree

import "github.com/arl/xtree/cell"

// Flags controls optional Render behavior.
type Flags = cell.Flags

// Render flags.
const (
	// FlagNoJitter disables the extra jittered Hermite samples normally
	// taken around each edge intersection (spec.md §4.5), trading some
	// vertex placement accuracy for fully deterministic output.
	FlagNoJitter = cell.FlagNoJitter
	// FlagCollapse enables branch simplification during finalize
	// (spec.md §4.7).
	FlagCollapse = cell.FlagCollapse
)
