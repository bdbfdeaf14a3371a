package xtree

import "github.com/arl/xtree/cell"

// Config carries every tunable knob of a Render call, in YAML form so
// `xtree config`/`xtree info` can write and read it back (spec.md §9's
// Open Question resolution: SEARCH_COUNT, JITTER_COUNT and the batch
// width N are configuration, not compile-time constants).
type Config struct {
	// SearchCount sets the edge-crossing search effort (spec.md §4.5):
	// each sign-changing cell edge gets SearchCount/4 N-way refinement
	// passes (at least one).
	SearchCount int `yaml:"search_count"`
	// JitterCount is the number of Hermite samples (the zero crossing
	// plus JitterCount-1 jittered points) folded into a cell's QEF per
	// edge intersection.
	JitterCount int `yaml:"jitter_count"`
	// BatchWidth is the number of points evaluated together in one
	// Evaluator call.
	BatchWidth int `yaml:"batch_width"`
	// RankThreshold is the fraction of the largest eigenvalue below
	// which a QEF singular value is treated as zero (rank deficient).
	RankThreshold float64 `yaml:"rank_threshold"`
	// CollapseErrorThreshold is the maximum QEF residual a branch
	// collapse (spec.md §4.7) may introduce.
	CollapseErrorThreshold float64 `yaml:"collapse_error_threshold"`
}

// DefaultConfig returns the spec's documented defaults: SearchCount 16,
// JitterCount 8, BatchWidth 16, and the branch-collapse residual
// threshold fixed at 1e-8 by spec.md §4.7.
func DefaultConfig() Config {
	return Config{
		SearchCount:            16,
		JitterCount:            8,
		BatchWidth:             16,
		RankThreshold:          0.1,
		CollapseErrorThreshold: 1e-8,
	}
}

// buildParams converts Config and Flags into the cell package's
// BuildParams, the plain-scalar form cell.Populate/Finalize consume to
// stay free of an import cycle back up to this package.
func (c Config) buildParams(flags Flags) cell.BuildParams {
	return cell.BuildParams{
		SearchCount:            c.SearchCount,
		JitterCount:            c.JitterCount,
		BatchWidth:             c.BatchWidth,
		RankThreshold:          c.RankThreshold,
		CollapseErrorThreshold: c.CollapseErrorThreshold,
		Flags:                  flags,
	}
}
