// Package xtree turns an implicit-function expression tree into a
// triangle mesh (3D) or a set of contour polylines (2D) via adaptive
// octree/quadtree dual contouring.
package xtree

import (
	"sync"

	"github.com/arl/xtree/cell"
	"github.com/arl/xtree/eval"
	"github.com/arl/xtree/mesh"
	"github.com/arl/xtree/region"
	"github.com/arl/xtree/walk"
)

// Render builds a mesh (region.Dims == 3) or a set of contours
// (region.Dims == 2) from tree over region, per spec.md §6.
//
// Exactly one of the returned Mesh/Contours is non-nil on success. When
// multithread is true, the top-level region is split into 1<<Dims
// subregions, each built and walked on its own goroutine against its own
// Evaluator (spec.md §5: Evaluator instances are not safe for concurrent
// use). The subregions' outputs are then concatenated; vertices are only
// deduplicated within a subregion, not across the seams between them.
func Render(tree *eval.Expr, reg region.Region, flags Flags, multithread bool, cfg Config) (*Mesh, *Contours, error) {
	if tree == nil {
		return nil, nil, Failure | InvalidParam
	}
	if reg.Dims != 2 && reg.Dims != 3 {
		return nil, nil, Failure | InvalidDims
	}

	ctx := NewBuildContext(true)
	defer ctx.StopTimer(TimerTotal)
	ctx.StartTimer(TimerTotal)

	sub := reg.PowerOfTwo()
	params := cfg.buildParams(flags)

	jobs := topLevelSplit(sub, multithread)

	if reg.Dims == 3 {
		m := buildMeshJobs(jobs, tree, params, ctx)
		return &m, nil, nil
	}
	c := buildContourJobs(jobs, tree, params, ctx)
	return nil, &c, nil
}

// topLevelSplit returns the subregions Render builds independently: a
// single job (the whole region) when serial, or its 1<<Dims children
// when multithread and the region can still be split evenly.
func topLevelSplit(sub region.Subregion, multithread bool) []region.Subregion {
	if !multithread || !sub.CanSplitEven() {
		return []region.Subregion{sub}
	}
	children := sub.SplitEven()
	return children[:1<<uint(sub.Dims())]
}

func buildMeshJobs(jobs []region.Subregion, tree *eval.Expr, params cell.BuildParams, ctx *BuildContext) Mesh {
	results := make([]mesh.Mesh, len(jobs))
	workerCtx := make([]*BuildContext, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, sub region.Subregion) {
			defer wg.Done()
			// Each worker gets its own BuildContext: the timers/log it
			// carries are not safe to share across goroutines (spec.md §5).
			wctx := NewBuildContext(true)
			workerCtx[i] = wctx
			e := eval.NewEvaluator(tree, params.BatchWidth)
			wctx.StartTimer(TimerSubdivide)
			root := cell.Populate(e, sub, params)
			wctx.StopTimer(TimerSubdivide)
			wctx.StartTimer(TimerFinalize)
			root.Finalize(e, params)
			wctx.StopTimer(TimerFinalize)
			wctx.StartTimer(TimerWalk)
			results[i] = walk.WalkMesh(root)
			wctx.StopTimer(TimerWalk)
		}(i, j)
	}
	wg.Wait()
	for _, wctx := range workerCtx {
		ctx.merge(wctx)
	}

	var out Mesh
	for _, r := range results {
		offset := len(out.Vertices)
		out.Vertices = append(out.Vertices, r.Vertices...)
		for _, t := range r.Triangles {
			out.Triangles = append(out.Triangles, mesh.Triangle{A: t.A + offset, B: t.B + offset, C: t.C + offset})
		}
	}
	ctx.Progressf("built mesh: %d vertices, %d triangles", len(out.Vertices), len(out.Triangles))
	return out
}

func buildContourJobs(jobs []region.Subregion, tree *eval.Expr, params cell.BuildParams, ctx *BuildContext) Contours {
	var out Contours
	var mu sync.Mutex
	workerCtx := make([]*BuildContext, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, sub region.Subregion) {
			defer wg.Done()
			wctx := NewBuildContext(true)
			workerCtx[i] = wctx
			e := eval.NewEvaluator(tree, params.BatchWidth)
			wctx.StartTimer(TimerSubdivide)
			root := cell.Populate(e, sub, params)
			wctx.StopTimer(TimerSubdivide)
			wctx.StartTimer(TimerFinalize)
			root.Finalize(e, params)
			wctx.StopTimer(TimerFinalize)
			wctx.StartTimer(TimerWalk)
			c := walk.WalkContours(root)
			wctx.StopTimer(TimerWalk)

			mu.Lock()
			out.Polylines = append(out.Polylines, c.Polylines...)
			mu.Unlock()
		}(i, j)
	}
	wg.Wait()
	for _, wctx := range workerCtx {
		ctx.merge(wctx)
	}
	ctx.Progressf("built contours: %d polylines", len(out.Polylines))
	return out
}
