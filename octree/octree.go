// Package octree implements a loose octree over moving drawables: a dynamic
// spatial index answering volume-inclusion and ray-intersection queries,
// with a per-frame update cycle that can spread per-drawable work across a
// worker pool.
package octree

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/raido/featureflag"
	"github.com/aukilabs/raido/geom"
	"github.com/aukilabs/raido/workpool"
)

const (
	// DefaultWorldSize is the default root half-extent on each axis.
	DefaultWorldSize float32 = 1000

	// DefaultNumLevels is the default maximum subdivision depth.
	DefaultNumLevels = 8
)

// Options configures an Octree. The zero value gets defaults: bounds of
// ±DefaultWorldSize on every axis, DefaultNumLevels levels, no worker pool,
// no feature flags.
type Options struct {
	Bounds    geom.BoundingBox
	NumLevels int
	Pool      *workpool.Pool
	Flags     featureflag.FeatureFlag
}

// Octree is the root octant of the tree plus the per-frame synchronization
// point. Queries and tree mutation must happen on a single driver goroutine;
// the one exception is QueueUpdate, which is safe from the worker goroutines
// running the parallel update phase.
type Octree struct {
	Octant

	numLevels int
	pool      *workpool.Pool
	flags     featureflag.FeatureFlag

	// mu guards appends to drawableUpdates, nothing else. Tree mutation is
	// kept single-threaded by protocol, not by locking.
	mu              sync.Mutex
	drawableUpdates []Drawable

	rayQueryDrawables  []Drawable
	rayQueryCandidates []rayQueryCandidate
	rayQueryResults    [][]RayQueryResult
}

// New returns an octree with the given options.
func New(opts Options) *Octree {
	bounds := opts.Bounds
	if bounds.Size() == (geom.Vec3{}) {
		bounds = geom.BoundingBox{
			Min: geom.Vec3{-DefaultWorldSize, -DefaultWorldSize, -DefaultWorldSize},
			Max: geom.Vec3{DefaultWorldSize, DefaultWorldSize, DefaultWorldSize},
		}
	}
	numLevels := opts.NumLevels
	if numLevels < 1 {
		numLevels = DefaultNumLevels
	}

	t := &Octree{
		numLevels: numLevels,
		pool:      opts.Pool,
		flags:     opts.Flags,
		// Per-executor scratch buffers for threaded ray queries: workers + the
		// goroutine blocked in Complete.
		rayQueryResults: make([][]RayQueryResult, opts.Pool.Workers()+1),
	}
	t.Octant = Octant{
		level:  0,
		index:  rootIndex,
		parent: nil,
		root:   t,
	}
	t.Octant.initialize(bounds)
	return t
}

// NumLevels returns the maximum subdivision depth.
func (t *Octree) NumLevels() int {
	return t.numLevels
}

// Register indexes a drawable, placing it immediately. Nil drawables and
// drawables already held by an octree are ignored.
func (t *Octree) Register(d Drawable) {
	if d == nil || d.Octant() != nil {
		return
	}
	t.Octant.insert(d)
	octreeDrawables.Inc()
}

// Unregister removes a drawable from the index. Nil drawables and drawables
// not held by this octree are ignored.
func (t *Octree) Unregister(d Drawable) {
	if d == nil {
		return
	}
	octant := d.Octant()
	if octant == nil || octant.Root() != t {
		return
	}

	t.CancelUpdate(d)
	octant.remove(d, true)
	octreeDrawables.Dec()
}

// QueueUpdate marks a drawable for per-frame update and reinsertion during
// the next Update. Duplicate queueing is prevented by the drawable's pending
// flag. Safe to call from worker goroutines during the parallel update phase;
// the append is the only locked operation in the subsystem.
func (t *Octree) QueueUpdate(d Drawable) {
	if d == nil || d.UpdateQueued() {
		return
	}

	t.mu.Lock()
	t.drawableUpdates = append(t.drawableUpdates, d)
	t.mu.Unlock()

	d.SetUpdateQueued(true)
}

// CancelUpdate removes a drawable from the pending queue.
func (t *Octree) CancelUpdate(d Drawable) {
	if d == nil || !d.UpdateQueued() {
		return
	}

	t.mu.Lock()
	for i, pending := range t.drawableUpdates {
		if pending == d {
			t.drawableUpdates = append(t.drawableUpdates[:i], t.drawableUpdates[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	d.SetUpdateQueued(false)
}

// Update drains the pending queue in two phases: a parallel per-drawable
// update across the worker pool plus the calling goroutine, then a
// single-threaded reinsertion of every drawable that no longer fits its
// octant. With nothing pending it performs no tree mutation at all.
func (t *Octree) Update(frame *FrameInfo) {
	if len(t.drawableUpdates) == 0 {
		return
	}

	octreeUpdates.Inc()
	start := time.Now()

	t.updateDrawables(frame)
	t.reinsertDrawables()

	octreeUpdateLatency.Observe(time.Since(start).Seconds())
}

func (t *Octree) updateDrawables(frame *FrameInfo) {
	updates := t.drawableUpdates

	workers := t.pool.Workers()
	if workers == 0 || t.flags.IsSet(featureflag.FlagDisableThreadedUpdate) {
		for _, d := range updates {
			d.Update(frame)
		}
		return
	}

	// Split the pending list into contiguous slices, one per executor; the
	// last slice takes the remainder. Drawables never read each other's
	// state during Update, so ordering across slices is irrelevant.
	numTasks := workers + 1
	perTask := len(updates) / numTasks
	if perTask < 1 {
		perTask = 1
	}

	for i := 0; i < numTasks && len(updates) > 0; i++ {
		slice := updates
		if i < numTasks-1 && len(slice) > perTask {
			slice = slice[:perTask]
		}
		updates = updates[len(slice):]

		t.pool.Submit(func(workerIndex int) {
			for _, d := range slice {
				d.Update(frame)
			}
		})
	}

	t.pool.Complete()
}

func (t *Octree) reinsertDrawables() {
	verify := t.flags.IsSet(featureflag.FlagConsistencyChecks)

	for _, d := range t.drawableUpdates {
		d.SetUpdateQueued(false)

		octant := d.Octant()
		box := d.WorldBoundingBox()

		// Skip drawables that were detached, or that belong to another tree
		// after a resize.
		if octant == nil || octant.Root() != t {
			continue
		}
		// Fast path: still fully inside the current octant. Non-occludees are
		// always re-evaluated so the root keeps force-capturing them.
		if d.IsOccludee() && octant.cullingBox.Test(box) == geom.Inside && octant.checkFit(box) {
			continue
		}

		t.Octant.insert(d)
		octreeReinsertions.Inc()

		if verify {
			if octant := d.Octant(); octant != &t.Octant && octant.cullingBox.Test(box) != geom.Inside {
				logs.Warn(errors.New("drawable is not fully inside its octant's culling bounds").
					WithTag("drawable_box_min", box.Min).
					WithTag("drawable_box_max", box.Max).
					WithTag("octant_box_min", octant.cullingBox.Min).
					WithTag("octant_box_max", octant.cullingBox.Max))
			}
		}
	}

	t.drawableUpdates = t.drawableUpdates[:0]
}

// SetSize discards the whole subtree and reinitializes the root region and
// depth. Drawables held by discarded octants are detached, not reinserted:
// the caller re-registers whatever should survive the resize. Drawables held
// directly on the root stay.
func (t *Octree) SetSize(bounds geom.BoundingBox, numLevels int) {
	for i, child := range t.Octant.children {
		if child != nil {
			child.detach()
			t.Octant.children[i] = nil
		}
	}

	t.Octant.initialize(bounds)
	t.Octant.numDrawables = len(t.Octant.drawables)
	if numLevels < 1 {
		numLevels = 1
	}
	t.numLevels = numLevels

	logs.WithTag("bounds_min", bounds.Min).
		WithTag("bounds_max", bounds.Max).
		WithTag("num_levels", numLevels).
		Debug("octree resized")
}

// GetDrawables runs a volume query, collecting results into the query
// visitor.
func (t *Octree) GetDrawables(query OctreeQuery) {
	t.Octant.getDrawables(query, false)
}
