package octree

import "github.com/aukilabs/raido/geom"

const numChildren = 8

// rootIndex marks the root octant, which occupies no slot in a parent.
const rootIndex = -1

// Octant is a node of the tree covering a cuboid region, lazily subdivided
// into up to 8 children. Drawables whose boxes are too large for any child, or
// that straddle the child margins, are held directly on the octant.
//
// The culling box is the world box expanded by half the octant's half-size on
// every axis. It is the authoritative containment volume: the hysteresis
// margin keeps drawables sitting near a boundary from bouncing between
// neighboring octants on every small move.
type Octant struct {
	worldBox   geom.BoundingBox
	cullingBox geom.BoundingBox
	center     geom.Vec3
	halfSize   geom.Vec3

	level     int
	index     int
	parent    *Octant
	root      *Octree
	children  [numChildren]*Octant
	drawables []Drawable

	// numDrawables counts the drawables in this octant and all descendants.
	// The branch is deleted when it reaches zero.
	numDrawables int
}

func newOctant(box geom.BoundingBox, level int, parent *Octant, root *Octree, index int) *Octant {
	o := &Octant{
		level:  level,
		index:  index,
		parent: parent,
		root:   root,
	}
	o.initialize(box)
	return o
}

func (o *Octant) initialize(box geom.BoundingBox) {
	o.worldBox = box
	o.center = box.Center()
	o.halfSize = box.HalfSize()
	o.cullingBox = geom.BoundingBox{
		Min: box.Min.Sub(o.halfSize),
		Max: box.Max.Add(o.halfSize),
	}
}

// WorldBoundingBox returns the octant's tight region.
func (o *Octant) WorldBoundingBox() geom.BoundingBox {
	return o.worldBox
}

// CullingBox returns the expanded containment volume.
func (o *Octant) CullingBox() geom.BoundingBox {
	return o.cullingBox
}

// Level returns the octant's depth, 0 for the root.
func (o *Octant) Level() int {
	return o.level
}

// Root returns the owning octree, or nil once the octant has been detached by
// a resize.
func (o *Octant) Root() *Octree {
	return o.root
}

// NumDrawables returns the number of drawables held by the octant's subtree.
func (o *Octant) NumDrawables() int {
	return o.numDrawables
}

func (o *Octant) isRoot() bool {
	return o.parent == nil
}

// insert places the drawable at this octant or recursively in a child. The
// root additionally force-captures non-occludees and boxes poking outside the
// octree bounds, so drawables are never dropped and subtree pruning can never
// hide an always-significant object.
func (o *Octant) insert(d Drawable) {
	box := d.WorldBoundingBox()

	var insertHere bool
	if o.isRoot() {
		insertHere = !d.IsOccludee() || o.cullingBox.Test(box) != geom.Inside || o.checkFit(box)
	} else {
		insertHere = o.checkFit(box)
	}

	if insertHere {
		oldOctant := d.Octant()
		if oldOctant != o {
			// Add first, then remove: the drawable count reaching zero
			// deletes the branch the drawable is moving out of.
			o.add(d)
			if oldOctant != nil {
				oldOctant.remove(d, false)
			}
		}
		return
	}

	boxCenter := box.Center()
	index := 0
	if boxCenter.X() >= o.center.X() {
		index |= 1
	}
	if boxCenter.Y() >= o.center.Y() {
		index |= 2
	}
	if boxCenter.Z() >= o.center.Z() {
		index |= 4
	}
	o.getOrCreateChild(index).insert(d)
}

// checkFit reports whether box must stay at this octant. True at the maximum
// split level, when the box spans at least half the octant on any axis, or
// when the box pokes outside the margin that guarantees full containment in a
// child's culling box.
func (o *Octant) checkFit(box geom.BoundingBox) bool {
	size := box.Size()
	if o.level >= o.root.numLevels ||
		size.X() >= o.halfSize.X() || size.Y() >= o.halfSize.Y() || size.Z() >= o.halfSize.Z() {
		return true
	}

	for i := 0; i < 3; i++ {
		if box.Min[i] <= o.worldBox.Min[i]-0.5*o.halfSize[i] ||
			box.Max[i] >= o.worldBox.Max[i]+0.5*o.halfSize[i] {
			return true
		}
	}
	return false
}

func (o *Octant) getOrCreateChild(index int) *Octant {
	if child := o.children[index]; child != nil {
		return child
	}

	newMin := o.worldBox.Min
	newMax := o.worldBox.Max
	if index&1 != 0 {
		newMin[0] = o.center[0]
	} else {
		newMax[0] = o.center[0]
	}
	if index&2 != 0 {
		newMin[1] = o.center[1]
	} else {
		newMax[1] = o.center[1]
	}
	if index&4 != 0 {
		newMin[2] = o.center[2]
	} else {
		newMax[2] = o.center[2]
	}

	child := newOctant(geom.BoundingBox{Min: newMin, Max: newMax}, o.level+1, o, o.root, index)
	o.children[index] = child
	return child
}

func (o *Octant) deleteChild(index int) {
	o.children[index] = nil
}

func (o *Octant) add(d Drawable) {
	d.SetOctant(o)
	o.drawables = append(o.drawables, d)
	o.incDrawableCount()
}

// remove unlinks the drawable. resetOctant clears its octant back-reference;
// a move between octants passes false because add already repointed it.
func (o *Octant) remove(d Drawable, resetOctant bool) {
	for i, drawable := range o.drawables {
		if drawable == d {
			o.drawables = append(o.drawables[:i], o.drawables[i+1:]...)
			if resetOctant {
				d.SetOctant(nil)
			}
			o.decDrawableCount()
			return
		}
	}
}

func (o *Octant) incDrawableCount() {
	o.numDrawables++
	if o.parent != nil {
		o.parent.incDrawableCount()
	}
}

func (o *Octant) decDrawableCount() {
	parent := o.parent

	o.numDrawables--
	if o.numDrawables == 0 && parent != nil {
		parent.deleteChild(o.index)
	}

	if parent != nil {
		parent.decDrawableCount()
	}
}

// detach severs the subtree from its octree, clearing the octant
// back-reference of every drawable it held. Used by SetSize.
func (o *Octant) detach() {
	o.root = nil
	for _, d := range o.drawables {
		d.SetOctant(nil)
	}
	o.drawables = nil
	o.numDrawables = 0

	for i, child := range o.children {
		if child != nil {
			child.detach()
			o.children[i] = nil
		}
	}
}

// getDrawables runs the volume query traversal. inside propagates an
// ancestor's full-containment result downward so descendants skip their box
// tests; Outside prunes the whole subtree.
func (o *Octant) getDrawables(query OctreeQuery, inside bool) {
	if !o.isRoot() {
		switch query.TestOctant(o.cullingBox, inside) {
		case geom.Inside:
			inside = true
		case geom.Outside:
			return
		}
	}

	if len(o.drawables) > 0 {
		query.TestDrawables(o.drawables, inside)
	}

	for _, child := range o.children {
		if child != nil {
			child.getDrawables(query, inside)
		}
	}
}

// raycast tests every contained drawable passing the query filter, pruning
// octants whose culling box lies beyond the query's maximum distance.
func (o *Octant) raycast(query *RayQuery) {
	if query.Ray.HitDistance(o.cullingBox) >= query.MaxDistance {
		return
	}

	for _, d := range o.drawables {
		if d.DrawableFlags()&query.DrawableFlags != 0 && d.ViewMask()&query.ViewMask != 0 {
			d.ProcessRayQuery(query, &query.Result)
		}
	}

	for _, child := range o.children {
		if child != nil {
			child.raycast(query)
		}
	}
}

// raycastCandidates is the broad pass: it collects filtered drawables without
// touching per-object geometry, for the threaded and nearest-hit paths.
func (o *Octant) raycastCandidates(query *RayQuery, candidates *[]Drawable) {
	if query.Ray.HitDistance(o.cullingBox) >= query.MaxDistance {
		return
	}

	for _, d := range o.drawables {
		if d.DrawableFlags()&query.DrawableFlags != 0 && d.ViewMask()&query.ViewMask != 0 {
			*candidates = append(*candidates, d)
		}
	}

	for _, child := range o.children {
		if child != nil {
			child.raycastCandidates(query, candidates)
		}
	}
}
