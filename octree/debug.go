package octree

import "github.com/aukilabs/raido/geom"

// DebugRenderer receives octant bounds for visualization. IsInside lets the
// renderer cull octants outside its own view volume before any geometry is
// emitted.
type DebugRenderer interface {
	IsInside(box geom.BoundingBox) bool
	AddBoundingBox(box geom.BoundingBox, depthTest bool)
}

// DrawDebugGeometry emits the bounds of every live octant the renderer
// considers visible.
func (o *Octant) DrawDebugGeometry(debug DebugRenderer, depthTest bool) {
	if debug == nil || !debug.IsInside(o.worldBox) {
		return
	}

	debug.AddBoundingBox(o.worldBox, depthTest)

	for _, child := range o.children {
		if child != nil {
			child.DrawDebugGeometry(debug, depthTest)
		}
	}
}

// DebugInfo is a snapshot of the tree's shape.
type DebugInfo struct {
	NumLevels    int
	NumOctants   int
	NumDrawables int
	Min          geom.Vec3
	Max          geom.Vec3
}

// DebugInfo summarizes the tree for debug surfaces.
func (t *Octree) DebugInfo() DebugInfo {
	return DebugInfo{
		NumLevels:    t.numLevels,
		NumOctants:   t.Octant.countOctants(),
		NumDrawables: t.Octant.numDrawables,
		Min:          t.Octant.worldBox.Min,
		Max:          t.Octant.worldBox.Max,
	}
}

func (o *Octant) countOctants() int {
	count := 1
	for _, child := range o.children {
		if child != nil {
			count += child.countOctants()
		}
	}
	return count
}
