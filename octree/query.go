package octree

import "github.com/aukilabs/raido/geom"

// OctreeQuery is the visitor driving a volume query. TestOctant classifies an
// octant's culling box against the query volume: Outside prunes the subtree,
// Inside lets descendants skip their box tests. TestDrawables filters and
// collects the drawables of an octant that survived pruning; inside is true
// when an ancestor was already fully contained.
type OctreeQuery interface {
	TestOctant(box geom.BoundingBox, inside bool) geom.Intersection
	TestDrawables(drawables []Drawable, inside bool)
}

// QueryFilter is the drawable-level filter shared by all queries.
type QueryFilter struct {
	DrawableFlags uint8
	ViewMask      uint32
}

func (f QueryFilter) matches(d Drawable) bool {
	return d.DrawableFlags()&f.DrawableFlags != 0 && d.ViewMask()&f.ViewMask != 0
}

func newQueryFilter(flags uint8, viewMask uint32) QueryFilter {
	if flags == 0 {
		flags = DrawableAny
	}
	if viewMask == 0 {
		viewMask = DefaultViewMask
	}
	return QueryFilter{DrawableFlags: flags, ViewMask: viewMask}
}

// BoxQuery collects drawables overlapping an axis-aligned box.
type BoxQuery struct {
	QueryFilter
	Box    geom.BoundingBox
	Result []Drawable
}

// NewBoxQuery returns a box query. Zero flags or view mask mean "match
// everything".
func NewBoxQuery(box geom.BoundingBox, flags uint8, viewMask uint32) *BoxQuery {
	return &BoxQuery{
		QueryFilter: newQueryFilter(flags, viewMask),
		Box:         box,
	}
}

func (q *BoxQuery) TestOctant(box geom.BoundingBox, inside bool) geom.Intersection {
	if inside {
		return geom.Inside
	}
	return q.Box.Test(box)
}

func (q *BoxQuery) TestDrawables(drawables []Drawable, inside bool) {
	for _, d := range drawables {
		if !q.matches(d) {
			continue
		}
		if inside || q.Box.Overlaps(d.WorldBoundingBox()) {
			q.Result = append(q.Result, d)
		}
	}
}

// SphereQuery collects drawables overlapping a sphere.
type SphereQuery struct {
	QueryFilter
	Sphere geom.Sphere
	Result []Drawable
}

func NewSphereQuery(sphere geom.Sphere, flags uint8, viewMask uint32) *SphereQuery {
	return &SphereQuery{
		QueryFilter: newQueryFilter(flags, viewMask),
		Sphere:      sphere,
	}
}

func (q *SphereQuery) TestOctant(box geom.BoundingBox, inside bool) geom.Intersection {
	if inside {
		return geom.Inside
	}
	return q.Sphere.Test(box)
}

func (q *SphereQuery) TestDrawables(drawables []Drawable, inside bool) {
	for _, d := range drawables {
		if !q.matches(d) {
			continue
		}
		if inside || q.Sphere.Test(d.WorldBoundingBox()) != geom.Outside {
			q.Result = append(q.Result, d)
		}
	}
}

// PointQuery collects drawables whose boxes contain a point. A point can
// never fully contain an octant, so TestOctant only ever prunes or descends
// and every drawable box is tested individually.
type PointQuery struct {
	QueryFilter
	Point  geom.Vec3
	Result []Drawable
}

func NewPointQuery(point geom.Vec3, flags uint8, viewMask uint32) *PointQuery {
	return &PointQuery{
		QueryFilter: newQueryFilter(flags, viewMask),
		Point:       point,
	}
}

func (q *PointQuery) TestOctant(box geom.BoundingBox, inside bool) geom.Intersection {
	if box.ContainsPoint(q.Point) {
		return geom.Intersects
	}
	return geom.Outside
}

func (q *PointQuery) TestDrawables(drawables []Drawable, inside bool) {
	for _, d := range drawables {
		if !q.matches(d) {
			continue
		}
		if d.WorldBoundingBox().ContainsPoint(q.Point) {
			q.Result = append(q.Result, d)
		}
	}
}

// AllContentQuery collects every indexed drawable passing the filter.
type AllContentQuery struct {
	QueryFilter
	Result []Drawable
}

func NewAllContentQuery(flags uint8, viewMask uint32) *AllContentQuery {
	return &AllContentQuery{QueryFilter: newQueryFilter(flags, viewMask)}
}

func (q *AllContentQuery) TestOctant(box geom.BoundingBox, inside bool) geom.Intersection {
	return geom.Inside
}

func (q *AllContentQuery) TestDrawables(drawables []Drawable, inside bool) {
	for _, d := range drawables {
		if q.matches(d) {
			q.Result = append(q.Result, d)
		}
	}
}
