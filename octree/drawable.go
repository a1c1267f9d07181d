package octree

import "github.com/aukilabs/raido/geom"

// Drawable flag bits. Queries match a drawable when the query's flag mask and
// the drawable's flags share at least one bit.
const (
	DrawableGeometry uint8 = 1 << 0
	DrawableLight    uint8 = 1 << 1
	DrawableZone     uint8 = 1 << 2

	DrawableAny uint8 = 0xff
)

// DefaultViewMask matches every view.
const DefaultViewMask uint32 = 0xffffffff

// FrameInfo describes the frame an update cycle runs for.
type FrameInfo struct {
	FrameNumber uint32
	TimeStep    float32
}

// Drawable is the capability an object exposes to be indexed by an Octree.
// The octree never inspects the object beyond these methods: it reads the
// world bounding box the object maintains for itself, calls Update once per
// frame while the object is queued (possibly from a worker goroutine), and
// keeps its placement bookkeeping through the octant and update-queued
// accessors.
type Drawable interface {
	// WorldBoundingBox returns the object's bounds in world space.
	WorldBoundingBox() geom.BoundingBox

	// DrawableFlags returns the kind bits used for query filtering.
	DrawableFlags() uint8

	// ViewMask returns the view bits used for query filtering.
	ViewMask() uint32

	// IsOccludee reports whether the object may be hidden by occlusion.
	// Non-occludees are always kept at the root octant so that subtree
	// pruning can never cull them away.
	IsOccludee() bool

	// Update recomputes per-frame derived state, typically the world bounding
	// box. It runs during the parallel update phase and must not touch other
	// drawables or the octree.
	Update(frame *FrameInfo)

	// ProcessRayQuery performs the object-level ray test and appends
	// qualifying hits to results.
	ProcessRayQuery(query *RayQuery, results *[]RayQueryResult)

	// Octant and SetOctant hold the object's current placement.
	Octant() *Octant
	SetOctant(octant *Octant)

	// UpdateQueued and SetUpdateQueued hold the reinsertion-pending flag that
	// prevents duplicate queueing.
	UpdateQueued() bool
	SetUpdateQueued(queued bool)
}

// BaseDrawable carries the octree bookkeeping plus the common accessors.
// Concrete drawables embed it and implement ProcessRayQuery (usually by
// delegating to ProcessRayQueryBoundingBox), overriding Update when they have
// per-frame state to recompute.
type BaseDrawable struct {
	worldBox     geom.BoundingBox
	flags        uint8
	viewMask     uint32
	occludee     bool
	octant       *Octant
	updateQueued bool
}

// NewBaseDrawable returns bookkeeping state for a drawable of the given kind,
// visible in every view and subject to occlusion.
func NewBaseDrawable(flags uint8) BaseDrawable {
	return BaseDrawable{
		flags:    flags,
		viewMask: DefaultViewMask,
		occludee: true,
	}
}

func (d *BaseDrawable) WorldBoundingBox() geom.BoundingBox {
	return d.worldBox
}

// SetWorldBoundingBox stores the box the owning object computed. The octree
// does not notice the change by itself: pair this with Octree.QueueUpdate, or
// set it from within Update during the drain.
func (d *BaseDrawable) SetWorldBoundingBox(box geom.BoundingBox) {
	d.worldBox = box
}

func (d *BaseDrawable) DrawableFlags() uint8 {
	return d.flags
}

func (d *BaseDrawable) SetDrawableFlags(flags uint8) {
	d.flags = flags
}

func (d *BaseDrawable) ViewMask() uint32 {
	return d.viewMask
}

func (d *BaseDrawable) SetViewMask(mask uint32) {
	d.viewMask = mask
}

func (d *BaseDrawable) IsOccludee() bool {
	return d.occludee
}

func (d *BaseDrawable) SetOccludee(occludee bool) {
	d.occludee = occludee
}

// Update is a no-op by default.
func (d *BaseDrawable) Update(frame *FrameInfo) {}

func (d *BaseDrawable) Octant() *Octant {
	return d.octant
}

func (d *BaseDrawable) SetOctant(octant *Octant) {
	d.octant = octant
}

func (d *BaseDrawable) UpdateQueued() bool {
	return d.updateQueued
}

func (d *BaseDrawable) SetUpdateQueued(queued bool) {
	d.updateQueued = queued
}

// ProcessRayQueryBoundingBox is the bounding-box-level ray response: a hit at
// the distance the ray enters d's world box, with the normal opposing the ray.
// Drawables without finer geometry use it as their whole ProcessRayQuery
// implementation.
func ProcessRayQueryBoundingBox(d Drawable, query *RayQuery, results *[]RayQueryResult) {
	distance := query.Ray.HitDistance(d.WorldBoundingBox())
	if distance < query.MaxDistance {
		*results = append(*results, RayQueryResult{
			Position: query.Ray.At(distance),
			Normal:   query.Ray.Direction.Mul(-1),
			Distance: distance,
			Drawable: d,
		})
	}
}
