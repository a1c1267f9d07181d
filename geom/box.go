package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the vector type used throughout the index.
type Vec3 = mgl32.Vec3

// Infinity is the float32 infinity, used as the "no hit" ray distance.
var Infinity = float32(math.Inf(1))

// Intersection classifies how a volume relates to a box.
type Intersection int

const (
	Outside Intersection = iota
	Intersects
	Inside
)

func (i Intersection) String() string {
	switch i {
	case Outside:
		return "outside"
	case Intersects:
		return "intersects"
	default:
		return "inside"
	}
}

// BoundingBox is an axis-aligned box described by its two extreme corners.
// Min must be componentwise less than or equal to Max.
type BoundingBox struct {
	Min Vec3
	Max Vec3
}

// NewBoundingBox returns the box spanning min to max.
func NewBoundingBox(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// BoundingBoxForExtents returns the box centered on center with the given
// half-size on each axis.
func BoundingBoxForExtents(center, halfSize Vec3) BoundingBox {
	return BoundingBox{
		Min: center.Sub(halfSize),
		Max: center.Add(halfSize),
	}
}

func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b BoundingBox) HalfSize() Vec3 {
	return b.Size().Mul(0.5)
}

// Merge returns the smallest box containing both b and other.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Vec3{
			min32(b.Min.X(), other.Min.X()),
			min32(b.Min.Y(), other.Min.Y()),
			min32(b.Min.Z(), other.Min.Z()),
		},
		Max: Vec3{
			max32(b.Max.X(), other.Max.X()),
			max32(b.Max.Y(), other.Max.Y()),
			max32(b.Max.Z(), other.Max.Z()),
		},
	}
}

// Translated returns b moved by offset.
func (b BoundingBox) Translated(offset Vec3) BoundingBox {
	return BoundingBox{
		Min: b.Min.Add(offset),
		Max: b.Max.Add(offset),
	}
}

// ContainsPoint reports whether p lies inside b. Points on the boundary count
// as contained.
func (b BoundingBox) ContainsPoint(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Test classifies other against b: Inside when b fully contains other,
// Outside when they do not overlap at all, Intersects otherwise. Touching
// boundaries count as containment.
func (b BoundingBox) Test(other BoundingBox) Intersection {
	for i := 0; i < 3; i++ {
		if other.Max[i] < b.Min[i] || other.Min[i] > b.Max[i] {
			return Outside
		}
	}
	for i := 0; i < 3; i++ {
		if other.Min[i] < b.Min[i] || other.Max[i] > b.Max[i] {
			return Intersects
		}
	}
	return Inside
}

// Contains reports whether b fully contains other.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return b.Test(other) == Inside
}

// Overlaps reports whether b and other share any volume.
func (b BoundingBox) Overlaps(other BoundingBox) bool {
	return b.Test(other) != Outside
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
