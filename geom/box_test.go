package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoundingBoxBasics(t *testing.T) {
	box := NewBoundingBox(Vec3{-2, -4, -6}, Vec3{2, 4, 6})

	require.Equal(t, Vec3{0, 0, 0}, box.Center())
	require.Equal(t, Vec3{4, 8, 12}, box.Size())
	require.Equal(t, Vec3{2, 4, 6}, box.HalfSize())

	extents := BoundingBoxForExtents(Vec3{1, 1, 1}, Vec3{0.5, 0.5, 0.5})
	require.Equal(t, Vec3{0.5, 0.5, 0.5}, extents.Min)
	require.Equal(t, Vec3{1.5, 1.5, 1.5}, extents.Max)
}

func TestBoundingBoxTest(t *testing.T) {
	box := NewBoundingBox(Vec3{-10, -10, -10}, Vec3{10, 10, 10})

	t.Run("fully contained", func(t *testing.T) {
		inner := NewBoundingBox(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
		require.Equal(t, Inside, box.Test(inner))
		require.True(t, box.Contains(inner))
	})

	t.Run("touching boundary counts as contained", func(t *testing.T) {
		touching := NewBoundingBox(Vec3{-10, -10, -10}, Vec3{-8, -8, -8})
		require.Equal(t, Inside, box.Test(touching))
	})

	t.Run("straddling", func(t *testing.T) {
		straddling := NewBoundingBox(Vec3{9, 0, 0}, Vec3{11, 1, 1})
		require.Equal(t, Intersects, box.Test(straddling))
		require.True(t, box.Overlaps(straddling))
	})

	t.Run("disjoint", func(t *testing.T) {
		outside := NewBoundingBox(Vec3{20, 20, 20}, Vec3{21, 21, 21})
		require.Equal(t, Outside, box.Test(outside))
		require.False(t, box.Overlaps(outside))
	})

	t.Run("larger than the tested box", func(t *testing.T) {
		bigger := NewBoundingBox(Vec3{-20, -20, -20}, Vec3{20, 20, 20})
		require.Equal(t, Intersects, box.Test(bigger))
	})
}

func TestBoundingBoxContainsPoint(t *testing.T) {
	box := NewBoundingBox(Vec3{0, 0, 0}, Vec3{1, 1, 1})

	require.True(t, box.ContainsPoint(Vec3{0.5, 0.5, 0.5}))
	require.True(t, box.ContainsPoint(Vec3{0, 0, 0}))
	require.True(t, box.ContainsPoint(Vec3{1, 1, 1}))
	require.False(t, box.ContainsPoint(Vec3{1.01, 0.5, 0.5}))
	require.False(t, box.ContainsPoint(Vec3{0.5, -0.01, 0.5}))
}

func TestBoundingBoxMerge(t *testing.T) {
	a := NewBoundingBox(Vec3{-1, -1, -1}, Vec3{0, 0, 0})
	b := NewBoundingBox(Vec3{0, 0, 0}, Vec3{2, 3, 4})

	merged := a.Merge(b)
	require.Equal(t, Vec3{-1, -1, -1}, merged.Min)
	require.Equal(t, Vec3{2, 3, 4}, merged.Max)
}

func TestBoundingBoxTranslated(t *testing.T) {
	box := NewBoundingBox(Vec3{0, 0, 0}, Vec3{1, 1, 1}).Translated(Vec3{5, -5, 0})
	require.Equal(t, Vec3{5, -5, 0}, box.Min)
	require.Equal(t, Vec3{6, -4, 1}, box.Max)
}

func TestSphereTest(t *testing.T) {
	sphere := NewSphere(Vec3{0, 0, 0}, 10)

	t.Run("box fully inside", func(t *testing.T) {
		box := NewBoundingBox(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
		require.Equal(t, Inside, sphere.Test(box))
	})

	t.Run("box corner poking out", func(t *testing.T) {
		// The far corner is at distance sqrt(3)*9 > 10.
		box := NewBoundingBox(Vec3{-9, -9, -9}, Vec3{9, 9, 9})
		require.Equal(t, Intersects, sphere.Test(box))
	})

	t.Run("box outside", func(t *testing.T) {
		box := NewBoundingBox(Vec3{20, 0, 0}, Vec3{22, 1, 1})
		require.Equal(t, Outside, sphere.Test(box))
	})
}
