package octree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/aukilabs/raido/geom"
	"github.com/stretchr/testify/require"
)

func randomScene(t *testing.T, tree *Octree, count int, seed int64, halfSize geom.Vec3) []*testDrawable {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	drawables := make([]*testDrawable, count)
	for i := range drawables {
		center := geom.Vec3{
			rng.Float32()*2000 - 1000,
			rng.Float32()*2000 - 1000,
			rng.Float32()*2000 - 1000,
		}
		d := newTestDrawable(center, halfSize)
		d.id = i
		tree.Register(d)
		drawables[i] = d
	}
	return drawables
}

func drawableIDs(t *testing.T, drawables []Drawable) []int {
	t.Helper()

	ids := make([]int, 0, len(drawables))
	for _, d := range drawables {
		ids = append(ids, d.(*testDrawable).id)
	}
	sort.Ints(ids)
	return ids
}

func TestBoxQueryMatchesBruteForce(t *testing.T) {
	tree := newTestOctree()
	drawables := randomScene(t, tree, 1000, 42, geom.Vec3{0.5, 0.5, 0.5})

	// One child octant's region of the default tree.
	region := geom.NewBoundingBox(geom.Vec3{0, 0, 0}, geom.Vec3{1000, 1000, 1000})

	query := NewBoxQuery(region, DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	expected := []int{}
	for _, d := range drawables {
		if region.Overlaps(d.WorldBoundingBox()) {
			expected = append(expected, d.id)
		}
	}

	require.NotEmpty(t, query.Result)
	require.Equal(t, expected, drawableIDs(t, query.Result))
}

func TestBoxQueryCoveringEverything(t *testing.T) {
	tree := newTestOctree()
	drawables := randomScene(t, tree, 200, 3, geom.Vec3{1, 1, 1})

	region := geom.NewBoundingBox(
		geom.Vec3{-2000, -2000, -2000},
		geom.Vec3{2000, 2000, 2000},
	)
	query := NewBoxQuery(region, DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	require.Len(t, query.Result, len(drawables))
}

func TestBoxQueryFiltersByFlagsAndViewMask(t *testing.T) {
	tree := newTestOctree()

	geometry := newTestDrawable(geom.Vec3{10, 10, 10}, geom.Vec3{1, 1, 1})
	light := newTestDrawable(geom.Vec3{12, 10, 10}, geom.Vec3{1, 1, 1})
	light.SetDrawableFlags(DrawableLight)
	hidden := newTestDrawable(geom.Vec3{14, 10, 10}, geom.Vec3{1, 1, 1})
	hidden.SetViewMask(0x2)

	tree.Register(geometry)
	tree.Register(light)
	tree.Register(hidden)

	region := geom.NewBoundingBox(geom.Vec3{0, 0, 0}, geom.Vec3{20, 20, 20})

	lights := NewBoxQuery(region, DrawableLight, DefaultViewMask)
	tree.GetDrawables(lights)
	require.Len(t, lights.Result, 1)
	require.Equal(t, light, lights.Result[0].(*testDrawable))

	masked := NewBoxQuery(region, DrawableAny, 0x1)
	tree.GetDrawables(masked)
	require.Len(t, masked.Result, 2)
	require.NotContains(t, masked.Result, Drawable(hidden))
}

func TestSphereQueryMatchesBruteForce(t *testing.T) {
	tree := newTestOctree()
	drawables := randomScene(t, tree, 500, 11, geom.Vec3{2, 2, 2})

	sphere := geom.NewSphere(geom.Vec3{100, -50, 200}, 300)
	query := NewSphereQuery(sphere, DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	expected := []int{}
	for _, d := range drawables {
		if sphere.Test(d.WorldBoundingBox()) != geom.Outside {
			expected = append(expected, d.id)
		}
	}

	require.NotEmpty(t, query.Result)
	require.Equal(t, expected, drawableIDs(t, query.Result))
}

func TestPointQuery(t *testing.T) {
	tree := newTestOctree()

	containing := newTestDrawable(geom.Vec3{100, 100, 100}, geom.Vec3{5, 5, 5})
	near := newTestDrawable(geom.Vec3{110, 100, 100}, geom.Vec3{2, 2, 2})
	tree.Register(containing)
	tree.Register(near)

	query := NewPointQuery(geom.Vec3{101, 99, 102}, DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	require.Len(t, query.Result, 1)
	require.Equal(t, containing, query.Result[0].(*testDrawable))
}

func TestAllContentQuery(t *testing.T) {
	tree := newTestOctree()
	drawables := randomScene(t, tree, 300, 23, geom.Vec3{1, 1, 1})

	query := NewAllContentQuery(DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	require.Len(t, query.Result, len(drawables))
}

func TestBoxQueryAfterMovement(t *testing.T) {
	tree := newTestOctree()
	drawables := randomScene(t, tree, 300, 99, geom.Vec3{1, 1, 1})

	rng := rand.New(rand.NewSource(100))
	for _, d := range drawables {
		d.velocity = geom.Vec3{
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
			rng.Float32()*100 - 50,
		}
		tree.QueueUpdate(d)
	}
	tree.Update(&FrameInfo{FrameNumber: 1, TimeStep: 1})

	region := geom.NewBoundingBox(geom.Vec3{-500, -500, -500}, geom.Vec3{500, 500, 500})
	query := NewBoxQuery(region, DrawableAny, DefaultViewMask)
	tree.GetDrawables(query)

	expected := []int{}
	for _, d := range drawables {
		if region.Overlaps(d.WorldBoundingBox()) {
			expected = append(expected, d.id)
		}
	}
	require.Equal(t, expected, drawableIDs(t, query.Result))
}
