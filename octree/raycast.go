package octree

import (
	"sort"

	"github.com/aukilabs/raido/featureflag"
	"github.com/aukilabs/raido/geom"
)

// raycastsPerTask is the per-task granularity of threaded ray queries. A
// query is only dispatched to the pool when the candidate count reaches twice
// this value; below that, inline execution beats dispatch overhead.
const raycastsPerTask = 4

// RayQueryLevel selects the precision of a ray query.
type RayQueryLevel int

const (
	// RayAABB stops at bounding-box hits.
	RayAABB RayQueryLevel = iota

	// RayGeometry asks drawables for object-level intersection tests.
	RayGeometry
)

// RayQueryResult is a single hit, at Distance along the ray.
type RayQueryResult struct {
	Position geom.Vec3
	Normal   geom.Vec3
	Distance float32
	Drawable Drawable
}

// RayQuery describes a ray intersection query. Result is filled by Raycast
// and RaycastSingle in non-decreasing distance order.
type RayQuery struct {
	Ray           geom.Ray
	Level         RayQueryLevel
	MaxDistance   float32
	DrawableFlags uint8
	ViewMask      uint32
	Result        []RayQueryResult
}

// NewRayQuery returns a ray query. A zero max distance means unlimited; zero
// flags or view mask mean "match everything".
func NewRayQuery(ray geom.Ray, level RayQueryLevel, maxDistance float32, flags uint8, viewMask uint32) *RayQuery {
	if maxDistance <= 0 {
		maxDistance = geom.Infinity
	}
	filter := newQueryFilter(flags, viewMask)
	return &RayQuery{
		Ray:           ray,
		Level:         level,
		MaxDistance:   maxDistance,
		DrawableFlags: filter.DrawableFlags,
		ViewMask:      filter.ViewMask,
	}
}

// Raycast returns every hit along the query's ray, sorted ascending by
// distance. When a worker pool is attached and the query asks for
// object-level precision over enough candidates, the per-object tests are
// spread across the pool; the result set is the same either way.
func (t *Octree) Raycast(query *RayQuery) []RayQueryResult {
	octreeRaycasts.Inc()
	query.Result = query.Result[:0]

	threaded := t.pool.Workers() > 0 && query.Level >= RayGeometry &&
		!t.flags.IsSet(featureflag.FlagDisableThreadedRaycast)

	if !threaded {
		t.Octant.raycast(query)
	} else {
		t.rayQueryDrawables = t.rayQueryDrawables[:0]
		t.Octant.raycastCandidates(query, &t.rayQueryDrawables)

		if len(t.rayQueryDrawables) >= raycastsPerTask*2 {
			for i := range t.rayQueryResults {
				t.rayQueryResults[i] = t.rayQueryResults[i][:0]
			}

			candidates := t.rayQueryDrawables
			for start := 0; start < len(candidates); start += raycastsPerTask {
				end := start + raycastsPerTask
				if end > len(candidates) {
					end = len(candidates)
				}
				slice := candidates[start:end]

				t.pool.Submit(func(workerIndex int) {
					results := &t.rayQueryResults[workerIndex]
					for _, d := range slice {
						d.ProcessRayQuery(query, results)
					}
				})
			}

			t.pool.Complete()
			for i := range t.rayQueryResults {
				query.Result = append(query.Result, t.rayQueryResults[i]...)
			}
		} else {
			for _, d := range t.rayQueryDrawables {
				d.ProcessRayQuery(query, &query.Result)
			}
		}
	}

	sortRayQueryResults(query.Result)
	return query.Result
}

// RaycastSingle returns the nearest hit along the query's ray, or no hit.
// A broad bounding-box pass orders the candidates by box hit distance, then
// object-level tests walk them in that order and stop as soon as a
// candidate's box lies at or beyond the best confirmed hit: no later
// candidate can beat it.
func (t *Octree) RaycastSingle(query *RayQuery) []RayQueryResult {
	octreeRaycasts.Inc()
	query.Result = query.Result[:0]

	t.rayQueryDrawables = t.rayQueryDrawables[:0]
	t.Octant.raycastCandidates(query, &t.rayQueryDrawables)

	t.rayQueryCandidates = t.rayQueryCandidates[:0]
	for _, d := range t.rayQueryDrawables {
		t.rayQueryCandidates = append(t.rayQueryCandidates, rayQueryCandidate{
			drawable: d,
			distance: query.Ray.HitDistance(d.WorldBoundingBox()),
		})
	}
	sort.Slice(t.rayQueryCandidates, func(i, j int) bool {
		return t.rayQueryCandidates[i].distance < t.rayQueryCandidates[j].distance
	})

	closestHit := geom.Infinity
	for _, candidate := range t.rayQueryCandidates {
		limit := closestHit
		if query.MaxDistance < limit {
			limit = query.MaxDistance
		}
		if candidate.distance >= limit {
			break
		}

		oldSize := len(query.Result)
		candidate.drawable.ProcessRayQuery(query, &query.Result)
		if len(query.Result) > oldSize {
			last := query.Result[len(query.Result)-1].Distance
			if last < closestHit {
				closestHit = last
			}
		}
	}

	if len(query.Result) > 1 {
		sortRayQueryResults(query.Result)
		query.Result = query.Result[:1]
	}
	return query.Result
}

type rayQueryCandidate struct {
	drawable Drawable
	distance float32
}

func sortRayQueryResults(results []RayQueryResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
}
