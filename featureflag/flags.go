package featureflag

type Flag string

const (
	// FlagConsistencyChecks enables the post-reinsertion verification that a
	// drawable's bounding box is fully contained by its octant's culling box,
	// logging a warning on violation.
	FlagConsistencyChecks Flag = "ENABLE_CONSISTENCY_CHECKS"

	// FlagDisableThreadedUpdate forces the per-frame drawable update phase to
	// run on the calling goroutine even when a worker pool is available.
	FlagDisableThreadedUpdate Flag = "DISABLE_THREADED_UPDATE"

	// FlagDisableThreadedRaycast forces ray queries to run on the calling
	// goroutine even when a worker pool is available.
	FlagDisableThreadedRaycast Flag = "DISABLE_THREADED_RAYCAST"
)
