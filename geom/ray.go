package geom

// Ray is a half-line starting at Origin and extending along Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction Vec3) Ray {
	if direction.Len() != 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitDistance returns the distance at which the ray enters box, 0 when the
// origin is already inside, or Infinity when the ray misses.
func (r Ray) HitDistance(box BoundingBox) float32 {
	tmin := -Infinity
	tmax := Infinity

	for i := 0; i < 3; i++ {
		if r.Direction[i] == 0 {
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return Infinity
			}
			continue
		}

		t1 := (box.Min[i] - r.Origin[i]) / r.Direction[i]
		t2 := (box.Max[i] - r.Origin[i]) / r.Direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return Infinity
	}
	if tmin < 0 {
		// Origin inside the box.
		return 0
	}
	return tmin
}
