package geom

// Sphere is a center plus radius volume.
type Sphere struct {
	Center Vec3
	Radius float32
}

func NewSphere(center Vec3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Test classifies box against the sphere: Outside when box and sphere do not
// overlap, Inside when every corner of box is within the sphere, Intersects
// otherwise.
func (s Sphere) Test(box BoundingBox) Intersection {
	radiusSquared := s.Radius * s.Radius

	// Squared distance from the sphere center to the closest point of box.
	var distSquared float32
	for i := 0; i < 3; i++ {
		if s.Center[i] < box.Min[i] {
			d := s.Center[i] - box.Min[i]
			distSquared += d * d
		} else if s.Center[i] > box.Max[i] {
			d := s.Center[i] - box.Max[i]
			distSquared += d * d
		}
	}
	if distSquared > radiusSquared {
		return Outside
	}

	for _, corner := range box.corners() {
		if corner.Sub(s.Center).LenSqr() > radiusSquared {
			return Intersects
		}
	}
	return Inside
}

// ContainsPoint reports whether p lies within the sphere.
func (s Sphere) ContainsPoint(p Vec3) bool {
	return p.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func (b BoundingBox) corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = b.Max[axis]
			} else {
				corners[i][axis] = b.Min[axis]
			}
		}
	}
	return corners
}
