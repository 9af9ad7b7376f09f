package sim

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is a horizontal rectangle the driver can detect, standing in
// for a real platform's tracked plane.
type Surface struct {
	Center rl.Vector3
	Width  float32
	Depth  float32
}

const minRayDistance = 1e-4

// intersect casts the ray against the surface's plane and checks the
// hit point against the rectangle bounds. Returns the hit point and
// ray distance.
func intersect(ray rl.Ray, s Surface) (rl.Vector3, float32, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	if dir.Y > -minRayDistance && dir.Y < minRayDistance {
		// Ray parallel to the plane.
		return rl.Vector3{}, 0, false
	}

	t := (s.Center.Y - ray.Position.Y) / dir.Y
	if t < minRayDistance {
		return rl.Vector3{}, 0, false
	}

	point := rl.Vector3Add(ray.Position, rl.Vector3Scale(dir, t))
	if point.X < s.Center.X-s.Width/2 || point.X > s.Center.X+s.Width/2 {
		return rl.Vector3{}, 0, false
	}
	if point.Z < s.Center.Z-s.Depth/2 || point.Z > s.Center.Z+s.Depth/2 {
		return rl.Vector3{}, 0, false
	}
	return point, t, true
}

// castAll intersects the ray with every surface and orders the hits
// nearest first. This ordering is the contract behind "take the first
// result".
func castAll(ray rl.Ray, surfaces []Surface) []hit {
	var hits []hit
	for _, s := range surfaces {
		if point, dist, ok := intersect(ray, s); ok {
			// The platform reports each hit as a transform matrix;
			// detected surfaces are horizontal, so the rotation part
			// is identity.
			hits = append(hits, hit{
				matrix:   rl.MatrixTranslate(point.X, point.Y, point.Z),
				distance: dist,
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})
	return hits
}
