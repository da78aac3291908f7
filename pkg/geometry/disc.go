package geometry

import (
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

// hitDisc tests a ray against a circular disc, used for the end caps of
// cones and cylinders. normal must be unit length and points outward from
// the solid the cap closes.
func hitDisc(ray core.Ray, center, normal core.Vec3, radius, tMin, tMax float64, mat material.Material) *material.HitRecord {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < 1e-8 {
		// Ray is parallel to the cap plane
		return nil
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return nil
	}

	point := ray.At(t)
	if point.Subtract(center).LengthSquared() > radius*radius {
		return nil
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: mat,
	}
	hit.SetFaceNormal(ray, normal)

	return hit
}

// boundAxialSolid returns a bounding box for a capped solid of revolution
// spanning base to top with the given maximum radius. The radial extent
// along each coordinate axis is the projection of the cap discs onto it,
// which collapses to zero when the solid's own axis runs along it.
func boundAxialSolid(base, top, axis core.Vec3, radius float64) core.AABB {
	box := core.NewAABBFromPoints(base, top)

	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-axis.X*axis.X)),
		radius*math.Sqrt(math.Max(0, 1-axis.Y*axis.Y)),
		radius*math.Sqrt(math.Max(0, 1-axis.Z*axis.Z)),
	)

	return core.NewAABB(
		box.Min.Subtract(extent),
		box.Max.Add(extent),
	)
}
