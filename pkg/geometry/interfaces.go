package geometry

import (
	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays. The variant set is
// closed: Sphere, Cone, Cylinder and Polygon implement it, plus BVH so a
// whole hierarchy can stand in for a single shape.
type Shape interface {
	// Hit returns the nearest intersection with t in (tMin, tMax], or
	// false when the ray misses.
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns a box guaranteed to contain the whole shape.
	BoundingBox() core.AABB
}
