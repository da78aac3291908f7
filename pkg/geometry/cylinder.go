package geometry

import (
	"fmt"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

// Cylinder represents a closed finite cylinder, capped at both ends
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64
	Material   material.Material

	// Cached derived values
	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, mat material.Material) (*Cylinder, error) {
	if radius <= 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("cylinder radius must be positive, got %f", radius)
	}

	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	if height <= 0 {
		return nil, fmt.Errorf("cylinder base and top centers cannot coincide")
	}

	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		Material:   mat,
		axis:       axisVector.Normalize(),
		height:     height,
	}, nil
}

// Hit tests the ray against the curved wall and both end caps, returning
// the nearest valid intersection among them
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	if wallHit := c.hitWall(ray, tMin, closestT); wallHit != nil {
		closestHit = wallHit
		closestT = wallHit.T
	}

	if baseHit := hitDisc(ray, c.BaseCenter, c.axis.Negate(), c.Radius, tMin, closestT, c.Material); baseHit != nil {
		closestHit = baseHit
		closestT = baseHit.T
	}

	if topHit := hitDisc(ray, c.TopCenter, c.axis, c.Radius, tMin, closestT, c.Material); topHit != nil {
		closestHit = topHit
	}

	if closestHit != nil {
		return closestHit, true
	}
	return nil, false
}

// hitWall checks for intersection with the curved surface
func (c *Cylinder) hitWall(ray core.Ray, tMin, tMax float64) *material.HitRecord {
	delta := ray.Origin.Subtract(c.BaseCenter)

	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)

	// Quadratic for the infinite cylinder |(P - B) - ((P - B).v)v| = r
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		// Ray is parallel to the axis, only the caps can be hit
		return nil
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)

	// Near root first; rays starting inside exit through the far wall
	t := (-b - sqrtD) / (2 * a)
	h := rayHeight(ray, t, c.BaseCenter, c.axis)
	if t < tMin || t > tMax || h < 0 || h > c.height {
		t = (-b + sqrtD) / (2 * a)
		h = rayHeight(ray, t, c.BaseCenter, c.axis)
		if t < tMin || t > tMax || h < 0 || h > c.height {
			return nil
		}
	}

	point := ray.At(t)

	// Normal points radially away from the axis
	axisPoint := c.BaseCenter.Add(c.axis.Multiply(h))
	outwardNormal := point.Subtract(axisPoint).Normalize()

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: c.Material,
	}
	hit.SetFaceNormal(ray, outwardNormal)

	return hit
}

// rayHeight returns the axial height of ray.At(t) above the base plane
func rayHeight(ray core.Ray, t float64, base, axis core.Vec3) float64 {
	return ray.At(t).Subtract(base).Dot(axis)
}

// BoundingBox returns the axis-aligned bounding box for this cylinder
func (c *Cylinder) BoundingBox() core.AABB {
	return boundAxialSolid(c.BaseCenter, c.TopCenter, c.axis, c.Radius)
}
