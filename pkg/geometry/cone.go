package geometry

import (
	"fmt"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

// Cone represents a closed cone or frustum. The base radius is always the
// larger end; a pointed cone has TopRadius 0. Both ends are capped, so the
// shape is a solid with a well defined inside.
type Cone struct {
	BaseCenter core.Vec3
	BaseRadius float64
	TopCenter  core.Vec3
	TopRadius  float64
	Material   material.Material

	// Cached derived values
	axis     core.Vec3 // Unit vector from base to top
	height   float64   // Distance between base and top
	tanAngle float64   // tan(cone angle) = (BaseRadius - TopRadius) / height
	apex     core.Vec3 // Apex of the infinite cone extended from the frustum
}

// NewCone creates a new cone or frustum
func NewCone(baseCenter core.Vec3, baseRadius float64, topCenter core.Vec3, topRadius float64, mat material.Material) (*Cone, error) {
	if baseRadius <= 0 || math.IsNaN(baseRadius) {
		return nil, fmt.Errorf("base radius must be positive, got %f", baseRadius)
	}
	if topRadius < 0 || math.IsNaN(topRadius) {
		return nil, fmt.Errorf("top radius must be non-negative, got %f", topRadius)
	}
	if baseRadius <= topRadius {
		return nil, fmt.Errorf("base radius must be greater than top radius for a cone (got base=%f, top=%f); use Cylinder for equal radii", baseRadius, topRadius)
	}

	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	if height <= 0 {
		return nil, fmt.Errorf("cone base and top centers cannot coincide")
	}

	axis := axisVector.Normalize()
	tanAngle := (baseRadius - topRadius) / height

	// For a pointed cone the top center is the apex; for a frustum the
	// apex sits beyond the top where the radius would shrink to zero.
	var apex core.Vec3
	if topRadius == 0 {
		apex = topCenter
	} else {
		dFromTop := topRadius * height / (baseRadius - topRadius)
		apex = topCenter.Add(axis.Multiply(dFromTop))
	}

	return &Cone{
		BaseCenter: baseCenter,
		BaseRadius: baseRadius,
		TopCenter:  topCenter,
		TopRadius:  topRadius,
		Material:   mat,
		axis:       axis,
		height:     height,
		tanAngle:   tanAngle,
		apex:       apex,
	}, nil
}

// Hit tests the ray against the curved body and the end caps, returning
// the nearest valid intersection among them
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestT := tMax

	if bodyHit := c.hitBody(ray, tMin, closestT); bodyHit != nil {
		closestHit = bodyHit
		closestT = bodyHit.T
	}

	if baseHit := hitDisc(ray, c.BaseCenter, c.axis.Negate(), c.BaseRadius, tMin, closestT, c.Material); baseHit != nil {
		closestHit = baseHit
		closestT = baseHit.T
	}

	// A pointed cone has no top cap
	if c.TopRadius > 0 {
		if topHit := hitDisc(ray, c.TopCenter, c.axis, c.TopRadius, tMin, closestT, c.Material); topHit != nil {
			closestHit = topHit
		}
	}

	if closestHit != nil {
		return closestHit, true
	}
	return nil, false
}

// hitBody checks for intersection with the curved surface
func (c *Cone) hitBody(ray core.Ray, tMin, tMax float64) *material.HitRecord {
	// Work in apex space where the infinite cone is |radial| = k * axial
	co := ray.Origin.Subtract(c.apex)

	ddotv := ray.Direction.Dot(c.axis)
	codotv := co.Dot(c.axis)

	k := c.tanAngle * c.tanAngle

	a := ray.Direction.LengthSquared() - (1+k)*ddotv*ddotv
	b := 2.0 * (ray.Direction.Dot(co) - (1+k)*ddotv*codotv)
	cc := co.LengthSquared() - (1+k)*codotv*codotv

	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		// Ray runs along the cone surface
		return nil
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)

	// Near root first so rays from inside still find the exit
	t := (-b - sqrtD) / (2 * a)
	if !c.validBodyHit(ray, t, tMin, tMax) {
		t = (-b + sqrtD) / (2 * a)
		if !c.validBodyHit(ray, t, tMin, tMax) {
			return nil
		}
	}

	point := ray.At(t)

	// Surface normal tilts along the axis by the slope of the side
	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	centerPoint := c.BaseCenter.Add(c.axis.Multiply(h))
	radial := point.Subtract(centerPoint)
	outwardNormal := radial.Add(c.axis.Multiply(c.tanAngle * radial.Length())).Normalize()

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: c.Material,
	}
	hit.SetFaceNormal(ray, outwardNormal)

	return hit
}

// validBodyHit checks that a body root lies between the end planes and on
// the correct nappe of the double cone
func (c *Cone) validBodyHit(ray core.Ray, t, tMin, tMax float64) bool {
	const epsilon = 1e-8

	if t < tMin || t > tMax {
		return false
	}

	point := ray.At(t)

	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	if h < -epsilon || h > c.height+epsilon {
		return false
	}

	// Points past the apex belong to the mirror nappe
	if point.Subtract(c.apex).Dot(c.axis) > epsilon {
		return false
	}

	return true
}

// BoundingBox returns the axis-aligned bounding box for this cone
func (c *Cone) BoundingBox() core.AABB {
	return boundAxialSolid(c.BaseCenter, c.TopCenter, c.axis, c.BaseRadius)
}
