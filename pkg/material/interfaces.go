package material

import (
	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// Material describes how a surface responds to light. Implementations are
// immutable after construction and shared by pointer among primitives.
type Material interface {
	// Shade returns the color contributed by a single unoccluded light.
	// view points from the eye toward the surface, lightDir from the
	// surface toward the light; all vectors must be unit length.
	Shade(normal, view, lightDir, lightColor core.Vec3) core.Vec3

	// AmbientColor returns the light-independent ambient term.
	AmbientColor() core.Vec3

	// Reflectivity returns the mirror contribution weight in [0,1].
	Reflectivity() float64

	// Transmissivity returns the refracted contribution weight in [0,1].
	Transmissivity() float64

	// RefractiveIndex returns the index of refraction for transmissive
	// surfaces (1.0 means no bending).
	RefractiveIndex() float64
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
