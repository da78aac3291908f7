package scene

import (
	"fmt"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/geometry"
)

// Up vectors this close to the viewing direction leave no usable camera
// basis
const parallelThreshold = 0.9999

// Light is a point light source. Point lights have no falloff, so a
// visible light contributes its full color.
type Light struct {
	Position core.Vec3
	Color    core.Vec3
}

// View describes the camera: eye position, look-at target, up vector,
// vertical field of view in degrees, near clipping distance and image
// resolution.
type View struct {
	From   core.Vec3
	At     core.Vec3
	Up     core.Vec3
	Angle  float64
	Hither float64
	Width  int
	Height int
}

// Validate reports whether the view describes a usable camera.
func (v View) Validate() error {
	if !v.From.IsFinite() || !v.At.IsFinite() || !v.Up.IsFinite() {
		return fmt.Errorf("view contains non-finite coordinates")
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", v.Width, v.Height)
	}
	if !(v.Angle > 0 && v.Angle < 180) {
		return fmt.Errorf("field of view must be in (0, 180) degrees, got %g", v.Angle)
	}
	if math.IsNaN(v.Hither) || v.Hither < 0 {
		return fmt.Errorf("hither distance must be non-negative, got %g", v.Hither)
	}

	forward := v.At.Subtract(v.From)
	if forward.Length() < 1e-8 {
		return fmt.Errorf("eye position and look-at point coincide")
	}
	if v.Up.Length() < 1e-8 {
		return fmt.Errorf("up vector has zero length")
	}
	if math.Abs(v.Up.Normalize().Dot(forward.Normalize())) > parallelThreshold {
		return fmt.Errorf("up vector is parallel to the viewing direction")
	}
	return nil
}

// Scene contains all the elements needed for rendering
type Scene struct {
	View       View
	Background core.Vec3
	Shapes     []geometry.Shape
	Lights     []Light
	BVH        *geometry.BVH // Acceleration structure for ray-shape intersection
}

// NewScene returns an empty scene with the default white background.
func NewScene() *Scene {
	return &Scene{
		Background: core.NewVec3(1, 1, 1),
	}
}

// AddShape appends a shape to the scene.
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddLight appends a point light to the scene.
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// Preprocess prepares the scene for rendering: it validates the view and
// builds the BVH over all shapes. It must be called before tracing rays.
func (s *Scene) Preprocess() error {
	if err := s.View.Validate(); err != nil {
		return fmt.Errorf("invalid view: %w", err)
	}

	s.BVH = geometry.NewBVH(s.Shapes)
	return nil
}
