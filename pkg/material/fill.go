package material

import (
	"fmt"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// Fill holds the surface parameters shared by all shading models. The zero
// value is a black, fully matte surface.
type Fill struct {
	Color           core.Vec3 // Base surface color
	Ambient         float64   // Ambient coefficient Ka
	Diffuse         float64   // Diffuse coefficient Kd
	Specular        float64   // Specular coefficient Ks
	Shine           float64   // Specular exponent
	Reflectivity    float64   // Mirror contribution in [0,1]
	Transmissivity  float64   // Refracted contribution in [0,1]
	RefractiveIndex float64   // Index of refraction
}

// Validate checks that the fill parameters describe a renderable surface
func (f Fill) Validate() error {
	if !f.Color.IsFinite() {
		return fmt.Errorf("color components must be finite, got %v", f.Color)
	}
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"ambient", f.Ambient},
		{"diffuse", f.Diffuse},
		{"specular", f.Specular},
		{"shine", f.Shine},
	} {
		if c.value < 0 || !isFinite(c.value) {
			return fmt.Errorf("%s coefficient must be finite and non-negative, got %f", c.name, c.value)
		}
	}
	if f.Reflectivity < 0 || f.Reflectivity > 1 || !isFinite(f.Reflectivity) {
		return fmt.Errorf("reflectivity must be in [0,1], got %f", f.Reflectivity)
	}
	if f.Transmissivity < 0 || f.Transmissivity > 1 || !isFinite(f.Transmissivity) {
		return fmt.Errorf("transmissivity must be in [0,1], got %f", f.Transmissivity)
	}
	if f.Transmissivity > 0 && (f.RefractiveIndex < 1 || !isFinite(f.RefractiveIndex)) {
		return fmt.Errorf("refractive index must be >= 1 for transmissive surfaces, got %f", f.RefractiveIndex)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
