package material

import (
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// Phong shades surfaces with the classic Phong reflection model: a
// Lambertian diffuse term tinted by the surface color plus an untinted
// specular highlight around the mirror direction of the view ray.
type Phong struct {
	fill Fill
}

// NewPhong creates a Phong material from fill parameters
func NewPhong(fill Fill) *Phong {
	return &Phong{fill: fill}
}

// Shade returns the contribution of a single light
func (p *Phong) Shade(normal, view, lightDir, lightColor core.Vec3) core.Vec3 {
	ndl := normal.Dot(lightDir)
	if ndl <= 0 {
		// Light is behind the surface
		return core.Vec3{}
	}

	color := p.fill.Color.Multiply(p.fill.Diffuse * ndl)

	if p.fill.Specular > 0 {
		reflected := Reflect(view, normal)
		if rdl := reflected.Dot(lightDir); rdl > 0 {
			s := p.fill.Specular * math.Pow(rdl, p.fill.Shine)
			color = color.Add(core.NewVec3(s, s, s))
		}
	}

	return lightColor.MultiplyVec(color)
}

// AmbientColor returns the ambient term Ka * Color
func (p *Phong) AmbientColor() core.Vec3 {
	return p.fill.Color.Multiply(p.fill.Ambient)
}

// Reflectivity returns the mirror contribution weight
func (p *Phong) Reflectivity() float64 {
	return p.fill.Reflectivity
}

// Transmissivity returns the refracted contribution weight
func (p *Phong) Transmissivity() float64 {
	return p.fill.Transmissivity
}

// RefractiveIndex returns the index of refraction
func (p *Phong) RefractiveIndex() float64 {
	return p.fill.RefractiveIndex
}
