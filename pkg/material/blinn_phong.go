package material

import (
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// BlinnPhong is a variant of Phong that computes the specular term from
// the half-vector between the light and view directions. Highlights come
// out slightly wider and the per-light cost drops by one vector reflection.
type BlinnPhong struct {
	Phong
}

// NewBlinnPhong creates a Blinn-Phong material from fill parameters
func NewBlinnPhong(fill Fill) *BlinnPhong {
	return &BlinnPhong{Phong{fill: fill}}
}

// Shade returns the contribution of a single light
func (b *BlinnPhong) Shade(normal, view, lightDir, lightColor core.Vec3) core.Vec3 {
	ndl := normal.Dot(lightDir)
	if ndl <= 0 {
		return core.Vec3{}
	}

	color := b.fill.Color.Multiply(b.fill.Diffuse * ndl)

	if b.fill.Specular > 0 {
		// view points toward the surface, so the half-vector is L - V
		half := lightDir.Subtract(view).Normalize()
		if ndh := normal.Dot(half); ndh > 0 {
			s := b.fill.Specular * math.Pow(ndh, b.fill.Shine)
			color = color.Add(core.NewVec3(s, s, s))
		}
	}

	return lightColor.MultiplyVec(color)
}
