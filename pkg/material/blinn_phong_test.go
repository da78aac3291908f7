package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

func TestBlinnPhong_Shade_HeadOn(t *testing.T) {
	fill := Fill{
		Color:    core.NewVec3(1, 0, 0),
		Diffuse:  0.5,
		Specular: 0.3,
		Shine:    10,
	}
	mat := NewBlinnPhong(fill)

	normal := core.NewVec3(0, 0, 1)
	view := core.NewVec3(0, 0, -1)
	white := core.NewVec3(1, 1, 1)

	// With the light on the mirror axis the half-vector equals the normal,
	// so head-on shading matches the Phong model exactly.
	result := mat.Shade(normal, view, core.NewVec3(0, 0, 1), white)
	assert.InDelta(t, 0.8, result.X, 1e-9)
	assert.InDelta(t, 0.3, result.Y, 1e-9)
	assert.InDelta(t, 0.3, result.Z, 1e-9)
}

func TestBlinnPhong_Shade_WiderHighlight(t *testing.T) {
	fill := Fill{
		Color:    core.NewVec3(0, 0, 0),
		Diffuse:  0,
		Specular: 1,
		Shine:    16,
	}
	phong := NewPhong(fill)
	blinn := NewBlinnPhong(fill)

	normal := core.NewVec3(0, 0, 1)
	view := core.NewVec3(0, 0, -1)
	lightDir := core.NewVec3(1, 0, 1).Normalize()
	white := core.NewVec3(1, 1, 1)

	p := phong.Shade(normal, view, lightDir, white)
	b := blinn.Shade(normal, view, lightDir, white)

	// The half-vector sits closer to the normal than the mirrored view ray
	// sits to the light, so Blinn-Phong falls off more slowly off-axis.
	assert.Greater(t, b.X, p.X)
	assert.Greater(t, p.X, 0.0)
}

func TestBlinnPhong_Shade_LightBehind(t *testing.T) {
	mat := NewBlinnPhong(Fill{Color: core.NewVec3(1, 1, 1), Diffuse: 1, Specular: 1, Shine: 5})

	result := mat.Shade(
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 1, 1),
	)
	assert.Equal(t, core.Vec3{}, result)
}

func TestBlinnPhong_InheritsFillAccessors(t *testing.T) {
	mat := NewBlinnPhong(Fill{
		Color:           core.NewVec3(1, 1, 1),
		Ambient:         0.2,
		Reflectivity:    0.4,
		Transmissivity:  0.6,
		RefractiveIndex: 1.33,
	})

	assert.Equal(t, core.NewVec3(0.2, 0.2, 0.2), mat.AmbientColor())
	assert.Equal(t, 0.4, mat.Reflectivity())
	assert.Equal(t, 0.6, mat.Transmissivity())
	assert.Equal(t, 1.33, mat.RefractiveIndex())
}
