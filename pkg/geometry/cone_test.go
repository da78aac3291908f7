package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

func TestNewCone_RejectsDegenerateInput(t *testing.T) {
	base := core.NewVec3(0, 0, 0)
	top := core.NewVec3(0, 2, 0)

	tests := []struct {
		name       string
		baseCenter core.Vec3
		baseRadius float64
		topCenter  core.Vec3
		topRadius  float64
	}{
		{"zero base radius", base, 0, top, 0},
		{"negative base radius", base, -1, top, 0},
		{"negative top radius", base, 1, top, -0.5},
		{"equal radii", base, 1, top, 1},
		{"top radius larger than base", base, 0.5, top, 1},
		{"zero height", base, 1, base, 0},
		{"NaN base center", core.NewVec3(math.NaN(), 0, 0), 1, top, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCone(tt.baseCenter, tt.baseRadius, tt.topCenter, tt.topRadius, testMaterial())
			assert.Error(t, err)
		})
	}
}

func TestConeHit_Body(t *testing.T) {
	// Full cone: base radius 1 at the origin, apex at y=2
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0, testMaterial())
	require.NoError(t, err)

	// At height 1 the local radius is 0.5
	ray := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(-1, 0, 0))
	hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 4.5, hit.T, 1e-9)
	assert.True(t, hit.FrontFace)

	// Normal is perpendicular to the slant line
	invSqrt5 := 1.0 / math.Sqrt(5)
	assert.InDelta(t, 2*invSqrt5, hit.Normal.X, 1e-9)
	assert.InDelta(t, invSqrt5, hit.Normal.Y, 1e-9)
	assert.InDelta(t, 0.0, hit.Normal.Z, 1e-9)
}

func TestConeHit_MirrorNappeIsIgnored(t *testing.T) {
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0, testMaterial())
	require.NoError(t, err)

	// Passes through the reflected cone above the apex
	ray := core.NewRay(core.NewVec3(5, 3, 0), core.NewVec3(-1, 0, 0))
	_, ok := cone.Hit(ray, 0.001, math.Inf(1))

	assert.False(t, ok)
}

func TestConeHit_BaseCap(t *testing.T) {
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(0.3, -1, 0), core.NewVec3(0, 1, 0))
	hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.T, 1e-9)
	assert.True(t, hit.FrontFace)
	assert.InDelta(t, -1.0, hit.Normal.Y, 1e-9)
}

func TestConeHit_FrustumWallAndTopCap(t *testing.T) {
	// Truncated cone, radius 1 at the base and 0.5 at the top
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0.5, testMaterial())
	require.NoError(t, err)

	t.Run("wall", func(t *testing.T) {
		// At height 1 the local radius is 0.75
		ray := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(-1, 0, 0))
		hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

		require.True(t, ok)
		assert.InDelta(t, 4.25, hit.T, 1e-9)
		assert.True(t, hit.FrontFace)
	})

	t.Run("top cap", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0.3, 3, 0), core.NewVec3(0, -1, 0))
		hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, 1e-9)
		assert.True(t, hit.FrontFace)
		assert.InDelta(t, 1.0, hit.Normal.Y, 1e-9)
	})

	t.Run("beside top cap strikes the wall below", func(t *testing.T) {
		// Inside the base radius but outside the top radius
		ray := core.NewRay(core.NewVec3(0.8, 3, 0), core.NewVec3(0, -1, 0))
		hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

		// The wall reaches radius 0.8 at height 0.8
		require.True(t, ok)
		assert.InDelta(t, 2.2, hit.T, 1e-9)
	})
}

func TestConeHit_InsideReportsExit(t *testing.T) {
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(1, 0, 0))
	hit, ok := cone.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 0.75, hit.T, 1e-9)
	assert.False(t, hit.FrontFace)
	assert.Negative(t, hit.Normal.X)
}

func TestConeHit_TBounds(t *testing.T) {
	cone, err := NewCone(core.NewVec3(0, 0, 0), 1.0, core.NewVec3(0, 2, 0), 0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(-1, 0, 0))

	_, ok := cone.Hit(ray, 0.001, 1.0)
	assert.False(t, ok, "tMax should cut off the hit")

	_, ok = cone.Hit(ray, 100.0, 1000.0)
	assert.False(t, ok, "tMin should cut off the hit")
}

func TestConeBoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		baseCenter core.Vec3
		baseRadius float64
		topCenter  core.Vec3
		topRadius  float64
		wantMin    core.Vec3
		wantMax    core.Vec3
	}{
		{
			name:       "y axis frustum",
			baseCenter: core.NewVec3(0, 0, 0),
			baseRadius: 1.0,
			topCenter:  core.NewVec3(0, 2, 0),
			topRadius:  0.5,
			wantMin:    core.NewVec3(-1, 0, -1),
			wantMax:    core.NewVec3(1, 2, 1),
		},
		{
			name:       "z axis pointed cone",
			baseCenter: core.NewVec3(0, 0, 0),
			baseRadius: 1.5,
			topCenter:  core.NewVec3(0, 0, 3),
			topRadius:  0,
			wantMin:    core.NewVec3(-1.5, -1.5, 0),
			wantMax:    core.NewVec3(1.5, 1.5, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cone, err := NewCone(tt.baseCenter, tt.baseRadius, tt.topCenter, tt.topRadius, testMaterial())
			require.NoError(t, err)

			box := cone.BoundingBox()

			assert.InDelta(t, tt.wantMin.X, box.Min.X, 1e-9)
			assert.InDelta(t, tt.wantMin.Y, box.Min.Y, 1e-9)
			assert.InDelta(t, tt.wantMin.Z, box.Min.Z, 1e-9)
			assert.InDelta(t, tt.wantMax.X, box.Max.X, 1e-9)
			assert.InDelta(t, tt.wantMax.Y, box.Max.Y, 1e-9)
			assert.InDelta(t, tt.wantMax.Z, box.Max.Z, 1e-9)
		})
	}
}
