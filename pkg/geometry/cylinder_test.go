package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

func TestNewCylinder_RejectsDegenerateInput(t *testing.T) {
	base := core.NewVec3(0, 0, 0)
	top := core.NewVec3(0, 2, 0)

	tests := []struct {
		name       string
		baseCenter core.Vec3
		topCenter  core.Vec3
		radius     float64
	}{
		{"zero radius", base, top, 0},
		{"negative radius", base, top, -1},
		{"NaN radius", base, top, math.NaN()},
		{"zero height", base, base, 1},
		{"infinite top center", base, core.NewVec3(0, math.Inf(1), 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCylinder(tt.baseCenter, tt.topCenter, tt.radius, testMaterial())
			assert.Error(t, err)
		})
	}
}

func TestCylinderHit_Wall(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(5, 1, 0), core.NewVec3(-1, 0, 0))
	hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.T, 1e-9)
	assert.True(t, hit.FrontFace)
	assert.InDelta(t, 1.0, hit.Normal.X, 1e-9)
	assert.InDelta(t, 0.0, hit.Normal.Y, 1e-9)
}

func TestCylinderHit_Caps(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	t.Run("top cap from above", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0.5, 3, 0), core.NewVec3(0, -1, 0))
		hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, 1e-9)
		assert.True(t, hit.FrontFace)
		assert.InDelta(t, 1.0, hit.Normal.Y, 1e-9)
	})

	t.Run("base cap from below", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0.5, -1, 0), core.NewVec3(0, 1, 0))
		hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, 1e-9)
		assert.True(t, hit.FrontFace)
		assert.InDelta(t, -1.0, hit.Normal.Y, 1e-9)
	})

	t.Run("cap miss outside radius", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(1.5, 3, 0), core.NewVec3(0, -1, 0))
		_, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

		assert.False(t, ok)
	})
}

func TestCylinderHit_ParallelRays(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	t.Run("parallel outside misses", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(2, -1, 0), core.NewVec3(0, 1, 0))
		_, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

		assert.False(t, ok)
	})

	t.Run("parallel inside hits the base cap", func(t *testing.T) {
		ray := core.NewRay(core.NewVec3(0.5, -1, 0), core.NewVec3(0, 1, 0))
		hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

		require.True(t, ok)
		assert.InDelta(t, 1.0, hit.T, 1e-9)
	})
}

func TestCylinderHit_WallAboveAndBelow(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	tests := []struct {
		name    string
		origin  core.Vec3
		wantHit bool
	}{
		{"within height", core.NewVec3(5, 1, 0), true},
		{"above the top", core.NewVec3(5, 3, 0), false},
		{"below the base", core.NewVec3(5, -1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(-1, 0, 0))
			_, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

			assert.Equal(t, tt.wantHit, ok)
		})
	}
}

// A diagonal ray whose near wall crossing lies above the cylinder must
// enter through the top cap, not the far wall.
func TestCylinderHit_DiagonalEntersThroughCap(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	// Near wall crossing at y=2.5, far wall crossing at y=0.5, cap
	// crossed in between at (0.5, 2, 0)
	ray := core.NewRay(core.NewVec3(2, 3.5, 0), core.NewVec3(-1, -1, 0).Normalize())
	hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 1.5*math.Sqrt2, hit.T, 1e-9)
	assert.InDelta(t, 0.5, hit.Point.X, 1e-9)
	assert.InDelta(t, 2.0, hit.Point.Y, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal.Y, 1e-9)
}

func TestCylinderHit_InsideReportsExit(t *testing.T) {
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1.0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0))
	hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.T, 1e-9)
	assert.False(t, hit.FrontFace)
	assert.InDelta(t, -1.0, hit.Normal.X, 1e-9)
}

func TestCylinderHit_OffAxis(t *testing.T) {
	// Axis along Z to exercise the general axis path
	cylinder, err := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 4), 1.0, testMaterial())
	require.NoError(t, err)

	ray := core.NewRay(core.NewVec3(5, 0, 2), core.NewVec3(-1, 0, 0))
	hit, ok := cylinder.Hit(ray, 0.001, math.Inf(1))

	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.T, 1e-9)
	assert.InDelta(t, 1.0, hit.Normal.X, 1e-9)
}

func TestCylinderBoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		baseCenter core.Vec3
		topCenter  core.Vec3
		radius     float64
		wantMin    core.Vec3
		wantMax    core.Vec3
	}{
		{
			name:       "y axis",
			baseCenter: core.NewVec3(0, 0, 0),
			topCenter:  core.NewVec3(0, 2, 0),
			radius:     1.0,
			wantMin:    core.NewVec3(-1, 0, -1),
			wantMax:    core.NewVec3(1, 2, 1),
		},
		{
			name:       "z axis",
			baseCenter: core.NewVec3(0, 0, 0),
			topCenter:  core.NewVec3(0, 0, 3),
			radius:     0.5,
			wantMin:    core.NewVec3(-0.5, -0.5, 0),
			wantMax:    core.NewVec3(0.5, 0.5, 3),
		},
		{
			// Axis (0.6, 0.8, 0): the cap discs project 0.8 onto x and
			// 0.6 onto y.
			name:       "tilted axis",
			baseCenter: core.NewVec3(0, 0, 0),
			topCenter:  core.NewVec3(3, 4, 0),
			radius:     1.0,
			wantMin:    core.NewVec3(-0.8, -0.6, -1),
			wantMax:    core.NewVec3(3.8, 4.6, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cylinder, err := NewCylinder(tt.baseCenter, tt.topCenter, tt.radius, testMaterial())
			require.NoError(t, err)

			box := cylinder.BoundingBox()

			assert.InDelta(t, tt.wantMin.X, box.Min.X, 1e-9)
			assert.InDelta(t, tt.wantMin.Y, box.Min.Y, 1e-9)
			assert.InDelta(t, tt.wantMin.Z, box.Min.Z, 1e-9)
			assert.InDelta(t, tt.wantMax.X, box.Max.X, 1e-9)
			assert.InDelta(t, tt.wantMax.Y, box.Max.Y, 1e-9)
			assert.InDelta(t, tt.wantMax.Z, box.Max.Z, 1e-9)
		})
	}
}
