package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hippopotamus-prime/go-raytracer/pkg/loaders"
	"github.com/hippopotamus-prime/go-raytracer/pkg/ppm"
	"github.com/hippopotamus-prime/go-raytracer/pkg/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSceneNFF is a unit sphere at the origin lit from straight above,
// viewed down the z axis.
const testSceneNFF = `# white sphere on a black background
v
from 0 0 5
at 0 0 0
up 0 1 0
angle 60
hither 0
resolution 32 32
b 0 0 0
l 0 10 0
f 1 1 1 0.9 0 1 0 1
s 0 0 0 1
`

// resetFlags restores the package flag values to their defaults so tests
// can set up command lines independently.
func resetFlags(t *testing.T) {
	t.Helper()
	d := renderer.DefaultConfig()
	*configPath = ""
	*output = d.Output
	*shading = d.Shading
	*maxDepth = d.MaxDepth
	*workers = d.Workers
	*tileSize = d.TileSize
	*quiet = d.Quiet
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestResolveConfig_Defaults(t *testing.T) {
	resetFlags(t)

	cfg, err := resolveConfig(map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, renderer.DefaultConfig(), cfg)
}

func TestResolveConfig_FileOverridesDefaults(t *testing.T) {
	resetFlags(t)
	*configPath = writeFile(t, "render.toml", "max_depth = 3\nshading = \"blinn-phong\"\n")

	cfg, err := resolveConfig(map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, renderer.ShadingBlinnPhong, cfg.Shading)
	assert.Equal(t, renderer.DefaultConfig().Output, cfg.Output)
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	resetFlags(t)
	*configPath = writeFile(t, "render.toml", "max_depth = 3\noutput = \"from-file.ppm\"\n")
	*maxDepth = 5

	cfg, err := resolveConfig(map[string]bool{"depth": true})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Equal(t, "from-file.ppm", cfg.Output)
}

func TestResolveConfig_RejectsInvalidFlagValues(t *testing.T) {
	resetFlags(t)
	*maxDepth = 0

	_, err := resolveConfig(map[string]bool{"depth": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_depth")
}

func TestResolveConfig_MissingConfigFile(t *testing.T) {
	resetFlags(t)
	*configPath = filepath.Join(t.TempDir(), "missing.toml")

	_, err := resolveConfig(map[string]bool{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config file")
}

func TestLoadScene_File(t *testing.T) {
	path := writeFile(t, "scene.nff", testSceneNFF)

	sc, err := loadScene(path, loaders.Options{})
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, 32, sc.View.Width)
	assert.Equal(t, 32, sc.View.Height)
	assert.Len(t, sc.Shapes, 1)
	assert.Len(t, sc.Lights, 1)
}

func TestLoadScene_MissingFile(t *testing.T) {
	_, err := loadScene(filepath.Join(t.TempDir(), "missing.nff"), loaders.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open NFF file")
}

func TestRenderSceneToFile(t *testing.T) {
	scenePath := writeFile(t, "scene.nff", testSceneNFF)
	outPath := filepath.Join(t.TempDir(), "out.ppm")

	sc, err := loadScene(scenePath, loaders.Options{})
	require.NoError(t, err)

	cfg := renderer.DefaultConfig()
	cfg.Output = outPath
	r, err := renderer.NewRenderer(sc, cfg, renderer.NopLogger{})
	require.NoError(t, err)

	img, stats, err := r.Render(context.Background())
	require.NoError(t, err)
	require.NoError(t, ppm.WriteFile(cfg.Output, img))
	assert.Equal(t, int64(32*32), stats.PrimaryRays)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	header := "P6\n32 32\n255\n"
	require.True(t, bytes.HasPrefix(data, []byte(header)))
	require.Len(t, data, len(header)+3*32*32)

	pixels := data[len(header):]
	red := func(x, y int) byte { return pixels[3*(y*32+x)] }

	// Background corners stay black.
	assert.EqualValues(t, 0, red(0, 0))
	assert.EqualValues(t, 0, red(31, 31))

	// The light sits straight above the sphere, so the camera-facing center
	// of the sphere is lit by the ambient term alone.
	assert.EqualValues(t, 25, red(16, 16))

	// The upper part of the sphere faces the light nearly head-on.
	var brightest byte
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if red(x, y) > brightest {
				brightest = red(x, y)
			}
		}
	}
	assert.Greater(t, brightest, byte(150))
}
