package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
	"github.com/hippopotamus-prime/go-raytracer/pkg/scene"
)

// surfaceBias offsets secondary-ray origins along the surface normal so
// shadow, reflection and refraction rays cannot re-hit the surface they
// start on.
const surfaceBias = 1e-3

// Raytracer traces Whitted-style rays through a preprocessed scene. It has
// no mutable state after construction and is safe for concurrent use.
type Raytracer struct {
	scene       *scene.Scene
	camera      *Camera
	width       int
	height      int
	maxDepth    int
	primaryTMin float64
}

// NewRaytracer creates a raytracer for a preprocessed scene. maxDepth
// bounds the reflection and refraction recursion.
func NewRaytracer(sc *scene.Scene, maxDepth int) (*Raytracer, error) {
	if sc.BVH == nil {
		return nil, fmt.Errorf("scene has not been preprocessed")
	}

	camera, err := NewCamera(sc.View)
	if err != nil {
		return nil, err
	}

	// The hither plane clips primary rays; secondary rays use the bias
	// alone.
	primaryTMin := sc.View.Hither
	if primaryTMin < surfaceBias {
		primaryTMin = surfaceBias
	}

	return &Raytracer{
		scene:       sc,
		camera:      camera,
		width:       sc.View.Width,
		height:      sc.View.Height,
		maxDepth:    maxDepth,
		primaryTMin: primaryTMin,
	}, nil
}

// RenderPixel traces the primary ray for the pixel at (x, y), with (0, 0)
// the top-left corner of the image.
func (rt *Raytracer) RenderPixel(x, y int, stats *RenderStats) core.Vec3 {
	s := (float64(x) + 0.5) / float64(rt.width)
	t := 1 - (float64(y)+0.5)/float64(rt.height)

	stats.PrimaryRays++
	return rt.trace(rt.camera.GetRay(s, t), rt.primaryTMin, rt.maxDepth, stats)
}

// RenderBounds traces every pixel inside bounds into target and returns
// the ray counts for the region.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, target *RenderTarget) RenderStats {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			target.Set(x, y, rt.RenderPixel(x, y, &stats))
		}
	}
	return stats
}

// trace returns the color seen along a ray, recursing for reflection and
// refraction until depth is exhausted.
func (rt *Raytracer) trace(ray core.Ray, tMin float64, depth int, stats *RenderStats) core.Vec3 {
	// Recursion limit reached, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := rt.scene.BVH.Hit(ray, tMin, math.Inf(1))
	if !isHit {
		return rt.scene.Background
	}

	color := rt.shade(ray, hit, stats)
	mat := hit.Material

	if reflectivity := mat.Reflectivity(); reflectivity > 0 {
		reflected := rt.reflect(ray, hit, depth, stats)
		color = color.Add(reflected.Multiply(reflectivity))
	}

	if transmissivity := mat.Transmissivity(); transmissivity > 0 {
		transmitted := rt.refract(ray, hit, depth, stats)
		color = color.Add(transmitted.Multiply(transmissivity))
	}

	return color.Clamp(0, 1)
}

// shade computes the local illumination at a hit point: the ambient term
// plus the contribution of every light with an unobstructed path to the
// surface.
func (rt *Raytracer) shade(ray core.Ray, hit *material.HitRecord, stats *RenderStats) core.Vec3 {
	color := hit.Material.AmbientColor()

	for _, light := range rt.scene.Lights {
		toLight := light.Position.Subtract(hit.Point)
		distance := toLight.Length()
		if distance < 1e-8 {
			continue
		}
		lightDir := toLight.Multiply(1 / distance)

		// Lights behind the surface contribute nothing, so skip the
		// shadow ray as well
		if hit.Normal.Dot(lightDir) <= 0 {
			continue
		}

		stats.ShadowRays++
		if rt.occluded(hit.Point, hit.Normal, lightDir, distance) {
			continue
		}

		color = color.Add(hit.Material.Shade(hit.Normal, ray.Direction, lightDir, light.Color))
	}

	return color
}

// occluded reports whether any shape blocks the segment from the surface
// point toward the light.
func (rt *Raytracer) occluded(point, normal, lightDir core.Vec3, distance float64) bool {
	origin := point.Add(normal.Multiply(surfaceBias))
	return rt.scene.BVH.AnyHit(core.NewRay(origin, lightDir), surfaceBias, distance)
}

// reflect traces the mirror bounce of a ray off a hit surface.
func (rt *Raytracer) reflect(ray core.Ray, hit *material.HitRecord, depth int, stats *RenderStats) core.Vec3 {
	reflected := material.Reflect(ray.Direction, hit.Normal)
	origin := hit.Point.Add(hit.Normal.Multiply(surfaceBias))

	stats.ReflectionRays++
	return rt.trace(core.NewRay(origin, reflected), surfaceBias, depth-1, stats)
}

// refract traces the transmission of a ray through a hit surface. Total
// internal reflection falls back to a mirror bounce.
func (rt *Raytracer) refract(ray core.Ray, hit *material.HitRecord, depth int, stats *RenderStats) core.Vec3 {
	ratio := hit.Material.RefractiveIndex()
	if hit.FrontFace {
		ratio = 1 / ratio
	}

	refracted, ok := material.Refract(ray.Direction, hit.Normal, ratio)
	if !ok {
		return rt.reflect(ray, hit, depth, stats)
	}

	origin := hit.Point.Subtract(hit.Normal.Multiply(surfaceBias))
	stats.RefractionRays++
	return rt.trace(core.NewRay(origin, refracted), surfaceBias, depth-1, stats)
}
