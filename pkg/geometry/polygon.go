package geometry

import (
	"fmt"
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

const (
	// Vertices may deviate this far from the common plane before the
	// polygon is rejected as non-planar.
	planarTolerance = 1e-6

	// Padding applied to the bounding box so coplanar slabs keep a
	// nonzero extent along the face normal.
	bboxPadding = 1e-4
)

// Polygon represents a planar convex polygon. A patch polygon additionally
// carries one shading normal per vertex, interpolated across the surface;
// containment for non-convex vertex sets is undefined.
type Polygon struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // Per-vertex shading normals, empty for flat polygons
	Material material.Material

	normal core.Vec3 // Cached unit face normal, follows vertex winding
	bbox   core.AABB // Cached padded bounding box
}

// NewPolygon creates a flat polygon shaded with its face normal
func NewPolygon(vertices []core.Vec3, mat material.Material) (*Polygon, error) {
	p := &Polygon{
		Vertices: vertices,
		Material: mat,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPolygonPatch creates a polygon with per-vertex shading normals
func NewPolygonPatch(vertices, normals []core.Vec3, mat material.Material) (*Polygon, error) {
	if len(normals) != len(vertices) {
		return nil, fmt.Errorf("patch needs one normal per vertex, got %d normals for %d vertices", len(normals), len(vertices))
	}

	unit := make([]core.Vec3, len(normals))
	for i, n := range normals {
		if !n.IsFinite() || n.LengthSquared() == 0 {
			return nil, fmt.Errorf("patch normal %d must be finite and non-zero, got %v", i, n)
		}
		unit[i] = n.Normalize()
	}

	p := &Polygon{
		Vertices: vertices,
		Normals:  unit,
		Material: mat,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// validate rejects degenerate vertex sets and caches the face normal and
// bounding box
func (p *Polygon) validate() error {
	if len(p.Vertices) < 3 {
		return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(p.Vertices))
	}
	for i, v := range p.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("polygon vertex %d must be finite, got %v", i, v)
		}
	}

	// Newell's method: robust to collinear runs that would break a single
	// cross product of the first three vertices
	var normal core.Vec3
	for i, current := range p.Vertices {
		next := p.Vertices[(i+1)%len(p.Vertices)]
		normal.X += (current.Y - next.Y) * (current.Z + next.Z)
		normal.Y += (current.Z - next.Z) * (current.X + next.X)
		normal.Z += (current.X - next.X) * (current.Y + next.Y)
	}
	if normal.LengthSquared() < 1e-16 {
		return fmt.Errorf("polygon has no area (vertices are collinear or coincident)")
	}
	p.normal = normal.Normalize()

	for i, v := range p.Vertices {
		if dist := math.Abs(v.Subtract(p.Vertices[0]).Dot(p.normal)); dist > planarTolerance {
			return fmt.Errorf("polygon is not planar: vertex %d is %g from the plane", i, dist)
		}
	}

	p.bbox = core.NewAABBFromPoints(p.Vertices...).Expand(bboxPadding)
	return nil
}

// Hit tests if a ray intersects with the polygon
func (p *Polygon) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	denom := ray.Direction.Dot(p.normal)
	if math.Abs(denom) < 1e-8 {
		// Ray is parallel to the polygon's plane
		return nil, false
	}

	t := p.Vertices[0].Subtract(ray.Origin).Dot(p.normal) / denom
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	if !p.contains(point) {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.shadingNormal(point))

	return hit, true
}

// contains tests the point against every edge. Because the face normal
// follows the winding, an interior point keeps all the edge cross products
// on the normal's side; points exactly on an edge count as inside.
func (p *Polygon) contains(point core.Vec3) bool {
	for i, current := range p.Vertices {
		next := p.Vertices[(i+1)%len(p.Vertices)]
		edge := next.Subtract(current)
		toPoint := point.Subtract(current)
		if edge.Cross(toPoint).Dot(p.normal) < 0 {
			return false
		}
	}
	return true
}

// shadingNormal returns the face normal, or for patches the per-vertex
// normals interpolated barycentrically over the triangle fan around the
// first vertex
func (p *Polygon) shadingNormal(point core.Vec3) core.Vec3 {
	if len(p.Normals) == 0 {
		return p.normal
	}

	for i := 1; i < len(p.Vertices)-1; i++ {
		u, v, w, ok := barycentric(point, p.Vertices[0], p.Vertices[i], p.Vertices[i+1])
		if !ok {
			continue
		}
		normal := p.Normals[0].Multiply(u).
			Add(p.Normals[i].Multiply(v)).
			Add(p.Normals[i+1].Multiply(w))
		if normal.LengthSquared() > 0 {
			return normal.Normalize()
		}
	}

	// Numerical fallback for points that land between fan triangles
	return p.normal
}

// barycentric returns the coordinates of point in triangle (a, b, c) and
// whether the point lies inside it
func barycentric(point, a, b, c core.Vec3) (u, v, w float64, inside bool) {
	const epsilon = 1e-9

	ab := b.Subtract(a)
	ac := c.Subtract(a)
	ap := point.Subtract(a)

	d00 := ab.Dot(ab)
	d01 := ab.Dot(ac)
	d11 := ac.Dot(ac)
	d20 := ap.Dot(ab)
	d21 := ap.Dot(ac)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < epsilon {
		return 0, 0, 0, false
	}

	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w

	inside = u >= -epsilon && v >= -epsilon && w >= -epsilon
	return u, v, w, inside
}

// BoundingBox returns the axis-aligned bounding box for this polygon,
// padded so axis-aligned faces keep a nonzero thickness
func (p *Polygon) BoundingBox() core.AABB {
	return p.bbox
}
