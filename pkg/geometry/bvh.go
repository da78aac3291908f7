package geometry

import (
	"sort"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy. Leaf nodes
// hold shapes directly; interior nodes always have both children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes, nil for interior nodes
}

// BVH represents a Bounding Volume Hierarchy for fast ray-shape
// intersection. It is built once per scene and read-only afterwards, so
// any number of workers may query it concurrently.
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: nodes with this many or fewer shapes become leaves
const leafThreshold = 4

// Hard cap on tree depth; degenerate inputs become big leaves instead of
// deep chains
const maxTreeDepth = 32

// NewBVH constructs a BVH from a slice of shapes. The slice is copied, so
// the caller's ordering is left untouched.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy, 0)}
}

// buildBVH recursively builds the hierarchy by splitting at the median
// centroid along the axis where the centroids spread widest, which keeps
// the two halves balanced even for clustered scenes
func buildBVH(shapes []Shape, depth int) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafThreshold || depth >= maxTreeDepth {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	centers := make([]core.Vec3, len(shapes))
	for i, shape := range shapes {
		centers[i] = shape.BoundingBox().Center()
	}
	axis := core.NewAABBFromPoints(centers...).LongestAxis()

	sortShapesByAxis(shapes, axis)
	mid := len(shapes) / 2

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid], depth+1),
		Right:       buildBVH(shapes[mid:], depth+1),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the
// specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox().Center()
		centerJ := shapes[j].BoundingBox().Center()

		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Hit returns the nearest intersection in the hierarchy, descending into
// the child whose box the ray enters first and skipping the far child
// whenever the nearest hit so far is closer than its box
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	if !bvh.Root.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes. The caller
// has already tested the node's own box.
func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if node.Shapes != nil {
		var closestHit *material.HitRecord
		closestSoFar := tMax

		for _, shape := range node.Shapes {
			if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				closestHit = hit
				closestSoFar = hit.T
			}
		}

		return closestHit, closestHit != nil
	}

	nearEntry, nearOK := node.Left.BoundingBox.HitDistance(ray, tMin, tMax)
	farEntry, farOK := node.Right.BoundingBox.HitDistance(ray, tMin, tMax)
	near, far := node.Left, node.Right
	if !nearOK || (farOK && farEntry < nearEntry) {
		near, far = far, near
		nearEntry, farEntry = farEntry, nearEntry
		nearOK, farOK = farOK, nearOK
	}

	if !nearOK {
		return nil, false
	}

	closestHit, _ := hitNode(near, ray, tMin, tMax)
	closestSoFar := tMax
	if closestHit != nil {
		closestSoFar = closestHit.T
	}

	// The far child starts at farEntry, so anything in it is at least that
	// far away
	if farOK && farEntry <= closestSoFar {
		if hit, ok := hitNode(far, ray, tMin, closestSoFar); ok {
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// AnyHit reports whether anything blocks the ray within (tMin, tMax]. It
// returns on the first intersection found, without ordering the descent,
// which makes shadow tests cheaper than nearest-hit queries.
func (bvh *BVH) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	return anyHitNode(bvh.Root, ray, tMin, tMax)
}

func anyHitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if node == nil || !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, ok := shape.Hit(ray, tMin, tMax); ok {
				return true
			}
		}
		return false
	}

	return anyHitNode(node.Left, ray, tMin, tMax) || anyHitNode(node.Right, ray, tMin, tMax)
}

// BoundingBox implements the Shape interface, so a built hierarchy can be
// treated as a single compound shape
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}
