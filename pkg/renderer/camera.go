package renderer

import (
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
	"github.com/hippopotamus-prime/go-raytracer/pkg/scene"
)

// Camera generates primary rays for the perspective projection described by
// a scene view.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera builds a camera from a view. The view angle spans the vertical
// field of view in degrees; the image plane sits at unit distance from the
// eye, so ray parameters measure world distance.
func NewCamera(view scene.View) (*Camera, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	forward := view.At.Subtract(view.From).Normalize()
	right := forward.Cross(view.Up).Normalize()
	up := right.Cross(forward)

	theta := view.Angle * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := halfHeight * float64(view.Width) / float64(view.Height)

	origin := view.From
	lowerLeftCorner := origin.Add(forward).
		Subtract(right.Multiply(halfWidth)).
		Subtract(up.Multiply(halfHeight))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      right.Multiply(2 * halfWidth),
		vertical:        up.Multiply(2 * halfHeight),
	}, nil
}

// GetRay generates a ray through viewport coordinates (s, t), where
// 0 <= s,t <= 1 and (0, 0) is the lower-left corner of the image plane.
// The direction is unit length.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Normalize()

	return core.NewRay(c.origin, direction)
}
