package material

import (
	"math"

	"github.com/hippopotamus-prime/go-raytracer/pkg/core"
)

// Reflect mirrors the vector v about the unit normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with unit normal n
// using Snell's law, where etaiOverEtat is the ratio of refractive indices
// on the incident and transmitted sides. Returns false when the angle is
// beyond the critical angle (total internal reflection), in which case no
// refracted direction exists.
func Refract(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	if etaiOverEtat*sinTheta > 1.0 {
		return core.Vec3{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel), true
}
