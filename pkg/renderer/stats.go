package renderer

// RenderStats counts the rays traced during a render, per kind.
type RenderStats struct {
	PrimaryRays    int64 // One per pixel
	ShadowRays     int64 // Occlusion tests toward lights
	ReflectionRays int64 // Mirror bounces, including total internal reflection
	RefractionRays int64 // Transmission rays through dielectrics
}

// TotalRays returns the number of rays traced overall.
func (s RenderStats) TotalRays() int64 {
	return s.PrimaryRays + s.ShadowRays + s.ReflectionRays + s.RefractionRays
}

// Merge accumulates counts from another stats block.
func (s *RenderStats) Merge(other RenderStats) {
	s.PrimaryRays += other.PrimaryRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
	s.RefractionRays += other.RefractionRays
}
