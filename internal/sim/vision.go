package sim

import "math"

// refreshDetection rebuilds the agent's set of visible enemies by casting a
// fan of rays across the vision cone centered on the gun angle. Rays stop at
// the first wall; an enemy is detected when any sample point along a ray
// lands inside its circle.
func (w *World) refreshDetection(a *Agent) {
	clear(a.detected)
	if !a.IsAlive() {
		return
	}

	viewDist := w.cfg.ViewDistance()

	// Only enemies whose circle can intersect the vision disc are worth
	// testing against each ray sample.
	candidates := make([]*Agent, 0, len(w.agents))
	for id, other := range w.agents {
		if id == a.id || other.team == a.team || !other.IsAlive() {
			continue
		}
		reach := viewDist + other.radius
		if a.pos.DistSq(other.pos) <= reach*reach {
			candidates = append(candidates, other)
		}
	}
	if len(candidates) == 0 {
		return
	}

	halfOpening := w.cfg.FOVOpening / 2
	rayCount := w.cfg.FOVNumRays + 1 // inclusive of both cone edges
	stepLen := w.cfg.GridUnit / w.cfg.RayStepDivisor
	samples := int(viewDist / stepLen)

	for ray := 0; ray < rayCount; ray++ {
		angle := a.gunAngle - halfOpening + w.cfg.FOVOpening*float64(ray)/float64(rayCount-1)
		dir := Vec2{X: math.Cos(angle), Y: math.Sin(angle)}

		for s := 1; s <= samples; s++ {
			pos := a.pos.Add(dir.Scale(stepLen * float64(s)))
			if w.walls.HasWallAt(pos.X, pos.Y) {
				break
			}
			for _, enemy := range candidates {
				if _, seen := a.detected[enemy.id]; seen {
					continue
				}
				if pos.DistSq(enemy.pos) <= enemy.radius*enemy.radius {
					a.detected[enemy.id] = struct{}{}
				}
			}
		}
	}
}
