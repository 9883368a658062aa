package sim

import "math"

// checkMove validates an agent's proposed position against walls and every
// other live agent. A nil return means the move is clear; otherwise the
// obstruction names the first thing hit, walls taking precedence.
func (w *World) checkMove(a *Agent, next Vec2) *Obstruction {
	if w.walls.CircleOverlaps(next.X, next.Y, a.radius) {
		cx, cy := w.walls.toCell(next.X, next.Y)
		return &Obstruction{Kind: CollisionWall, Cell: [2]int{cx, cy}}
	}
	for id, other := range w.agents {
		if id == a.id || !other.IsAlive() {
			continue
		}
		minDist := a.radius + other.radius
		if next.DistSq(other.pos) < minDist*minDist {
			return &Obstruction{Kind: CollisionAgent, Agent: id}
		}
	}
	return nil
}

// advanceBullets moves every bullet along its velocity in sub-steps small
// enough that nothing tunnels through a wall cell or an agent. The first
// surface hit along the path wins; walls absorb the bullet, enemy agents
// take damage.
func (w *World) advanceBullets(dt float64) {
	step := math.Min(w.cfg.BulletRadius, w.cfg.GridUnit/w.cfg.RayStepDivisor)
	for id, b := range w.bullets {
		travel := b.vel.Scale(dt)
		dist := travel.Len()

		steps := 1
		if dist > step {
			steps = int(math.Ceil(dist / step))
		}
		start := b.pos
		hit := false
		for i := 1; i <= steps; i++ {
			pos := start.Add(travel.Scale(float64(i) / float64(steps)))
			if w.walls.CircleOverlaps(pos.X, pos.Y, b.radius) {
				b.pos = pos
				w.removeBullet(id)
				hit = true
				break
			}
			if target := w.bulletHitsAgent(b, pos); target != nil {
				b.pos = pos
				w.applyDamage(target, b)
				w.removeBullet(id)
				hit = true
				break
			}
		}
		if hit {
			continue
		}
		b.pos = start.Add(travel)
		b.ttl -= dt
		if b.expired() {
			w.removeBullet(id)
		}
	}
}

// bulletHitsAgent returns the first live enemy agent the bullet overlaps at
// the given position. Teammates and the owner are never hit.
func (w *World) bulletHitsAgent(b *Bullet, pos Vec2) *Agent {
	for id, a := range w.agents {
		if id == b.owner || a.team == b.team || !a.IsAlive() {
			continue
		}
		minDist := a.radius + b.radius
		if pos.DistSq(a.pos) < minDist*minDist {
			return a
		}
	}
	return nil
}
