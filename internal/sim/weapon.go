package sim

import (
	"math"

	"github.com/andronedrei/arena-battle/logging/combat"
)

// advanceWeapon ticks the cooldown and reload timers for one agent.
func (a *Agent) advanceWeapon(dt float64) {
	if a.cooldown > 0 {
		a.cooldown = math.Max(0, a.cooldown-dt)
	}
	if a.reloading {
		a.reloadTimer -= dt
		if a.reloadTimer <= 0 {
			a.reloading = false
			a.reloadTimer = 0
			a.ammo = a.world.cfg.MagazineSize
		}
	}
}

// requestFire resolves one fire intent. The shot is refused while the weapon
// cools down or reloads; an empty magazine starts a reload instead of firing.
func (w *World) requestFire(a *Agent) {
	if a.cooldown > 0 || a.reloading {
		return
	}
	if a.ammo == 0 {
		a.StartReload()
		return
	}

	dir := Vec2{X: math.Cos(a.gunAngle), Y: math.Sin(a.gunAngle)}
	spawn := a.pos.Add(dir.Scale(a.radius * w.cfg.BulletOffsetRatio))

	id, err := w.allocBulletID()
	if err != nil {
		return
	}
	b := &Bullet{
		id:     id,
		owner:  a.id,
		team:   a.team,
		pos:    spawn,
		vel:    dir.Scale(w.cfg.BulletSpeed),
		radius: w.cfg.BulletRadius,
		damage: a.damage,
		ttl:    w.cfg.BulletLifetime,
	}
	w.bullets[id] = b

	a.cooldown = w.cfg.ShootCooldown
	if a.ammo != infiniteAmmo {
		a.ammo--
	}

	combat.BulletFired(w.ctx, w.publisher, w.tick, agentRef(a.id), combat.BulletFiredPayload{
		BulletID: id,
		GunAngle: a.gunAngle,
		Ammo:     a.ammo,
	})
}
