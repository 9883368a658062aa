package combat

import (
	"context"

	"github.com/andronedrei/arena-battle/logging"
)

const (
	// EventBulletFired is emitted when a weapon clears its cooldown and spawns a bullet.
	EventBulletFired logging.EventType = "combat.bullet_fired"
	// EventDamage is emitted when a bullet deals damage to an agent.
	EventDamage logging.EventType = "combat.damage"
	// EventDefeat is emitted when an agent's health reaches zero.
	EventDefeat logging.EventType = "combat.defeat"
)

// BulletFiredPayload captures the spawn parameters of a fired bullet.
type BulletFiredPayload struct {
	BulletID uint16  `json:"bulletId"`
	GunAngle float64 `json:"gunAngle"`
	Ammo     int     `json:"ammo,omitempty"`
}

// DamagePayload captures the amount dealt to a single target.
type DamagePayload struct {
	BulletID     uint16  `json:"bulletId"`
	Amount       float64 `json:"amount"`
	TargetHealth float64 `json:"targetHealth"`
}

// DefeatPayload describes the context for a fatal hit.
type DefeatPayload struct {
	BulletID uint16 `json:"bulletId"`
	Team     int    `json:"team"`
}

// BulletFired publishes a weapon fire event.
func BulletFired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload BulletFiredPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventBulletFired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Damage publishes a combat damage event for a single target.
func Damage(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DamagePayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDamage,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

// Defeat publishes an agent defeat event.
func Defeat(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, target logging.EntityRef, payload DefeatPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefeat,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}
