package sim

// BulletID is a compact numeric identity sharing the uint16 wraparound scheme
// with agent ids.
type BulletID = uint16

// Bullet is a live projectile. Owned by the World's tick loop.
type Bullet struct {
	id     BulletID
	owner  AgentID
	team   Team
	pos    Vec2
	vel    Vec2
	radius float64
	damage float64
	ttl    float64 // seconds of flight left before the bullet expires
}

func (b *Bullet) ID() BulletID {
	return b.id
}

func (b *Bullet) Owner() AgentID {
	return b.owner
}

func (b *Bullet) Team() Team {
	return b.team
}

func (b *Bullet) Position() Vec2 {
	return b.pos
}

func (b *Bullet) Velocity() Vec2 {
	return b.vel
}

func (b *Bullet) Radius() float64 {
	return b.radius
}

func (b *Bullet) expired() bool {
	return b.ttl <= 0
}
