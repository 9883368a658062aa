package sim

import "math"

// Config captures every tunable the simulation core reads. A World holds an
// immutable copy so concurrent matches can run with different tuning.
type Config struct {
	// Timing.
	TickRate      int // simulation steps per second
	BroadcastRate int // snapshot deliveries per second

	// World geometry.
	WorldWidth  float64
	WorldHeight float64
	GridUnit    float64 // wall cell size in pixels

	// Agent defaults.
	AgentRadius  float64
	AgentHealth  float64
	AgentDamage  float64
	AgentSpeed   float64 // pixels per second
	GunTurnSpeed float64 // radians per second

	// Weapon tuning.
	ShootCooldown     float64 // seconds between shots
	BulletSpeed       float64 // pixels per second
	BulletRadius      float64
	BulletOffsetRatio float64 // muzzle offset as a multiple of agent radius
	BulletLifetime    float64 // seconds
	MagazineSize      int     // bullets per magazine, 0 = infinite ammo
	ReloadDuration    float64 // seconds

	// Vision tuning.
	FOVRatio          float64 // view distance as a multiple of agent radius
	FOVOpening        float64 // cone angle in radians
	FOVNumRays        int
	RayStepDivisor    float64 // ray step = GridUnit / RayStepDivisor
	DetectionInterval uint64  // refresh detected enemies every Nth tick

	// Match limits.
	MatchDuration float64 // seconds, 0 = unlimited

	KOTH KOTHConfig
	CTF  CTFConfig
}

// KOTHConfig tunes the king-of-the-hill mode.
type KOTHConfig struct {
	ZoneCenter      Vec2
	ZoneRadius      float64
	PointsPerSecond float64
	ScoringInterval float64 // seconds between point awards
	MaxPoints       float64
	MaxDuration     float64 // seconds, 0 = unlimited
}

// CTFConfig tunes the capture-the-flag mode.
type CTFConfig struct {
	BaseA           Vec2
	BaseB           Vec2
	PickupRadius    float64
	CaptureRadius   float64 // carrier must reach this close to its own base
	AutoReturnAfter float64 // seconds a dropped flag waits before returning, 0 = never
	MaxCaptures     int
	MaxDuration     float64
}

// DefaultConfig returns the stock arena tuning.
func DefaultConfig() Config {
	return Config{
		TickRate:      30,
		BroadcastRate: 15,

		WorldWidth:  1280,
		WorldHeight: 720,
		GridUnit:    5,

		AgentRadius:  20,
		AgentHealth:  100,
		AgentDamage:  20,
		AgentSpeed:   50,
		GunTurnSpeed: 2 * math.Pi / 5,

		ShootCooldown:     1.0,
		BulletSpeed:       100,
		BulletRadius:      5,
		BulletOffsetRatio: 1.2,
		BulletLifetime:    5.0,
		MagazineSize:      0,
		ReloadDuration:    2.0,

		FOVRatio:          40,
		FOVOpening:        math.Pi / 3,
		FOVNumRays:        25,
		RayStepDivisor:    2,
		DetectionInterval: 5,

		MatchDuration: 0,

		KOTH: KOTHConfig{
			ZoneCenter:      Vec2{X: 640, Y: 360},
			ZoneRadius:      100,
			PointsPerSecond: 10,
			ScoringInterval: 0.5,
			MaxPoints:       1000,
			MaxDuration:     180,
		},
		CTF: CTFConfig{
			BaseA:           Vec2{X: 100, Y: 360},
			BaseB:           Vec2{X: 1180, Y: 360},
			PickupRadius:    30,
			CaptureRadius:   150,
			AutoReturnAfter: 30,
			MaxCaptures:     1,
			MaxDuration:     300,
		},
	}
}

// normalized returns a config with zero or negative fields replaced by the
// stock values so a partially filled Config stays usable.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.BroadcastRate <= 0 || c.BroadcastRate > c.TickRate {
		c.BroadcastRate = min(def.BroadcastRate, c.TickRate)
	}
	if c.WorldWidth <= 0 {
		c.WorldWidth = def.WorldWidth
	}
	if c.WorldHeight <= 0 {
		c.WorldHeight = def.WorldHeight
	}
	if c.GridUnit <= 0 {
		c.GridUnit = def.GridUnit
	}
	if c.AgentRadius <= 0 {
		c.AgentRadius = def.AgentRadius
	}
	if c.AgentHealth <= 0 {
		c.AgentHealth = def.AgentHealth
	}
	if c.AgentDamage <= 0 {
		c.AgentDamage = def.AgentDamage
	}
	if c.AgentSpeed <= 0 {
		c.AgentSpeed = def.AgentSpeed
	}
	if c.GunTurnSpeed <= 0 {
		c.GunTurnSpeed = def.GunTurnSpeed
	}
	if c.ShootCooldown <= 0 {
		c.ShootCooldown = def.ShootCooldown
	}
	if c.BulletSpeed <= 0 {
		c.BulletSpeed = def.BulletSpeed
	}
	if c.BulletRadius <= 0 {
		c.BulletRadius = def.BulletRadius
	}
	if c.BulletOffsetRatio <= 0 {
		c.BulletOffsetRatio = def.BulletOffsetRatio
	}
	if c.BulletLifetime <= 0 {
		c.BulletLifetime = def.BulletLifetime
	}
	if c.MagazineSize < 0 {
		c.MagazineSize = 0
	}
	if c.ReloadDuration <= 0 {
		c.ReloadDuration = def.ReloadDuration
	}
	if c.FOVRatio <= 0 {
		c.FOVRatio = def.FOVRatio
	}
	if c.FOVOpening <= 0 {
		c.FOVOpening = def.FOVOpening
	}
	if c.FOVNumRays <= 0 {
		c.FOVNumRays = def.FOVNumRays
	}
	if c.RayStepDivisor <= 0 {
		c.RayStepDivisor = def.RayStepDivisor
	}
	if c.DetectionInterval == 0 {
		c.DetectionInterval = def.DetectionInterval
	}
	c.KOTH = c.KOTH.normalized()
	c.CTF = c.CTF.normalized()
	return c
}

// normalized fills zero or negative sub-fields with the stock values. A
// partially filled mode config must never reach the scoring loop: a zero
// ScoringInterval would stall it.
func (c KOTHConfig) normalized() KOTHConfig {
	def := DefaultConfig().KOTH
	if (c.ZoneCenter == Vec2{}) {
		c.ZoneCenter = def.ZoneCenter
	}
	if c.ZoneRadius <= 0 {
		c.ZoneRadius = def.ZoneRadius
	}
	if c.PointsPerSecond <= 0 {
		c.PointsPerSecond = def.PointsPerSecond
	}
	if c.ScoringInterval <= 0 {
		c.ScoringInterval = def.ScoringInterval
	}
	if c.MaxPoints <= 0 {
		c.MaxPoints = def.MaxPoints
	}
	if c.MaxDuration < 0 {
		c.MaxDuration = 0
	}
	return c
}

// normalized fills zero or negative sub-fields with the stock values.
// AutoReturnAfter and MaxDuration keep their 0 = never/unlimited meaning.
func (c CTFConfig) normalized() CTFConfig {
	def := DefaultConfig().CTF
	if (c.BaseA == Vec2{}) && (c.BaseB == Vec2{}) {
		c.BaseA = def.BaseA
		c.BaseB = def.BaseB
	}
	if c.PickupRadius <= 0 {
		c.PickupRadius = def.PickupRadius
	}
	if c.CaptureRadius <= 0 {
		c.CaptureRadius = def.CaptureRadius
	}
	if c.MaxCaptures <= 0 {
		c.MaxCaptures = def.MaxCaptures
	}
	if c.AutoReturnAfter < 0 {
		c.AutoReturnAfter = 0
	}
	if c.MaxDuration < 0 {
		c.MaxDuration = 0
	}
	return c
}

// ViewDistance returns the maximum vision range for the configured agent radius.
func (c Config) ViewDistance() float64 {
	return c.FOVRatio * c.AgentRadius
}
