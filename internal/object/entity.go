// Package object holds the falling entities, their store and the spawn policy.
package object

import "time"

// Kind is the closed set of falling object kinds.
type Kind int

const (
	KindFruit Kind = iota
	KindBomb
	KindFreeze
	KindDouble
	KindHeart

	KindCount // Number of kinds; keep last
)

var kindNames = [KindCount]string{
	KindFruit:  "fruit",
	KindBomb:   "bomb",
	KindFreeze: "freeze",
	KindDouble: "double",
	KindHeart:  "heart",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsPowerUp reports whether the kind grants a beneficial effect when sliced.
func (k Kind) IsPowerUp() bool {
	return k == KindFreeze || k == KindDouble || k == KindHeart
}

// Variant is the cosmetic look of a fruit. It has no gameplay effect.
type Variant int

const (
	VariantNone Variant = iota
	VariantApple
	VariantBanana
	VariantWatermelon
)

// fruitVariants lists the variants a fruit is drawn from.
var fruitVariants = []Variant{VariantApple, VariantBanana, VariantWatermelon}

func (v Variant) String() string {
	switch v {
	case VariantApple:
		return "apple"
	case VariantBanana:
		return "banana"
	case VariantWatermelon:
		return "watermelon"
	default:
		return ""
	}
}

// Entity is a falling object on the field.
type Entity struct {
	X, Y    float64       // Position (center)
	VX, VY  float64       // Velocity
	Radius  int           // Hit-test size
	Kind    Kind          // Gameplay kind
	Variant Variant       // Fruit look (VariantNone for other kinds)
	Alive   bool          // False once missed, sliced or expired
	Born    time.Duration // Round-clock creation time
}

// Step integrates the entity over dt seconds.
// While frozen both axes advance at rate and gravity is not applied.
func (e *Entity) Step(dt, gravity float64, frozen bool, rate float64) {
	if frozen {
		e.X += e.VX * dt * rate
		e.Y += e.VY * dt * rate
		return
	}
	e.VY += gravity * dt
	e.X += e.VX * dt
	e.Y += e.VY * dt
}

// Age returns how long the entity has existed at round time now.
func (e *Entity) Age(now time.Duration) time.Duration {
	return now - e.Born
}

// MarkDestroyed marks the entity dead.
func (e *Entity) MarkDestroyed() {
	e.Alive = false
}

// IsDestroyed returns true once the entity is dead.
func (e *Entity) IsDestroyed() bool {
	return !e.Alive
}

// GetRadius returns the entity's hit radius.
func (e *Entity) GetRadius() float64 {
	return float64(e.Radius)
}
