package world

import "math"

// integratePlayer turns the camera-relative input axis into velocity and
// position. Interpolation factors for ground ease and yaw ease are raw
// per-tick multipliers, matching the shipped feel (not time-normalized).
func (w *World) integratePlayer(delta float64) {
	p := w.reg.Player()
	if p == nil || p.Dead {
		return
	}
	mt := w.tun.Move

	moving := w.inputX != 0 || w.inputZ != 0
	moveSpeed := p.Stats.EffectiveSpeed() * mt.PlayerSpeedScale

	if moving && moveSpeed > 0 {
		sin, cos := math.Sincos(w.cameraYaw)
		forward := Vec3{X: sin, Z: cos}
		right := Vec3{X: cos, Z: -sin}
		dir := forward.Scale(w.inputZ).Add(right.Scale(w.inputX)).Normalized()
		target := dir.Scale(moveSpeed)

		t := clamp01(mt.Acceleration / moveSpeed * delta)
		p.Vel.X = lerp(p.Vel.X, target.X, t)
		p.Vel.Z = lerp(p.Vel.Z, target.Z, t)
	} else {
		t := clamp01(mt.Friction * delta)
		p.Vel.X = lerp(p.Vel.X, 0, t)
		p.Vel.Z = lerp(p.Vel.Z, 0, t)
	}

	p.Pos.X += p.Vel.X * delta
	p.Pos.Z += p.Vel.Z * delta
	p.Pos.Y = lerp(p.Pos.Y, HeightAt(p.Pos.X, p.Pos.Z, BiomeSafe), mt.GroundEase)

	speed := math.Hypot(p.Vel.X, p.Vel.Z)
	if speed > mt.YawSpeedGate {
		heading := math.Atan2(p.Vel.X, p.Vel.Z)
		p.Yaw = lerpAngle(p.Yaw, heading, mt.PlayerYawEase)
	}
}

// moveEnemy advances an enemy along a unit direction at a mode-scaled
// speed, following hostile terrain.
func (w *World) moveEnemy(e *Entity, dir Vec3, mult, delta float64) {
	mt := w.tun.Move
	sp := e.Stats.EffectiveSpeed() * mult

	e.Pos.X += dir.X * sp * delta
	e.Pos.Z += dir.Z * sp * delta
	e.Pos.Y = lerp(e.Pos.Y, HeightAt(e.Pos.X, e.Pos.Z, BiomeHostile), mt.GroundEase)

	if dir.X != 0 || dir.Z != 0 {
		heading := math.Atan2(dir.X, dir.Z)
		e.Yaw = lerpAngle(e.Yaw, heading, mt.EnemyYawEase)
	}
}
