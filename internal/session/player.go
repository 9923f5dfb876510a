package session

import (
	"math"

	"gridcaster/internal/config"
	"gridcaster/internal/raycast"
)

// Walls is the collision view of a level.
type Walls interface {
	IsWall(x, y int) bool
}

// Player is the first-person pose plus sprint stamina.
type Player struct {
	X, Y  float64
	Angle float64

	cfg       config.MovementConfig
	stamina   float64
	cooldown  float64 // seconds until stamina starts recovering
	sprinting bool
}

// NewPlayer places a player with full stamina.
func NewPlayer(x, y, angle float64, cfg config.MovementConfig) *Player {
	return &Player{
		X:        x,
		Y:        y,
		Angle:    angle,
		cfg:      cfg,
		stamina:  cfg.MaxStamina,
		cooldown: cfg.RegenCooldown,
	}
}

// Pose is the ray caster's view of the player.
func (p *Player) Pose() raycast.Pose {
	return raycast.Pose{X: p.X, Y: p.Y, Angle: p.Angle}
}

// SetSprint starts sprinting only while stamina remains; releasing always stops.
func (p *Player) SetSprint(on bool) {
	switch {
	case on && !p.sprinting && p.stamina > 0:
		p.sprinting = true
	case !on:
		p.sprinting = false
	}
}

// Sprinting reports whether the sprint multiplier is active.
func (p *Player) Sprinting() bool { return p.sprinting }

// Speed is the distance covered per tick.
func (p *Player) Speed() float64 {
	if p.sprinting {
		return p.cfg.MoveSpeed * p.cfg.SprintMultiplier
	}
	return p.cfg.MoveSpeed
}

// Move walks forward (negative for backward) and strafes right (negative
// for left) in units of Speed. Each axis is blocked independently so the
// player slides along walls.
func (p *Player) Move(walls Walls, forward, strafe float64) bool {
	if forward == 0 && strafe == 0 {
		return false
	}
	speed := p.Speed()
	cos, sin := math.Cos(p.Angle), math.Sin(p.Angle)
	dx := (cos*forward - sin*strafe) * speed
	dy := (sin*forward + cos*strafe) * speed

	moved := false
	if nx := p.X + dx; !walls.IsWall(cell(nx), cell(p.Y)) {
		p.X = nx
		moved = true
	}
	if ny := p.Y + dy; !walls.IsWall(cell(p.X), cell(ny)) {
		p.Y = ny
		moved = true
	}
	return moved
}

// Rotate turns the player by delta radians.
func (p *Player) Rotate(delta float64) {
	p.Angle += delta
}

// UpdateStamina drains stamina while sprinting and refills it once the
// cooldown has passed. Running dry ends the sprint.
func (p *Player) UpdateStamina(dt float64) {
	if p.sprinting {
		p.stamina = math.Max(0, p.stamina-p.cfg.StaminaDrain*dt)
		p.cooldown = p.cfg.RegenCooldown
		if p.stamina == 0 {
			p.sprinting = false
		}
		return
	}
	if p.cooldown > 0 {
		p.cooldown = math.Max(0, p.cooldown-dt)
		return
	}
	p.stamina = math.Min(p.cfg.MaxStamina, p.stamina+p.cfg.StaminaRecovery*dt)
}

// Stamina is the remaining sprint budget.
func (p *Player) Stamina() float64 { return p.stamina }

// StaminaRatio is stamina as a fraction of the maximum, for the HUD.
func (p *Player) StaminaRatio() float64 {
	if p.cfg.MaxStamina <= 0 {
		return 0
	}
	return p.stamina / p.cfg.MaxStamina
}

// Teleport moves the player without collision checks.
func (p *Player) Teleport(x, y float64) {
	p.X, p.Y = x, y
}

// Cell is the grid cell under the player.
func (p *Player) Cell() (int, int) {
	return cell(p.X), cell(p.Y)
}

func cell(v float64) int {
	return int(math.Floor(v))
}
