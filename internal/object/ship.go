package object

import (
	"github.com/tomz197/neodefender/internal/draw"
	"github.com/tomz197/neodefender/internal/physics"
)

// Ship dimensions and handling.
const (
	ShipWidth        = 40.0
	ShipHeight       = 40.0
	ShipSpeed        = 480.0 // 8 units per frame at 60 FPS
	ShipFireRate     = 0.15  // Minimum seconds between shots
	ShipBottomMargin = 10.0  // Gap between the ship and the bottom of the field
)

// Ship is the player-controlled defender. It slides along the bottom of the
// field and fires bullets straight up.
type Ship struct {
	X, Y          float64 // Centre position
	Width, Height float64
	Speed         float64 // Units per second

	// Shooting
	FireRate     float64 // Minimum seconds between shots
	fireCooldown float64 // Time until next shot allowed
	Shots        int     // Bullets fired since spawn
}

// NewShip creates a ship centred horizontally at the bottom of the field.
func NewShip(field Screen) *Ship {
	return &Ship{
		X:        float64(field.Width) / 2,
		Y:        float64(field.Height) - ShipBottomMargin - ShipHeight/2,
		Width:    ShipWidth,
		Height:   ShipHeight,
		Speed:    ShipSpeed,
		FireRate: ShipFireRate,
	}
}

// Update handles sideways movement and shooting.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	if ctx.Input.Left {
		s.X -= s.Speed * dt
	}
	if ctx.Input.Right {
		s.X += s.Speed * dt
	}

	// Keep the whole hull inside the field
	half := s.Width / 2
	s.X = physics.Clamp(s.X, half, float64(ctx.Field.Width)-half)

	s.fireCooldown -= dt
	if ctx.Input.Space && s.fireCooldown <= 0 && ctx.Spawner != nil {
		s.fireCooldown = s.FireRate
		s.Shots++
		ctx.Spawner.Spawn(s.Shoot())
	}

	return false, nil
}

// Shoot returns a bullet leaving the nose of the ship.
func (s *Ship) Shoot() *Bullet {
	return NewBullet(s.X, s.Y-s.Height/2)
}

// Bounds returns the ship's collision rectangle.
func (s *Ship) Bounds() physics.Rect {
	return physics.RectCentered(s.X, s.Y, s.Width, s.Height)
}

// GetPosition returns the ship's centre.
func (s *Ship) GetPosition() (float64, float64) {
	return s.X, s.Y
}

// Draw renders the ship as a filled triangle pointing up.
func (s *Ship) Draw(ctx DrawContext) error {
	b := s.Bounds()
	triangle := ctx.Canvas.BorrowPoints(3)
	triangle[0] = draw.Point{X: s.X, Y: b.Y}
	triangle[1] = draw.Point{X: b.X, Y: b.Bottom()}
	triangle[2] = draw.Point{X: b.Right(), Y: b.Bottom()}

	ctx.Canvas.SetColor(draw.ColorWhite)
	ctx.Canvas.DrawPolygon(triangle, true)
	return nil
}
