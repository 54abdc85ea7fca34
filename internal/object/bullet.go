package object

import (
	"github.com/tomz197/neodefender/internal/draw"
	"github.com/tomz197/neodefender/internal/physics"
)

// Bullet dimensions and speed.
const (
	BulletWidth  = 6.0
	BulletHeight = 15.0
	BulletSpeed  = 600.0 // 10 units per frame at 60 FPS
)

// Bullet is a shot fired by the ship. It travels straight up.
type Bullet struct {
	X      float64 // Horizontal centre
	Bottom float64 // Y of the bottom edge
	Speed  float64 // Units per second, upward

	destroyed bool
}

// NewBullet creates a bullet whose bottom-centre is at (x, bottom).
func NewBullet(x, bottom float64) *Bullet {
	return &Bullet{X: x, Bottom: bottom, Speed: BulletSpeed}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Bounds returns the bullet's collision rectangle.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X - BulletWidth/2, Y: b.Bottom - BulletHeight, W: BulletWidth, H: BulletHeight}
}

// Update moves the bullet; it is removed once it leaves the top of the field.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.destroyed {
		return true, nil
	}
	b.Bottom -= b.Speed * ctx.Delta.Seconds()
	return b.Bottom < 0, nil
}

// Draw renders the bullet.
func (b *Bullet) Draw(ctx DrawContext) error {
	r := b.Bounds()
	ctx.Canvas.SetColor(draw.ColorYellow)
	ctx.Canvas.DrawRect(r.X, r.Y, r.W, r.H, true)
	return nil
}
