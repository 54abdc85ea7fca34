package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/neodefender/internal/draw"
	"github.com/tomz197/neodefender/internal/neo"
	"github.com/tomz197/neodefender/internal/physics"
)

// Mapping from real-world measurements to game units.
const (
	MinDiameter = 10.0  // meters; smaller rocks are drawn at this size
	MaxDiameter = 300.0 // meters; larger rocks are drawn at this size
	MinRadius   = 10.0  // field units
	RadiusRange = 50.0  // field units added for the largest rocks

	VelocityPerSpeedStep = 8000.0 // km/h per unit-per-frame of fall speed
	MinFallSpeed         = 2      // units per frame
	MaxFallSpeed         = 12     // units per frame
	FramesPerSecond      = 60     // Frame rate the per-frame speeds are defined for

	RespawnMinTop = -150.0 // Highest respawn position of an asteroid's top edge
	RespawnMaxTop = -40.0  // Lowest respawn position of an asteroid's top edge
)

// RadiusFor maps a diameter in meters onto a radius in field units (10..60).
func RadiusFor(diameter float64) float64 {
	t := physics.Clamp(diameter, MinDiameter, MaxDiameter) / MaxDiameter
	return math.Floor(physics.Lerp(0, RadiusRange, t)) + MinRadius
}

// FallSpeedFor maps a velocity in km/h onto a fall speed in units per frame.
func FallSpeedFor(velocity float64) int {
	steps := int(velocity / VelocityPerSpeedStep)
	return max(MinFallSpeed, min(steps, MaxFallSpeed))
}

// ColorFor returns the hazard colour of a rock.
func ColorFor(hazardous bool) draw.Color {
	if hazardous {
		return draw.ColorRed
	}
	return draw.ColorGrey
}

// Asteroid is a falling rock built from a near-Earth object.
type Asteroid struct {
	Data          neo.Asteroid
	Slot          int     // Index of Data in the fleet's catalog
	X, Y          float64 // Centre position
	Radius        float64
	FallSpeed     float64 // Units per second
	Color         draw.Color
	Angle         float64   // Current rotation angle
	RotationSpeed float64   // Radians per second
	Vertices      []float64 // Vertex distances from center (for irregular shape)
	Destroyed     bool      // Mark for removal
}

// NewAsteroid creates a rock for data and places it above the field.
func NewAsteroid(data neo.Asteroid, slot int, field Screen, rng *rand.Rand) *Asteroid {
	radius := RadiusFor(data.Diameter)

	// Irregular outline, 10-14 vertices within ±15% of the radius
	numVerts := 10 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.85 + rng.Float64()*0.3)
	}

	a := &Asteroid{
		Data:          data,
		Slot:          slot,
		Radius:        radius,
		FallSpeed:     float64(FallSpeedFor(data.Velocity) * FramesPerSecond),
		Color:         ColorFor(data.Hazardous),
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 2.0,
		Vertices:      vertices,
	}
	a.Respawn(field, rng)
	return a
}

// Respawn moves the rock to a random horizontal position just above the field.
func (a *Asteroid) Respawn(field Screen, rng *rand.Rand) {
	size := a.Radius * 2
	maxLeft := math.Max(float64(field.Width)-size, 0)
	left := math.Floor(rng.Float64() * (maxLeft + 1))
	top := RespawnMinTop + math.Floor(rng.Float64()*(RespawnMaxTop-RespawnMinTop+1))

	a.X = left + a.Radius
	a.Y = top + a.Radius
	a.Destroyed = false
}

// Top returns the y coordinate of the rock's top edge.
func (a *Asteroid) Top() float64 {
	return a.Y - a.Radius
}

// Update makes the rock fall. Once its top passes the bottom of the field it
// starts over from the top.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	if a.Destroyed {
		// Larger rocks throw more debris
		particleCount := 6 + int(a.Radius/5)
		SpawnExplosion(a.X, a.Y, particleCount, a.Radius*4, 0.6, a.Color, ctx.Rand, ctx.Spawner)
		return true, nil
	}

	dt := ctx.Delta.Seconds()
	a.Angle += a.RotationSpeed * dt
	a.Y += a.FallSpeed * dt

	if a.Top() > float64(ctx.Field.Height) {
		a.Respawn(ctx.Field, ctx.Rand)
	}
	return false, nil
}

// Draw renders the asteroid as an irregular filled polygon in its hazard colour.
func (a *Asteroid) Draw(ctx DrawContext) error {
	numVerts := len(a.Vertices)

	// Use reusable buffer from canvas to avoid per-frame allocations.
	points := ctx.Canvas.BorrowPoints(numVerts)
	for i, dist := range a.Vertices {
		vertAngle := a.Angle + float64(i)*2*math.Pi/float64(numVerts)
		points[i] = draw.Point{
			X: a.X + math.Cos(vertAngle)*dist,
			Y: a.Y + math.Sin(vertAngle)*dist,
		}
	}

	ctx.Canvas.SetColor(a.Color)
	ctx.Canvas.DrawPolygon(points, true)
	return nil
}

// Label returns the rock's name, placed just above it.
func (a *Asteroid) Label() Label {
	return Label{X: a.X, Y: a.Top() - 10, Value: a.Data.Name}
}

// MarkDestroyed marks the asteroid for removal (implements Destructible).
func (a *Asteroid) MarkDestroyed() {
	a.Destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for destruction (implements Destructible).
func (a *Asteroid) IsDestroyed() bool {
	return a.Destroyed
}

// GetPosition returns the asteroid's center position.
func (a *Asteroid) GetPosition() (float64, float64) {
	return a.X, a.Y
}

// GetRadius returns the asteroid's collision radius.
func (a *Asteroid) GetRadius() float64 {
	return a.Radius
}
