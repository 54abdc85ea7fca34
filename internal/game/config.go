package game

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Field resolution - logical units used by every object.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Render area limits, in terminal cells. Half-block pixels are roughly square,
// so a 4:3 field needs rows = cols * 3/8.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
	aspectNum     = 3
	aspectDen     = 8
)

// Scoring
const (
	ScorePerAsteroid   = 100
	DefaultTargetScore = 5000
)

// Player
const (
	DefaultLives         = 1
	InvincibilitySeconds = 3.0
	PlayerBlinkFrequency = 10.0 // Hz
	RestartDelaySeconds  = 0.75 // Keys are ignored this long after a mission ends
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	maxFrameDelta   = 100 * time.Millisecond // Larger gaps (e.g. a stalled SSH write) are capped
)

// Collision broad phase. Must be >= the largest bullet-asteroid interaction
// distance: biggest radius (60) plus the bullet's half diagonal (~8).
const collisionGridCellSize = 80.0

// recentMissions is how many past missions the start screen lists.
const recentMissions = 3
