package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/neodefender/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateDead                      // Ship lost, lives remain
	GameStateGameOver                  // No lives left
	GameStateWon                       // Target score reached
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateDead:
		return "dead"
	case GameStateGameOver:
		return "game over"
	case GameStateWon:
		return "won"
	default:
		return "unknown"
	}
}

// WorldState holds the objects on the field.
type WorldState struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after current update cycle
	Field   object.Screen
	Delta   time.Duration // Frame delta time
}

// State holds all game state for one player.
type State struct {
	WorldState

	Input          object.Input
	GameState      GameState
	Ship           *object.Ship
	Fleet          *object.Fleet
	Score          int
	Destroyed      int // Asteroids shot down this mission
	Lives          int
	InvincibleTime float64 // Remaining invincibility time in seconds
	StateTime      float64 // Seconds spent in the current GameState
	Running        bool

	MissionStart time.Time
	Impactor     string // Name of the rock that last hit the ship

	Rand *rand.Rand
}

// NewState creates a new game state on an empty field.
func NewState(lives int, rng *rand.Rand) *State {
	return &State{
		WorldState: WorldState{
			Objects: []object.Object{},
			Field:   object.NewScreen(FieldWidth, FieldHeight),
		},
		GameState: GameStateStart,
		Lives:     lives,
		Running:   true,
		Rand:      rng,
	}
}

// AddObject adds an object to the game world.
func (w *WorldState) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *WorldState) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the game and clears the queue.
func (w *WorldState) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	w.toSpawn = w.toSpawn[:0]
}

// RemoveObject drops target from the world.
func (w *WorldState) RemoveObject(target object.Object) {
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if obj != target {
			kept = append(kept, obj)
		}
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
}

// setState switches the game phase and restarts the phase timer.
func (s *State) setState(gs GameState) {
	s.GameState = gs
	s.StateTime = 0
}

// UpdateContext creates an UpdateContext from the current state.
func (s *State) UpdateContext() object.UpdateContext {
	return object.UpdateContext{
		Delta:   s.Delta,
		Input:   s.Input,
		Field:   s.Field,
		Spawner: &s.WorldState,
		Objects: s.Objects,
		Rand:    s.Rand,
	}
}
