// Package game runs a single player's mission: the Input → Update → Draw
// frame loop, the state machine, and mission bookkeeping.
package game

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neodefender/internal/apod"
	"github.com/tomz197/neodefender/internal/draw"
	"github.com/tomz197/neodefender/internal/input"
	"github.com/tomz197/neodefender/internal/mission"
	"github.com/tomz197/neodefender/internal/neo"
	"github.com/tomz197/neodefender/internal/physics"
)

// Options configures a game.
type Options struct {
	Catalog     neo.Catalog
	Picture     apod.Picture // Shown on the title screen when set
	Player      string
	Lives       int
	TargetScore int // Score that wins the mission; 0 plays until the ship is lost

	Missions mission.Log
	Logger   *log.Logger

	TermSizeFunc draw.TermSizeFunc

	// Inactivity handling; zero disables it.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration

	Seed int64 // Random seed; 0 picks one from the clock
}

// Game handles rendering, input and simulation for a single player.
type Game struct {
	opts        Options
	state       *State
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	styles      draw.Styles
	writer      io.Writer
	inputStream *input.Stream
	grid        *physics.SpatialGrid
	history     []mission.Record // Recent missions for the title screen

	lastInput  time.Time
	isInactive bool
}

// New creates a game reading keys from r and drawing to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Game {
	if opts.Lives < 1 {
		opts.Lives = DefaultLives
	}
	if opts.TargetScore < 0 {
		opts.TargetScore = 0
	}
	if len(opts.Catalog.Asteroids) == 0 {
		opts.Catalog = neo.Fallback()
	}
	if opts.Missions == nil {
		opts.Missions = mission.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	state := NewState(opts.Lives, rand.New(rand.NewSource(opts.Seed)))

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, FieldWidth, FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Game{
		opts:        opts,
		state:       state,
		canvas:      canvas,
		chunkWriter: draw.NewChunkWriter(w, offsetCol, offsetRow),
		styles:      draw.NewStyles(w),
		writer:      w,
		inputStream: input.StartStream(r),
		grid:        physics.NewSpatialGrid(FieldWidth, FieldHeight, collisionGridCellSize),
		lastInput:   time.Now(),
	}
}

// State exposes the game state.
func (g *Game) State() *State {
	return g.state
}

// Run starts the frame loop. It returns when the player quits, the input
// stream closes, the player is idle for too long, or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	draw.EnterScreen(g.writer)
	defer draw.LeaveScreen(g.writer)

	g.loadHistory(ctx)
	g.opts.Logger.Info("game started", "player", g.opts.Player,
		"asteroids", len(g.opts.Catalog.Asteroids), "source", g.opts.Catalog.Source)

	lastTime := time.Now()

	for g.state.Running {
		if ctx.Err() != nil {
			g.quit(ctx)
			break
		}

		frameStart := time.Now()
		delta := min(frameStart.Sub(lastTime), maxFrameDelta)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := g.readInput()

		// ===== UPDATE PHASE =====
		g.updateScreen()
		if err := g.Step(ctx, in, delta); err != nil {
			return err
		}

		// ===== DRAW PHASE =====
		if err := g.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	g.opts.Logger.Info("game ended", "player", g.opts.Player, "score", g.state.Score)
	return nil
}

// readInput reads pending keys and tracks inactivity.
func (g *Game) readInput() input.Input {
	in := input.ReadInput(g.inputStream)
	if g.inputStream.Closed() {
		in.Quit = true
	}

	idle := time.Since(g.lastInput)
	switch {
	case in.AnyKey():
		g.lastInput = time.Now()
		g.isInactive = false
	case g.opts.InactivityDisconnect > 0 && idle > g.opts.InactivityDisconnect:
		g.opts.Logger.Info("disconnecting idle player", "player", g.opts.Player)
		in.Quit = true
	case g.opts.InactivityWarn > 0 && idle > g.opts.InactivityWarn:
		g.isInactive = true
	}
	return in
}

// Step advances the simulation by one frame with the given input. It does
// nothing once the game has stopped.
func (g *Game) Step(ctx context.Context, in input.Input, delta time.Duration) error {
	s := g.state
	if !s.Running {
		return nil
	}
	s.Input = in
	s.Delta = delta
	s.StateTime += delta.Seconds()

	if in.Quit || in.Escape {
		g.quit(ctx)
		return nil
	}

	switch s.GameState {
	case GameStateStart:
		g.updateStartState()
	case GameStatePlaying:
		if err := g.updatePlayingState(ctx); err != nil {
			return err
		}
	case GameStateDead:
		g.updateDeadState()
	case GameStateGameOver, GameStateWon:
		g.updateFinishedState()
	}
	return nil
}

// quit stops the loop, logging a mission that was still in progress.
func (g *Game) quit(ctx context.Context) {
	s := g.state
	if !s.Running {
		return
	}
	if s.GameState == GameStatePlaying || s.GameState == GameStateDead {
		g.finishMission(ctx, mission.OutcomeAborted)
		s.setState(GameStateGameOver)
	}
	s.Running = false
}

// finishMission appends the current mission to the mission log.
func (g *Game) finishMission(ctx context.Context, outcome mission.Outcome) {
	s := g.state
	rec := mission.Record{
		At:        time.Now(),
		Outcome:   outcome,
		Player:    g.opts.Player,
		Score:     s.Score,
		Destroyed: s.Destroyed,
		Duration:  time.Since(s.MissionStart),
		Source:    string(g.opts.Catalog.Source),
	}
	if outcome == mission.OutcomeLost {
		rec.Impactor = s.Impactor
	}
	if err := g.opts.Missions.Append(context.WithoutCancel(ctx), rec); err != nil {
		g.opts.Logger.Error("failed to record mission", "err", err)
	}
	g.history = append([]mission.Record{rec}, g.history...)
	if len(g.history) > recentMissions {
		g.history = g.history[:recentMissions]
	}
	g.opts.Logger.Info("mission finished", "player", rec.Player, "outcome", rec.Outcome,
		"score", rec.Score, "destroyed", rec.Destroyed, "impactor", rec.Impactor)
}

// loadHistory reads the latest missions for the title screen.
func (g *Game) loadHistory(ctx context.Context) {
	recs, err := g.opts.Missions.Recent(ctx, recentMissions)
	if err != nil {
		g.opts.Logger.Warn("could not read mission log", "err", err)
		return
	}
	g.history = recs
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (g *Game) updateScreen() {
	termWidth, termHeight, err := g.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.SetOffset(offsetCol, offsetRow)
	g.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the 4:3 field into the terminal, capped at the max render
// resolution, and computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth, termHeight*aspectDen/aspectNum)
	renderHeight = min(termHeight, MaxTermHeight, renderWidth*aspectNum/aspectDen)
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
