package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/neodefender/internal/draw"
	"github.com/tomz197/neodefender/internal/input"
	"github.com/tomz197/neodefender/internal/object"
)

// updateStartState handles the start screen state.
func (g *Game) updateStartState() {
	in := g.state.Input
	if in.Space || in.Enter {
		g.startGame()
	}
}

// updateDeadState keeps the explosion going with the rocks frozen in place
// until the player continues.
func (g *Game) updateDeadState() {
	g.updateParticles()

	in := g.state.Input
	if g.state.StateTime >= RestartDelaySeconds && (in.Space || in.Enter) {
		g.startGame()
	}
}

// updateFinishedState handles the game over and won screens. Any key starts
// a new mission once the restart delay has passed.
func (g *Game) updateFinishedState() {
	g.updateParticles()

	if g.state.StateTime >= RestartDelaySeconds && g.state.Input.AnyKey() {
		g.startGame()
	}
}

// updateParticles advances particles only; everything else stays frozen.
func (g *Game) updateParticles() {
	s := g.state
	ctx := s.UpdateContext()
	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		if p, isParticle := obj.(*object.Particle); isParticle {
			if remove, _ := p.Update(ctx); remove {
				p.Release()
				continue
			}
		}
		kept = append(kept, obj)
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept
	s.FlushSpawned()
}

// startGame begins a new mission, or puts a fresh ship on the field after
// a lost life.
func (g *Game) startGame() {
	s := g.state
	input.ResetKeyInput(g.inputStream)

	if s.GameState == GameStateDead {
		// Respawn - keep asteroids, remove particles and stray bullets
		g.removeEffects()
		s.InvincibleTime = InvincibilitySeconds
	} else {
		g.resetMission()
	}

	s.Ship = object.NewShip(s.Field)
	s.AddObject(s.Ship)
	s.setState(GameStatePlaying)
}

// resetMission clears the field and restores score and lives. The fleet
// puts every rock back above the field on the next update.
func (g *Game) resetMission() {
	s := g.state
	for _, obj := range s.Objects {
		object.ReleaseObject(obj)
	}
	clear(s.Objects)
	s.Objects = s.Objects[:0]
	s.toSpawn = s.toSpawn[:0]

	s.Fleet = object.NewFleet(g.opts.Catalog.Asteroids)
	s.AddObject(s.Fleet)

	s.Score = 0
	s.Destroyed = 0
	s.Lives = g.opts.Lives
	s.InvincibleTime = 0
	s.Impactor = ""
	s.MissionStart = time.Now()
}

// removeEffects drops particles and bullets from the field.
func (g *Game) removeEffects() {
	s := g.state
	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		switch obj.(type) {
		case *object.Particle, *object.Bullet:
			object.ReleaseObject(obj)
		default:
			kept = append(kept, obj)
		}
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept
}

// drawFrame starts a new frame and draws all objects, labels and the UI
// into the chunk writer, then flushes it as one frame.
func (g *Game) drawFrame() error {
	s := g.state
	cw := g.chunkWriter
	cw.BeginFrame()
	g.canvas.Clear()

	dctx := object.DrawContext{Canvas: g.canvas, Writer: cw}
	for _, obj := range s.Objects {
		if obj == object.Object(s.Ship) && !object.ShouldRenderBlink(s.InvincibleTime, PlayerBlinkFrequency) {
			continue
		}
		if err := obj.Draw(dctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	g.canvas.Render(cw)
	g.canvas.RenderBorder(cw)

	if s.GameState != GameStateStart {
		g.drawLabels()
	}
	g.drawUI()

	return cw.Flush()
}

// drawLabels writes the name of every rock above it.
func (g *Game) drawLabels() {
	for _, obj := range g.state.Objects {
		a, ok := obj.(*object.Asteroid)
		if !ok || a.IsDestroyed() {
			continue
		}
		style := g.styles.Muted.Render
		if a.Data.Hazardous {
			style = g.styles.Danger.Render
		}
		a.Label().Draw(g.chunkWriter, g.canvas, style)
	}
}

// drawUI draws the game UI overlay.
func (g *Game) drawUI() {
	termWidth := g.canvas.TerminalWidth()
	termHeight := g.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch g.state.GameState {
	case GameStateStart:
		g.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		g.drawPlayingHUD(termWidth, termHeight)
	case GameStateDead:
		g.drawDeadScreen(centerX, centerY)
	case GameStateGameOver:
		g.drawGameOverScreen(centerX, centerY)
	case GameStateWon:
		g.drawWonScreen(centerX, centerY)
	}

	if g.isInactive {
		warning := g.styles.Accent.Render("Still there? Press any key or you will be disconnected")
		g.writeCentered(centerX, termHeight, warning)
	}
}

// writeCentered writes an already styled line centred on centerX.
func (g *Game) writeCentered(centerX, row int, s string) {
	g.chunkWriter.WriteAt(max(draw.Centered(centerX, s), 1), row, s)
}

// drawStartScreen draws the title screen.
func (g *Game) drawStartScreen(centerX, centerY int) {
	st := g.styles
	cat := g.opts.Catalog

	g.writeCentered(centerX, centerY-5, st.Title.Render("N E O   D E F E N D E R"))
	if g.opts.Picture.Title != "" {
		g.writeCentered(centerX, centerY-3, st.Muted.Render("Tonight's sky: "+g.opts.Picture.Title))
	}

	tracking := fmt.Sprintf("Tracking %d objects (%d hazardous) from %s data", len(cat.Asteroids), cat.HazardousCount(), cat.Source)
	if cat.Date != "" {
		tracking += ", " + cat.Date
	}
	g.writeCentered(centerX, centerY-1, st.Text.Render(tracking))

	if g.opts.TargetScore > 0 {
		g.writeCentered(centerX, centerY, st.Text.Render(fmt.Sprintf("Reach %d points to save Earth", g.opts.TargetScore)))
	}
	g.writeCentered(centerX, centerY+2, st.Accent.Render("Press SPACE to Start"))
	g.writeCentered(centerX, centerY+4, st.Muted.Render("Controls: A/D or Arrows to move, SPACE to shoot, Q to quit"))

	for i, rec := range g.history {
		line := fmt.Sprintf("%s  %-7s %6d pts  %s", rec.At.Local().Format("Jan 02 15:04"), rec.Outcome, rec.Score, rec.Player)
		g.writeCentered(centerX, centerY+6+i, st.Muted.Render(line))
	}
}

// drawPlayingHUD draws the in-game HUD (score, lives, data source).
func (g *Game) drawPlayingHUD(termWidth, termHeight int) {
	st := g.styles
	s := g.state

	g.chunkWriter.WriteAt(2, 1, st.Score.Render(fmt.Sprintf("Score: %d", s.Score)))

	lives := st.Text.Render(fmt.Sprintf("Lives: %d", s.Lives))
	g.chunkWriter.WriteAt(max(termWidth-lipgloss.Width(lives), 1), 1, lives)

	g.chunkWriter.WriteAt(2, termHeight, st.Muted.Render(fmt.Sprintf("NEO data: %s", g.opts.Catalog.Source)))
}

// drawDeadScreen draws the screen shown after losing a life.
func (g *Game) drawDeadScreen(centerX, centerY int) {
	st := g.styles
	s := g.state

	g.writeCentered(centerX, centerY-2, st.Danger.Render("SHIP LOST"))
	if s.Impactor != "" {
		g.writeCentered(centerX, centerY-1, st.Muted.Render("Hit by "+s.Impactor))
	}
	g.writeCentered(centerX, centerY+1, st.Score.Render(fmt.Sprintf("Score: %d", s.Score)))
	g.writeCentered(centerX, centerY+3, st.Accent.Render(fmt.Sprintf("Lives remaining: %d - Press SPACE to continue", s.Lives)))
}

// drawGameOverScreen draws the screen shown when the last life is lost.
func (g *Game) drawGameOverScreen(centerX, centerY int) {
	st := g.styles
	s := g.state

	g.writeCentered(centerX, centerY-2, st.Danger.Render("GAME OVER"))
	if s.Impactor != "" {
		g.writeCentered(centerX, centerY-1, st.Muted.Render("Impact: "+s.Impactor))
	}
	g.writeCentered(centerX, centerY+1, st.Score.Render(fmt.Sprintf("Score: %d", s.Score)))
	g.writeCentered(centerX, centerY+3, st.Accent.Render("Press any key to play again, Q to quit"))
}

// drawWonScreen draws the screen shown when the target score is reached.
func (g *Game) drawWonScreen(centerX, centerY int) {
	st := g.styles
	s := g.state

	g.writeCentered(centerX, centerY-2, st.Title.Render("EARTH IS SAFE"))
	g.writeCentered(centerX, centerY, st.Score.Render(fmt.Sprintf("Score: %d  -  %d asteroids destroyed", s.Score, s.Destroyed)))
	g.writeCentered(centerX, centerY+2, st.Accent.Render("Press any key to play again, Q to quit"))
}
