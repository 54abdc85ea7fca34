package game

import (
	"context"

	"github.com/tomz197/neodefender/internal/mission"
	"github.com/tomz197/neodefender/internal/object"
	"github.com/tomz197/neodefender/internal/physics"
)

// updatePlayingState handles the playing game state.
func (g *Game) updatePlayingState(ctx context.Context) error {
	s := g.state

	// Decrement invincibility timer
	if s.InvincibleTime > 0 {
		s.InvincibleTime = max(s.InvincibleTime-s.Delta.Seconds(), 0)
	}

	if err := g.updateObjects(); err != nil {
		return err
	}
	g.checkCollisions(ctx)

	if s.GameState == GameStatePlaying && g.opts.TargetScore > 0 && s.Score >= g.opts.TargetScore {
		g.finishMission(ctx, mission.OutcomeWon)
		s.setState(GameStateWon)
	}
	return nil
}

// updateObjects updates all objects and removes any that request removal.
func (g *Game) updateObjects() error {
	s := g.state
	ctx := s.UpdateContext()

	// Update objects and collect ones to keep
	kept := s.Objects[:0] // reuse backing array
	for _, obj := range s.Objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(s.Objects[len(kept):])
	s.Objects = kept

	// Add any newly spawned objects
	s.FlushSpawned()
	return nil
}

// collectCollidables extracts bullets and asteroids from the object list.
func collectCollidables(objects []object.Object) ([]*object.Bullet, []*object.Asteroid) {
	var bullets []*object.Bullet
	var asteroids []*object.Asteroid

	for _, obj := range objects {
		switch o := obj.(type) {
		case *object.Bullet:
			bullets = append(bullets, o)
		case *object.Asteroid:
			asteroids = append(asteroids, o)
		}
	}
	return bullets, asteroids
}

// checkCollisions detects and handles all collisions between objects.
func (g *Game) checkCollisions(ctx context.Context) {
	s := g.state
	bullets, asteroids := collectCollidables(s.Objects)

	g.checkBulletAsteroidCollisions(bullets, asteroids)

	// Ship collisions only if vulnerable
	if s.Ship != nil && s.InvincibleTime <= 0 {
		g.checkShipCollisions(ctx, asteroids)
	}
}

// checkBulletAsteroidCollisions handles bullet hits on asteroids. Asteroids
// are bucketed in a spatial grid so each bullet only tests nearby rocks.
func (g *Game) checkBulletAsteroidCollisions(bullets []*object.Bullet, asteroids []*object.Asteroid) {
	if len(bullets) == 0 || len(asteroids) == 0 {
		return
	}

	g.grid.Clear()
	for i, a := range asteroids {
		g.grid.Insert(a.X, a.Y, i)
	}

	s := g.state
	for _, b := range bullets {
		if b.IsDestroyed() {
			continue
		}
		bounds := b.Bounds()
		cx, cy := bounds.Center()
		g.grid.QueryAround(cx, cy, func(i int) bool {
			a := asteroids[i]
			if a.IsDestroyed() || !physics.CircleIntersectsRect(a.X, a.Y, a.Radius, bounds) {
				return false
			}
			b.MarkDestroyed()
			a.MarkDestroyed()
			s.Score += ScorePerAsteroid
			s.Destroyed++
			g.opts.Logger.Info("destroyed", "asteroid", a.Data.Name, "hazardous", a.Data.Hazardous, "score", s.Score)
			return true
		})
	}
}

// checkShipCollisions checks whether a rock hit the ship. Returns true if
// the ship was lost.
func (g *Game) checkShipCollisions(ctx context.Context, asteroids []*object.Asteroid) bool {
	hull := g.state.Ship.Bounds()
	for _, a := range asteroids {
		if a.IsDestroyed() {
			continue
		}
		if physics.CircleIntersectsRect(a.X, a.Y, a.Radius, hull) {
			g.killShip(ctx, a)
			return true
		}
	}
	return false
}

// killShip handles the ship being hit by a.
func (g *Game) killShip(ctx context.Context, a *object.Asteroid) {
	s := g.state
	if s.Ship == nil {
		return
	}

	x, y := s.Ship.GetPosition()
	object.SpawnExplosion(x, y, 24, 150, 1.0, a.Color, s.Rand, &s.WorldState)
	s.FlushSpawned()

	s.RemoveObject(s.Ship)
	s.Ship = nil
	s.Impactor = a.Data.Name
	s.Lives--

	g.opts.Logger.Info("ship hit", "asteroid", a.Data.Name, "lives", s.Lives)

	if s.Lives > 0 {
		s.setState(GameStateDead)
		return
	}
	g.finishMission(ctx, mission.OutcomeLost)
	s.setState(GameStateGameOver)
}
