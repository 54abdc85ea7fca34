// Package briefing gathers the day's mission data before play starts.
package briefing

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/neodefender/internal/apod"
	"github.com/tomz197/neodefender/internal/config"
	"github.com/tomz197/neodefender/internal/neo"
)

// Briefing is what a mission starts from.
type Briefing struct {
	Catalog   neo.Catalog
	Picture   apod.Picture
	ImagePath string // Local copy of the picture; empty when none was saved
}

// Prepare fetches the asteroid catalog and the picture of the day for date
// in parallel. It always returns a usable briefing: the catalog falls back
// to built-in data and the picture is optional.
func Prepare(ctx context.Context, cfg config.Config, date time.Time, logger *log.Logger) Briefing {
	neoClient := neo.NewClient(cfg.NASAAPIKey, cfg.NASABaseURL, cfg.FetchTimeout, logger.WithPrefix("neo"))
	apodClient := apod.NewClient(cfg.NASAAPIKey, cfg.NASABaseURL, cfg.FetchTimeout, logger.WithPrefix("apod"))

	var b Briefing
	var g errgroup.Group
	g.Go(func() error {
		b.Catalog = neoClient.Fetch(ctx, date)
		return nil
	})
	g.Go(func() error {
		b.Picture, b.ImagePath = apodClient.Save(ctx, date, cfg.APODDir)
		return nil
	})
	_ = g.Wait() // Both fetches degrade instead of failing

	logger.Info("briefing ready",
		"source", b.Catalog.Source,
		"asteroids", len(b.Catalog.Asteroids),
		"hazardous", b.Catalog.HazardousCount(),
		"picture", b.Picture.Title)
	return b
}
