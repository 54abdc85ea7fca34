package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/neodefender/internal/briefing"
	"github.com/tomz197/neodefender/internal/config"
	"github.com/tomz197/neodefender/internal/game"
	"github.com/tomz197/neodefender/internal/logx"
	"github.com/tomz197/neodefender/internal/mission"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "neodefender: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logx.OpenFile(cfg.LogFile, cfg.LogLevel, "neodefender")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The only blocking step: fetch the day's data before the terminal goes raw.
	fmt.Println("Contacting NASA...")
	brief := briefing.Prepare(ctx, cfg, time.Now(), logger)

	missions, err := mission.Open(cfg.MissionBackend, cfg.MissionLog)
	if err != nil {
		logger.Error("mission log unavailable, outcomes will not be saved", "err", err)
		missions = mission.Discard{}
	}
	defer missions.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	g := game.New(bufio.NewReader(os.Stdin), os.Stdout, game.Options{
		Catalog:     brief.Catalog,
		Picture:     brief.Picture,
		Player:      playerName(),
		Lives:       cfg.Lives,
		TargetScore: cfg.TargetScore,
		Missions:    missions,
		Logger:      logger,
	})
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "pilot"
}
