package main

import (
	"context"
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neodefender/internal/apod"
	"github.com/tomz197/neodefender/internal/config"
	"github.com/tomz197/neodefender/internal/logx"
	"github.com/tomz197/neodefender/internal/mission"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"

	recentMissions = 10
)

//go:embed index.html
var htmlPage string

var pageTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"when": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
}).Parse(htmlPage))

// page is the data rendered into index.html.
type page struct {
	SSHHost  string
	SSHPort  string
	Picture  apod.Picture
	HasImage bool
	Missions []mission.Record
}

// site serves the landing page.
type site struct {
	sshHost   string
	sshPort   string
	picture   apod.Picture
	imagePath string
	missions  mission.Log
	logger    *log.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", "err", err)
	}
	logger := logx.New(os.Stderr, cfg.LogLevel, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout*2)
	apodClient := apod.NewClient(cfg.NASAAPIKey, cfg.NASABaseURL, cfg.FetchTimeout, logger.WithPrefix("apod"))
	pic, imagePath := apodClient.Save(ctx, time.Now(), cfg.APODDir)
	cancel()

	missions, err := mission.Open(cfg.MissionBackend, cfg.MissionLog)
	if err != nil {
		logger.Error("mission log unavailable", "err", err)
		missions = mission.Discard{}
	}
	defer missions.Close()

	s := &site{
		sshHost:   config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		sshPort:   config.GetEnv("SSH_DISPLAY_PORT", "2222"),
		picture:   pic,
		imagePath: imagePath,
		missions:  missions,
		logger:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /apod", s.image)

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func (s *site) index(w http.ResponseWriter, r *http.Request) {
	recs, err := s.missions.Recent(r.Context(), recentMissions)
	if err != nil {
		s.logger.Warn("could not read missions", "err", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTmpl.Execute(w, page{
		SSHHost:  s.sshHost,
		SSHPort:  s.sshPort,
		Picture:  s.picture,
		HasImage: s.imagePath != "",
		Missions: recs,
	})
	if err != nil {
		s.logger.Error("render page", "err", err)
	}
}

// image serves the stored picture of the day.
func (s *site) image(w http.ResponseWriter, r *http.Request) {
	if s.imagePath == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.imagePath)
}
