package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/neodefender/internal/apod"
	"github.com/tomz197/neodefender/internal/logx"
	"github.com/tomz197/neodefender/internal/mission"
)

func newSite(t *testing.T) *site {
	t.Helper()
	dir := t.TempDir()
	missions, err := mission.OpenText(filepath.Join(dir, "missions.log"))
	require.NoError(t, err)
	t.Cleanup(func() { missions.Close() })

	img := filepath.Join(dir, "apod-2026-10-19.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpeg"), 0o644))

	return &site{
		sshHost:   "neo.example",
		sshPort:   "2222",
		picture:   apod.Picture{Title: "Horsehead <Nebula>", Date: "2026-10-19", MediaType: "image"},
		imagePath: img,
		missions:  missions,
		logger:    logx.Discard(),
	}
}

func TestIndex(t *testing.T) {
	s := newSite(t)
	require.NoError(t, s.missions.Append(context.Background(), mission.Record{
		At: time.Now(), Outcome: mission.OutcomeLost, Player: "ana", Score: 1200, Destroyed: 12, Impactor: "Apophis",
	}))

	rec := httptest.NewRecorder()
	s.index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "ssh -t neo.example -p 2222")
	assert.Contains(t, body, "Horsehead &lt;Nebula&gt;")
	assert.Contains(t, body, `<img src="/apod"`)
	assert.Contains(t, body, "Apophis")
	assert.Contains(t, body, `class="lost"`)
}

func TestIndexWithoutMissions(t *testing.T) {
	s := newSite(t)
	s.missions = mission.Discard{}
	s.imagePath = ""

	rec := httptest.NewRecorder()
	s.index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "No missions flown yet.")
	assert.NotContains(t, body, "<img")
}

func TestImage(t *testing.T) {
	s := newSite(t)

	rec := httptest.NewRecorder()
	s.image(rec, httptest.NewRequest(http.MethodGet, "/apod", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())

	s.imagePath = ""
	rec = httptest.NewRecorder()
	s.image(rec, httptest.NewRequest(http.MethodGet, "/apod", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
