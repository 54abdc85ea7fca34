package briefing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/neodefender/internal/config"
	"github.com/tomz197/neodefender/internal/logx"
	"github.com/tomz197/neodefender/internal/neo"
)

const day = "2026-10-19"

func nasa(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/neo/rest/v1/feed", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, day, r.URL.Query().Get("start_date"))
		fmt.Fprintf(w, `{"near_earth_objects":{%q:[{"id":"1","name":"Apophis",
			"estimated_diameter":{"meters":{"estimated_diameter_min":300,"estimated_diameter_max":400}},
			"is_potentially_hazardous_asteroid":true,
			"close_approach_data":[{"relative_velocity":{"kilometers_per_hour":"27000"}}]}]}}`, day)
	})
	mux.HandleFunc("/planetary/apod", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"title":"Horsehead","date":%q,"media_type":"image","url":"%s/img/horse.jpg"}`, day, srv.URL)
	})
	mux.HandleFunc("/img/horse.jpg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func date(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse(neo.DateLayout, day)
	require.NoError(t, err)
	return d
}

func TestPrepare(t *testing.T) {
	srv := nasa(t)
	cfg := config.Config{NASAAPIKey: "KEY", NASABaseURL: srv.URL, FetchTimeout: time.Second, APODDir: t.TempDir()}

	b := Prepare(context.Background(), cfg, date(t), logx.Discard())

	assert.Equal(t, neo.SourceLive, b.Catalog.Source)
	require.Len(t, b.Catalog.Asteroids, 1)
	assert.Equal(t, "Apophis", b.Catalog.Asteroids[0].Name)
	assert.Equal(t, "Horsehead", b.Picture.Title)
	assert.Equal(t, filepath.Join(cfg.APODDir, "apod-"+day+".jpg"), b.ImagePath)

	data, err := os.ReadFile(b.ImagePath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestPrepareWithoutKey(t *testing.T) {
	cfg := config.Config{NASABaseURL: "http://127.0.0.1:1", FetchTimeout: time.Second, APODDir: t.TempDir()}

	b := Prepare(context.Background(), cfg, date(t), logx.Discard())

	assert.Equal(t, neo.Fallback(), b.Catalog)
	assert.Empty(t, b.Picture.Title)
	assert.Empty(t, b.ImagePath)
}
