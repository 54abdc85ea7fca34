package apod

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

	"github.com/tomz197/neodefender/internal/logx"
)

func newServer(t *testing.T, mediaType string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/planetary/apod", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KEY", r.URL.Query().Get("api_key"))
		fmt.Fprintf(w, `{"title":"Pillars","date":"2025-02-06","media_type":%q,"url":"%s/img/pillars.PNG"}`,
			mediaType, srv.URL)
	})
	mux.HandleFunc("/img/pillars.PNG", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake-png"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSaveImage(t *testing.T) {
	srv := newServer(t, "image")
	dir := t.TempDir()

	c := NewClient("KEY", srv.URL, time.Second, logx.Discard())
	pic, path := c.Save(context.Background(), time.Now(), dir)

	assert.Equal(t, "Pillars", pic.Title)
	require.Equal(t, filepath.Join(dir, "apod-2025-02-06.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestSaveVideoIsNoop(t *testing.T) {
	srv := newServer(t, "video")
	dir := t.TempDir()

	c := NewClient("KEY", srv.URL, time.Second, logx.Discard())
	pic, path := c.Save(context.Background(), time.Now(), dir)
	assert.Equal(t, "Pillars", pic.Title)
	assert.Empty(t, path)

	_, err := c.Download(context.Background(), pic, dir)
	require.ErrorIs(t, err, ErrNotImage)
}

func TestSaveMissingKey(t *testing.T) {
	c := NewClient("", "http://unused", time.Second, logx.Discard())
	pic, path := c.Save(context.Background(), time.Now(), t.TempDir())
	assert.Equal(t, Picture{}, pic)
	assert.Empty(t, path)

	_, err := c.Fetch(context.Background(), time.Now())
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestDownloadTooLarge(t *testing.T) {
	srv := newServer(t, "image")
	dir := t.TempDir()

	c := NewClient("KEY", srv.URL, time.Second, logx.Discard())
	pic, err := c.Fetch(context.Background(), time.Now())
	require.NoError(t, err)

	c.MaxImageBytes = int64(len("fake-png"))
	path, err := c.Download(context.Background(), pic, dir)
	require.NoError(t, err, "a body of exactly the limit fits")
	require.NoError(t, os.Remove(path))

	c.MaxImageBytes = int64(len("fake-png")) - 1
	_, err = c.Download(context.Background(), pic, dir)
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchRedactsKey(t *testing.T) {
	c := NewClient("SECRET", "http://127.0.0.1:1", 200*time.Millisecond, logx.Discard())
	_, err := c.Fetch(context.Background(), time.Now())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("KEY", srv.URL, time.Second, logx.Discard())
	_, err := c.Fetch(context.Background(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		pic  Picture
		want string
	}{
		{Picture{Date: "2025-01-01", URL: "https://x/a/b.gif"}, "apod-2025-01-01.gif"},
		{Picture{Date: "2025-01-01", URL: "https://x/a/b"}, "apod-2025-01-01.jpg"},
		{Picture{URL: "https://x/a/b.jpeg?x=1"}, "apod-today.jpeg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.pic))
	}
}
