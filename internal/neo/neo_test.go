package neo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/neodefender/internal/logx"
)

const feedDay = "2025-02-06"

const feedBody = `{
  "element_count": 3,
  "near_earth_objects": {
    "2025-02-06": [
      {
        "id": "3542519",
        "name": "(2010 PK9)",
        "estimated_diameter": {"meters": {"estimated_diameter_min": 100.0, "estimated_diameter_max": 200.0}},
        "is_potentially_hazardous_asteroid": true,
        "close_approach_data": [{"relative_velocity": {"kilometers_per_hour": "48000.5"}}]
      },
      {
        "id": "54016",
        "name": "(2020 AB)",
        "estimated_diameter": {"meters": {"estimated_diameter_min": 10, "estimated_diameter_max": 30}},
        "is_potentially_hazardous_asteroid": false,
        "close_approach_data": []
      },
      {
        "id": "77",
        "name": "bare",
        "is_potentially_hazardous_asteroid": false
      }
    ]
  }
}`

func testDate(t *testing.T) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, feedDay)
	require.NoError(t, err)
	return d
}

func TestParseFeed(t *testing.T) {
	got, err := ParseFeed([]byte(feedBody), feedDay)
	require.NoError(t, err)

	want := []Asteroid{
		{ID: "3542519", Name: "(2010 PK9)", Diameter: 150, Velocity: 48000.5, Hazardous: true},
		{ID: "54016", Name: "(2020 AB)", Diameter: 20, Velocity: DefaultVelocity},
		{ID: "77", Name: "bare", Diameter: DefaultDiameter, Velocity: DefaultVelocity},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFeed mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFeedOtherDay(t *testing.T) {
	got, err := ParseFeed([]byte(feedBody), "2025-02-07")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseFeedInvalidJSON(t *testing.T) {
	_, err := ParseFeed([]byte(`{"near_earth_objects":`), feedDay)
	require.Error(t, err)
}

func TestFetchFeedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/rest/v1/feed", r.URL.Path)
		assert.Equal(t, feedDay, r.URL.Query().Get("start_date"))
		assert.Equal(t, feedDay, r.URL.Query().Get("end_date"))
		assert.Equal(t, "KEY", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	c := NewClient("KEY", srv.URL+"/", time.Second, logx.Discard())
	cat, err := c.FetchFeed(context.Background(), testDate(t))
	require.NoError(t, err)
	assert.Equal(t, SourceLive, cat.Source)
	assert.Equal(t, feedDay, cat.Date)
	assert.Len(t, cat.Asteroids, 3)
	assert.Equal(t, 1, cat.HazardousCount())
}

func TestFetchFeedStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("KEY", srv.URL, time.Second, logx.Discard())
	_, err := c.FetchFeed(context.Background(), testDate(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchFallsBack(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"near_earth_objects":{}}`))
	}))
	defer empty.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	tests := []struct {
		name   string
		client *Client
	}{
		{"missing key", NewClient("", empty.URL, time.Second, logx.Discard())},
		{"empty day", NewClient("KEY", empty.URL, time.Second, logx.Discard())},
		{"server error", NewClient("KEY", broken.URL, time.Second, logx.Discard())},
		{"unreachable", NewClient("KEY", "http://127.0.0.1:1", 200*time.Millisecond, logx.Discard())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := tt.client.Fetch(context.Background(), testDate(t))
			assert.Equal(t, SourceFallback, cat.Source)
			assert.Len(t, cat.Asteroids, 5)
		})
	}
}

func TestFetchFeedMissingKey(t *testing.T) {
	c := NewClient("", "http://unused", time.Second, logx.Discard())
	_, err := c.FetchFeed(context.Background(), time.Now())
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestFallbackContents(t *testing.T) {
	cat := Fallback()
	require.Len(t, cat.Asteroids, 5)
	assert.Equal(t, 2, cat.HazardousCount())
	assert.Equal(t, "Doomsday 99", cat.Asteroids[1].Name)
	assert.Equal(t, 80000.0, cat.Asteroids[3].Velocity)
}

func TestRedactKey(t *testing.T) {
	err := redactKey(assert.AnError, "")
	assert.Equal(t, assert.AnError, err)

	cause := &testErr{"Get https://x/?api_key=SECRET: refused"}
	err = redactKey(cause, "SECRET")
	assert.NotContains(t, err.Error(), "SECRET")
	assert.ErrorIs(t, err, cause)
}

func TestFetchFeedTimeoutKeepsCause(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient("SECRET", srv.URL, 5*time.Second, logx.Discard())
	_, err := c.FetchFeed(ctx, testDate(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), "SECRET")
}

type testErr struct{ s string }

func (e *testErr) Error() string { return e.s }
