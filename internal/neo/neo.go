// Package neo fetches near-Earth objects from NASA's NeoWs feed and reduces
// them to the handful of fields the game uses.
package neo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

// DateLayout is the date format NeoWs uses for query params and feed keys.
const DateLayout = "2006-01-02"

// Defaults applied when a feed entry lacks a field.
const (
	DefaultDiameter = 50.0    // meters
	DefaultVelocity = 30000.0 // km/h
)

// ErrMissingKey is returned when no API key is configured.
var ErrMissingKey = errors.New("neo: NASA API key not set")

// Source tells where a catalog came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Asteroid is a simplified near-Earth object.
type Asteroid struct {
	ID        string
	Name      string
	Diameter  float64 // Average estimated diameter in meters
	Velocity  float64 // Relative velocity at closest approach, km/h
	Hazardous bool
}

// Catalog is the set of objects for one day.
type Catalog struct {
	Date      string
	Source    Source
	Asteroids []Asteroid
}

// HazardousCount returns the number of potentially hazardous objects.
func (c Catalog) HazardousCount() int {
	n := 0
	for _, a := range c.Asteroids {
		if a.Hazardous {
			n++
		}
	}
	return n
}

// Client queries the NeoWs feed.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	Logger  *log.Logger
}

// NewClient creates a client with a timeout-bound HTTP client.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// Fetch returns the catalog for date. It never fails: a missing key, a
// failed request or an empty day all yield the fallback catalog.
func (c *Client) Fetch(ctx context.Context, date time.Time) Catalog {
	day := date.Format(DateLayout)
	c.Logger.Info("fetching asteroid data", "date", day)

	cat, err := c.FetchFeed(ctx, date)
	switch {
	case err != nil:
		c.Logger.Warn("asteroid fetch failed, switching to offline data", "err", err)
		return Fallback()
	case len(cat.Asteroids) == 0:
		c.Logger.Warn("feed returned no asteroids, switching to offline data", "date", day)
		return Fallback()
	}
	c.Logger.Info("fetched asteroids", "count", len(cat.Asteroids), "hazardous", cat.HazardousCount())
	return cat
}

// FetchFeed queries the feed for a single day.
func (c *Client) FetchFeed(ctx context.Context, date time.Time) (Catalog, error) {
	if c.APIKey == "" {
		return Catalog{}, ErrMissingKey
	}
	day := date.Format(DateLayout)

	q := url.Values{}
	q.Set("start_date", day)
	q.Set("end_date", day)
	q.Set("api_key", c.APIKey)
	endpoint := c.BaseURL + "/neo/rest/v1/feed?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to execute request: %w", redactKey(err, c.APIKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Catalog{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read response body: %w", err)
	}

	asteroids, err := ParseFeed(body, day)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Date: day, Source: SourceLive, Asteroids: asteroids}, nil
}

// ParseFeed extracts the objects listed under near_earth_objects[day].
func ParseFeed(body []byte, day string) ([]Asteroid, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("neo: invalid JSON in feed response")
	}
	daily, ok := gjson.GetBytes(body, "near_earth_objects").Map()[day]
	if !ok {
		return nil, nil
	}

	var out []Asteroid
	daily.ForEach(func(_, obj gjson.Result) bool {
		out = append(out, parseObject(obj))
		return true
	})
	return out, nil
}

func parseObject(obj gjson.Result) Asteroid {
	a := Asteroid{
		ID:        obj.Get("id").String(),
		Name:      obj.Get("name").String(),
		Diameter:  DefaultDiameter,
		Velocity:  DefaultVelocity,
		Hazardous: obj.Get("is_potentially_hazardous_asteroid").Bool(),
	}

	minDia := obj.Get("estimated_diameter.meters.estimated_diameter_min")
	maxDia := obj.Get("estimated_diameter.meters.estimated_diameter_max")
	if minDia.Exists() && maxDia.Exists() {
		a.Diameter = (minDia.Float() + maxDia.Float()) / 2
	}

	// kilometers_per_hour is a quoted number; Float parses it.
	if v := obj.Get("close_approach_data.0.relative_velocity.kilometers_per_hour"); v.Exists() {
		a.Velocity = v.Float()
	}
	return a
}

// redactKey strips the API key from the message of transport errors, which
// embed the URL. The original error stays reachable through Unwrap.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
