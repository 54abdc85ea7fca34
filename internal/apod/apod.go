// Package apod downloads NASA's Astronomy Picture of the Day.
package apod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
)

const dateLayout = "2006-01-02"

// maxImageBytes caps the size of a downloaded picture.
const maxImageBytes = 32 << 20

var (
	// ErrNotImage is returned when the day's entry is a video or other media.
	ErrNotImage = errors.New("apod: media is not an image")
	// ErrMissingKey is returned when no API key is configured.
	ErrMissingKey = errors.New("apod: NASA API key not set")
	// ErrTooLarge is returned when a response exceeds its size limit.
	ErrTooLarge = errors.New("apod: response too large")
)

// Picture is the metadata for one day's entry.
type Picture struct {
	Title       string
	Date        string
	URL         string
	HDURL       string
	MediaType   string
	Explanation string
}

// IsImage reports whether the entry can be downloaded as a picture.
func (p Picture) IsImage() bool {
	return p.MediaType == "image" && p.URL != ""
}

// Client talks to the APOD endpoint.
type Client struct {
	APIKey        string
	BaseURL       string
	HTTP          *http.Client
	Logger        *log.Logger
	MaxImageBytes int64
}

// NewClient creates a client with a timeout-bound HTTP client.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		APIKey:        apiKey,
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTP:          &http.Client{Timeout: timeout},
		Logger:        logger,
		MaxImageBytes: maxImageBytes,
	}
}

// Fetch returns the entry for date.
func (c *Client) Fetch(ctx context.Context, date time.Time) (Picture, error) {
	if c.APIKey == "" {
		return Picture{}, ErrMissingKey
	}
	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("date", date.Format(dateLayout))

	body, err := c.get(ctx, c.BaseURL+"/planetary/apod?"+q.Encode(), 1<<20)
	if err != nil {
		return Picture{}, err
	}
	if !gjson.ValidBytes(body) {
		return Picture{}, errors.New("apod: invalid JSON response")
	}
	res := gjson.ParseBytes(body)
	return Picture{
		Title:       res.Get("title").String(),
		Date:        res.Get("date").String(),
		URL:         res.Get("url").String(),
		HDURL:       res.Get("hdurl").String(),
		MediaType:   res.Get("media_type").String(),
		Explanation: res.Get("explanation").String(),
	}, nil
}

// Download stores the picture under dir as apod-<date><ext> and returns its path.
func (c *Client) Download(ctx context.Context, pic Picture, dir string) (string, error) {
	if !pic.IsImage() {
		return "", ErrNotImage
	}
	limit := c.MaxImageBytes
	if limit <= 0 {
		limit = maxImageBytes
	}
	data, err := c.get(ctx, pic.URL, limit)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	dest := filepath.Join(dir, FileName(pic))
	tmp, err := os.CreateTemp(dir, ".apod-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("rename image: %w", err)
	}
	return dest, nil
}

// Save fetches and downloads the picture for date. Failures are logged and
// produce zero values; the game never depends on the picture.
func (c *Client) Save(ctx context.Context, date time.Time, dir string) (Picture, string) {
	pic, err := c.Fetch(ctx, date)
	if err != nil {
		c.Logger.Warn("picture of the day unavailable", "err", err)
		return Picture{}, ""
	}
	if dir == "" {
		return pic, ""
	}
	p, err := c.Download(ctx, pic, dir)
	switch {
	case errors.Is(err, ErrNotImage):
		c.Logger.Info("picture of the day is not an image, skipping", "media_type", pic.MediaType)
		return pic, ""
	case err != nil:
		c.Logger.Warn("picture download failed", "err", err)
		return pic, ""
	}
	c.Logger.Info("saved picture of the day", "title", pic.Title, "path", p)
	return pic, p
}

// FileName is the local name for a picture: apod-<date><ext>, ext taken from the URL.
func FileName(pic Picture) string {
	ext := ".jpg"
	if u, err := url.Parse(pic.URL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	date := pic.Date
	if date == "" {
		date = "today"
	}
	return "apod-" + date + ext
}

func (c *Client) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", redactKey(err, c.APIKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	// One byte past the limit tells a full-size body from a truncated one
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}
	return data, nil
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
