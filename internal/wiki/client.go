package wiki

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"cgt.name/pkg/go-mwclient"
)

// Client talks to one MediaWiki installation. It is safe for use by a
// single goroutine; the API itself serializes edits anyway through the
// rate limiter.
type Client struct {
	mw           *mwclient.Client
	logger       *slog.Logger
	dryRun       bool
	editInterval time.Duration
	lastEdit     time.Time
	loggedIn     bool
}

// timeNow is swapped out in tests.
var timeNow = time.Now

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDryRun makes SavePage log a diff instead of writing to the wiki.
func WithDryRun(dryRun bool) Option {
	return func(c *Client) {
		c.dryRun = dryRun
	}
}

// WithEditInterval sets the minimum delay between two consecutive saves.
//
// Design decision: the bot runs without a dedicated rate-limit exemption,
// so it spaces its own edits rather than relying on server throttling.
func WithEditInterval(d time.Duration) Option {
	return func(c *Client) {
		c.editInterval = d
	}
}

// New creates a client for the wiki behind apiURL. The userAgent should
// identify the bot and its operator per the API etiquette guidelines.
func New(apiURL, userAgent string, opts ...Option) (*Client, error) {
	mw, err := mwclient.New(apiURL, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client for %s: %w", apiURL, err)
	}
	mw.Maxlag.On = true

	c := &Client{
		mw:           mw,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		editInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login authenticates with a bot password. Most read operations work
// anonymously; anything that edits should log in first.
func (c *Client) Login(username, password string) error {
	if err := c.mw.Login(username, password); err != nil {
		return fmt.Errorf("login failed for %s: %w", username, err)
	}
	c.loggedIn = true
	c.logger.Info("logged in", "user", username)
	return nil
}

// DryRun reports whether the client is in dry-run mode.
func (c *Client) DryRun() bool {
	return c.dryRun
}

// throttle sleeps until editInterval has passed since the previous save.
func (c *Client) throttle() {
	if c.lastEdit.IsZero() {
		return
	}
	if wait := c.editInterval - time.Since(c.lastEdit); wait > 0 {
		time.Sleep(wait)
	}
}
