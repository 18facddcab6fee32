// Package leaderboard loads the win/loss table from the game server's REST
// endpoint. The session core never calls it; the UI refreshes it on login
// and after every finished game.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/connect4/tui/internal/model"
)

// Client fetches /api/leaderboard from the server base URL.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// NewClient accepts the same base URL as the connection manager; ws(s)
// schemes are mapped back to http(s).
func NewClient(serverURL string, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "http"
	case "https", "wss":
		u.Scheme = "https"
	default:
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path = ""
	u.RawQuery = ""
	return &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{Timeout: 5 * time.Second},
		log:  log,
	}, nil
}

// Fetch returns the current standings, best first (server-ordered).
func (c *Client) Fetch(ctx context.Context) ([]model.LeaderboardEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/leaderboard", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: unexpected status %s", resp.Status)
	}

	var entries []model.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	c.log.Debug("leaderboard fetched", zap.Int("entries", len(entries)))
	return entries, nil
}
