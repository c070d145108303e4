// Package wekan is a minimal client for the Wekan REST API, used to turn a
// reminder into a card on the household kanban board.
package wekan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/logger"
)

// Client talks to a single Wekan board. The login token is cached until it
// expires. A client built from an empty config is disabled and answers
// every capability check with false.
type Client struct {
	cfg        config.WekanConfig
	httpClient *http.Client

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

func New(cfg config.WekanConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.URL != ""
}

// CanCreateCards reports whether the Telegram user maps to a Wekan user.
func (c *Client) CanCreateCards(owner int64) bool {
	if !c.Enabled() {
		return false
	}
	_, ok := c.wekanUserID(owner)
	return ok
}

// CreateCard creates a card titled after the reminder subject in the default
// list, authored by and assigned to the mapped Wekan user. It returns the
// new card's id.
func (c *Client) CreateCard(ctx context.Context, owner int64, title string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("wekan is not configured")
	}
	userID, ok := c.wekanUserID(owner)
	if !ok {
		return "", fmt.Errorf("no wekan user for telegram user %d", owner)
	}

	payload := map[string]any{
		"authorId":   userID,
		"title":      title,
		"swimlaneId": c.cfg.DefaultLane,
		"assignees":  []string{userID},
	}
	path := fmt.Sprintf("/api/boards/%s/lists/%s/cards", c.cfg.Board, c.cfg.DefaultList)

	var card struct {
		ID string `json:"_id"`
	}
	if err := c.call(ctx, http.MethodPost, path, payload, &card); err != nil {
		return "", err
	}
	if card.ID == "" {
		return "", fmt.Errorf("wekan returned no card id")
	}
	return card.ID, nil
}

func (c *Client) wekanUserID(owner int64) (string, bool) {
	for _, u := range c.cfg.Users {
		if u.TelegramID == owner {
			return u.WekanID, true
		}
	}
	return "", false
}

func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	token, err := c.authToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("wekan %s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// authToken returns the cached login token, logging in again when it has
// expired.
func (c *Client) authToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.tokenExpires.After(time.Now()) {
		return c.token, nil
	}

	login := map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	}
	body, err := json.Marshal(login)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/users/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("wekan login: unexpected status %d", resp.StatusCode)
	}

	var auth struct {
		ID           string `json:"id"`
		Token        string `json:"token"`
		TokenExpires string `json:"tokenExpires"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", err
	}
	if auth.Token == "" {
		return "", fmt.Errorf("wekan login: empty token")
	}

	c.token = auth.Token
	c.tokenExpires = time.Now().Add(12 * time.Hour)
	if expires, err := time.Parse(time.RFC3339, auth.TokenExpires); err == nil {
		c.tokenExpires = expires
	} else {
		logger.Debug("wekan login: unparsable token expiry", "value", auth.TokenExpires)
	}
	return c.token, nil
}
