// Package backend talks to the ticket backend: it authenticates, exports the
// pending tickets as CSV and imports the reassigned statuses. Calls are made
// once; retrying is left to whoever schedules the automation.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ticketcsv/internal/logging"
)

const maxErrBody = 512

// envelope is the backend's response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates cfg. A nil hc gets a client with cfg.Timeout.
func NewClient(cfg Config, hc *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: hc}, nil
}

// Authenticate exchanges the configured credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	body := map[string]string{"email": c.cfg.Username, "password": c.cfg.Password}
	env, err := c.post(ctx, "authenticate", c.cfg.Paths.Authenticate, "", body)
	if err != nil {
		return "", err
	}
	var token string
	if err := json.Unmarshal(env.Data, &token); err != nil || token == "" {
		return "", fmt.Errorf("backend authenticate: response carries no token")
	}
	logging.L().Debug("backend token acquired")
	return token, nil
}

// ExportPending fetches the workspace's pending tickets as CSV text. A
// response without data yields "".
func (c *Client) ExportPending(ctx context.Context, token string) (string, error) {
	env, err := c.post(ctx, "export-pending", c.cfg.Paths.ExportPending+"/"+url.PathEscape(c.cfg.WorkspaceUUID), token, nil)
	if err != nil {
		return "", err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return "", nil
	}
	var csv string
	if err := json.Unmarshal(env.Data, &csv); err != nil {
		return "", fmt.Errorf("backend export-pending: data is not a string: %w", err)
	}
	return csv, nil
}

// ImportStatuses uploads the reassigned CSV on behalf of the manager.
func (c *Client) ImportStatuses(ctx context.Context, token, csv string) error {
	body := map[string]string{"csvContent": csv, "managerUuid": c.cfg.ManagerUUID}
	env, err := c.post(ctx, "import-statuses", c.cfg.Paths.ImportStatuses, token, body)
	if err != nil {
		return err
	}
	logging.L().Debug("backend import accepted", "message", env.Message)
	return nil
}

func (c *Client) post(ctx context.Context, op, path, token string, payload any) (*envelope, error) {
	var rd io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", op, err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return nil, &BackendError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("backend %s: decode: %w", op, err)
	}
	return &env, nil
}
