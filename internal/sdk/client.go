// Package sdk is a minimal Go client for the Standard Bots workspace API.
// It covers the slice of the vendor surface the dashboard needs: robot
// status and routine-editor variables, plus dynamic dotted-path invocation
// for exploration.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/logger"
)

// RobotKind selects the robot target behind a workspace.
type RobotKind string

const (
	// RobotKindLive targets the physical robot.
	RobotKindLive RobotKind = "live"
	// RobotKindSimulated targets the workspace simulator.
	RobotKindSimulated RobotKind = "simulated"
)

// DefaultTimeout bounds each API request.
const DefaultTimeout = 10 * time.Second

// Client talks to a Standard Bots workspace over HTTPS.
// Construct one per workspace and reuse it; the underlying
// http.Client pools connections.
type Client struct {
	baseURL string
	token   string
	kind    RobotKind
	http    *http.Client
	log     logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger overrides the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a workspace client. url is the workspace endpoint
// (e.g. https://cb2114.sb.app), token the API bearer token.
func New(url, token string, kind RobotKind, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(url, "/"),
		token:   token,
		kind:    kind,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logger.NewEnvLogger("[sdk]"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the workspace endpoint the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ControlStatus is the robot's control-level state.
type ControlStatus struct {
	Mode  string `json:"mode"`
	EStop bool   `json:"estop"`
}

// Status is the top-level robot status report.
type Status struct {
	Control ControlStatus `json:"control"`
}

// Status fetches the robot's current control mode and e-stop state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	resp, err := request[Status](ctx, c, http.MethodGet, "/api/v1/status", nil)
	if err != nil {
		return Status{}, err
	}
	return resp.Ok()
}

// request issues one API call and decodes the body into a Response[T].
// Non-2xx responses are captured in the envelope rather than returned as
// errors so callers can apply the Ok() convention uniformly.
func request[T any](ctx context.Context, c *Client, method, path string, body any) (Response[T], error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Response[T]{}, errors.Wrap(err, "Cannot encode request body")
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return Response[T]{}, errors.Wrap(err, "Cannot build API request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Robot-Kind", string(c.kind))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("%s %s", method, path)
	httpResp, err := c.http.Do(req)
	if err != nil {
		return Response[T]{}, errors.WrapWithCode(err, errors.ErrSDK,
			"Cannot reach the robot workspace",
			"Check the workspace URL and your network connection")
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response[T]{}, errors.Wrap(err, "Cannot read API response")
	}

	resp := Response[T]{StatusCode: httpResp.StatusCode}
	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &resp.Data); err != nil {
				return Response[T]{}, errors.Wrap(err,
					fmt.Sprintf("Unexpected response from %s", path))
			}
		}
		return resp, nil
	}

	// Error bodies carry a message field when the API produced them;
	// anything else falls back to the raw text.
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
		resp.ErrMessage = apiErr.Message
	} else {
		resp.ErrMessage = strings.TrimSpace(string(raw))
	}
	return resp, nil
}
