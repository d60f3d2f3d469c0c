package pox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sdnlab/pox-mcp/pkg/metrics"
)

// rpcPath is the fixed path the POX web service mounts its OpenFlow
// JSON-RPC handler on.
const rpcPath = "/OF/"

const (
	errConnection = "Connection Error"

	defaultTimeout = 15 * time.Second
)

// Outcome is the normalized result of a single RPC exchange. Transport
// failures, non-200 responses, and controller-reported errors all land
// in Error/Details; a successful call carries the raw result payload.
type Outcome struct {
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details string          `json:"details,omitempty"`
}

// Failed reports whether the outcome carries an error, from either the
// transport or the controller.
func (o *Outcome) Failed() bool {
	return o.Error != ""
}

// envelope is the simplified JSON-RPC request shape POX expects: no
// version field, and a constant id since there is exactly one request in
// flight per call.
type envelope struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
	ID     int            `json:"id"`
}

// Client executes OpenFlow commands against a POX controller's web
// service. All calls POST to a single configured base URL.
type Client struct {
	baseURL  string
	client   *http.Client
	log      zerolog.Logger
	recorder *metrics.Recorder
}

// NewClient creates a client for the controller at baseURL. A
// non-positive timeout falls back to the default request deadline.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		log:      log,
		recorder: metrics.DefaultRecorder(),
	}
}

// Execute sends one OpenFlow command and normalizes every failure class
// into the outcome shape. It never returns a Go error: network-class
// failures come back as {error, details} outcomes so callers deal with a
// single contract.
func (c *Client) Execute(ctx context.Context, method string, params map[string]any) *Outcome {
	if params == nil {
		params = map[string]any{}
	}

	c.log.Debug().Str("method", method).Interface("params", params).Msg("executing OpenFlow command")

	start := time.Now()
	outcome := c.roundTrip(ctx, method, params)

	status := "ok"
	if outcome.Failed() {
		status = "error"
		c.recorder.RecordRPCFailure(method, classifyFailure(outcome))
	}
	c.recorder.RecordRPC(method, status, time.Since(start))

	return outcome
}

func (c *Client) roundTrip(ctx context.Context, method string, params map[string]any) *Outcome {
	body, err := json.Marshal(envelope{Method: method, Params: params, ID: 1})
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("failed to encode request")
		return &Outcome{Error: errConnection, Details: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+rpcPath, bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("failed to build request")
		return &Outcome{Error: errConnection, Details: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("exception executing command")
		return &Outcome{Error: errConnection, Details: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("failed to read response")
		return &Outcome{Error: errConnection, Details: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(respBody)).Msg("error executing command")
		return &Outcome{
			Error:   fmt.Sprintf("HTTP Error: %d", resp.StatusCode),
			Details: string(respBody),
		}
	}

	var outcome Outcome
	if err := json.Unmarshal(respBody, &outcome); err != nil {
		c.log.Error().Err(err).Str("method", method).Msg("malformed response body")
		return &Outcome{Error: errConnection, Details: err.Error()}
	}
	return &outcome
}

func classifyFailure(o *Outcome) metrics.FailureKind {
	switch {
	case o.Error == errConnection:
		return metrics.FailureConnection
	case strings.HasPrefix(o.Error, "HTTP Error"):
		return metrics.FailureHTTP
	default:
		return metrics.FailureController
	}
}
