package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/oauth2"
)

// ClientOptions configures a [Client].
type ClientOptions struct {
	BaseURL string
	// Timeout applies to each request; zero keeps the transport default.
	Timeout time.Duration
	// Transport is the underlying round tripper; nil means [http.DefaultTransport].
	Transport http.RoundTripper
	Logger    *log.Logger
}

// Client implements [MovieAPI] over HTTP.
type Client struct {
	baseURL string
	public  *http.Client
	authed  *http.Client
	logger  *log.Logger
}

// NewClient creates a client whose authenticated calls read their token from source.
func NewClient(opts ClientOptions, source oauth2.TokenSource) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: baseURL,
		public:  &http.Client{Transport: base, Timeout: opts.Timeout},
		authed:  &http.Client{Transport: &BearerTransport{Source: source, Base: base}, Timeout: opts.Timeout},
		logger:  logger,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// call describes one request/response cycle.
type call struct {
	op     string
	method string
	path   string
	auth   bool
	body   any
}

func (c *Client) fail(cl call, status int, kind ErrorKind, err error) *APIError {
	apiErr := &APIError{Op: cl.op, Method: cl.method, Path: cl.path, Status: status, Kind: kind, Err: err}
	c.logger.Error("api call failed", "op", cl.op, "method", cl.method, "path", cl.path, "status", status, "kind", kind, "error", err)
	return apiErr
}

// doRequest performs the HTTP exchange and returns the raw 2xx body.
func (c *Client) doRequest(ctx context.Context, cl call) ([]byte, error) {
	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, c.fail(cl, 0, KindValidation, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reader)
	if err != nil {
		return nil, c.fail(cl, 0, KindTransient, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.public
	if cl.auth {
		httpClient = c.authed
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, c.fail(cl, 0, KindTransient, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(cl, resp.StatusCode, KindTransient, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(cl, resp.StatusCode, kindForStatus(resp.StatusCode), fmt.Errorf("%s", responseMessage(resp.StatusCode, body)))
	}

	c.logger.Debug("api call succeeded", "op", cl.op, "method", cl.method, "path", cl.path, "status", resp.StatusCode)
	return body, nil
}

// responseMessage extracts a short error message from a failed response body.
func responseMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return shared.Truncate(text, 200)
	}
	return http.StatusText(status)
}

// decode unmarshals a 2xx body into v and validates it.
//
// An empty body leaves v at its zero value; when optional is false that is a decode error.
func (c *Client) decode(cl call, body []byte, v any, optional bool, check func() error) error {
	if len(bytes.TrimSpace(body)) == 0 {
		if optional {
			return nil
		}
		return c.fail(cl, 0, KindDecode, fmt.Errorf("empty response body"))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return c.fail(cl, 0, KindDecode, fmt.Errorf("failed to decode response: %w", err))
	}

	if check != nil {
		if err := check(); err != nil {
			return c.fail(cl, 0, KindDecode, fmt.Errorf("invalid response: %w", err))
		}
	}
	return nil
}

// invalid reports a request rejected before it was sent.
func (c *Client) invalid(cl call, err error) *APIError {
	return c.fail(cl, 0, KindValidation, err)
}

func segment(s string) string {
	return url.PathEscape(s)
}

func requireArg(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", shared.ErrMissingArgument, name)
	}
	return nil
}
