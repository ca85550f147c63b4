package hero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// RequestIDHeader carries a per-request id that also appears in diagnostic logs.
	RequestIDHeader = "X-Request-ID"

	// DefaultSource prefixes every message log entry.
	DefaultSource = "HeroService"
)

// Service is the CRUD surface consumers depend on.
// None of the operations report errors: failures resolve to a fallback value
// and are recorded in the message log and the diagnostic logger.
type Service interface {
	// List returns every hero, or an empty slice on failure.
	List(ctx context.Context) []Hero
	// Get returns the hero with the given id, or nil on failure.
	Get(ctx context.Context, id int) *Hero
	// Create posts a new hero and returns the server's copy, or nil on failure.
	Create(ctx context.Context, h Hero) *Hero
	// Update puts the full hero and returns the raw response body, or nil on failure.
	Update(ctx context.Context, h Hero) json.RawMessage
	// Delete removes a hero addressed by value or id and returns the server's reply, or nil.
	Delete(ctx context.Context, ref HeroRef) *Hero
}

// MessageLog receives human-readable outcome entries.
type MessageLog interface {
	Add(message string)
}

var _ Service = (*Client)(nil)

// Client talks to a REST heroes collection over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	messages   MessageLog
	log        *zerolog.Logger
	source     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no client-side limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithSource changes the prefix of message log entries.
func WithSource(source string) Option {
	return func(c *Client) {
		if source != "" {
			c.source = source
		}
	}
}

// NewClient creates a heroes client.
// The baseURL addresses the collection (e.g. "http://localhost:8080/api/heroes").
func NewClient(baseURL string, messages MessageLog, logger *zerolog.Logger, opts ...Option) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		messages:   messages,
		log:        logger,
		source:     DefaultSource,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) []Hero {
	op := c.newOperation("getHeroes", http.MethodGet, c.baseURL)

	var heroes []Hero
	if err := c.do(ctx, op, nil, &heroes); err != nil {
		return handleError(c, op, err, []Hero{})
	}
	if heroes == nil {
		heroes = []Hero{}
	}

	c.succeeded(op, "Heroes fetched")
	return heroes
}

// Get fetches a single hero by id.
func (c *Client) Get(ctx context.Context, id int) *Hero {
	op := c.newOperation(fmt.Sprintf("getHero id=%d", id), http.MethodGet, c.heroURL(id))

	var h *Hero
	if err := c.do(ctx, op, nil, &h); err != nil {
		return handleError[*Hero](c, op, err, nil)
	}

	c.succeeded(op, fmt.Sprintf("Fetched hero %d", id))
	return h
}

// Create posts a new hero; the server assigns its id.
func (c *Client) Create(ctx context.Context, h Hero) *Hero {
	op := c.newOperation("addHero", http.MethodPost, c.baseURL)

	var created *Hero
	if err := c.do(ctx, op, h, &created); err != nil {
		return handleError[*Hero](c, op, err, nil)
	}

	id := h.ID
	if created != nil {
		id = created.ID
	}
	c.succeeded(op, fmt.Sprintf("Added hero w/ id:%d", id))
	return created
}

// Update puts the full hero to the collection path; the server reads the id from the body.
func (c *Client) Update(ctx context.Context, h Hero) json.RawMessage {
	op := c.newOperation("updateHero", http.MethodPut, c.baseURL)

	var raw json.RawMessage
	if err := c.do(ctx, op, h, &raw); err != nil {
		return handleError[json.RawMessage](c, op, err, nil)
	}

	c.succeeded(op, fmt.Sprintf("updated hero id=%d", h.ID))
	return raw
}

// Delete removes the hero referenced by a Hero or a bare HeroID, by value or pointer.
func (c *Client) Delete(ctx context.Context, ref HeroRef) *Hero {
	id, err := resolveRef(ref)
	if err != nil {
		return handleError[*Hero](c, c.newOperation("deleteHero", http.MethodDelete, c.baseURL), err, nil)
	}

	op := c.newOperation("deleteHero", http.MethodDelete, c.heroURL(id))

	var deleted *Hero
	if err := c.do(ctx, op, nil, &deleted); err != nil {
		return handleError[*Hero](c, op, err, nil)
	}

	c.succeeded(op, fmt.Sprintf("Deleted hero id:%d", id))
	return deleted
}

// operation describes one request for logging purposes.
type operation struct {
	name      string
	method    string
	url       string
	requestID string
}

func (c *Client) newOperation(name, method, url string) *operation {
	return &operation{
		name:      name,
		method:    method,
		url:       url,
		requestID: uuid.NewString(),
	}
}

func (c *Client) heroURL(id int) string {
	return c.baseURL + "/" + strconv.Itoa(id)
}

// handleError records a failed operation and substitutes the fallback so callers never see the error.
func handleError[T any](c *Client, op *operation, err error, fallback T) T {
	event := c.log.Error().
		Err(err).
		Str("op", op.name).
		Str("request_id", op.requestID).
		Str("method", op.method).
		Str("url", op.url)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		event = event.Int("status", httpErr.StatusCode)
	}
	event.Msg("hero request failed")

	c.add(fmt.Sprintf("%s failed: %s", op.name, err.Error()))
	return fallback
}

func (c *Client) succeeded(op *operation, message string) {
	c.log.Debug().
		Str("op", op.name).
		Str("request_id", op.requestID).
		Str("method", op.method).
		Str("url", op.url).
		Msg("hero request succeeded")

	c.add(message)
}

func (c *Client) add(message string) {
	if c.messages == nil {
		return
	}
	c.messages.Add(c.source + ": " + message)
}

// do performs the request and decodes a non-empty response body into out.
func (c *Client) do(ctx context.Context, op *operation, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, op.url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if op.method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, op.requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &HTTPError{
			Method:     op.method,
			URL:        op.url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
