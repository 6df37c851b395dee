package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"operation-history/retry"
)

const DefaultTimeout = 120 * time.Second

var (
	ErrNoBody          = errors.New("envelope has no body")
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// Client posts RPC-style SOAP requests to one endpoint. It implements retry.Transport.
type Client struct {
	endpoint   string
	namespace  string
	headers    []any
	resultPart string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

var _ retry.Transport = (*Client)(nil)

type Option func(*Client)

// WithNamespace sets the namespace operation elements are qualified with.
func WithNamespace(ns string) Option {
	return func(c *Client) { c.namespace = ns }
}

// WithHeader adds a value marshalled into every request's SOAP header.
func WithHeader(h any) Option {
	return func(c *Client) { c.headers = append(c.headers, h) }
}

// WithResultPart names the return part of RPC responses. A "...Response" wrapper
// whose only child is that part is unwrapped; any other wrapper is returned as is.
func WithResultPart(name string) Option {
	return func(c *Client) { c.resultPart = name }
}

// WithHTTPClient replaces the HTTP client. It is copied, never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request, connection included. It takes precedence over the
// timeout of a client given with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient

	switch {
	case c.timeout > 0:
		hc.Timeout = c.timeout
	case hc.Timeout == 0:
		hc.Timeout = DefaultTimeout
	}

	c.httpClient = &hc

	return c
}

// Call sends op with param and returns the response part as an untyped tree, or a
// *Fault when the service answered with one.
func (c *Client) Call(ctx context.Context, op string, param retry.Param) (any, error) {
	var buf bytes.Buffer
	if err := writeEnvelope(&buf, c.namespace, op, c.headers, param.Name, param.Value); err != nil {
		return nil, fmt.Errorf("encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+op+`"`)

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("soap response",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	result, decodeErr := decodeResponse(resp.Body, c.resultPart)

	// faults usually come with a 500
	if f, ok := result.(*Fault); ok {
		return f, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%s: %w", op, decodeErr)
	}

	return result, nil
}

// decodeResponse extracts the response from an envelope: the body's single child,
// unwrapped once more when that child is an RPC "...Response" wrapper holding only
// the element named part.
func decodeResponse(r io.Reader, part string) (any, error) {
	doc, err := DecodeTree(r)
	if err != nil {
		return nil, err
	}

	envelope, ok := doc["Envelope"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: no envelope", ErrUnexpectedShape)
	}

	body, ok := envelope["Body"].(map[string]any)
	if !ok {
		return nil, ErrNoBody
	}

	if fault, ok := body["Fault"].(map[string]any); ok {
		return faultFrom(fault), nil
	}

	if len(body) != 1 {
		return nil, fmt.Errorf("%w: body has %d elements", ErrUnexpectedShape, len(body))
	}

	for name, v := range body {
		wrapper, ok := v.(map[string]any)
		if !ok {
			// an empty response element
			return nil, nil
		}

		inner, found := wrapper[part]
		if part != "" && found && len(wrapper) == 1 && strings.HasSuffix(name, "Response") {
			switch p := inner.(type) {
			case map[string]any:
				return p, nil
			case nil:
				return map[string]any{}, nil
			case string:
				if strings.TrimSpace(p) == "" {
					return map[string]any{}, nil
				}
			}
		}

		return wrapper, nil
	}

	return nil, nil
}
