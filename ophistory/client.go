// Package ophistory is the client of the parcel operation-history service.
//
//	c := ophistory.New(ophistory.WithCredentials("login", "password"))
//	data, err := c.GetOperationHistory(ctx, postal.OperationHistoryRequest{Barcode: "RA644000001RU"})
//
// Both operations retry transient failures (see package retry). When the retry budget
// is spent the returned data is empty but well-formed and err matches retry.ErrExhausted.
package ophistory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"operation-history/hydrate"
	"operation-history/postal"
	"operation-history/retry"
	"operation-history/soap"
)

type Client struct {
	exec   *retry.Executor
	logger *zap.Logger
}

type settings struct {
	endpoint  string
	namespace string
	timeout   time.Duration
	auth      *postal.AuthorizationHeader
	transport retry.Transport
	logger    *zap.Logger
	retry     []retry.Option
	hydration []hydrate.Option
}

type Option func(*settings)

// WithEndpoint overrides postal.ServiceURI.
func WithEndpoint(url string) Option {
	return func(s *settings) { s.endpoint = url }
}

func WithNamespace(ns string) Option {
	return func(s *settings) { s.namespace = ns }
}

// WithTimeout bounds each attempt's HTTP exchange.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithCredentials sends an AuthorizationHeader with every request.
func WithCredentials(login, password string) Option {
	return func(s *settings) {
		s.auth = &postal.AuthorizationHeader{Login: login, Password: password, MustUnderstand: true}
	}
}

// WithTransport replaces the SOAP transport; endpoint, namespace, timeout and
// credentials are then ignored.
func WithTransport(t retry.Transport) Option {
	return func(s *settings) { s.transport = t }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRetry passes options to the retry executor.
func WithRetry(opts ...retry.Option) Option {
	return func(s *settings) { s.retry = append(s.retry, opts...) }
}

// WithHydration passes options to response hydration.
func WithHydration(opts ...hydrate.Option) Option {
	return func(s *settings) { s.hydration = append(s.hydration, opts...) }
}

func New(opts ...Option) *Client {
	s := settings{
		endpoint:  postal.ServiceURI,
		namespace: postal.ServiceNamespace,
		timeout:   soap.DefaultTimeout,
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&s)
	}

	transport := s.transport
	if transport == nil {
		soapOpts := []soap.Option{
			soap.WithNamespace(s.namespace),
			soap.WithResultPart(postal.ResultPart),
			soap.WithTimeout(s.timeout),
			soap.WithLogger(s.logger),
		}

		if s.auth != nil {
			soapOpts = append(soapOpts, soap.WithHeader(*s.auth))
		}

		transport = soap.NewClient(s.endpoint, soapOpts...)
	}

	retryOpts := append([]retry.Option{
		retry.WithLogger(s.logger),
		retry.WithHydration(s.hydration...),
	}, s.retry...)

	return &Client{
		exec:   retry.New(transport, retryOpts...),
		logger: s.logger,
	}
}

// GetOperationHistory returns the operations recorded for req.Barcode.
func (c *Client) GetOperationHistory(ctx context.Context, req postal.OperationHistoryRequest) (postal.OperationHistoryData, error) {
	return c.call(ctx, postal.OpGetOperationHistory, req)
}

// UpdateOperationData replaces req.SourceOperation with req.TargetOperation and returns
// the resulting history.
func (c *Client) UpdateOperationData(ctx context.Context, req postal.UpdateOperationRequest) (postal.OperationHistoryData, error) {
	return c.call(ctx, postal.OpUpdateOperationData, req)
}

func (c *Client) call(ctx context.Context, op string, req retry.Named) (postal.OperationHistoryData, error) {
	data, err := retry.Call(ctx, c.exec, op, req, hydrate.Default[postal.OperationHistoryData]())
	if err != nil {
		c.logger.Warn("operation failed", zap.String("operation", op), zap.Error(err))
		return data, err
	}

	c.logger.Debug("operation completed", zap.String("operation", op), zap.Int("records", len(data.HistoryRecord)))

	return data, nil
}
