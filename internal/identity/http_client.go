package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"jobgate/internal/platform/metrics"
	dErrors "jobgate/pkg/domain-errors"
)

const defaultTimeout = 15 * time.Second

// HTTPClient talks to the remote identity endpoints over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type HTTPOption func(*HTTPClient)

func WithLogger(logger *slog.Logger) HTTPOption {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) HTTPOption {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

func WithHTTPClient(h *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		c.http = h
	}
}

func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tracer:  otel.Tracer("jobgate/identity"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type loginResponse struct {
	Tokens TokenPair  `json:"tokens"`
	User   UserRecord `json:"user"`
}

func (c *HTTPClient) Login(ctx context.Context, identifier, secret string) (TokenPair, *UserRecord, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Identifier: identifier, Secret: secret}, &out)
	if err != nil {
		// A rejected credential pair is a validation failure the caller
		// renders inline, not an auth rejection.
		if dErrors.HasCode(err, dErrors.CodeAuthRejected) {
			return TokenPair{}, nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid credentials")
		}
		return TokenPair{}, nil, err
	}
	if !out.User.Role.IsValid() {
		role, perr := ParseRole(string(out.User.Role))
		if perr != nil {
			return TokenPair{}, nil, perr
		}
		out.User.Role = role
	}
	return out.Tokens, &out.User, nil
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, error) {
	var out TokenPair
	if err := c.do(ctx, http.MethodPost, "/token/refresh", "", refreshRequest{Refresh: refreshToken}, &out); err != nil {
		return TokenPair{}, err
	}
	return out, nil
}

func (c *HTTPClient) Me(ctx context.Context, accessToken string) (*UserRecord, error) {
	var out UserRecord
	if err := c.do(ctx, http.MethodGet, "/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	if !out.Role.IsValid() {
		role, err := ParseRole(string(out.Role))
		if err != nil {
			return nil, err
		}
		out.Role = role
	}
	return &out, nil
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (c *HTTPClient) UpdateRole(ctx context.Context, accessToken string, role Role) (*UserRecord, error) {
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	var out UserRecord
	if err := c.do(ctx, http.MethodPatch, "/me/role", accessToken, updateRoleRequest{Role: role.String()}, &out); err != nil {
		return nil, err
	}
	if !out.Role.IsValid() {
		parsed, err := ParseRole(string(out.Role))
		if err != nil {
			return nil, err
		}
		out.Role = parsed
	}
	return &out, nil
}

func (c *HTTPClient) EmployerVerificationStatus(ctx context.Context, accessToken string) (*VerificationStatus, error) {
	var out VerificationStatus
	if err := c.do(ctx, http.MethodGet, "/employer-verification-status", accessToken, nil, &out); err != nil {
		if dErrors.HasCode(err, dErrors.CodeAuthRejected) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeVerificationFetch, "verification status fetch failed")
	}
	return &out, nil
}

// do performs one JSON round trip and maps transport and status failures to
// domain error codes.
func (c *HTTPClient) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	endpoint := c.baseURL + path

	ctx, span := c.tracer.Start(ctx, "identity"+strings.ReplaceAll(path, "/", "."),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", endpoint),
		),
	)
	defer span.End()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.metrics != nil {
		c.metrics.IdentityLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.logger.WarnContext(ctx, "identity endpoint unreachable",
			"endpoint", path,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeNetwork, "identity endpoint unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return dErrors.New(dErrors.CodeAuthRejected, "unauthenticated")
	case resp.StatusCode >= 500:
		span.SetStatus(codes.Error, resp.Status)
		return dErrors.New(dErrors.CodeNetwork, fmt.Sprintf("identity endpoint returned %d", resp.StatusCode))
	case resp.StatusCode >= 400:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("identity endpoint rejected request: %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return dErrors.Wrap(err, dErrors.CodeNetwork, "decode identity response")
	}
	return nil
}

var _ Client = (*HTTPClient)(nil)
