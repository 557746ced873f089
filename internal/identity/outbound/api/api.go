package api

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

	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/uid"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	headerCorrelationID = "X-Correlation-ID"
	contentTypeJSON     = "application/json"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 1 << 20
)

// ErrInvalidResponse is returned when a 2xx body does not have the expected shape.
var ErrInvalidResponse = goerror.NewBusiness("Unexpected response from server", goerror.CodeInternal)

type Config struct {
	// BaseURL is the API origin, without the version prefix.
	BaseURL string
	Timeout time.Duration
}

// API talks to the PostLearn admin REST API.
type API struct {
	baseURL   string
	http      *http.Client
	uuid      uid.StringID
	validator validator.Validator
	ins       instrument.Instrumentation
}

func New(cfg Config, client *http.Client, uuid uid.StringID, v validator.Validator, ins instrument.Instrumentation) *API {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &API{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/") + "/v1/",
		http:      client,
		uuid:      uuid,
		validator: v,
		ins:       ins,
	}
}

func (a *API) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return a.ins.Tracer("identity.outbound.api").Start(ctx, name)
}

func (a *API) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type errorBody struct {
	Message string `json:"message"`
}

// post sends in as JSON to path and decodes a 2xx answer into out, which is
// then checked against its validate tags. Any other status becomes an
// upstream error carrying the body's message when there is one.
func (a *API) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return goerror.NewServer(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return goerror.NewServer(err)
	}

	cID := instrument.GetCorrelationID(ctx)
	if cID == "" {
		cID = a.uuid.Generate()
		ctx = instrument.SetCorrelationID(ctx, cID)
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set(headerCorrelationID, cID)

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.path", "/v1/"+path),
	)

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "api request failed", "path", path, "error", err)
		return goerror.NewServer(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return goerror.NewServer(err)
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	slog.DebugContext(ctx, "api request done",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err != nil || eb.Message == "" {
			eb.Message = fmt.Sprintf("Request failed with status code %d", resp.StatusCode)
		}
		return goerror.NewUpstream(eb.Message, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		slog.WarnContext(ctx, "api response is not json", "path", path, "error", err)
		return ErrInvalidResponse
	}

	if err := a.validator.Validate(out); err != nil {
		slog.WarnContext(ctx, "api response failed validation", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}
