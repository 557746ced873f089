package devapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"github.com/shandysiswandi/postlearn/internal/pkg/mail"
	"github.com/shandysiswandi/postlearn/internal/pkg/router"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	errInvalidCode  = goerror.NewBusiness(msgInvalidCode, goerror.CodeUnauthorized)
	errMissingToken = goerror.NewBusiness("Missing bearer token", goerror.CodeUnauthorized)
	errInvalidToken = goerror.NewBusiness("Invalid or expired token", goerror.CodeUnauthorized)
)

func (h *Handler) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return h.ins.Tracer("devapi").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SendCode issues a fresh code for a known admin and delivers it.
func (h *Handler) SendCode(r *router.Request) (_ any, err error) {
	ctx, span := h.startSpan(r.Context(), "devapi.SendCode")
	defer func() { endSpan(span, err) }()

	var req SendCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}
	req.Email = normalizeEmail(req.Email)
	if err := h.validator.Validate(req); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := req.Email
	if _, ok := h.admins[email]; !ok {
		slog.InfoContext(ctx, "login code requested for unknown admin", "email", email)
		return SendCodeResponse{Success: false, Message: msgUserNotFound, status: http.StatusNotFound}, nil
	}

	if n := h.store.Purge(); n > 0 {
		slog.DebugContext(ctx, "purged expired login challenges", "count", n)
	}

	secret, err := h.otp.NewSecret(email)
	if err != nil {
		return nil, goerror.NewServer(fmt.Errorf("new otp secret: %w", err))
	}

	now := h.clock.Now()
	code, err := h.otp.GenerateCode(secret, now)
	if err != nil {
		return nil, goerror.NewServer(fmt.Errorf("generate otp code: %w", err))
	}

	msg := mail.Message{
		From:    h.mailFrom,
		To:      []string{email},
		Subject: "Your PostLearn sign-in code",
		Body: fmt.Sprintf("Your PostLearn admin sign-in code is %s.\nIt expires in %d minutes.\n",
			code, int(h.otp.Period().Minutes())),
	}
	if err := h.goroutine.Go(ctx, "devapi.deliver_code", func(ctx context.Context) error {
		return h.mail.Send(ctx, msg)
	}); err != nil {
		return nil, goerror.NewServer(fmt.Errorf("schedule code delivery: %w", err))
	}

	h.store.Put(email, secret, now.Add(h.otp.Period()))
	h.issued.Add(ctx, 1)
	span.SetAttributes(attribute.Bool("devapi.echo_otp", h.echoOTP))
	slog.InfoContext(ctx, "login code issued", "email", email)

	resp := SendCodeResponse{Success: true, Message: msgCodeSent}
	if h.echoOTP {
		resp.OTP = code
	}
	return resp, nil
}

// VerifyCode exchanges a valid code for a token pair. A code verifies once.
func (h *Handler) VerifyCode(r *router.Request) (_ any, err error) {
	ctx, span := h.startSpan(r.Context(), "devapi.VerifyCode")
	defer func() { endSpan(span, err) }()

	var req VerifyCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}
	req.Email = normalizeEmail(req.Email)
	if err := h.validator.Validate(req); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := req.Email
	subject, ok := h.admins[email]
	if !ok {
		return nil, errInvalidCode
	}

	secret, ok := h.store.Get(email)
	if !ok {
		slog.InfoContext(ctx, "no active login challenge", "email", email)
		return nil, errInvalidCode
	}

	if !h.otp.Validate(req.OTP, secret, h.clock.Now()) {
		usable := h.store.Fail(email)
		h.countVerify(ctx, "invalid")
		slog.InfoContext(ctx, "invalid login code", "email", email, "challenge_usable", usable)
		return nil, errInvalidCode
	}
	h.store.Delete(email)

	access, err := h.jwt.Generate(subject, email)
	if err != nil {
		return nil, goerror.NewServer(fmt.Errorf("generate access token: %w", err))
	}

	h.countVerify(ctx, "success")
	slog.InfoContext(ctx, "admin signed in", "email", email, "subject", subject)

	return VerifyCodeResponse{
		Message: msgLoginSuccess,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: h.uuid.Generate(),
		},
	}, nil
}

func (h *Handler) countVerify(ctx context.Context, outcome string) {
	h.verified.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Me reports the admin behind the bearer token, so a client can check the
// token it stored.
func (h *Handler) Me(r *router.Request) (any, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, errMissingToken
	}

	claims, err := h.jwt.Verify(strings.TrimSpace(raw))
	if err != nil {
		slog.InfoContext(r.Context(), "rejected access token", "error", err)
		return nil, errInvalidToken
	}

	resp := MeResponse{Subject: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	return resp, nil
}
