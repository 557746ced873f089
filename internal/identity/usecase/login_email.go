package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/postlearn/internal/identity/entity"
	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type RequestCodeInput struct {
	Email string `validate:"required,email"`
}

// SetEmail stores the email a code will be sent to. Format checks happen when
// the code is requested.
func (l *Login) SetEmail(value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.email = value
}

// Email returns the stored email.
func (l *Login) Email() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.email
}

// RequestCode asks the backend to email a code. On success the flow moves to
// the code step with focus on the first slot. On failure the reported message
// becomes the error message and the flow stays where it was.
func (l *Login) RequestCode(ctx context.Context) error {
	ctx, span := l.startSpan(ctx, "RequestCode")
	defer span.End()

	return l.requestCode(ctx, false)
}

// ResendCode repeats RequestCode from the code step.
func (l *Login) ResendCode(ctx context.Context) error {
	ctx, span := l.startSpan(ctx, "ResendCode")
	defer span.End()

	l.mu.RLock()
	flow := l.flow
	l.mu.RUnlock()

	if flow != entity.FlowAwaitingCode {
		return ErrNotAwaitingCode
	}

	return l.requestCode(ctx, true)
}

func (l *Login) requestCode(ctx context.Context, resend bool) error {
	email := strings.TrimSpace(l.Email())

	if err := l.validator.Validate(RequestCodeInput{Email: email}); err != nil {
		l.count(ctx, l.sendCounter, "rejected")
		return goerror.NewInvalidInput(err)
	}

	if !l.busy.CompareAndSwap(false, true) {
		l.count(ctx, l.sendCounter, "rejected")
		return ErrBusy
	}
	defer l.busy.Store(false)

	l.mu.Lock()
	l.errMsg = ""
	l.mu.Unlock()

	res, err := l.sender.SendCode(ctx, email)
	if err == nil && res == nil {
		err = errEmptyResponse
	}
	if err == nil && !res.Success {
		err = goerror.NewBusiness(res.Message, goerror.CodeUnauthorized)
	}

	if err != nil {
		msg := failureMessage(err, fallbackSendMessage)
		slog.WarnContext(ctx, "failed to send login code", "email", email, "resend", resend, "error", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		l.count(ctx, l.sendCounter, "failure")

		l.mu.Lock()
		l.errMsg = msg
		l.mu.Unlock()

		return err
	}

	l.mu.Lock()
	// verify and the saved session must use the address the code went to
	l.email = email
	l.flow = entity.FlowAwaitingCode
	if resend && l.clearOnResend {
		l.slots = make([]string, l.codeLength)
	}
	l.focus = 0
	l.mu.Unlock()

	l.notifyFocus(0)
	l.count(ctx, l.sendCounter, "success")
	slog.InfoContext(ctx, "login code sent", "email", email, "resend", resend)

	return nil
}
