package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/postlearn/internal/identity/entity"
	"go.opentelemetry.io/otel/codes"
)

// SubmitCode sends the entered code for verification and returns the issued
// credential pair. On failure the slots are kept so the admin can correct a
// digit, and the reported message becomes the error message.
func (l *Login) SubmitCode(ctx context.Context) (*entity.Credential, error) {
	ctx, span := l.startSpan(ctx, "SubmitCode")
	defer span.End()

	if !l.busy.CompareAndSwap(false, true) {
		l.count(ctx, l.verifyCounter, "rejected")
		return nil, ErrBusy
	}
	defer l.busy.Store(false)

	// flow, completeness and the code must come from the same slots
	l.mu.Lock()
	if l.flow != entity.FlowAwaitingCode {
		l.mu.Unlock()
		l.count(ctx, l.verifyCounter, "rejected")
		return nil, ErrNotAwaitingCode
	}
	if !l.isComplete() {
		l.mu.Unlock()
		l.count(ctx, l.verifyCounter, "rejected")
		return nil, ErrIncompleteCode
	}
	l.errMsg = ""
	email := l.email
	code := entity.LoginState{Slots: l.slots}.Code()
	l.mu.Unlock()

	cred, err := l.verifier.VerifyCode(ctx, email, code)
	if err == nil && cred == nil {
		err = errEmptyResponse
	}

	if err != nil {
		msg := failureMessage(err, fallbackVerifyMessage)
		slog.WarnContext(ctx, "failed to verify login code", "email", email, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		l.count(ctx, l.verifyCounter, "failure")

		l.mu.Lock()
		l.errMsg = msg
		l.mu.Unlock()

		return nil, err
	}

	l.count(ctx, l.verifyCounter, "success")
	slog.InfoContext(ctx, "login code verified", "email", email)

	return cred, nil
}
