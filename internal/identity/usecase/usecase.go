package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/postlearn/internal/identity/entity"
	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

// DefaultCodeLength is used when Dependency.CodeLength is not positive.
const DefaultCodeLength = 6

const (
	fallbackSendMessage   = "Something went wrong"
	fallbackVerifyMessage = "Verification failed"
)

var errEmptyResponse = errors.New("empty response from backend")

var (
	// ErrBusy is returned when a send or verify call is already in flight.
	ErrBusy = goerror.NewBusiness("Another request is still in progress", goerror.CodeConflict)

	// ErrNotAwaitingCode is returned by ResendCode and SubmitCode before a code was sent.
	ErrNotAwaitingCode = goerror.NewBusiness("No code has been sent yet", goerror.CodeConflict)

	// ErrIncompleteCode is returned by SubmitCode while a slot is still empty.
	ErrIncompleteCode = goerror.NewBusiness("Enter every digit of the code", goerror.CodeInvalidInput)
)

type codeSender interface {
	SendCode(ctx context.Context, email string) (*entity.SendCodeResult, error)
}

type codeVerifier interface {
	VerifyCode(ctx context.Context, email, code string) (*entity.Credential, error)
}

// FocusNotifier is told every time the focus cursor moves, so a presentation
// layer can move real keyboard focus to the matching input.
type FocusNotifier interface {
	FocusChanged(index int)
}

// FocusFunc adapts a function to FocusNotifier.
type FocusFunc func(index int)

// FocusChanged calls f(index).
func (f FocusFunc) FocusChanged(index int) { f(index) }

type Dependency struct {
	Sender     codeSender
	Verifier   codeVerifier
	Validator  validator.Validator
	Instrument instrument.Instrumentation
	// Notifier is optional.
	Notifier FocusNotifier
	// CodeLength is the number of slots; DefaultCodeLength when not positive.
	CodeLength int
	// ClearOnResend empties the slots after a successful resend.
	ClearOnResend bool
}

// Login drives one email + one-time-code login attempt: the email step, the
// code slots with their focus cursor, and the send/verify calls. It is safe
// for concurrent use; send and verify share a single busy gate so they never
// overlap.
type Login struct {
	sender        codeSender
	verifier      codeVerifier
	validator     validator.Validator
	ins           instrument.Instrumentation
	notifier      FocusNotifier
	codeLength    int
	clearOnResend bool

	sendCounter   metric.Int64Counter
	verifyCounter metric.Int64Counter

	busy *atomic.Bool

	mu     sync.RWMutex
	email  string
	flow   entity.FlowState
	slots  []string
	focus  int
	errMsg string
}

func NewLogin(dep Dependency) *Login {
	n := dep.CodeLength
	if n <= 0 {
		n = DefaultCodeLength
	}

	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	l := &Login{
		sender:        dep.Sender,
		verifier:      dep.Verifier,
		validator:     dep.Validator,
		ins:           ins,
		notifier:      dep.Notifier,
		codeLength:    n,
		clearOnResend: dep.ClearOnResend,
		busy:          atomic.NewBool(false),
		flow:          entity.FlowAwaitingEmail,
		slots:         make([]string, n),
		focus:         -1,
	}

	meter := ins.Meter("identity.usecase")
	l.sendCounter = newCounter(meter, "identity.login.send_code", "Send-code attempts by outcome")
	l.verifyCounter = newCounter(meter, "identity.login.verify_code", "Verify-code attempts by outcome")

	return l
}

func newCounter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		slog.Warn("failed to create counter, using noop", "name", name, "error", err)
		return metricnoop.Int64Counter{}
	}
	return c
}

func (l *Login) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return l.ins.Tracer("identity.usecase").Start(ctx, name)
}

// failureMessage is what the admin sees for a failed call.
func failureMessage(err error, fallback string) string {
	if errors.Is(err, errEmptyResponse) {
		return fallback
	}
	return goerror.Message(err, fallback)
}

func (l *Login) count(ctx context.Context, c metric.Int64Counter, outcome string) {
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// notifyFocus must be called without holding mu so the notifier may read state.
func (l *Login) notifyFocus(index int) {
	if l.notifier != nil && index >= 0 {
		l.notifier.FocusChanged(index)
	}
}

// CodeLength returns the number of slots.
func (l *Login) CodeLength() int {
	return l.codeLength
}

// Focus returns the slot that should hold keyboard focus. ok is false while
// the cursor is unset (email step).
func (l *Login) Focus() (index int, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.focus, l.focus >= 0
}

// Status reports whether a send or verify call is outstanding.
func (l *Login) Status() entity.SubmissionStatus {
	if l.busy.Load() {
		return entity.SubmissionInFlight
	}
	return entity.SubmissionIdle
}

// Snapshot returns a copy of the current state for rendering.
func (l *Login) Snapshot() entity.LoginState {
	status := l.Status()

	l.mu.RLock()
	defer l.mu.RUnlock()

	slots := make([]string, len(l.slots))
	copy(slots, l.slots)

	return entity.LoginState{
		Email:    l.email,
		Flow:     l.flow,
		Status:   status,
		Slots:    slots,
		Focus:    l.focus,
		Error:    l.errMsg,
		Complete: l.isComplete(),
	}
}
