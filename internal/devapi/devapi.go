// Package devapi is a local stand-in for the two admin-login endpoints of the
// PostLearn backend. It issues TOTP codes to a fixed list of admin emails,
// mails (or logs) them, and exchanges a valid code for a signed access token
// and an opaque refresh token.
//
// It exists so the terminal client can be driven end to end on a laptop; it
// keeps everything in memory and is not meant to face real users.
package devapi

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shandysiswandi/postlearn/internal/pkg/clock"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/jwt"
	"github.com/shandysiswandi/postlearn/internal/pkg/mail"
	"github.com/shandysiswandi/postlearn/internal/pkg/otp"
	"github.com/shandysiswandi/postlearn/internal/pkg/router"
	"github.com/shandysiswandi/postlearn/internal/pkg/uid"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

const (
	msgUserNotFound = "User not found"
	msgCodeSent     = "OTP sent to your email"
	msgInvalidCode  = "Invalid or expired OTP"
	msgLoginSuccess = "Login successful"
)

type runner interface {
	Go(ctx context.Context, name string, f func(ctx context.Context) error) error
}

// Options are the behaviour switches of the stub.
type Options struct {
	// Admins are the emails allowed to sign in. Compared case-insensitively.
	Admins []string
	// EchoOTP returns the issued code in the send response.
	EchoOTP bool
	// MaxAttempts drops a challenge after this many wrong codes; 0 is unlimited.
	MaxAttempts int
	// MailFrom is the sender of code emails.
	MailFrom string
}

type Dependency struct {
	Options    Options
	OTP        otp.OTP
	JWT        jwt.JWT
	UUID       uid.StringID
	Clock      clock.Clocker
	Mail       mail.Mail
	Goroutine  runner
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

// Handler serves the admin-login endpoints.
type Handler struct {
	otp       otp.OTP
	jwt       jwt.JWT
	uuid      uid.StringID
	clock     clock.Clocker
	mail      mail.Mail
	goroutine runner
	validator validator.Validator
	ins       instrument.Instrumentation

	admins   map[string]string
	echoOTP  bool
	mailFrom string
	store    *ChallengeStore

	issued   metric.Int64Counter
	verified metric.Int64Counter
}

func New(dep Dependency) *Handler {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	// Subjects are derived from the email so a token names the same admin
	// across restarts.
	admins := lo.SliceToMap(dep.Options.Admins, func(email string) (string, string) {
		email = normalizeEmail(email)
		return email, uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
	})
	delete(admins, "")

	meter := ins.Meter("devapi")

	return &Handler{
		otp:       dep.OTP,
		jwt:       dep.JWT,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		mail:      dep.Mail,
		goroutine: dep.Goroutine,
		validator: dep.Validator,
		ins:       ins,
		admins:    admins,
		echoOTP:   dep.Options.EchoOTP,
		mailFrom:  dep.Options.MailFrom,
		store:     NewChallengeStore(dep.Options.MaxAttempts, dep.Clock.Now),
		issued:    newCounter(meter, "devapi.codes_issued", "Login codes issued to admins"),
		verified:  newCounter(meter, "devapi.verifications", "Code verifications by outcome"),
	}
}

func newCounter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		slog.Warn("failed to create counter, using noop", "name", name, "error", err)
		return metricnoop.Int64Counter{}
	}
	return c
}

// Register mounts the endpoints on r.
func Register(r *router.Router, h *Handler) {
	r.POST("/v1/auth/admin/login", h.SendCode)
	r.POST("/v1/auth/admin/login/verify", h.VerifyCode)
	r.GET("/v1/auth/admin/me", h.Me)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
