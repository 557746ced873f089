package identity

import (
	"context"

	"github.com/shandysiswandi/postlearn/internal/identity/inbound"
	"github.com/shandysiswandi/postlearn/internal/identity/outbound/api"
	"github.com/shandysiswandi/postlearn/internal/identity/outbound/session"
	"github.com/shandysiswandi/postlearn/internal/identity/usecase"
	"github.com/shandysiswandi/postlearn/internal/pkg/clock"
	"github.com/shandysiswandi/postlearn/internal/pkg/config"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/uid"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

// Module is the wired login flow of the terminal client.
type Module struct {
	// Model is the bubbletea model to run.
	Model *inbound.Model
	// Session persists the credential pair once verified.
	Session *session.FileStore
}

func New(dep Dependency) (*Module, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	client := api.New(api.Config{
		BaseURL: dep.Config.GetString("api.base_url"),
		Timeout: dep.Config.GetSecond("api.timeout_seconds"),
	}, nil, dep.UUID, dep.Validator, dep.Instrument)

	store := session.NewFileStore(dep.Config.GetString("session.path"), dep.Clock, dep.Instrument)
	focus := inbound.NewFocusTracker()

	login := usecase.NewLogin(usecase.Dependency{
		Sender:        client,
		Verifier:      client,
		Validator:     dep.Validator,
		Instrument:    dep.Instrument,
		Notifier:      focus,
		CodeLength:    dep.Config.GetInt("modules.identity.otp.length"),
		ClearOnResend: dep.Config.GetBool("modules.identity.otp.clear_on_resend"),
	})

	return &Module{
		Model:   inbound.NewModel(dep.Ctx, login, store, focus),
		Session: store,
	}, nil
}
