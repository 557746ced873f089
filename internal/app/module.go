package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/postlearn/internal/devapi"
	"github.com/shandysiswandi/postlearn/internal/identity"
)

func (a *App) initModules() {
	if a.mode == ModeClient {
		mod, err := identity.New(identity.Dependency{
			Ctx:        a.ctx,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		})
		if err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
		a.identity = mod
		return
	}

	a.devapi = devapi.New(devapi.Dependency{
		Options: devapi.Options{
			Admins:      a.config.GetArray("devapi.admins"),
			EchoOTP:     a.config.GetBool("devapi.echo_otp"),
			MaxAttempts: a.config.GetInt("devapi.max_attempts"),
			MailFrom:    a.config.GetString("mail.from"),
		},
		OTP:        a.totp,
		JWT:        a.jwt,
		UUID:       a.uuid,
		Clock:      a.clock,
		Mail:       a.mail,
		Goroutine:  a.goroutine,
		Validator:  a.validator,
		Instrument: a.ins,
	})
	devapi.Register(a.router, a.devapi)
}
