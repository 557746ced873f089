package app

import (
	"context"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shandysiswandi/postlearn/internal/devapi"
	"github.com/shandysiswandi/postlearn/internal/identity"
	"github.com/shandysiswandi/postlearn/internal/pkg/clock"
	"github.com/shandysiswandi/postlearn/internal/pkg/config"
	"github.com/shandysiswandi/postlearn/internal/pkg/goroutine"
	"github.com/shandysiswandi/postlearn/internal/pkg/instrument"
	"github.com/shandysiswandi/postlearn/internal/pkg/jwt"
	"github.com/shandysiswandi/postlearn/internal/pkg/mail"
	"github.com/shandysiswandi/postlearn/internal/pkg/otp"
	"github.com/shandysiswandi/postlearn/internal/pkg/router"
	"github.com/shandysiswandi/postlearn/internal/pkg/uid"
	"github.com/shandysiswandi/postlearn/internal/pkg/validator"
)

// Mode selects which side of the login flow the process runs.
type Mode int

const (
	// ModeClient runs the terminal login screen.
	ModeClient Mode = iota
	// ModeDevAPI serves the local stand-in of the admin-login endpoints.
	ModeDevAPI
)

func (m Mode) String() string {
	if m == ModeDevAPI {
		return "devapi"
	}
	return "client"
}

// Options are resolved from command-line flags by the caller.
type Options struct {
	// ConfigPath overrides CONFIG_PATH and the default location.
	ConfigPath string
	Mode       Mode
}

// App wires dependencies and manages the process lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	mode   Mode

	// configuration
	config  config.Config
	ins     instrument.Instrumentation
	logFile *os.File

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// client
	identity    *identity.Module
	program     *tea.Program
	programDone chan struct{}

	// devapi
	goroutine  *goroutine.Manager
	totp       otp.OTP
	jwt        jwt.JWT
	mail       mail.Mail
	devapi     *devapi.Handler
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application for opts.Mode and returns an App instance.
func New(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		mode:   opts.Mode,
	}

	app.initConfig(opts.ConfigPath)
	app.initInstrument()
	app.initLibraries()

	if app.mode == ModeDevAPI {
		app.initOTP()
		app.initJWT()
		app.initMail()
		app.initHTTPServer()
	}

	app.initModules()

	if app.mode == ModeClient {
		app.initProgram()
	}

	app.initClosers()

	return app
}
