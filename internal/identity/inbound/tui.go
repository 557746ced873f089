package inbound

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shandysiswandi/postlearn/internal/identity/entity"
	"github.com/shandysiswandi/postlearn/internal/identity/usecase"
	"github.com/shandysiswandi/postlearn/internal/pkg/goerror"
)

type uc interface {
	SetEmail(value string)
	RequestCode(ctx context.Context) error
	ResendCode(ctx context.Context) error
	SetDigit(index int, raw string) bool
	HandleKey(index int, key entity.Key) bool
	HandlePaste(text string)
	SubmitCode(ctx context.Context) (*entity.Credential, error)
	ResetToEmailStep()
	Snapshot() entity.LoginState
	CodeLength() int
}

type credentialSink interface {
	Save(ctx context.Context, email string, cred entity.Credential) error
	Claims(accessToken string) (entity.TokenClaims, error)
}

type codeSentMsg struct {
	resend bool
	err    error
}

type verifiedMsg struct {
	claims *entity.TokenClaims
	err    error
	// saved is false when verification passed but the session was not stored.
	saved bool
}

// Model is the bubbletea model of the login screen. It renders the login
// controller's snapshot and turns key presses into controller operations;
// network calls run as commands so the screen keeps drawing meanwhile.
type Model struct {
	ctx   context.Context
	uc    uc
	sink  credentialSink
	focus *FocusTracker
	keys  KeyMap

	email textinput.Model
	spin  spinner.Model
	help  help.Model

	notice string
	// localErr is shown when the controller has no message of its own,
	// e.g. the email was rejected before any call.
	localErr string
	claims   *entity.TokenClaims

	width int
}

func NewModel(ctx context.Context, login uc, sink credentialSink, focus *FocusTracker) *Model {
	ti := textinput.New()
	ti.Placeholder = "admin@postlearn.id"
	ti.Prompt = "› "
	ti.CharLimit = 254
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return &Model{
		ctx:   ctx,
		uc:    login,
		sink:  sink,
		focus: focus,
		keys:  DefaultKeyMap,
		email: ti,
		spin:  sp,
		help:  help.New(),
	}
}

// Claims is set once the admin signed in.
func (m *Model) Claims() *entity.TokenClaims {
	return m.claims
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.uc.Snapshot().Status != entity.SubmissionInFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case codeSentMsg:
		return m, m.onCodeSent(msg)

	case verifiedMsg:
		return m, m.onVerified(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.claims != nil {
			return m, nil
		}
		if m.uc.Snapshot().Flow == entity.FlowAwaitingEmail {
			return m, m.updateEmail(msg)
		}
		return m, m.updateCode(msg)
	}

	if m.uc.Snapshot().Flow == entity.FlowAwaitingEmail {
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateEmail(msg tea.KeyMsg) tea.Cmd {
	if !msg.Paste && key.Matches(msg, m.keys.Submit) {
		m.localErr = ""
		m.notice = ""
		m.uc.SetEmail(m.email.Value())
		return tea.Batch(m.sendCode(false), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return cmd
}

func (m *Model) updateCode(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		m.uc.HandlePaste(string(msg.Runes))
		return nil
	}

	idx := m.focus.Index()

	switch {
	case key.Matches(msg, m.keys.Submit):
		s := m.uc.Snapshot()
		if !s.Complete || s.Status == entity.SubmissionInFlight {
			return nil
		}
		m.localErr = ""
		return tea.Batch(m.verify(s.Email), m.spin.Tick)

	case key.Matches(msg, m.keys.Resend):
		m.localErr = ""
		m.notice = ""
		return tea.Batch(m.sendCode(true), m.spin.Tick)

	case key.Matches(msg, m.keys.Back):
		m.uc.ResetToEmailStep()
		m.notice = ""
		m.localErr = ""
		m.email.Focus()
		return textinput.Blink

	case key.Matches(msg, m.keys.Backspace):
		// a filled box is cleared in place; an empty one hands the key to the controller
		if s := m.uc.Snapshot(); idx >= 0 && idx < len(s.Slots) && s.Slots[idx] != "" {
			m.uc.SetDigit(idx, "")
			return nil
		}
		m.uc.HandleKey(idx, entity.KeyBackspace)

	case key.Matches(msg, m.keys.Left):
		m.uc.HandleKey(idx, entity.KeyArrowLeft)

	case key.Matches(msg, m.keys.Right):
		m.uc.HandleKey(idx, entity.KeyArrowRight)

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				continue
			}
			m.uc.SetDigit(m.focus.Index(), string(r))
		}
	}

	return nil
}

func (m *Model) sendCode(resend bool) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		var err error
		if resend {
			err = m.uc.ResendCode(ctx)
		} else {
			err = m.uc.RequestCode(ctx)
		}
		return codeSentMsg{resend: resend, err: err}
	}
}

func (m *Model) verify(email string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		cred, err := m.uc.SubmitCode(ctx)
		if err != nil {
			return verifiedMsg{err: err}
		}

		claims, err := m.sink.Claims(cred.AccessToken)
		if err != nil {
			slog.WarnContext(ctx, "access token is not a readable jwt", "error", err)
			claims = entity.TokenClaims{Email: email}
		}

		if err := m.sink.Save(ctx, email, *cred); err != nil {
			slog.ErrorContext(ctx, "failed to save session", "email", email, "error", err)
			return verifiedMsg{claims: &claims, err: err}
		}

		return verifiedMsg{claims: &claims, saved: true}
	}
}

func (m *Model) onCodeSent(msg codeSentMsg) tea.Cmd {
	if msg.err == nil {
		m.email.Blur()
		m.notice = "Code sent to " + m.uc.Snapshot().Email
		if msg.resend {
			m.notice = "A new code was sent to " + m.uc.Snapshot().Email
		}
		return nil
	}

	var gerr *goerror.Error
	switch {
	case errors.Is(msg.err, usecase.ErrBusy), errors.Is(msg.err, usecase.ErrNotAwaitingCode):
	case errors.As(msg.err, &gerr) && gerr.Type() == goerror.TypeValidation:
		m.localErr = "Enter a valid email address"
	}

	return nil
}

func (m *Model) onVerified(msg verifiedMsg) tea.Cmd {
	if msg.saved {
		m.claims = msg.claims
		m.notice = ""
		return tea.Quit
	}

	if msg.claims != nil {
		m.localErr = "Signed in, but the session could not be saved: " + msg.err.Error()
		return nil
	}

	if errors.Is(msg.err, usecase.ErrIncompleteCode) {
		m.localErr = goerror.Message(msg.err, "")
	}

	return nil
}
