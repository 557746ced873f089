package inbound

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/shandysiswandi/postlearn/internal/identity/entity"
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PostLearn Admin"))
	b.WriteString("\n\n")

	if m.claims != nil {
		b.WriteString(m.viewSignedIn())
		return b.String()
	}

	s := m.uc.Snapshot()

	if s.Flow == entity.FlowAwaitingEmail {
		b.WriteString(m.viewEmail(s))
	} else {
		b.WriteString(m.viewCode(s))
	}

	if msg, ok := lo.Coalesce(s.Error, m.localErr); ok {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("✗ " + msg))
	} else if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	b.WriteString("\n\n")
	if s.Flow == entity.FlowAwaitingEmail {
		b.WriteString(m.help.ShortHelpView(m.keys.emailHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.codeHelp()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *Model) viewEmail(s entity.LoginState) string {
	var b strings.Builder

	b.WriteString("Sign in with your admin email\n\n")
	b.WriteString(m.email.View())

	if s.Status == entity.SubmissionInFlight {
		b.WriteString("\n\n")
		b.WriteString(m.spin.View() + " Sending code…")
	}

	return b.String()
}

func (m *Model) viewCode(s entity.LoginState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Enter the %d-digit code sent to %s\n\n", len(s.Slots), s.Email)

	focused := m.focus.Index()
	boxes := make([]string, len(s.Slots))
	for i, v := range s.Slots {
		style := boxStyle
		if i == focused {
			style = focusedBoxStyle
		}
		if v == "" {
			v = " "
		}
		boxes[i] = style.Render(v)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	filled := lo.CountBy(s.Slots, func(v string) bool { return v != "" })
	b.WriteString(strings.Repeat(dotFilled, filled) + strings.Repeat(dotEmpty, len(s.Slots)-filled))

	if s.Status == entity.SubmissionInFlight {
		b.WriteString("\n\n")
		b.WriteString(m.spin.View() + " Please wait…")
	}

	return b.String()
}

func (m *Model) viewSignedIn() string {
	var b strings.Builder

	b.WriteString(noticeStyle.Render("✓ Signed in"))
	b.WriteString("\n\n")

	c := m.claims
	if c.Email != "" {
		b.WriteString(dimStyle.Render("Email:   ") + c.Email + "\n")
	}
	if c.Subject != "" {
		b.WriteString(dimStyle.Render("Subject: ") + c.Subject + "\n")
	}
	if !c.ExpiresAt.IsZero() {
		b.WriteString(dimStyle.Render("Expires: ") + c.ExpiresAt.Local().Format(time.RFC1123) + "\n")
	}

	return b.String()
}
