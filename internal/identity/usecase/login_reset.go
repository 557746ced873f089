package usecase

import "github.com/shandysiswandi/postlearn/internal/identity/entity"

// ResetToEmailStep goes back to the email step so the address can be changed.
// The email itself is kept.
func (l *Login) ResetToEmailStep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.flow = entity.FlowAwaitingEmail
	l.slots = make([]string, l.codeLength)
	l.errMsg = ""
	l.focus = -1
}
