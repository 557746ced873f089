package entity

import "time"

// SendCodeResult is what the backend answers to a send-code request.
type SendCodeResult struct {
	Success bool
	Message string
	// Code is only filled by development backends that echo the code back.
	Code string
}

// Credential is the token pair issued after a successful verification.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the display-only view of an access token.
type TokenClaims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Session is a persisted login.
type Session struct {
	Email      string
	Credential Credential
	SavedAt    time.Time
}

// LoginState is an immutable snapshot of a login attempt, handed to renderers.
type LoginState struct {
	Email  string
	Flow   FlowState
	Status SubmissionStatus
	Slots  []string
	// Focus is the slot that should hold keyboard focus, -1 when unset.
	Focus    int
	Error    string
	Complete bool
}

// Code joins the slots in order.
func (s LoginState) Code() string {
	var n int
	for _, v := range s.Slots {
		n += len(v)
	}

	b := make([]byte, 0, n)
	for _, v := range s.Slots {
		b = append(b, v...)
	}
	return string(b)
}
