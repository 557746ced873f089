package devapi

import (
	"net/http"
	"time"
)

// SendCodeRequest is the body of POST /v1/auth/admin/login.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendCodeResponse answers POST /v1/auth/admin/login. OTP is only filled
// when echoing codes is enabled.
type SendCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`

	status int
}

// StatusCode lets the router answer an unknown admin with 404 while still
// sending the success/message envelope.
func (r SendCodeResponse) StatusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// VerifyCodeRequest is the body of POST /v1/auth/admin/login/verify.
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,digits"`
}

// VerifyCodeResponse answers a successful verification.
type VerifyCodeResponse struct {
	Message string    `json:"message"`
	Tokens  TokenPair `json:"tokens"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MeResponse describes the admin an access token belongs to.
type MeResponse struct {
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
