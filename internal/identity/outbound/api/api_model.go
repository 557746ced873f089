package api

type sendCodeRequest struct {
	Email string `json:"email"`
}

type sendCodeResponse struct {
	Success *bool   `json:"success" validate:"required"`
	Message *string `json:"message" validate:"required"`
	OTP     string  `json:"otp"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type verifyCodeResponse struct {
	Message *string    `json:"message" validate:"required"`
	Tokens  *tokenPair `json:"tokens" validate:"required"`
}
