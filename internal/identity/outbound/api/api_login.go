package api

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/postlearn/internal/identity/entity"
)

// SendCode asks the backend to email a login code to an admin.
func (a *API) SendCode(ctx context.Context, email string) (_ *entity.SendCodeResult, err error) {
	ctx, span := a.startSpan(ctx, "SendCode")
	defer func() { a.endSpan(span, err) }()

	var resp sendCodeResponse
	if err := a.post(ctx, "auth/admin/login", sendCodeRequest{Email: email}, &resp); err != nil {
		return nil, err
	}

	if resp.OTP != "" {
		slog.DebugContext(ctx, "backend echoed the login code", "email", email, "otp", resp.OTP)
	}

	return &entity.SendCodeResult{
		Success: *resp.Success,
		Message: *resp.Message,
		Code:    resp.OTP,
	}, nil
}

// VerifyCode exchanges an email and code for a token pair.
func (a *API) VerifyCode(ctx context.Context, email, code string) (_ *entity.Credential, err error) {
	ctx, span := a.startSpan(ctx, "VerifyCode")
	defer func() { a.endSpan(span, err) }()

	var resp verifyCodeResponse
	if err := a.post(ctx, "auth/admin/login/verify", verifyCodeRequest{Email: email, OTP: code}, &resp); err != nil {
		return nil, err
	}

	return &entity.Credential{
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
	}, nil
}
