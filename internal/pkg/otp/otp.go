package otp

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// OTP defines the contract for one-time code operations.
type OTP interface {
	// NewSecret creates a fresh base32 secret for an account name.
	NewSecret(accountName string) (string, error)
	// GenerateCode creates a code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// Validate checks whether a code is valid at the given time.
	Validate(code, secret string, at time.Time) bool
	// Period is how long a single code stays current.
	Period() time.Duration
}

// Config controls code length and validity window.
type Config struct {
	// Issuer is recorded in the generated key. Defaults to "PostLearn".
	Issuer string
	// Period is the time step in seconds. Defaults to 300.
	Period uint
	// Skew is how many steps before/after the current one are accepted.
	Skew uint
	// Digits is 6 or 8. Anything else falls back to 6.
	Digits int
}

// TOTP implements OTP using the Time-based One-Time Password algorithm.
type TOTP struct {
	issuer string
	opts   totp.ValidateOpts
}

// totp.Generate rejects an empty issuer.
const defaultIssuer = "PostLearn"

// NewTOTP constructs a TOTP instance with sensible defaults.
func NewTOTP(cfg Config) *TOTP {
	digits := otp.DigitsSix
	if cfg.Digits == 8 {
		digits = otp.DigitsEight
	}

	period := cfg.Period
	if period == 0 {
		period = 300
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	return &TOTP{
		issuer: issuer,
		opts: totp.ValidateOpts{
			Period:    period,
			Skew:      cfg.Skew,
			Digits:    digits,
			Algorithm: otp.AlgorithmSHA1,
		},
	}
}

// NewSecret creates a fresh secret for an account name.
func (o *TOTP) NewSecret(accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      o.issuer,
		AccountName: accountName,
		Period:      o.opts.Period,
		SecretSize:  20, // RFC 4226/6238 recommendation
		Digits:      o.opts.Digits,
		Algorithm:   o.opts.Algorithm,
	})
	if err != nil {
		return "", err
	}

	return key.Secret(), nil
}

// GenerateCode creates a code for the given secret and time.
func (o *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, o.opts)
}

// Validate checks whether a code is valid at the given time.
func (o *TOTP) Validate(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, o.opts)
	return ok && err == nil
}

// Period is how long a single code stays current.
func (o *TOTP) Period() time.Duration {
	return time.Duration(o.opts.Period) * time.Second
}
