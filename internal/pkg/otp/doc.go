// Package otp generates and validates the numeric one-time codes emailed to
// admins at login. Codes are TOTP values (RFC 6238) derived from a per-account
// secret, so a code expires on its own once its time step has passed.
package otp
