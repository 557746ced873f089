// Package clock provides a tiny time abstraction.
//
// Code that reasons about expiry (OTP validity windows, token lifetimes)
// depends on the Clocker interface instead of calling time.Now() directly, so
// tests can pin time with Fixed.
package clock
