// Package mail sends plain-text email.
//
// Callers depend on the Mail interface. SMTP delivers through a real server;
// Log writes the message to the structured log instead, which is what local
// development uses when no server is configured.
package mail
