// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A Claims type (registered claims + the admin email).
//   - A symmetric HS512 implementation for issuing and verifying tokens.
//   - Inspect, which decodes claims without a key, for clients that only
//     need to display who a token belongs to and when it expires.
package jwt
