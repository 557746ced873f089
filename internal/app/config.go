package app

import (
	"os"
	"strings"
)

const defaultConfigPath = "./config/config.yaml"

// defaultConfig fills every key the file leaves out, so a minimal file (or an
// empty one) still yields a working client pointed at a local dev API.
var defaultConfig = map[string]any{
	"app.tz": "UTC",

	"log.level": "info",
	"log.path":  "./.postlearn/postlearn.log",

	"instrument.enabled":                 false,
	"instrument.service_name":            "postlearn",
	"instrument.service_version":         "dev",
	"instrument.env":                     "local",
	"instrument.otlp_endpoint":           "localhost:4317",
	"instrument.otlp_secure":             false,
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 60,
	"instrument.log_mask_fields":         "otp,code,access_token,refresh_token,accessToken,refreshToken,password",

	"api.base_url":        "http://localhost:8080",
	"api.timeout_seconds": 15,

	"session.path": "./.postlearn/session.yaml",

	"modules.identity.otp.length":          6,
	"modules.identity.otp.clear_on_resend": true,

	"app.server.http.address":                    ":8080",
	"app.server.http.read_timeout_seconds":       10,
	"app.server.http.read_header_timeout_seconds": 5,
	"app.server.http.write_timeout_seconds":      10,
	"app.server.http.idle_timeout_seconds":       60,
	"app.server.cors":                            "http://localhost:3000",
	"app.server.max_goroutine":                   100,

	"devapi.admins":       "admin@postlearn.id",
	"devapi.echo_otp":     true,
	"devapi.max_attempts": 5,

	"otp.issuer": "PostLearn",
	"otp.period": 300,
	"otp.skew":   1,
	"otp.digits": 6,

	"jwt.issuer":      "postlearn-devapi",
	"jwt.audiences":   "postlearn-admin",
	"jwt.ttl_minutes": 15,

	"mail.port": 587,
	"mail.from": "PostLearn <no-reply@postlearn.id>",
}

// resolveConfigPath picks the flag value, then CONFIG_PATH, then the default.
func resolveConfigPath(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("CONFIG_PATH")); v != "" {
		return v
	}
	return defaultConfigPath
}
