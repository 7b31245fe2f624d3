package config

import "time"

// Timeout constants
const (
	// HTTP timeouts
	DefaultHTTPTimeout = 60 * time.Second
	ChatRequestTimeout = 30 * time.Second
	TestTimeout        = 100 * time.Millisecond

	// Database timeouts
	DatabaseConnMaxLifetime = 5 * time.Minute

	// Session timeouts
	SessionMaxAge = 7 * 24 * time.Hour // 7 days
)

// Server defaults
const (
	DefaultServerPort = "8080"
	DefaultDataDir    = "data/portal"
)

// Database pool defaults
const (
	DefaultMaxOpenConns = 25
	DefaultMaxIdleConns = 5
)

// Chat defaults
const (
	DefaultChatBaseURL = "https://api.openai.com/v1"
	DefaultChatModel   = "gpt-3.5-turbo"
)

// Session configuration constants
const (
	// Session settings
	SessionPath     = "/"
	SessionHTTPOnly = true
	SessionSecure   = false // Set to true in production with HTTPS

	// Session name
	SessionName = "portal-session"
)

// Security configuration constants
const (
	// Content Security Policy
	DefaultCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:; media-src 'self' blob: data:;"
)
