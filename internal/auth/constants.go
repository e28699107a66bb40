package auth

import "time"

// Token settings
const (
	DefaultTokenTTL = 24 * time.Hour
	TokenIssuerName = "codequest"
)

// Credential rules
const (
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit
	MaxPasswordLength = 72
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Log messages
const (
	LogMsgUserRegistered = "User registered"
	LogMsgLoginFailed    = "Login failed"
	LogMsgLoginSucceeded = "User logged in"
)
