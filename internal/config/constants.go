package config

import "time"

// API configuration
const (
	DefaultBaseURL   = "https://api.appstoreconnect.apple.com"
	BuildRunPageSize = 50
	MaxAttempts      = 3
	RetryBaseDelay   = 250 * time.Millisecond
	RateLimitStatus  = 429
)

// Token configuration
const (
	TokenLifetime = 1200 * time.Second
	TokenAudience = "appstoreconnect-v1"
)

// Environment variable names
const (
	EnvIssuerID = "APPSTORE_CONNECT_API_ISSUER_ID"
	EnvKeyID    = "APPSTORE_CONNECT_API_KEY_ID"
	EnvKey      = "APPSTORE_CONNECT_API_KEY"
)

// Background refresh
const (
	PollInterval = 30 * time.Second
)

// Artifact handling
const (
	DownloadDir         = "downloads"
	MaxExtractedBytes   = 4 << 20
	DefaultArtifactName = "artifact"
)

// UI element sizes
const (
	StatusBarHeight = 1
	HeaderHeight    = 3
)
