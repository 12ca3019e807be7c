package constants

import "time"

const (
	AppName            = "thirtyday"
	DefaultKeyringUser = "database-connection"
	TokenKeyringUser   = "session-token"
	DefaultConfigPath  = "~/.config/thirtyday/thirtyday.db"
	DefaultAPIBaseURL  = "https://30day.me"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Challenge defaults
	DefaultEmoji      = "✅"
	DefaultLengthDays = 30
	DaysPerWeek       = 7

	// MaxGridDays caps the number of visible days a single grid walks.
	MaxGridDays = 366

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "thirtyday-"
	BackupFileSuffix = ".db"

	// Lock constants
	InstanceLockfileName = "thirtyday.lock"

	// HTTP
	RequestTimeout = 30 * time.Second
)

// Auth endpoints exposed by the remote service.
const (
	EndpointSignIn     = "/api/auth/sign-in/email"
	EndpointSignUp     = "/api/auth/sign-up/email"
	EndpointSignOut    = "/api/auth/sign-out"
	EndpointGetSession = "/api/auth/get-session"

	HeaderSetAuthToken = "set-auth-token"
)
