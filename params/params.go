package params

import "time"

const (
	ServerBodyLimit         = 1048576 // 1 MiB
	ServerIdleTimeout       = 30 * time.Second
	ServerReadTimeout       = 10 * time.Second
	ServerWriteTimeout      = 10 * time.Second
	SessionKeyPrefix        = "s:"
	LockoutKeyPrefix        = "l:"
	LimiterKeyPrefix        = "r:"
	LockoutMaxAttempts      = 5                // failed logins within LockoutWindow before the account is locked
	LockoutWindow           = 15 * time.Minute // rolling window in which failures accumulate
	LockoutDuration         = 15 * time.Minute // how long an account stays locked
	LoginRateLimitMax       = 20               // login requests per IP per LoginRateLimitWindow
	LoginRateLimitWindow    = 1 * time.Minute
	APITokenExpiration      = 12 * time.Hour
	CSRFTokenExpiration     = 2 * time.Hour
	AuditRecentLimit        = 100             // max entries returned by the audit listing
	HealthCheckServerAddr   = ":3001"         // health check server address
	SettingsSingletonID     = 1               // branding settings row id
	DefaultSiteName         = "Vacation Bible School"
	DefaultPrimaryColor     = "#2b6cb0"
	MaxStudentNameLength    = 64
	MaxScheduleTitleLength  = 128
	MaxCategoryNameLength   = 64
	MaxEventThemeLength     = 128
	MinPasswordLength       = 8
	DayLayout               = "2006-01-02"
	ReportAttendanceDaysMax = 31
)

func VersionWithCommit(gitCommit, gitDate string) string {
	version := "v0.1.0"
	if len(gitCommit) >= 8 {
		version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		version += "-" + gitDate
	}
	return version
}
