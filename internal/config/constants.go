package config

import "time"

// Challenge day rules.
const (
	// DefaultCutoffHour is the local hour before which a timestamp still
	// belongs to the previous challenge day.
	DefaultCutoffHour = 3
	MaxRecentHistory  = 20
	ResumeWindow      = 36 * time.Hour
)

// Default resort when a record or request carries none.
const DefaultResortID = "wdw"

// Persistence keys.
const (
	KeyActiveChallenge   = "challenge.active"
	KeyLastChallenge     = "challenge.last"
	KeyChallengeHistory  = "challenge.history"
	DraftExclusionPrefix = "exclusions.draft."
)

// DraftExclusionKey is the per-resort slot for pre-run exclusions.
func DraftExclusionKey(resortID string) string {
	if resortID == "" {
		resortID = DefaultResortID
	}
	return DraftExclusionPrefix + resortID
}

// Database/application settings.
const (
	AppName     = "everyride"
	DBFileName  = "everyride.db"
	LogFileName = "everyride.log"
)
