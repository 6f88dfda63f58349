package constants

import "time"

const (
	AppName            = "playbook"
	DefaultKeyringUser = "anthropic-api-key"
	DefaultConfigPath  = "~/.config/playbook/playbook.db"
	Version            = "v0.2.0"

	// APIKeyEnvVar overrides the keyring-stored credential when set.
	APIKeyEnvVar = "ANTHROPIC_API_KEY"

	// Storage key layout. Playbook records live under PlaybookKeyPrefix;
	// the two flag keys store the literal string "true" (absence means
	// "not yet seen").
	PlaybookKeyPrefix   = "playbook:"
	OnboardingSeenKey   = "onboarding-seen"
	PlaybookTourSeenKey = "playbook-tour-seen"

	// Generation request budgets (tokens).
	GenerateMaxTokens   = 16000
	RegenerateMaxTokens = 8000
	CoachingMaxTokens   = 2000

	// DefaultRequestTimeout bounds a single generation round-trip.
	DefaultRequestTimeout = 60 * time.Second

	// Progress simulation: while a generation request is outstanding the
	// visible progress advances ProgressStep per ProgressTickInterval,
	// clamped at ProgressCeiling; it is forced to ProgressDone when the
	// request concludes.
	ProgressTickInterval = time.Second
	ProgressStep         = 1
	ProgressCeiling      = 95
	ProgressDone         = 100
)
