package config

import "errors"

// Configuration validation errors. Package-level sentinel errors so
// callers can use errors.Is while still getting a readable message.
var (
	// ErrNoAPIURL is returned when the API endpoint is empty.
	ErrNoAPIURL = errors.New("no API URL configured")

	// ErrNoUsername is returned by RequireLogin when the bot account
	// name is missing.
	ErrNoUsername = errors.New("no username configured")

	// ErrNoPassword is returned by RequireLogin when the bot password
	// is missing. Set it in the file or via VIKIBOT_PASSWORD.
	ErrNoPassword = errors.New("no password configured (set VIKIBOT_PASSWORD)")

	// ErrInvalidEditInterval is returned when the edit interval is
	// negative. Use 0 to disable pacing.
	ErrInvalidEditInterval = errors.New("invalid edit interval: must be non-negative")

	// ErrInvalidQueryLimit is returned when the query limit is not
	// positive. A limit of zero would make every list query empty.
	ErrInvalidQueryLimit = errors.New("invalid query limit: must be positive")

	// ErrInvalidStubThreshold is returned when the stub word threshold
	// is not positive.
	ErrInvalidStubThreshold = errors.New("invalid stub threshold: must be positive")

	// ErrInvalidShortlistThreshold is returned when the shortlist byte
	// threshold is not positive.
	ErrInvalidShortlistThreshold = errors.New("invalid shortlist threshold: must be positive")

	// ErrInvalidTimezone is returned when the configured timezone is
	// not a valid IANA zone name.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrNoWebhook is returned by commands that need a Discord webhook
	// when none is configured.
	ErrNoWebhook = errors.New("no Discord webhook configured")
)
