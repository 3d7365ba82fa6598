package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The thresholds mirror the values the
// bot has been running with on Vikidia; all of them can be overridden
// from the configuration file.
const (
	// DefaultAPIURL is the MediaWiki API endpoint of French Vikidia.
	DefaultAPIURL = "https://fr.vikidia.org/w/api.php"

	// DefaultUserAgent identifies the bot in API requests, as required
	// by the Wikimedia User-Agent policy that Vikidia follows.
	DefaultUserAgent = "vikibot/1.0 (https://github.com/celianv/vikibot)"

	// DefaultMinStubWords is the word count under which an article is
	// considered short enough to deserve a stub notice.
	DefaultMinStubWords = 200

	// DefaultShortlistMaxBytes is the size above which an article is
	// dropped from the "important and short" list: once an article
	// reaches this size it is no longer short.
	DefaultShortlistMaxBytes = 1400

	// DefaultEditInterval is the pause between two consecutive saves.
	// One second keeps the bot well under Vikidia's rate limits.
	DefaultEditInterval = time.Second

	// DefaultQueryLimit bounds every list query (recent changes, user
	// contributions, log events). MediaWiki caps bot list queries at
	// 500 entries per request anyway.
	DefaultQueryLimit = 500

	// DefaultTimezone is the zone used for hour-of-day statistics.
	// The community the digest is written for lives on French time.
	DefaultTimezone = "Europe/Paris"

	// DefaultSPARQLEndpoint is the Wikidata Query Service endpoint used
	// for gender lookups.
	DefaultSPARQLEndpoint = "https://query.wikidata.org/sparql"

	// DefaultGenericCategory is the category whose members still need
	// gender classification.
	DefaultGenericCategory = "Personnalité par ordre alphabétique"

	// DefaultMaleCategory and DefaultFemaleCategory are the categories
	// the gender command sorts members into.
	DefaultMaleCategory   = "Personnalité masculine par ordre alphabétique"
	DefaultFemaleCategory = "Personnalité féminine par ordre alphabétique"

	// DefaultShortlistPage is the curated list the shortlist command
	// prunes.
	DefaultShortlistPage = "Vikidia:Articles importants et courts"

	// ShortlistStartMarker and ShortlistEndMarker delimit the region of
	// the shortlist page the bot is allowed to edit.
	ShortlistStartMarker = "== Articles classés =="
	ShortlistEndMarker   = "== Source de la liste =="

	// AppName is the application name used for XDG directory paths.
	AppName = "vikibot"
)

// Environment variables consulted for secrets, so credentials never
// have to live in the configuration file.
const (
	// EnvPassword holds the bot account password.
	EnvPassword = "VIKIBOT_PASSWORD"

	// EnvStatsWebhook holds the Discord webhook for daily digests.
	EnvStatsWebhook = "VIKIBOT_WEBHOOK_STATS"

	// EnvShutdownWebhook holds the Discord webhook for emergency-stop
	// notifications.
	EnvShutdownWebhook = "VIKIBOT_WEBHOOK_SHUTDOWN"
)

// Config holds all configuration options for vikibot. It is populated
// from the configuration file, environment variables and CLI flags, and
// passed through the application via dependency injection rather than
// global state.
type Config struct {
	// APIURL is the MediaWiki API endpoint.
	APIURL string

	// UserAgent is sent with every API and SPARQL request.
	UserAgent string

	// Username is the bot account name, without the "Utilisateur:"
	// prefix. Required for every command that edits.
	Username string

	// Password is the bot account password. Prefer the
	// VIKIBOT_PASSWORD environment variable over the file.
	Password string

	// Webhooks configures the Discord notification targets.
	Webhooks Webhooks

	// Pages names the wiki pages the bot maintains. Empty fields are
	// derived from Username (stats, archive, log) or filled with the
	// Vikidia defaults (shortlist).
	Pages Pages

	// Categories names the personality categories used by the gender
	// and dedupe commands.
	Categories Categories

	// MinStubWords is the stub-notice length threshold.
	MinStubWords int

	// ShortlistMaxBytes is the pruning threshold of the shortlist page.
	ShortlistMaxBytes int64

	// EditInterval is the pause between saves.
	EditInterval time.Duration

	// QueryLimit bounds list queries.
	QueryLimit int

	// Timezone is the IANA zone for hour-of-day statistics.
	Timezone string

	// SPARQLEndpoint is the Wikidata Query Service URL.
	SPARQLEndpoint string

	// DryRun suppresses saves and prints diffs instead. Set from the
	// --dry-run flag, never from the file.
	DryRun bool

	// Verbose enables debug logging. Set from the --verbose flag.
	Verbose bool
}

// Webhooks holds the Discord webhook URLs.
type Webhooks struct {
	// Stats receives the daily activity digest.
	Stats string

	// Shutdown receives emergency-stop notifications.
	Shutdown string
}

// Pages names the wiki pages the bot maintains.
type Pages struct {
	// Stats is the bot's statistics page.
	Stats string

	// Archive is the dated statistics archive.
	Archive string

	// Shortlist is the "important and short articles" list page.
	Shortlist string

	// Log is the on-wiki log page for shutdown entries.
	Log string
}

// Categories names the personality categories.
type Categories struct {
	// Generic is the category still awaiting gender classification.
	Generic string

	// Male and Female are the gendered alphabetical categories.
	Male   string
	Female string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		UserAgent: DefaultUserAgent,
		Pages: Pages{
			Shortlist: DefaultShortlistPage,
		},
		Categories: Categories{
			Generic: DefaultGenericCategory,
			Male:    DefaultMaleCategory,
			Female:  DefaultFemaleCategory,
		},
		MinStubWords:      DefaultMinStubWords,
		ShortlistMaxBytes: DefaultShortlistMaxBytes,
		EditInterval:      DefaultEditInterval,
		QueryLimit:        DefaultQueryLimit,
		Timezone:          DefaultTimezone,
		SPARQLEndpoint:    DefaultSPARQLEndpoint,
	}
}

// derivePages fills page names that default to subpages of the bot's
// user space once the username is known.
func (c *Config) derivePages() {
	if c.Username == "" {
		return
	}
	if c.Pages.Stats == "" {
		c.Pages.Stats = fmt.Sprintf("Utilisateur:%s/Stats", c.Username)
	}
	if c.Pages.Archive == "" {
		c.Pages.Archive = fmt.Sprintf("Utilisateur:%s/Stats/Archives", c.Username)
	}
	if c.Pages.Log == "" {
		c.Pages.Log = fmt.Sprintf("Utilisateur:%s/Logs/%d", c.Username, time.Now().UTC().Year())
	}
}

// TalkPage returns the bot's user talk page, watched by the watch
// command for stop requests.
func (c *Config) TalkPage() string {
	return "Discussion utilisateur:" + c.Username
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// Validate checks the configuration for values that would make every
// command fail. Command-specific requirements (webhooks, credentials)
// are checked by the commands themselves.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrNoAPIURL
	}
	if c.EditInterval < 0 {
		return ErrInvalidEditInterval
	}
	if c.QueryLimit <= 0 {
		return ErrInvalidQueryLimit
	}
	if c.MinStubWords <= 0 {
		return ErrInvalidStubThreshold
	}
	if c.ShortlistMaxBytes <= 0 {
		return ErrInvalidShortlistThreshold
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// RequireLogin checks that credentials are configured. Editing commands
// call this before connecting.
func (c *Config) RequireLogin() error {
	if c.Username == "" {
		return ErrNoUsername
	}
	if c.Password == "" {
		return ErrNoPassword
	}
	return nil
}

// XDGDataDir returns the directory for vikibot's local state (journal
// database, stop marker), following the XDG Base Directory spec.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
