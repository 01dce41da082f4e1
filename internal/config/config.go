package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone       = "UTC"
	configPathEnv         = "JOB_CATALOG_CONFIG"
	databaseDSNEnv        = "DATABASE_DSN"
	googleClientIDEnv     = "GOOGLE_CLIENT_ID"
	googleClientSecretEnv = "GOOGLE_CLIENT_SECRET"
	telegramTokenEnv      = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv     = "TELEGRAM_CHAT_ID"
	catalogPathEnv        = "JOB_CATALOG_PATH"
)

// Config holds the settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Catalog       CatalogConfig      `yaml:"catalog"`
	Database      DatabaseConfig     `yaml:"database"`
	Google        GoogleConfig       `yaml:"google"`
	Calendar      CalendarConfig     `yaml:"calendar"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Accounts      []AccountConfig    `yaml:"accounts"`
	Overrides     map[string]string  `yaml:"overrides"`
}

// LoggingConfig controls the slog handler level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CatalogConfig describes where the catalog document lives and how
// records are matched.
type CatalogConfig struct {
	Path         string `yaml:"path"`
	TemplatePath string `yaml:"templatePath"`
	IdentityMode string `yaml:"identityMode"`
}

// DatabaseConfig describes the optional Postgres archive. An empty DSN
// disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GoogleConfig carries OAuth client credentials shared by the Gmail and
// Calendar adapters; per-account token files live under CredentialsDir.
type GoogleConfig struct {
	ClientID       string `yaml:"clientID"`
	ClientSecret   string `yaml:"clientSecret"`
	CredentialsDir string `yaml:"credentialsDir"`
}

// CalendarConfig controls interview-event lookups.
type CalendarConfig struct {
	Enabled       bool   `yaml:"enabled"`
	TokenFile     string `yaml:"tokenFile"`
	LookaheadDays int    `yaml:"lookaheadDays"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires the run-summary bot.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines when recurring update runs fire.
type SchedulerConfig struct {
	IntervalHours int            `yaml:"intervalHours"`
	Timezone      string         `yaml:"timezone"`
	location      *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// FetchConfig bounds the message-fetch window per run.
type FetchConfig struct {
	WindowDays   int   `yaml:"windowDays"`
	BackfillDays int   `yaml:"backfillDays"`
	MaxResults   int64 `yaml:"maxResults"`
}

// AccountConfig describes a single mailbox to scan. TrustAll marks an
// account whose every message is known to be job-related, which skips
// relevance scoring for its mail.
type AccountConfig struct {
	Email     string `yaml:"email"`
	Provider  string `yaml:"provider"`
	TokenFile string `yaml:"tokenFile"`
	TrustAll  bool   `yaml:"trustAll"`
	Query     string `yaml:"query"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// TrustAllAccounts lists the mailbox addresses flagged as all-job-mail.
func (c Config) TrustAllAccounts() []string {
	var trusted []string
	for _, acct := range c.Accounts {
		if acct.TrustAll {
			trusted = append(trusted, acct.Email)
		}
	}
	return trusted
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(googleClientIDEnv); v != "" {
		c.Google.ClientID = v
	}

	if v := os.Getenv(googleClientSecretEnv); v != "" {
		c.Google.ClientSecret = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(catalogPathEnv); v != "" {
		c.Catalog.Path = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Catalog.Path != "" {
		base.Catalog.Path = override.Catalog.Path
	}
	if override.Catalog.TemplatePath != "" {
		base.Catalog.TemplatePath = override.Catalog.TemplatePath
	}
	if override.Catalog.IdentityMode != "" {
		base.Catalog.IdentityMode = override.Catalog.IdentityMode
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Google.ClientID != "" {
		base.Google.ClientID = override.Google.ClientID
	}
	if override.Google.ClientSecret != "" {
		base.Google.ClientSecret = override.Google.ClientSecret
	}
	if override.Google.CredentialsDir != "" {
		base.Google.CredentialsDir = override.Google.CredentialsDir
	}

	if override.Calendar.Enabled {
		base.Calendar.Enabled = true
	}
	if override.Calendar.TokenFile != "" {
		base.Calendar.TokenFile = override.Calendar.TokenFile
	}
	if override.Calendar.LookaheadDays > 0 {
		base.Calendar.LookaheadDays = override.Calendar.LookaheadDays
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Fetch.WindowDays > 0 {
		base.Fetch.WindowDays = override.Fetch.WindowDays
	}
	if override.Fetch.BackfillDays > 0 {
		base.Fetch.BackfillDays = override.Fetch.BackfillDays
	}
	if override.Fetch.MaxResults > 0 {
		base.Fetch.MaxResults = override.Fetch.MaxResults
	}

	if len(override.Accounts) > 0 {
		base.Accounts = override.Accounts
	}

	if len(override.Overrides) > 0 {
		base.Overrides = override.Overrides
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Catalog: CatalogConfig{
			Path:         "job_applications.html",
			IdentityMode: "company",
		},
		Google:    GoogleConfig{CredentialsDir: "."},
		Calendar:  CalendarConfig{LookaheadDays: 60},
		Scheduler: SchedulerConfig{IntervalHours: 24, Timezone: defaultTimezone, location: tz},
		Fetch:     FetchConfig{WindowDays: 14, BackfillDays: 90, MaxResults: 100},
	}
}
