package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable carrying the bot token. The token never lives in the
// config file.
const EnvBotToken = "BOT_TOKEN"

// Default values
const (
	DefaultEditCooldown     = 0.5 // seconds between status message edits
	DefaultSessionsFile     = "sessions.db"
	DefaultUsersFile        = "users.db"
	DefaultDownloadDir      = "downloads"
	DefaultMaxParallel      = 2
	DefaultThumbnailTimeout = 10.0 // seconds
)

// Limits for validation
const (
	MinParallel = 1
	MaxParallel = 10
)

// DefaultAudioFormats is the configuration-defined list of audio output
// codecs offered for music links. The first entry is also the codec used by
// the plain audio-only button on video prompts.
var DefaultAudioFormats = []string{"opus", "mp3", "m4a"}

// Config holds the runtime configuration of the bot.
type Config struct {
	EditCooldown         float64  `toml:"edit_cooldown"`      // seconds, float
	SessionsFile         string   `toml:"sessions_file"`      // session table database
	UsersFile            string   `toml:"users_file"`         // user registry database
	DownloadDir          string   `toml:"download_dir"`       // transient transfer artifacts
	CookiesFile          string   `toml:"cookies_file"`       // optional engine credentials
	MaxParallelDownloads int      `toml:"max_parallel_downloads"`
	ThumbnailTimeout     float64  `toml:"thumbnail_timeout"` // seconds
	AudioFormats         []string `toml:"audio_formats"`

	// BotToken is read from the environment, never from the file.
	BotToken string `toml:"-"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		EditCooldown:         DefaultEditCooldown,
		SessionsFile:         DefaultSessionsFile,
		UsersFile:            DefaultUsersFile,
		DownloadDir:          DefaultDownloadDir,
		MaxParallelDownloads: DefaultMaxParallel,
		ThumbnailTimeout:     DefaultThumbnailTimeout,
		AudioFormats:         append([]string(nil), DefaultAudioFormats...),
	}
}

// Load reads the TOML configuration at path and merges it over defaults. A
// missing file is not an error: defaults are returned. The bot token is taken
// from the environment in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.BotToken = os.Getenv(EnvBotToken)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values and normalizes out-of-range ones where a
// safe default exists.
func (c *Config) Validate() error {
	if c.EditCooldown < 0 {
		return fmt.Errorf("edit_cooldown must not be negative, got %v", c.EditCooldown)
	}
	if c.SessionsFile == "" {
		return errors.New("sessions_file must not be empty")
	}
	if c.UsersFile == "" {
		return errors.New("users_file must not be empty")
	}
	if c.DownloadDir == "" {
		return errors.New("download_dir must not be empty")
	}
	if c.MaxParallelDownloads < MinParallel {
		c.MaxParallelDownloads = MinParallel
	}
	if c.MaxParallelDownloads > MaxParallel {
		c.MaxParallelDownloads = MaxParallel
	}
	if c.ThumbnailTimeout <= 0 {
		c.ThumbnailTimeout = DefaultThumbnailTimeout
	}
	if len(c.AudioFormats) == 0 {
		c.AudioFormats = append([]string(nil), DefaultAudioFormats...)
	}
	return nil
}

// RequireToken fails when no bot token is present in the environment.
func (c *Config) RequireToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("%s is not set", EnvBotToken)
	}
	return nil
}

// EditCooldownDuration returns the edit cooldown as a time.Duration.
func (c *Config) EditCooldownDuration() time.Duration {
	return time.Duration(c.EditCooldown * float64(time.Second))
}

// ThumbnailTimeoutDuration returns the thumbnail fetch timeout as a
// time.Duration.
func (c *Config) ThumbnailTimeoutDuration() time.Duration {
	return time.Duration(c.ThumbnailTimeout * float64(time.Second))
}
