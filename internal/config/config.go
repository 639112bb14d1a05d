package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/a11ylab/a11ydemo/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "a11ydemo.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "A11YDEMO_"

	// DefaultPort is the default HTTP port.
	DefaultPort = 8080

	// DefaultHost is the default bind host.
	DefaultHost = "localhost"

	// DefaultMaxSessions is the default limit of concurrent live sessions.
	DefaultMaxSessions = 1000
)

// Duration is a time.Duration read from a Go duration string ("100ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is used both for
// JSON strings and for environment variables.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.New(errors.CodeInvalidDuration).
			WithDetailf("%q is not a duration", string(text))
	}
	*d = Duration(parsed)
	return nil
}

// Config is the complete server configuration.
type Config struct {
	// Server contains HTTP and live session settings.
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`

	// Announce contains live region and notification timing.
	Announce AnnounceConfig `json:"announce" envPrefix:"ANNOUNCE_"`

	// UI contains page chrome and demo timing.
	UI UIConfig `json:"ui" envPrefix:"UI_"`

	// Log contains logging settings.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// Telemetry contains OpenTelemetry export settings.
	Telemetry TelemetryConfig `json:"telemetry" envPrefix:"TELEMETRY_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server and session settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" env:"HOST"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" env:"PORT"`

	// MaxSessions limits concurrent live sessions. Upgrades beyond the
	// limit are refused.
	MaxSessions int `json:"maxSessions,omitempty" env:"MAX_SESSIONS"`

	// MaxEventQueue is the per-session buffer of unprocessed client events.
	MaxEventQueue int `json:"maxEventQueue,omitempty" env:"MAX_EVENT_QUEUE"`

	// IdleTimeout closes sessions without client activity.
	IdleTimeout Duration `json:"idleTimeout,omitempty" env:"IDLE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`

	// ReadHeaderTimeout bounds request header reads.
	ReadHeaderTimeout Duration `json:"readHeaderTimeout,omitempty" env:"READ_HEADER_TIMEOUT"`

	// AllowedOrigins lists extra origins allowed to open live sessions.
	// Same-origin requests are always allowed.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" env:"ALLOWED_ORIGINS" envSeparator:","`

	// Metrics exposes /metrics when true.
	Metrics bool `json:"metrics" env:"METRICS"`
}

// AnnounceConfig contains live region settings.
type AnnounceConfig struct {
	// ClearDelay is how long an announcement stays in the live region.
	ClearDelay Duration `json:"clearDelay,omitempty" env:"CLEAR_DELAY"`

	// DismissAfter is the notification lifetime.
	DismissAfter Duration `json:"dismissAfter,omitempty" env:"DISMISS_AFTER"`
}

// UIConfig contains page chrome and demo timing.
type UIConfig struct {
	// Brand is the banner title and document title suffix.
	Brand string `json:"brand,omitempty" env:"BRAND"`

	// Footer is the footer text.
	Footer string `json:"footer,omitempty" env:"FOOTER"`

	// Lang is the document language.
	Lang string `json:"lang,omitempty" env:"LANG"`

	// AlertDuration is how long form success alerts stay visible.
	AlertDuration Duration `json:"alertDuration,omitempty" env:"ALERT_DURATION"`

	// AsyncDuration is the length of the simulated async operation.
	AsyncDuration Duration `json:"asyncDuration,omitempty" env:"ASYNC_DURATION"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" env:"FORMAT"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	// Enabled turns on span export.
	Enabled bool `json:"enabled" env:"ENABLED"`

	// Endpoint is the OTLP/HTTP collector endpoint (host:port).
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`

	// Insecure disables TLS to the collector.
	Insecure bool `json:"insecure,omitempty" env:"INSECURE"`

	// ServiceName is the service.name resource attribute.
	ServiceName string `json:"serviceName,omitempty" env:"SERVICE_NAME"`

	// SampleRatio is the fraction of traces sampled, 0 to 1.
	SampleRatio float64 `json:"sampleRatio,omitempty" env:"SAMPLE_RATIO"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			MaxSessions:       DefaultMaxSessions,
			MaxEventQueue:     256,
			IdleTimeout:       Duration(10 * time.Minute),
			ShutdownTimeout:   Duration(30 * time.Second),
			ReadHeaderTimeout: Duration(5 * time.Second),
			Metrics:           true,
		},
		Announce: AnnounceConfig{
			ClearDelay:   Duration(100 * time.Millisecond),
			DismissAfter: Duration(5 * time.Second),
		},
		UI: UIConfig{
			Brand:         "Accessibility Demo",
			Footer:        "Built to demonstrate accessible patterns for keyboard and screen reader users.",
			Lang:          "en",
			AlertDuration: Duration(3 * time.Second),
			AsyncDuration: Duration(3 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "a11ydemo",
			SampleRatio: 1,
		},
	}
}

// Load reads configuration from a11ydemo.json in the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields not
// present in the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigFile).
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New(errors.CodeConfigFile).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		if errors.CodeOf(err) != "" {
			return nil, err
		}
		return nil, errors.New(errors.CodeConfigValue).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}
	cfg.configPath = path
	return cfg, nil
}

// LoadOptional loads path when it is set, otherwise a11ydemo.json from
// the working directory if present, otherwise the defaults.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if Exists(".") {
		return Load(".")
	}
	return New(), nil
}

// ApplyEnv overrides fields from A11YDEMO_* environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom overrides fields from the given environment instead of
// the process environment.
func (c *Config) ApplyEnvFrom(environment map[string]string) error {
	return c.applyEnv(env.Options{Prefix: EnvPrefix, Environment: environment})
}

func (c *Config) applyEnv(opts env.Options) error {
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New(errors.CodeConfigValue).
			WithDetail("environment overrides").
			Wrap(err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.CodeConfigValue).WithDetailf(format, args...)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxSessions <= 0 {
		return invalid("server.maxSessions must be positive, got %d", c.Server.MaxSessions)
	}
	if c.Server.MaxEventQueue <= 0 {
		return invalid("server.maxEventQueue must be positive, got %d", c.Server.MaxEventQueue)
	}

	durations := []struct {
		name  string
		value Duration
	}{
		{"server.idleTimeout", c.Server.IdleTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"announce.clearDelay", c.Announce.ClearDelay},
		{"announce.dismissAfter", c.Announce.DismissAfter},
		{"ui.alertDuration", c.UI.AlertDuration},
		{"ui.asyncDuration", c.UI.AsyncDuration},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return errors.New(errors.CodeInvalidDuration).
				WithDetailf("%s must be positive, got %s", d.name, d.value)
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid("log.format must be text or json, got %q", c.Log.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return invalid("telemetry.sampleRatio must be between 0 and 1, got %v", c.Telemetry.SampleRatio)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return invalid("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

// SlogLevel parses the configured log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(c.Server.Port)))
}

// JSON returns the configuration as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
