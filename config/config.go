package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ETHERPAD_ETHERPAD_API_KEY
// for etherpad.api_key. The short forms ETHERPAD_URL and ETHERPAD_API_KEY are
// bound as well.
const EnvPrefix = "ETHERPAD"

// placeholderAPIKey is the value shipped in the example config.
const placeholderAPIKey = "your-api-key-here"

func init() {
	// Report validation failures under the config file's key names.
	validation.ErrorTag = "mapstructure"
}

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("etherpad.url", EnvPrefix+"_URL")
	_ = v.BindEnv("etherpad.api_key", EnvPrefix+"_API_KEY")
	_ = v.BindEnv("etherpad.tls.ca_path", EnvPrefix+"_CA_PATH")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".etherpad"))
		}

		// Check /etc
		v.AddConfigPath("/etc/etherpad/")
	}

	// A missing file is fine when searching; the environment may carry everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Etherpad defaults
	v.SetDefault("etherpad.url", "http://localhost:9001/api")
	v.SetDefault("etherpad.api_key", "")
	v.SetDefault("etherpad.timeout", "30s")
	v.SetDefault("etherpad.tls.ca_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Etherpad),
		validation.Field(&c.Logging),
	)
}

// Validate checks the Etherpad connection settings
func (c EtherpadConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required, validation.By(validBaseURL)),
		validation.Field(&c.APIKey,
			validation.Required.Error("must be set to a valid API key"),
			validation.NotIn(placeholderAPIKey).Error("must be set to a valid API key"),
		),
		validation.Field(&c.Timeout, validation.Min(0).Error("must not be negative")),
	)
}

// Validate checks the logging settings
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("console", "json")),
	)
}

// validBaseURL requires an http(s) URL with a host
func validBaseURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if u.Hostname() == "" {
		return errors.New("must include a host")
	}
	return nil
}
