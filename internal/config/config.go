package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "HESTIA"

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the listener configuration.
	Enrichment EnrichmentConfig `yaml:"enrichment"` // Enrichment holds the upstream lookups configuration.
}

// HTTPConfig struct holds the configuration of the public HTTP listener.
type HTTPConfig struct {
	Port              int           `yaml:"port"`                // Port is the TCP port the API listens on.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"` // ReadHeaderTimeout bounds reading request headers.
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`    // ShutdownTimeout bounds the graceful shutdown.
}

// EnrichmentConfig struct holds the configuration of the best-effort upstream lookups.
type EnrichmentConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Timeout bounds both lookups of a single create request.
	Picture PictureConfig `yaml:"picture"`
	Quote   QuoteConfig   `yaml:"quote"`
}

// PictureConfig struct holds the image listing service settings.
type PictureConfig struct {
	BaseURL   string `yaml:"base_url"`   // BaseURL of the listing service in format `https://example.com`
	MaxPage   int    `yaml:"max_page"`   // MaxPage is the last page that still returns a result.
	ImageSize int    `yaml:"image_size"` // ImageSize is the side of the square picture in pixels.
}

// QuoteConfig struct holds the quote-of-the-day service settings.
type QuoteConfig struct {
	URL string `yaml:"url"` // URL is the full address of the quote endpoint.
}

// MustLoad loads the configuration from the optional YAML file pointed to by
// CONFIG_PATH and from HESTIA_* environment variables, which take precedence.
func MustLoad() *Config {
	vpr := viper.New()

	setDefaults(vpr)

	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	return &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Port:              vpr.GetInt("http.port"),
			ReadHeaderTimeout: mustDuration(vpr, "http.read_header_timeout"),
			ShutdownTimeout:   mustDuration(vpr, "http.shutdown_timeout"),
		},
		Enrichment: EnrichmentConfig{
			Timeout: mustDuration(vpr, "enrichment.timeout"),
			Picture: PictureConfig{
				BaseURL:   strings.TrimRight(vpr.GetString("enrichment.picture.base_url"), "/"),
				MaxPage:   vpr.GetInt("enrichment.picture.max_page"),
				ImageSize: vpr.GetInt("enrichment.picture.image_size"),
			},
			Quote: QuoteConfig{
				URL: vpr.GetString("enrichment.quote.url"),
			},
		},
	}
}

func setDefaults(vpr *viper.Viper) {
	defPort := 8080
	defMaxPage := 993
	defImageSize := 450

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.port", defPort)
	vpr.SetDefault("http.read_header_timeout", "5s")
	vpr.SetDefault("http.shutdown_timeout", "10s")
	vpr.SetDefault("enrichment.timeout", "5s")
	vpr.SetDefault("enrichment.picture.base_url", "https://picsum.photos")
	vpr.SetDefault("enrichment.picture.max_page", defMaxPage)
	vpr.SetDefault("enrichment.picture.image_size", defImageSize)
	vpr.SetDefault("enrichment.quote.url", "https://quotes.rest/qod")
}

// mustDuration reads key as a string so that malformed values fail loudly
// instead of silently turning into zero. Only positive durations are accepted.
func mustDuration(vpr *viper.Viper, key string) time.Duration {
	value, err := time.ParseDuration(vpr.GetString(key))
	if err != nil || value <= 0 {
		panic("failed to parse " + key + " from configuration")
	}

	return value
}
