package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/kozaktomas/physiognomy/internal/constants"
)

type Config struct {
	Web     WebConfig
	Catalog CatalogConfig
	Log     LogConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Overlay OverlayConfig
}

type WebConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // extra CORS origins; localhost is always allowed
}

type CatalogConfig struct {
	Path   string // YAML rule catalog; empty uses the embedded default
	Strict bool   // reject rules that reference unknown metrics
}

type LogConfig struct {
	Level string
	File  string // rotating log file, optional
	Env   string // APP_ENV
}

type GeminiConfig struct {
	APIKey string
	Model  string // defaults to gemini-2.5-flash
}

type OpenAIConfig struct {
	Token string
	Model string // defaults to gpt-4.1-mini
}

type OverlayConfig struct {
	MaxSize int // longest edge of rendered overlays; 0 keeps the original size
}

// envInt reads an environment variable and parses it as a non-negative integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean.
// Returns the default value if the env var is unset or not a valid boolean.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// envString returns the environment variable or the default when unset.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma-separated environment variable, dropping empty items.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() *Config {
	return &Config{
		Web: WebConfig{
			Host:           envString("WEB_HOST", constants.DefaultWebHost),
			Port:           envInt("WEB_PORT", constants.DefaultWebPort),
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Catalog: CatalogConfig{
			Path:   os.Getenv("CATALOG_PATH"),
			Strict: envBool("CATALOG_STRICT", false),
		},
		Log: LogConfig{
			Level: envString("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
			Env:   os.Getenv("APP_ENV"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  envString("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
			Model: envString("OPENAI_MODEL", "gpt-4.1-mini"),
		},
		Overlay: OverlayConfig{
			MaxSize: envInt("OVERLAY_MAX_SIZE", constants.DefaultOverlayMaxSize),
		},
	}
}

// InterpretProviders lists the configured interpretation providers in
// preference order.
func (c *Config) InterpretProviders() []string {
	var out []string
	if c.Gemini.APIKey != "" {
		out = append(out, "gemini")
	}
	if c.OpenAI.Token != "" {
		out = append(out, "openai")
	}
	return out
}
