package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"WEB_HOST", "WEB_PORT", "WEB_ALLOWED_ORIGINS", "CATALOG_PATH", "CATALOG_STRICT",
		"LOG_LEVEL", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_TOKEN", "OPENAI_MODEL", "OVERLAY_MAX_SIZE",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("expected default host 127.0.0.1, got '%s'", cfg.Web.Host)
	}
	if cfg.Web.Port != 6677 {
		t.Errorf("expected default port 6677, got %d", cfg.Web.Port)
	}
	if len(cfg.Web.AllowedOrigins) != 0 {
		t.Errorf("expected no extra origins, got %v", cfg.Web.AllowedOrigins)
	}
	if cfg.Catalog.Path != "" || cfg.Catalog.Strict {
		t.Errorf("expected embedded lenient catalog, got %+v", cfg.Catalog)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info, got '%s'", cfg.Log.Level)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("expected default gemini model, got '%s'", cfg.Gemini.Model)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("expected default openai model, got '%s'", cfg.OpenAI.Model)
	}
	if cfg.Overlay.MaxSize != 1920 {
		t.Errorf("expected overlay max size 1920, got %d", cfg.Overlay.MaxSize)
	}
}

func TestLoad_WebConfig(t *testing.T) {
	t.Setenv("WEB_HOST", "0.0.0.0")
	t.Setenv("WEB_PORT", "8080")
	t.Setenv("WEB_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg := Load()

	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got '%s'", cfg.Web.Host)
	}
	if cfg.Web.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Web.Port)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Web.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.Web.AllowedOrigins)
	}
	for i := range want {
		if cfg.Web.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected '%s', got '%s'", i, want[i], cfg.Web.AllowedOrigins[i])
		}
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric", "invalid"},
		{"negative", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WEB_PORT", tt.value)

			cfg := Load()

			if cfg.Web.Port != 6677 {
				t.Errorf("expected default port 6677 for %q, got %d", tt.value, cfg.Web.Port)
			}
		})
	}
}

func TestLoad_ZeroOverlayMaxSize(t *testing.T) {
	t.Setenv("OVERLAY_MAX_SIZE", "0")

	cfg := Load()

	if cfg.Overlay.MaxSize != 0 {
		t.Errorf("expected overlay max size 0 to disable scaling, got %d", cfg.Overlay.MaxSize)
	}
}

func TestLoad_CatalogConfig(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"yes", false}, // not a strconv bool, keeps default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CATALOG_PATH", "/etc/physiognomy/rules.yaml")
			t.Setenv("CATALOG_STRICT", tt.value)

			cfg := Load()

			if cfg.Catalog.Path != "/etc/physiognomy/rules.yaml" {
				t.Errorf("expected catalog path, got '%s'", cfg.Catalog.Path)
			}
			if cfg.Catalog.Strict != tt.want {
				t.Errorf("CATALOG_STRICT=%s: expected %v, got %v", tt.value, tt.want, cfg.Catalog.Strict)
			}
		})
	}
}

func TestLoad_LogConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/physiognomy.log")
	t.Setenv("APP_ENV", "test")

	cfg := Load()

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got '%s'", cfg.Log.Level)
	}
	if cfg.Log.File != "/tmp/physiognomy.log" {
		t.Errorf("expected log file, got '%s'", cfg.Log.File)
	}
	if cfg.Log.Env != "test" {
		t.Errorf("expected env test, got '%s'", cfg.Log.Env)
	}
}

func TestLoad_ProviderConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-api-key-456")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("OPENAI_TOKEN", "sk-test-token-123")

	cfg := Load()

	if cfg.Gemini.APIKey != "gemini-api-key-456" {
		t.Errorf("expected Gemini API key 'gemini-api-key-456', got '%s'", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("expected Gemini model 'gemini-2.5-pro', got '%s'", cfg.Gemini.Model)
	}
	if cfg.OpenAI.Token != "sk-test-token-123" {
		t.Errorf("expected OpenAI token 'sk-test-token-123', got '%s'", cfg.OpenAI.Token)
	}
}

func TestInterpretProviders(t *testing.T) {
	tests := []struct {
		name   string
		gemini string
		openai string
		want   []string
	}{
		{"none", "", "", nil},
		{"gemini only", "g", "", []string{"gemini"}},
		{"openai only", "", "o", []string{"openai"}},
		{"both prefer gemini", "g", "o", []string{"gemini", "openai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Gemini: GeminiConfig{APIKey: tt.gemini},
				OpenAI: OpenAIConfig{Token: tt.openai},
			}

			got := cfg.InterpretProviders()

			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("provider %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}
