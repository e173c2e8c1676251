package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saturnines/polar-sync/pkg/auth"
	"github.com/saturnines/polar-sync/pkg/errors"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_MissingKey(t *testing.T) {
	for _, value := range []string{"", "   "} {
		_, err := FromEnv(envMap(map[string]string{APIKeyEnv: value}))
		if !errors.Is(err, auth.ErrMissingCredentials) {
			t.Fatalf("Expected ErrMissingCredentials for %q, got %v", value, err)
		}
		if !strings.Contains(err.Error(), APIKeyEnv) {
			t.Errorf("Error should name the variable, got '%s'", err.Error())
		}
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{APIKeyEnv: "key-1"}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.APIKey != "key-1" {
		t.Errorf("Expected api key 'key-1', got '%s'", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("Expected base url '%s', got '%s'", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.OutputPath != DefaultOutputPath {
		t.Errorf("Expected output path '%s', got '%s'", DefaultOutputPath, cfg.OutputPath)
	}
	if cfg.Category != "Font" || cfg.PaymentProcessor != "stripe" || cfg.ProductLimit != 100 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Expected no timeout by default, got %s", cfg.Timeout)
	}
}

func TestFromEnv_BaseURLOverride(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		APIKeyEnv:  "key-1",
		BaseURLEnv: "https://sandbox-api.polar.sh/v1/",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.BaseURL != "https://sandbox-api.polar.sh/v1" {
		t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.BaseURL)
	}
}

func TestLoader_ParseOverlay(t *testing.T) {
	t.Setenv("SYNC_BUCKET", "storefront-assets")

	yamlContent := `
output_path: dist/products.json
category: Typeface
timeout: 45s
publish:
  bucket: ${SYNC_BUCKET}
  key: catalog/polar-products.json
  region: eu-west-1
`
	cfg := &Config{APIKey: "key-1"}
	if err := NewDefaultLoader().Parse([]byte(yamlContent), cfg); err != nil {
		t.Fatalf("Failed to parse valid config: %v", err)
	}

	if cfg.APIKey != "key-1" {
		t.Errorf("API key must survive the overlay, got '%s'", cfg.APIKey)
	}
	if cfg.OutputPath != "dist/products.json" {
		t.Errorf("Expected output path override, got '%s'", cfg.OutputPath)
	}
	if cfg.Category != "Typeface" {
		t.Errorf("Expected category override, got '%s'", cfg.Category)
	}
	if cfg.PaymentProcessor != DefaultPaymentProcessor {
		t.Errorf("Expected default processor, got '%s'", cfg.PaymentProcessor)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Expected 45s timeout, got %s", cfg.Timeout)
	}
	if cfg.Publish == nil || cfg.Publish.Bucket != "storefront-assets" {
		t.Fatalf("Expected expanded bucket, got %+v", cfg.Publish)
	}
}

func TestLoader_FileCannotSetAPIKey(t *testing.T) {
	cfg := &Config{APIKey: "from-env"}
	if err := NewDefaultLoader().Parse([]byte("api_key: from-file\n"), cfg); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("Expected api key from env, got '%s'", cfg.APIKey)
	}
}

func TestLoader_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected string
	}{
		{"LimitTooLarge", "product_limit: 250\n", "product_limit"},
		{"NegativeLimit", "product_limit: -1\n", "product_limit"},
		{"NegativeTimeout", "timeout: -5s\n", "timeout"},
		{"PublishWithoutBucket", "publish:\n  key: a.json\n", "publish.bucket"},
		{"PublishWithoutKey", "publish:\n  bucket: b\n", "publish.key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIKey: "key-1"}
			err := NewDefaultLoader().Parse([]byte(tt.yaml), cfg)
			if !errors.Is(err, errors.ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error mentioning '%s', got '%s'", tt.expected, err.Error())
			}
		})
	}
}

func TestLoader_InvalidYAML(t *testing.T) {
	err := NewDefaultLoader().Parse([]byte("category: [unclosed"), &Config{APIKey: "k"})
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.yaml")
	if err := os.WriteFile(path, []byte("payment_processor: stripe\nproduct_limit: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{APIKey: "key-1"}
	if err := NewDefaultLoader().Load(path, cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ProductLimit != 20 {
		t.Errorf("Expected product limit 20, got %d", cfg.ProductLimit)
	}

	if err := NewDefaultLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"), cfg); err == nil {
		t.Error("Expected error for missing file")
	}
}
