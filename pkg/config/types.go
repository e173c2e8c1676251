package config

import "time"

// Environment variables read at startup.
const (
	APIKeyEnv  = "POLAR_API_KEY"
	BaseURLEnv = "POLAR_API_URL"
)

// Defaults used when neither the environment nor the config file set a value.
const (
	DefaultBaseURL          = "https://api.polar.sh/v1"
	DefaultOutputPath       = "products/polar-products.json"
	DefaultCategory         = "Font"
	DefaultPaymentProcessor = "stripe"
	DefaultProductLimit     = 100
)

// Config is built once in main and handed to every component.
type Config struct {
	APIKey           string        `yaml:"-"`                           // Required, only ever read from the environment
	BaseURL          string        `yaml:"base_url,omitempty"`          // API root, no trailing slash
	OutputPath       string        `yaml:"output_path,omitempty"`       // JSON artifact, overwritten every run
	Category         string        `yaml:"category,omitempty"`          // Label stamped on every record
	PaymentProcessor string        `yaml:"payment_processor,omitempty"` // Used when creating checkout links
	ProductLimit     int           `yaml:"product_limit,omitempty"`     // Single page size, no pagination
	Timeout          time.Duration `yaml:"timeout,omitempty"`           // Zero means no client timeout
	Publish          *Publish      `yaml:"publish,omitempty"`           // Optional S3 copy of the artifact
}

// Publish describes where the artifact is copied after the local write.
type Publish struct {
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
	Region string `yaml:"region,omitempty"`
}
