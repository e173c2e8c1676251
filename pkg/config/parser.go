package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/polar-sync/pkg/auth"
	"github.com/saturnines/polar-sync/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// DefaultValueSetter fills in unset fields
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// FromEnv is the credential guard. It runs before anything touches the
// network and fails with auth.ErrMissingCredentials when the key is unset.
func FromEnv(getenv func(string) string) (*Config, error) {
	key := strings.TrimSpace(getenv(APIKeyEnv))
	if key == "" {
		return nil, errors.WrapError(auth.ErrMissingCredentials, errors.ErrConfiguration, APIKeyEnv+" environment variable is required")
	}

	cfg := &Config{APIKey: key, BaseURL: getenv(BaseURLEnv)}
	(&Defaults{}).SetDefaults(cfg)
	return cfg, nil
}

// Loader overlays a YAML file onto a Config.
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// Load reads path and overlays it onto cfg
func (l *Loader) Load(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data, cfg)
}

// Parse overlays yaml onto cfg. Keys absent from the document keep their
// current value and the API key is never taken from the file.
func (l *Loader) Parse(data []byte, cfg *Config) error {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	apiKey := cfg.APIKey
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}
	cfg.APIKey = apiKey

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(cfg)
	}

	return l.Validate(cfg)
}

// Validate runs every configured validator and joins their findings.
func (l *Loader) Validate(cfg *Config) error {
	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(cfg)...)
	}

	if len(allErrors) > 0 {
		return errors.WrapError(fmt.Errorf("%v", allErrors), errors.ErrValidation, "invalid configuration")
	}
	return nil
}

// Defaults implements DefaultValueSetter for Config
type Defaults struct{}

// SetDefaults sets default values for Config
func (d *Defaults) SetDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Category == "" {
		cfg.Category = DefaultCategory
	}
	if cfg.PaymentProcessor == "" {
		cfg.PaymentProcessor = DefaultPaymentProcessor
	}
	if cfg.ProductLimit == 0 {
		cfg.ProductLimit = DefaultProductLimit
	}
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.APIKey == "" {
		errs = append(errs, ValidationError{Field: "api_key", Message: "is required"})
	}
	if cfg.BaseURL == "" {
		errs = append(errs, ValidationError{Field: "base_url", Message: "is required"})
	}
	if cfg.OutputPath == "" {
		errs = append(errs, ValidationError{Field: "output_path", Message: "is required"})
	}
	if cfg.PaymentProcessor == "" {
		errs = append(errs, ValidationError{Field: "payment_processor", Message: "is required"})
	}

	return errs
}

// LimitValidator keeps the page size and timeout in range
type LimitValidator struct{}

// Validate checks product_limit and timeout. The API caps a page at 100.
func (v *LimitValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.ProductLimit < 1 || cfg.ProductLimit > 100 {
		errs = append(errs, ValidationError{Field: "product_limit", Message: "must be between 1 and 100"})
	}
	if cfg.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Message: "must not be negative"})
	}

	return errs
}

// PublishValidator checks the optional publish block
type PublishValidator struct{}

// Validate checks that bucket and key are set when publishing is configured
func (v *PublishValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Publish == nil {
		return errs
	}
	if cfg.Publish.Bucket == "" {
		errs = append(errs, ValidationError{Field: "publish.bucket", Message: "is required for publishing"})
	}
	if cfg.Publish.Key == "" {
		errs = append(errs, ValidationError{Field: "publish.key", Message: "is required for publishing"})
	}

	return errs
}

// NewDefaultLoader wires the expander, defaults and every validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&Defaults{},
		&RequiredFieldValidator{},
		&LimitValidator{},
		&PublishValidator{},
	)
}
