package epcapi

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Defaults for the Open Data Communities EPC API.
const (
	DefaultBaseURL = "https://epc.opendatacommunities.org/api/v1"
	DefaultTimeout = 60 * time.Second

	// MaxPageSize is the largest page the API serves for one request.
	MaxPageSize = 5000
)

// Environment variables holding API credentials.
const (
	EnvEmail = "EPC_API_EMAIL"
	EnvKey   = "EPC_API_KEY"
)

// ErrMissingCredentials is returned by Validate when the email or API key
// is empty.
var ErrMissingCredentials = errors.New("EPC_API_EMAIL and EPC_API_KEY must be set in environment variables")

// Config is everything the client needs to talk to the API.
type Config struct {
	BaseURL    string
	Email      string
	APIKey     string
	Timeout    time.Duration
	MaxResults int
}

// ConfigFromEnv returns a Config with defaults and credentials read from
// EPC_API_EMAIL and EPC_API_KEY.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Email:      os.Getenv(EnvEmail),
		APIKey:     os.Getenv(EnvKey),
		Timeout:    DefaultTimeout,
		MaxResults: MaxPageSize,
	}
}

// Validate checks that the configuration can be used for requests.
func (c Config) Validate() error {
	if c.Email == "" || c.APIKey == "" {
		return fmt.Errorf("%w\nCopy .env.example to .env and fill in your credentials", ErrMissingCredentials)
	}
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("max results must be >= 0, got %d", c.MaxResults)
	}
	return nil
}

// PageSize is the size parameter sent with each request: MaxResults capped
// at MaxPageSize, or MaxPageSize when MaxResults is 0.
func (c Config) PageSize() int {
	if c.MaxResults <= 0 || c.MaxResults > MaxPageSize {
		return MaxPageSize
	}
	return c.MaxResults
}
