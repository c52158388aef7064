// Package projectconfig provides the ProjectConfig struct and loader for
// .epcstats.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenlandlord/epcstats/internal/epc"
	"github.com/greenlandlord/epcstats/internal/epcapi"
	"github.com/greenlandlord/epcstats/internal/validation"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up by Load.
const FileName = ".epcstats.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultTimeoutSeconds = int(epcapi.DefaultTimeout / time.Second)
	DefaultMaxResults     = epcapi.MaxPageSize
	DefaultFormat         = "text"
)

// APIConfig holds EPC API connection settings. Credentials are never read
// from the project file.
type APIConfig struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	Timeout    int    `yaml:"timeout,omitempty"`
	MaxResults int    `yaml:"max_results,omitempty"`
}

// ReportConfig holds report output defaults.
type ReportConfig struct {
	Format string `yaml:"format,omitempty"`
	Output string `yaml:"output,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .epcstats.yaml.
type ProjectConfig struct {
	API           APIConfig    `yaml:"api,omitempty"`
	Locales       []epc.Locale `yaml:"locales,omitempty"`
	PropertyTypes []string     `yaml:"property_types,omitempty"`
	Report        ReportConfig `yaml:"report,omitempty"`
}

// SchemaError reports a config file that does not match the schema.
type SchemaError struct {
	Path     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s is invalid:\n  %s", e.Path, strings.Join(e.Problems, "\n  "))
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		API: APIConfig{
			BaseURL:    epcapi.DefaultBaseURL,
			Timeout:    DefaultTimeoutSeconds,
			MaxResults: DefaultMaxResults,
		},
		Locales:       append([]epc.Locale(nil), epc.MajorCities...),
		PropertyTypes: append([]string(nil), epc.PropertyTypes...),
		Report: ReportConfig{
			Format: DefaultFormat,
		},
	}
}

// APIClientConfig converts the API section into a client config. Credentials
// are left empty for the caller to fill.
func (c *ProjectConfig) APIClientConfig() epcapi.Config {
	return epcapi.Config{
		BaseURL:    c.API.BaseURL,
		Timeout:    time.Duration(c.API.Timeout) * time.Second,
		MaxResults: c.API.MaxResults,
	}
}

// Load finds .epcstats.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	path, data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(path, data)
}

// LoadFile reads an explicit config path. Unlike Load, a missing file is an
// error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*ProjectConfig, error) {
	if problems := validation.ValidateConfigBytes(data); len(problems) > 0 {
		return nil, &SchemaError{Path: path, Problems: problems}
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .epcstats.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, []byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range 10 {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return p, data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst. Lists replace the
// defaults wholesale.
func mergeConfig(dst, src *ProjectConfig) {
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.Timeout != 0 {
		dst.API.Timeout = src.API.Timeout
	}
	if src.API.MaxResults != 0 {
		dst.API.MaxResults = src.API.MaxResults
	}

	if len(src.Locales) > 0 {
		dst.Locales = src.Locales
	}
	if len(src.PropertyTypes) > 0 {
		dst.PropertyTypes = src.PropertyTypes
	}

	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}
	if src.Report.Output != "" {
		dst.Report.Output = src.Report.Output
	}
}
