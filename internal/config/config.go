package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/attrs"
	"github.com/vango-dev/htmlkit/pkg/escape"
	"github.com/vango-dev/htmlkit/pkg/markup"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "htmlkit.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultRegion is the default publish region.
	DefaultRegion = "us-east-1"
)

// Config represents the complete htmlkit.json configuration.
type Config struct {
	// Charset is the output character set of rendered markup.
	Charset string `json:"charset,omitempty"`

	// Attributes controls attribute rendering.
	Attributes AttributesConfig `json:"attributes,omitempty"`

	// VoidElements replaces the default void element list when set.
	VoidElements []string `json:"voidElements"`

	// Minify minifies rendered documents.
	Minify bool `json:"minify,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Publish contains object storage configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AttributesConfig contains attribute rendering tables.
type AttributesConfig struct {
	// Order lists attributes rendered first, in this order.
	Order []string `json:"order"`

	// DataPrefixes lists attributes whose map values expand to name-key
	// attributes.
	DataPrefixes []string `json:"dataPrefixes"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// PublishConfig contains S3 publishing settings.
type PublishConfig struct {
	// Bucket is the target bucket. Publishing is disabled when empty.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to object keys.
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Charset: escape.DefaultCharset,
		Attributes: AttributesConfig{
			Order:        attrs.DefaultOrder(),
			DataPrefixes: attrs.DefaultDataPrefixes(),
		},
		VoidElements: markup.DefaultVoidElements(),
		Preview: PreviewConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Publish: PublishConfig{
			Region: DefaultRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for htmlkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("H014").
				WithDetail("No " + ConfigFileName + " found at " + path)
		}
		return nil, errors.New("H010").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("H010").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("H010").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("H010").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields. Explicitly empty
// lists such as `"order": []` are kept.
func (c *Config) applyDefaults() {
	if c.Charset == "" {
		c.Charset = escape.DefaultCharset
	}
	if c.Attributes.Order == nil {
		c.Attributes.Order = attrs.DefaultOrder()
	}
	if c.Attributes.DataPrefixes == nil {
		c.Attributes.DataPrefixes = attrs.DefaultDataPrefixes()
	}
	if c.VoidElements == nil {
		c.VoidElements = markup.DefaultVoidElements()
	}

	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}

	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := escape.NewEncoder(c.Charset); err != nil {
		return errors.New("H011").
			WithDetail("Unknown charset " + strconv.Quote(c.Charset)).
			WithSuggestion("Use a WHATWG label such as utf-8 or windows-1252").
			Wrap(err)
	}

	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return errors.New("H012").
			WithDetail("Port " + strconv.Itoa(c.Preview.Port) + " is out of range")
	}

	groups := []struct {
		field string
		names []string
	}{
		{"attributes.order", c.Attributes.Order},
		{"attributes.dataPrefixes", c.Attributes.DataPrefixes},
		{"voidElements", c.VoidElements},
	}
	for _, g := range groups {
		seen := make(map[string]bool, len(g.names))
		for _, name := range g.names {
			if !validName(name) {
				return errors.New("H013").
					WithDetail("Invalid name " + strconv.Quote(name) + " in " + g.field)
			}
			if seen[name] {
				return errors.New("H013").
					WithDetail("Duplicate name " + strconv.Quote(name) + " in " + g.field)
			}
			seen[name] = true
		}
	}

	for _, name := range c.VoidElements {
		if !markup.IsKnownName(name) {
			return errors.New("H013").
				WithDetail("Unknown void element " + strconv.Quote(name)).
				WithSuggestion("Void elements must be standard HTML elements such as br or img")
		}
	}

	return nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\n\r\f\"'=<>/")
}

// PreviewAddress returns the listen address of the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// Builder creates a markup builder from the configuration. logger may be
// nil. Documents are decoded to UTF-8, so the builder always encodes UTF-8;
// Charset only applies when the finished markup is transcoded.
func (c *Config) Builder(logger *slog.Logger) *markup.Builder {
	return markup.NewBuilder(markup.Config{
		Attrs: attrs.Config{
			Order:        c.Attributes.Order,
			DataPrefixes: c.Attributes.DataPrefixes,
			Logger:       logger,
		},
		VoidElements: c.VoidElements,
		Logger:       logger,
	})
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// htmlkit.json.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("H014").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// Resolve loads the configuration for a command: path when given,
// otherwise the nearest htmlkit.json above dir, otherwise the defaults.
// The result is validated.
func Resolve(path, dir string) (*Config, error) {
	var cfg *Config
	switch {
	case path != "":
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		root, err := FindProjectRoot(dir)
		if err != nil {
			cfg = New()
			break
		}
		loaded, err := Load(root)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
