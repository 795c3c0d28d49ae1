package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up in the working
// directory and the user config directory.
const FileName = ".sarif2xccdf.yaml"

// appDir is the subdirectory of the user config directory.
const appDir = "sarif2xccdf"

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	SARIFSchema string
	XCCDFSchema string
	Xmllint     string
	Format      string
	Theme       string
	Jobs        int
	Debug       bool
	Namespace   string
	Status      string
	Target      string

	// Flags to track if they were explicitly set by the user
	JobsSet  bool
	DebugSet bool
}

// ConvertConfig holds the defaults applied by the convert command.
type ConvertConfig struct {
	Namespace string `yaml:"namespace"`
	Status    string `yaml:"status"`
	Target    string `yaml:"target"`
}

// AppConfig represents the contents of .sarif2xccdf.yaml.
type AppConfig struct {
	SARIFSchema string        `yaml:"sarif_schema"`
	XCCDFSchema string        `yaml:"xccdf_schema"`
	Xmllint     string        `yaml:"xmllint"`
	Format      string        `yaml:"format"`
	Theme       string        `yaml:"theme"`
	Jobs        int           `yaml:"jobs"`
	Debug       bool          `yaml:"debug"`
	Convert     ConvertConfig `yaml:"convert"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Constants for default values.
const (
	DefaultFormat = "auto"
	DefaultTheme  = "default"
	DefaultJobs   = 4
)

// Defaults returns the configuration used when no file is present.
func Defaults() *AppConfig {
	return &AppConfig{
		Format: DefaultFormat,
		Theme:  DefaultTheme,
		Jobs:   DefaultJobs,
	}
}

// LoadConfig loads .sarif2xccdf.yaml on top of the defaults. A missing file
// is not an error; an unreadable or malformed one is.
func LoadConfig() (*AppConfig, error) {
	cfg := Defaults()

	configPath := getConfigPath()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	var fromFile AppConfig
	if err := decodeYAML(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	merge(cfg, &fromFile)
	cfg.Path = configPath
	return cfg, nil
}

// decodeYAML rejects keys the configuration does not know about.
func decodeYAML(data []byte, out *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// merge copies the values set in src onto dst.
func merge(dst, src *AppConfig) {
	if src.SARIFSchema != "" {
		dst.SARIFSchema = src.SARIFSchema
	}
	if src.XCCDFSchema != "" {
		dst.XCCDFSchema = src.XCCDFSchema
	}
	if src.Xmllint != "" {
		dst.Xmllint = src.Xmllint
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Jobs != 0 {
		dst.Jobs = src.Jobs
	}
	dst.Debug = src.Debug
	if src.Convert.Namespace != "" {
		dst.Convert.Namespace = src.Convert.Namespace
	}
	if src.Convert.Status != "" {
		dst.Convert.Status = src.Convert.Status
	}
	if src.Convert.Target != "" {
		dst.Convert.Target = src.Convert.Target
	}
}

// getConfigPath tries to find the configuration file.
// It checks the local directory first, then the user config directory.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	// UserConfigDir returning "/" means HOME is unset or unusable.
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, appDir, FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
