package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "SARIF2XCCDF_"

// Sources of a resolved value, reported for debugging.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceFile    = "file"
	SourceDefault = "default"
)

// Accepted values for the output settings.
var (
	Formats = []string{"auto", "terminal", "llm", "json"}
	Themes  = []string{"default", "orca", "mono"}
)

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	// Validation engines
	SARIFSchema string
	XCCDFSchema string
	Xmllint     string

	// Presentation
	Format string
	Theme  string
	Jobs   int
	Debug  bool

	Convert ConvertConfig

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string

	// Resolution metadata (for debugging)
	FormatSource string
	ThemeSource  string
	JobsSource   string
	DebugSource  string
}

// ResolveConfig resolves configuration from all sources.
//
// Priority order (highest to lowest):
//  1. CLI flags
//  2. SARIF2XCCDF_* environment variables (NO_COLOR selects the mono theme)
//  3. .sarif2xccdf.yaml
//  4. Defaults
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	appCfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	fileSource := SourceFile
	if appCfg.Path == "" {
		fileSource = SourceDefault
	}

	resolved := &ResolvedConfig{
		Format:       appCfg.Format,
		Theme:        appCfg.Theme,
		Jobs:         appCfg.Jobs,
		Debug:        appCfg.Debug,
		ConfigFile:   appCfg.Path,
		FormatSource: fileSource,
		ThemeSource:  fileSource,
		JobsSource:   fileSource,
		DebugSource:  fileSource,
	}

	resolved.SARIFSchema = pickString(cliFlags.SARIFSchema, "SARIF_SCHEMA", appCfg.SARIFSchema, nil)
	resolved.XCCDFSchema = pickString(cliFlags.XCCDFSchema, "XCCDF_SCHEMA", appCfg.XCCDFSchema, nil)
	resolved.Xmllint = pickString(cliFlags.Xmllint, "XMLLINT", appCfg.Xmllint, nil)
	resolved.Format = pickString(cliFlags.Format, "FORMAT", resolved.Format, &resolved.FormatSource)
	resolved.Convert.Namespace = pickString(cliFlags.Namespace, "NAMESPACE", appCfg.Convert.Namespace, nil)
	resolved.Convert.Status = pickString(cliFlags.Status, "STATUS", appCfg.Convert.Status, nil)
	resolved.Convert.Target = pickString(cliFlags.Target, "TARGET", appCfg.Convert.Target, nil)

	switch {
	case cliFlags.Theme != "":
		resolved.Theme = cliFlags.Theme
		resolved.ThemeSource = SourceCLI
	case os.Getenv(EnvPrefix+"THEME") != "":
		resolved.Theme = os.Getenv(EnvPrefix + "THEME")
		resolved.ThemeSource = SourceEnv
	case os.Getenv("NO_COLOR") != "":
		resolved.Theme = "mono"
		resolved.ThemeSource = SourceEnv
	}

	if cliFlags.JobsSet {
		resolved.Jobs = cliFlags.Jobs
		resolved.JobsSource = SourceCLI
	} else if v := os.Getenv(EnvPrefix + "JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: %sJOBS: %w", EnvPrefix, err)
		}
		resolved.Jobs = n
		resolved.JobsSource = SourceEnv
	}

	if cliFlags.DebugSet {
		resolved.Debug = cliFlags.Debug
		resolved.DebugSource = SourceCLI
	} else if envDebug := getEnvBool(EnvPrefix + "DEBUG"); envDebug != nil {
		resolved.Debug = *envDebug
		resolved.DebugSource = SourceEnv
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return resolved, nil
}

// pickString returns the flag value, else the environment value, else the
// fallback, and records where it came from when source is non-nil.
func pickString(flag, envKey, fallback string, source *string) string {
	if flag != "" {
		if source != nil {
			*source = SourceCLI
		}
		return flag
	}
	if v := os.Getenv(EnvPrefix + envKey); v != "" {
		if source != nil {
			*source = SourceEnv
		}
		return v
	}
	return fallback
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	if !oneOf(cfg.Format, Formats) {
		return fmt.Errorf("invalid format value: %s (must be: %s)", cfg.Format, strings.Join(Formats, ", "))
	}
	if !oneOf(cfg.Theme, Themes) {
		return fmt.Errorf("invalid theme value: %s (must be: %s)", cfg.Theme, strings.Join(Themes, ", "))
	}
	if cfg.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got: %d", cfg.Jobs)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
