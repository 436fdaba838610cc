package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"sort"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/colonyops/lintlens/internal/core/styles"
	"github.com/hay-kot/criterio"
)

// ValidateDeep performs comprehensive validation of the configuration including
// URL syntax, theme names, language globs, and file accessibility. The configPath
// argument specifies the config file location to validate (empty string skips
// config file check). This calls Validate() first for basic structural
// validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("api.base_url", c.API.BaseURL, isHTTPURL),
		criterio.Run("viewer.theme", c.Viewer.Theme, isKnownTheme),
		c.validateLanguages(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isKnownTheme(name string) error {
	if !slices.Contains(styles.ThemeNames(), name) {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

// validateLanguages checks that every override pattern is a valid glob and
// names a language the highlighter knows.
func (c *Config) validateLanguages() error {
	patterns := make([]string, 0, len(c.Languages))
	for p := range c.Languages {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	var errs criterio.FieldErrorsBuilder
	for _, pattern := range patterns {
		field := fmt.Sprintf("languages[%s]", pattern)
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(field, fmt.Errorf("invalid glob pattern"))
			continue
		}
		if lang := c.Languages[pattern]; lexers.Get(lang) == nil {
			errs = errs.Append(field, fmt.Errorf("unknown language %q", lang))
		}
	}
	return errs.ToError()
}
