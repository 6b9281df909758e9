package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// Validate checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func (c *Config) Validate() error {
	var errs []error

	if c.BasePath == "" {
		errs = append(errs, &ValidationError{
			Field:   "base_path",
			Value:   c.BasePath,
			Message: "must not be empty",
		})
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"fresh_for", c.FreshFor},
		{"command_timeout", c.CommandTimeout},
		{"bootstrap_timeout", c.BootstrapTimeout},
	} {
		if field.value == "" {
			continue
		}
		if d, err := time.ParseDuration(field.value); err != nil || d < 0 {
			errs = append(errs, &ValidationError{
				Field:   field.name,
				Value:   field.value,
				Message: "must be a non-negative duration",
			})
		}
	}

	seen := make(map[string]bool)
	prefixes := make(map[string]bool)
	for i, a := range c.Artifacts {
		field := fmt.Sprintf("artifacts[%d]", i)

		if a.Name == "" {
			errs = append(errs, &ValidationError{
				Field:   field + ".name",
				Value:   a.Name,
				Message: "must not be empty",
			})
			continue
		}
		if seen[a.Name] {
			errs = append(errs, &ValidationError{
				Field:   field + ".name",
				Value:   a.Name,
				Message: "duplicate artifact name",
			})
		}
		seen[a.Name] = true

		prefix := a.DestPrefix()
		if strings.ContainsAny(prefix, "/\\") ||
			strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
			errs = append(errs, &ValidationError{
				Field:   field + ".prefix",
				Value:   prefix,
				Message: "must not contain path separators or whitespace",
			})
		}
		if prefixes[prefix] {
			errs = append(errs, &ValidationError{
				Field:   field + ".prefix",
				Value:   prefix,
				Message: "duplicate destination prefix",
			})
		}
		prefixes[prefix] = true

		// A bare-name repo needs a base URL to resolve against.
		repo := a.Repo
		if repo == "" {
			repo = a.Name
		}
		if !strings.Contains(repo, "://") && !strings.HasPrefix(repo, "git@") &&
			!strings.HasPrefix(repo, "/") && c.GitBaseURL == "" {
			errs = append(errs, &ValidationError{
				Field:   field + ".repo",
				Value:   repo,
				Message: "bare repo name requires git_base_url",
			})
		}
	}

	return errors.Join(errs...)
}
