package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for srcup. It is immutable after creation
// via Load().
type Config struct {
	// BasePath is the directory under which checkouts are materialized.
	// Destinations are named <prefix>_<branch> beneath it.
	BasePath string `yaml:"base_path"`

	// GitBaseURL is the URL prefix used to resolve artifact repos that are
	// given as bare names instead of full URLs.
	GitBaseURL string `yaml:"git_base_url"`

	// FreshFor is how long a checkout counts as current after a fetch
	// (duration string, e.g. "60s").
	FreshFor string `yaml:"fresh_for"`

	// CommandTimeout bounds each git subprocess (duration string).
	CommandTimeout string `yaml:"command_timeout"`

	// BootstrapTimeout bounds the bootstrap script (duration string).
	BootstrapTimeout string `yaml:"bootstrap_timeout"`

	// DisableLock bypasses the advisory lock. Only safe when the caller
	// guarantees single-writer access by other means.
	DisableLock bool `yaml:"disable_lock"`

	// RegistryPath is the reconcile-history database. Empty means
	// <base_path>/registry.db.
	RegistryPath string `yaml:"registry_path"`

	// Artifacts are the named checkouts this tool manages.
	Artifacts []Artifact `yaml:"artifacts"`
}

// Artifact describes one managed checkout: a repository materialized per
// branch under BasePath.
type Artifact struct {
	// Name identifies the artifact on the command line.
	Name string `yaml:"name"`

	// Repo is the repository: a full URL, or a name resolved against
	// GitBaseURL. Empty means Name.
	Repo string `yaml:"repo"`

	// Prefix is the destination directory prefix. Empty means Name.
	Prefix string `yaml:"prefix"`

	// Bootstrap runs the checkout's ./bootstrap script after reconciling.
	Bootstrap bool `yaml:"bootstrap"`
}

// DefaultConfigPath returns the user-wide config location,
// ~/.srcup/config.yaml.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".srcup", "config.yaml")
}

// Load reads configuration from path, falling back to defaults for a missing
// file only when path is the default location. Environment overrides are
// applied after the file, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err) && !explicit:
			// No user config; defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	cfg.BasePath = expandHome(cfg.BasePath)
	cfg.RegistryPath = expandHome(cfg.RegistryPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindArtifact looks up a configured artifact by name.
func (c *Config) FindArtifact(name string) (Artifact, bool) {
	for _, a := range c.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// RepoURL resolves an artifact's repository reference to a full URL.
func (c *Config) RepoURL(a Artifact) string {
	repo := a.Repo
	if repo == "" {
		repo = a.Name
	}
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") ||
		strings.HasPrefix(repo, "/") {
		return repo
	}
	return strings.TrimSuffix(c.GitBaseURL, "/") + "/" + repo
}

// DestPrefix returns the artifact's destination directory prefix.
func (a Artifact) DestPrefix() string {
	if a.Prefix != "" {
		return a.Prefix
	}
	return a.Name
}

// FreshForDuration returns the parsed freshness window.
func (c *Config) FreshForDuration() time.Duration {
	return parseDuration(c.FreshFor, DefaultFreshFor)
}

// CommandTimeoutDuration returns the parsed git subprocess timeout.
func (c *Config) CommandTimeoutDuration() time.Duration {
	return parseDuration(c.CommandTimeout, DefaultCommandTimeout)
}

// BootstrapTimeoutDuration returns the parsed bootstrap timeout.
func (c *Config) BootstrapTimeoutDuration() time.Duration {
	return parseDuration(c.BootstrapTimeout, DefaultBootstrapTimeout)
}

// ResolvedRegistryPath returns the registry database path, defaulting to
// registry.db under the base path.
func (c *Config) ResolvedRegistryPath() string {
	if c.RegistryPath != "" {
		return c.RegistryPath
	}
	return filepath.Join(c.BasePath, "registry.db")
}

// parseDuration parses s, returning fallback for an empty or invalid value.
// Validate rejects invalid values earlier, so the fallback is only a guard.
func parseDuration(s, fallback string) time.Duration {
	if s == "" {
		s = fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
