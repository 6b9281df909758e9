package config

import "os"

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "SRCUP_BASE_PATH",
		apply: func(c *Config, v string) {
			c.BasePath = v
		},
	},
	{
		envVar: "SRCUP_GIT_BASE_URL",
		apply: func(c *Config, v string) {
			c.GitBaseURL = v
		},
	},
	{
		envVar: "SRCUP_FRESH_FOR",
		apply: func(c *Config, v string) {
			c.FreshFor = v
		},
	},
	{
		envVar: "SRCUP_COMMAND_TIMEOUT",
		apply: func(c *Config, v string) {
			c.CommandTimeout = v
		},
	},
	{
		envVar: "SRCUP_DISABLE_LOCK",
		apply: func(c *Config, v string) {
			c.DisableLock = v == "1" || v == "true"
		},
	},
	{
		envVar: "SRCUP_REGISTRY_PATH",
		apply: func(c *Config, v string) {
			c.RegistryPath = v
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
