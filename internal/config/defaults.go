package config

const (
	DefaultBasePath         = "~/.srcup/src"
	DefaultFreshFor         = "60s"
	DefaultCommandTimeout   = "10m"
	DefaultBootstrapTimeout = "15m"
)

// DefaultConfig returns a Config with all default values applied. No
// artifacts are configured by default; they come from the config file.
func DefaultConfig() *Config {
	return &Config{
		BasePath:         DefaultBasePath,
		FreshFor:         DefaultFreshFor,
		CommandTimeout:   DefaultCommandTimeout,
		BootstrapTimeout: DefaultBootstrapTimeout,
	}
}
