package config

// Defaults is implemented by config sections that seed default values into the
// config tree before it is decoded.
type Defaults interface {
	Defaults() map[string]any
}

// Validator is implemented by config sections that can reject a decoded value.
type Validator interface {
	Validate() error
}

type Manager interface {
	// Init applies defaults, decodes the config tree and validates it.
	Init() error

	// Config returns the decoded root config. It is nil until Init succeeds.
	Config() *Config

	// String returns the raw value stored under the dotted key, or an empty string.
	String(key string) string

	// Save writes the current config tree back to the config file.
	Save() error

	// ConfigFile returns the path of the loaded config file, if any.
	ConfigFile() string

	// ConfigDir returns the directory relative paths in the config resolve against.
	ConfigDir() string
}

type Config struct {
	Core CoreConfig `mapstructure:"core"`
}
