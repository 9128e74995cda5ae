// Package config defines the csfmt tool configuration and resolves the
// formatting options that apply to a source file.
package config

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter"`
	Runner    RunnerConfig    `yaml:"runner"`
}

// FormatterConfig holds formatter settings.
type FormatterConfig struct {
	// Options are option key/value pairs applied on top of .editorconfig.
	Options map[string]string `yaml:"options"`

	// Strict turns anchor rule violations into errors.
	Strict bool `yaml:"strict"`

	// EditorConfig enables .editorconfig discovery.
	EditorConfig bool `yaml:"editorconfig"`
}

// RunnerConfig holds file discovery and concurrency settings.
type RunnerConfig struct {
	Jobs       int      `yaml:"jobs"`
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			Options:      map[string]string{},
			EditorConfig: true,
		},
		Runner: RunnerConfig{
			Jobs:       0,
			Extensions: []string{".cs"},
			Exclude:    []string{"**/bin/**", "**/obj/**"},
		},
	}
}
