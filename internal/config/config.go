// Package config handles .breachdash.yaml configuration files.
package config

// Config represents the contents of a .breachdash.yaml (or .breachdash.toml) file.
type Config struct {
	Dataset           string       `yaml:"dataset,omitempty" toml:"dataset"`
	OutputFormat      string       `yaml:"output_format,omitempty" toml:"output_format"`
	Primary           string       `yaml:"primary,omitempty" toml:"primary"`
	Years             *YearsConfig `yaml:"years,omitempty" toml:"years"`
	OrganizationTypes []string     `yaml:"organization_types,omitempty" toml:"organization_types"`
	Methods           []string     `yaml:"methods,omitempty" toml:"methods"`
	Columns           []string     `yaml:"columns,omitempty" toml:"columns"`
	Serve             ServeConfig  `yaml:"serve,omitempty" toml:"serve"`
	LLM               LLMConfig    `yaml:"llm,omitempty" toml:"llm"`
	Log               LogConfig    `yaml:"log,omitempty" toml:"log"`
}

// YearsConfig narrows the default year range. Zero bounds fall back to the
// dataset's own range.
type YearsConfig struct {
	Min int `yaml:"min,omitempty" toml:"min"`
	Max int `yaml:"max,omitempty" toml:"max"`
}

// ServeConfig holds HTTP dashboard settings.
type ServeConfig struct {
	Addr              string `yaml:"addr,omitempty" toml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout,omitempty" toml:"read_header_timeout"`
}

// LLMConfig holds settings for the natural-language query translator.
type LLMConfig struct {
	Model     string `yaml:"model,omitempty" toml:"model"`
	MaxTokens int    `yaml:"max_tokens,omitempty" toml:"max_tokens"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Format string `yaml:"format,omitempty" toml:"format"`
}

// FileName is the expected config file name in the working directory.
const FileName = ".breachdash.yaml"

// TOMLFileName is read when FileName is absent.
const TOMLFileName = ".breachdash.toml"

// Defaults applied after all config layers are merged.
const (
	DefaultDataset      = "data_breaches.csv"
	DefaultOutputFormat = "markdown"
	DefaultAddr         = "127.0.0.1:8080"
)
