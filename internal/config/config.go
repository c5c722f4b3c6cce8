// Package config provides configuration management for the article extractor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"notecorpus/internal/logger"
)

// Configuration validation errors.
var (
	ErrMissingInputDir     = errors.New("input.dir is required")
	ErrInvalidPattern      = errors.New("input.pattern is not a valid glob")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrMissingArticlesFile = errors.New("output.articles_file is required")
	ErrMissingTitlesFile   = errors.New("output.titles_file is required")
	ErrSameOutputFile      = errors.New("output.articles_file and output.titles_file must differ")
	ErrInvalidIndent       = errors.New("output.indent must be between 1 and 8")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidTitleWidth   = errors.New("logging.title_width must be non-negative")
)

// Default locations, relative to the project root.
const (
	DefaultInputDir     = "dependencies/extract-getnote-articles/dontbesilent 聊赚钱"
	DefaultOutputDir    = "dependencies/extract-getnote-articles"
	DefaultArticlesFile = "dontbesilent-articles.json"
	DefaultTitlesFile   = "dontbesilent-titles.txt"
	DefaultPattern      = "*.md"
)

// Config represents the complete extractor configuration.
type Config struct {
	// Root is the directory relative paths resolve against. It is not read from YAML.
	Root      string          `yaml:"-"`
	Extractor ExtractorConfig `yaml:"extractor"`
}

// ExtractorConfig contains extractor-specific settings.
type ExtractorConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig defines where articles are read from.
type InputConfig struct {
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// OutputConfig defines where artifacts are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	ArticlesFile string `yaml:"articles_file"`
	TitlesFile   string `yaml:"titles_file"`
	Indent       int    `yaml:"indent"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	TitleWidth int    `yaml:"title_width"`
}

// Default returns the built-in configuration rooted at root.
func Default(root string) *Config {
	return &Config{
		Root: root,
		Extractor: ExtractorConfig{
			Input: InputConfig{
				Dir:     DefaultInputDir,
				Pattern: DefaultPattern,
			},
			Output: OutputConfig{
				Dir:          DefaultOutputDir,
				ArticlesFile: DefaultArticlesFile,
				TitlesFile:   DefaultTitlesFile,
				Indent:       2,
			},
			Logging: LoggingConfig{
				Level:      "info",
				Format:     "text",
				TitleWidth: 40,
			},
		},
	}
}

// DefaultRoot returns the parent of the directory holding the running
// executable, so a binary installed under <root>/bin finds <root>/dependencies.
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path, root string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default(root)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	in := c.Extractor.Input
	if in.Dir == "" {
		return ErrMissingInputDir
	}

	if _, err := filepath.Match(in.Pattern, ""); in.Pattern == "" || err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, in.Pattern)
	}

	out := c.Extractor.Output
	if out.Dir == "" {
		return ErrMissingOutputDir
	}

	if out.ArticlesFile == "" {
		return ErrMissingArticlesFile
	}

	if out.TitlesFile == "" {
		return ErrMissingTitlesFile
	}

	if filepath.Clean(out.ArticlesFile) == filepath.Clean(out.TitlesFile) {
		return ErrSameOutputFile
	}

	if out.Indent < 1 || out.Indent > 8 {
		return ErrInvalidIndent
	}

	logCfg := c.Extractor.Logging
	if _, ok := logger.ParseLevel(logCfg.Level); !ok {
		return ErrInvalidLogLevel
	}

	if logCfg.Format != "text" && logCfg.Format != "json" {
		return ErrInvalidLogFormat
	}

	if logCfg.TitleWidth < 0 {
		return ErrInvalidTitleWidth
	}

	return nil
}

// resolve joins relative paths onto Root.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.Root == "" {
		return path
	}

	return filepath.Join(c.Root, path)
}

// InputDir returns the resolved input directory.
func (c *Config) InputDir() string {
	return c.resolve(c.Extractor.Input.Dir)
}

// OutputDir returns the resolved output directory.
func (c *Config) OutputDir() string {
	return c.resolve(c.Extractor.Output.Dir)
}

// ArticlesPath returns the full path of the JSON corpus.
func (c *Config) ArticlesPath() string {
	return filepath.Join(c.OutputDir(), c.Extractor.Output.ArticlesFile)
}

// TitlesPath returns the full path of the title list.
func (c *Config) TitlesPath() string {
	return filepath.Join(c.OutputDir(), c.Extractor.Output.TitlesFile)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Pattern: %s, Output: %s}",
		c.InputDir(),
		c.Extractor.Input.Pattern,
		c.OutputDir(),
	)
}
