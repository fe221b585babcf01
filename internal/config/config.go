// Package config loads .bsl.yaml files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alkoleft/lezer-bsl/bsl/session"
	"github.com/alkoleft/lezer-bsl/bsl/workspace"
)

var ErrInvalid = errors.New("invalid configuration")

// FileNames are searched for in this order in every directory.
var FileNames = []string{".bsl.yaml", ".bsl.yml"}

var vcsRootMarkers = []string{".git", ".hg", ".svn"}

type Config struct {
	Parser      ParserConfig      `yaml:"parser"`
	Incremental IncrementalConfig `yaml:"incremental"`
	Log         LogConfig         `yaml:"log"`
	LSP         LSPConfig         `yaml:"lsp"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`
}

type ParserConfig struct {
	Comments        bool `yaml:"comments"`
	CaseInsensitive bool `yaml:"case_insensitive"`
}

type IncrementalConfig struct {
	// MinGap is the smallest unchanged stretch kept for reuse; 0 selects
	// the parser default.
	MinGap int `yaml:"min_gap"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type LSPConfig struct {
	Diagnostics    bool `yaml:"diagnostics"`
	SemanticTokens bool `yaml:"semantic_tokens"`
	Folding        bool `yaml:"folding"`
}

func Default() *Config {
	return &Config{
		Parser: ParserConfig{CaseInsensitive: true},
		Log:    LogConfig{Level: "info"},
		LSP:    LSPConfig{Diagnostics: true, SemanticTokens: true, Folding: true},
	}
}

// Parse reads a YAML document over the defaults. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	var problems []string
	if c.Incremental.MinGap < 0 {
		problems = append(problems, fmt.Sprintf("incremental.min_gap must not be negative, got %d", c.Incremental.MinGap))
	}
	level := strings.ToLower(c.Log.Level)
	valid := false
	for _, l := range logLevels {
		if level == l {
			valid = true
		}
	}
	if !valid {
		problems = append(problems, fmt.Sprintf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Find looks for a configuration file in dir and its parents, stopping at a
// version control root. It returns "" when there is none.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(abs, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		if isVCSRoot(abs) {
			return "", nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// Discover loads the configuration that applies to dir, or the defaults.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) SessionOptions() []session.Option {
	var opts []session.Option
	if c.Parser.Comments {
		opts = append(opts, session.WithComments())
	}
	if !c.Parser.CaseInsensitive {
		opts = append(opts, session.WithCaseSensitiveKeywords())
	}
	if c.Incremental.MinGap > 0 {
		opts = append(opts, session.WithMinGap(c.Incremental.MinGap))
	}
	return opts
}

func (c *Config) WorkspaceOptions() workspace.Options {
	return workspace.Options{
		Diagnostics:    c.LSP.Diagnostics,
		SemanticTokens: c.LSP.SemanticTokens,
		Folding:        c.LSP.Folding,
		Session:        c.SessionOptions(),
	}
}
