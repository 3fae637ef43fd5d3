// Package config loads the optional .gjk.yml settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file searched for from the working directory up.
const FileName = ".gjk.yml"

// EnvVar names an explicit settings file when no -c flag is given.
const EnvVar = "GJK_CONFIG"

// ErrNotFound is returned by Find when no settings file exists on the way up.
var ErrNotFound = errors.New("config: no " + FileName + " found")

type Config struct {
	Path      string `yaml:"-"`
	Prompt    string `yaml:"prompt"`
	DumpAST   bool   `yaml:"dump_ast"`
	ASTFormat string `yaml:"ast_format"`
	Color     string `yaml:"color"`
	History   string `yaml:"history"`
}

// ValidationError aggregates invalid settings.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{Prompt: "> ", ASTFormat: "json", Color: "auto", History: "~/.gjk_history"}
}

// Load parses the file at path over the defaults. Unknown keys are rejected;
// an empty file yields the defaults.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	errs := ValidationError{Path: c.Path}
	switch c.ASTFormat {
	case "json", "yaml":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("ast_format must be json or yaml, got %q", c.ASTFormat))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be auto, always or never, got %q", c.Color))
	}
	if strings.Contains(c.Prompt, "\n") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// HistoryPath expands a leading ~ in the history setting. An empty setting
// disables history.
func (c *Config) HistoryPath() string {
	h := c.History
	if h == "~" || strings.HasPrefix(h, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, h[1:])
	}
	return h
}

// Find walks from dir to the filesystem root and returns the first
// settings file it meets.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Resolve picks the settings file in order: explicit path, $GJK_CONFIG,
// nearest .gjk.yml above cwd. With none of those it returns the defaults.
func Resolve(explicit, cwd string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if p := os.Getenv(EnvVar); p != "" {
		return Load(p)
	}
	p, err := Find(cwd)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(p)
}
