package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/jacoelho/propath/internal/exit"
	"github.com/jacoelho/propath/internal/formatter"
)

// Version is reported by -v and set at link time.
var Version = "dev"

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	ErrNoArguments        = errors.New("no arguments provided")
	ErrNoPath             = errors.New("no path specified")
	ErrInvalidTokenFormat = errors.New("token must be in format name=value")
	ErrEmptyTokenName     = errors.New("token name cannot be empty")
	ErrInvalidColorMode   = errors.New("color must be one of auto, always, never")
)

// Config represents the complete configuration for the propath tool.
type Config struct {
	Path  string
	Files []string
	Debug bool

	// Placeholder values for {{ .name }} segments
	Tokens    map[string]any
	TokenFile string

	// Value printed where the path cannot be followed
	Default any

	// Root narrowing, applied before the path
	Pointer  string
	JSONPath string

	Encoding formatter.Encoding
	Color    ColorMode
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if _, err := formatter.ParseEncoding(string(c.Encoding)); err != nil {
		return err
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidColorMode, c.Color)
	}

	return nil
}

// UseColor reports whether output written to f should be colored.
func (c *Config) UseColor(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// tokensFlag implements flag.Value for parsing multiple -token flags.
type tokensFlag map[string]any

func (t tokensFlag) String() string {
	var pairs []string
	for k, v := range t {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a token in name=value format for flag.Value interface.
func (t tokensFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidTokenFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyTokenName
	}

	t[name] = parts[1]
	return nil
}

// defaultFlag decodes its argument as a YAML scalar, so "3", "true" and
// "null" keep their types.
type defaultFlag struct {
	value any
}

func (d *defaultFlag) String() string {
	if d == nil || d.value == nil {
		return ""
	}
	return fmt.Sprint(d.value)
}

func (d *defaultFlag) Set(raw string) error {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("invalid default %q: %w", raw, err)
	}
	d.value = value
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		debug     = fs.Bool("debug", false, "Log every path step that falls back to the default")
		tokens    = make(tokensFlag)
		tokenFile = fs.String("token-file", "", "Path to key=value file containing tokens")
		def       = &defaultFlag{}
		encoding  = fs.String("format", string(formatter.JSON), "Output format: json or yaml")
		pointer   = fs.String("pointer", "", "JSON Pointer selecting the root of each document")
		jsonPath  = fs.String("jsonpath", "", "JSONPath query selecting the root of each document")
		color     = fs.String("color", string(ColorAuto), "Colored output: auto, always or never")
		version   = fs.Bool("version", false, "Show version information")
	)

	fs.BoolVar(version, "v", false, "Show version information")
	fs.Var(tokens, "token", "Token in format name=value (can be used multiple times)")
	fs.Var(def, "default", "Value used where the path cannot be followed")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *version {
		return nil, exit.Success(fmt.Sprintf("propath %s\n", Version))
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoPath, Usage())
	}

	// File tokens first, command-line tokens take precedence
	finalTokens := make(map[string]any)
	if *tokenFile != "" {
		fileTokens, err := loadTokenFile(*tokenFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load token file: %v\n", err)
		}
		maps.Copy(finalTokens, fileTokens)
	}
	maps.Copy(finalTokens, tokens)

	config := &Config{
		Path:      positional[0],
		Files:     positional[1:],
		Debug:     *debug,
		Tokens:    finalTokens,
		TokenFile: *tokenFile,
		Default:   def.value,
		Pointer:   *pointer,
		JSONPath:  *jsonPath,
		Encoding:  formatter.Encoding(*encoding),
		Color:     ColorMode(*color),
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadTokenFile loads tokens from a key=value format file.
// It supports comments (lines starting with #) and empty lines.
func loadTokenFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	tokens := make(map[string]any)
	lines := strings.Split(string(data), "\n")

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid format at line %d: %s (expected key=value)", lineNum+1, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key == "" {
			return nil, fmt.Errorf("empty key at line %d: %s", lineNum+1, line)
		}

		tokens[key] = value
	}

	return tokens, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `propath - read values out of YAML and JSON documents with property paths

Usage: propath [options] <path> [file1] [file2] ...

Reads standard input when no file, or "-", is given.

Options:
  --token NAME=VALUE      Token substituted for {{ .NAME }} in path segments (can be used multiple times)
  --token-file FILE       Path to key=value file containing tokens
  --default VALUE         Value used where the path cannot be followed, parsed as YAML (default: null)
  --pointer POINTER       JSON Pointer selecting the root of each document
  --jsonpath QUERY        JSONPath query selecting the root of each document (first match)
  --format FORMAT         Output format: json or yaml (default: json)
  --color MODE            Colored output: auto, always or never (default: auto)
  --debug                 Log every path step that falls back to the default
  -h, --help              Show this help message
  -v, --version           Show version information

Examples:
  propath user.name doc.yaml                         # Read a single property
  propath 'items.*.sku' doc.json                     # Read a property of every item
  propath 'items.[qty > 1].sku' doc.json             # Read a property of matching items
  propath --token id=42 'users.{{ .id }}.email' -    # Substitute a token, read stdin
  propath --pointer /spec name deploy.yaml           # Resolve below a JSON Pointer`
}
