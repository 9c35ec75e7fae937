package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type Config struct {
	Source  Source
	Runtime Runtime
	Output  Output
}

type Source struct {
	// AURURL is the base URL of the primary source (see --aur-url).
	AURURL string

	// MirrorURL is the branch-per-package mirror repository (see --mirror).
	MirrorURL string

	// ForceMirror selects the mirror pipeline unconditionally (see --github).
	ForceMirror bool
}

type Runtime struct {
	// Concurrency is the hard cap on concurrently live build workers
	// (see --concurrency). Must be >= 1.
	Concurrency int

	// Verbose enables diagnostics: outbound API calls and executed commands.
	Verbose bool
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format
	// (see --console-format). Allowed values: text, json, ndjson.
	ConsoleFormat string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, inferred from the extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

func New() *Config {
	return &Config{
		Source: Source{
			AURURL:    "https://aur.archlinux.org",
			MirrorURL: "https://github.com/archlinux/aur",
		},
		Runtime: Runtime{
			Concurrency: 4,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
	}
}

func (c *Config) Validate() error {
	// Source validation
	c.Source.AURURL = strings.TrimRight(strings.TrimSpace(c.Source.AURURL), "/")
	if err := validateHTTPURL(c.Source.AURURL); err != nil {
		return fmt.Errorf("invalid --aur-url value: %w", err)
	}
	c.Source.MirrorURL = strings.TrimRight(strings.TrimSpace(c.Source.MirrorURL), "/")
	if err := validateHTTPURL(c.Source.MirrorURL); err != nil {
		return fmt.Errorf("invalid --mirror value: %w", err)
	}

	// Runtime validation
	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return errors.New("empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q: missing host", raw)
	}
	return nil
}
