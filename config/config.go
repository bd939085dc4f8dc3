// Package config loads generator settings from a YAML file.
//
// The file is optional. When --config is not given, .endiangen.yaml in the
// package directory is used if present; otherwise every setting keeps its
// default. Command-line flags override file values.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
)

// FileName is the configuration file looked up in the package directory.
const FileName = ".endiangen.yaml"

// Config is the generator configuration.
type Config struct {
	// Output is the generated file name, relative to the package directory.
	// Empty means <package>_endian.go.
	Output string `yaml:"output"`

	// Runtime is the import path of the runtime package used by generated code.
	Runtime string `yaml:"runtime" default:"github.com/wippyai/endiangen/endian"`

	// Tags are build tags applied while loading the package.
	Tags []string `yaml:"tags"`

	// Packages are the patterns generated when none is given on the command line.
	Packages []string `yaml:"packages" default:"[\".\"]"`

	// UncheckedBool decodes any nonzero boolean byte as true. Packages
	// generated through go:generate should set it here rather than with
	// --unchecked-bool, so that a plain check sees the same output.
	UncheckedBool bool `yaml:"unchecked_bool"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// defaults are static struct tags; failure is a programming error
		panic(err)
	}
	return c
}

// Load reads the file at path. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseConfig, "config file", path)
		}
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	return Parse(data, path)
}

// Parse decodes YAML data. The name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	c := &Config{}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse "+name)
		}
	}
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "apply defaults")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Discover loads FileName from dir, or returns the defaults when it is absent.
func Discover(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), "", nil
		}
		return nil, "", errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "stat "+path)
	}
	c, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return c, path, nil
}

// Validate checks settings that cannot be expressed as defaults.
func (c *Config) Validate() error {
	if c.Output != "" {
		if filepath.Base(c.Output) != c.Output {
			return errors.InvalidInput(errors.PhaseConfig,
				fmt.Sprintf("output %q must be a file name inside the package directory", c.Output))
		}
		if !strings.HasSuffix(c.Output, ".go") || strings.HasSuffix(c.Output, "_test.go") {
			return errors.InvalidInput(errors.PhaseConfig,
				fmt.Sprintf("output %q must be a non-test .go file", c.Output))
		}
	}
	if strings.TrimSpace(c.Runtime) == "" {
		return errors.InvalidInput(errors.PhaseConfig, "runtime import path is empty")
	}
	for _, tag := range c.Tags {
		if tag == "" || strings.ContainsAny(tag, ", \t") {
			return errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("invalid build tag %q", tag))
		}
	}
	return nil
}

// OutputName returns the generated file name for a package.
func (c *Config) OutputName(pkgName string) string {
	if c.Output != "" {
		return c.Output
	}
	return pkgName + "_endian.go"
}

// GenOptions returns the generator options described by c.
func (c *Config) GenOptions() gen.Options {
	return gen.Options{
		Runtime:       c.Runtime,
		UncheckedBool: c.UncheckedBool,
	}
}
