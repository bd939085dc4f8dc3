package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wippyai/endiangen/config"
	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/scan"
)

// job is the generated output of one package.
type job struct {
	res   *scan.Result
	impls []*gen.Impl
	// errs holds directive and generation errors of individual types.
	errs errors.List
	// path is where the output belongs.
	path string
	// src is the formatted output; nil when errs is non-empty or no type is annotated.
	src []byte
}

func (o *RootOptions) dir() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

// loadConfig reads the config file and applies explicitly set flags on top.
func (o *RootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.Load(o.ConfigPath)
	} else {
		cfg, _, err = config.Discover(o.dir())
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = o.Output
		case "tags":
			cfg.Tags = o.Tags
		case "unchecked-bool":
			cfg.UncheckedBool = o.UncheckedBool
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}
	return cfg, nil
}

// patterns returns the command arguments, or the configured packages.
func patterns(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Packages
}

// build scans one package and renders its output in memory.
func (o *RootOptions) build(ctx context.Context, cfg *config.Config, g *gen.Generator, pattern string) (*job, error) {
	res, err := scan.Load(ctx, scan.Config{Dir: o.dir(), Tags: cfg.Tags}, pattern)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load "+pattern, err)
	}

	j := &job{res: res, errs: append(errors.List{}, res.Errors...)}
	dir := res.Dir
	if dir == "" {
		dir = filepath.Join(o.dir(), pattern)
	}
	j.path = filepath.Join(dir, cfg.OutputName(res.Name))

	impls, err := g.GenerateAll(res.Decls)
	if list, ok := err.(errors.List); ok {
		j.errs = append(j.errs, list...)
	} else if err != nil {
		j.errs = append(j.errs, err)
	}
	j.impls = impls

	if len(j.errs) > 0 || len(impls) == 0 {
		return j, nil
	}
	src, err := g.Emit(gen.FileSpec{
		Package:  res.Name,
		Filename: j.path,
		Source:   res.Path,
		Impls:    impls,
	})
	if err != nil {
		return nil, WrapExitError(ExitFailure, "emit "+res.Path, err)
	}
	j.src = src
	return j, nil
}

// current returns the file on disk, nil when it does not exist.
func (j *job) current() ([]byte, error) {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

// upToDate reports whether the file on disk matches the output. Without
// output, only a leftover generated file is stale.
func (j *job) upToDate() (bool, error) {
	cur, err := j.current()
	if err != nil {
		return false, err
	}
	if j.src == nil {
		if cur == nil {
			return true, nil
		}
		generated, err := scan.IsGenerated(j.path)
		return !generated, err
	}
	return bytes.Equal(cur, j.src), nil
}
