package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/scan"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Write codec methods for annotated types",
		Long: `Write codec methods for every annotated type of each package.

Each type is checked independently and every failure is reported. A package
with any failing type keeps its previous output. A package without annotated
types has its previously generated file removed.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runGenerate(opts *RootOptions, cmd *cobra.Command, args []string) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	g := gen.New(cfg.GenOptions())
	out := newPrinter(cmd.OutOrStdout())
	diag := newPrinter(cmd.ErrOrStderr())

	failed := 0
	for _, pattern := range patterns(cfg, args) {
		j, err := opts.build(cmd.Context(), cfg, g, pattern)
		if err != nil {
			return err
		}
		if len(j.errs) > 0 {
			failed += diag.diagnostics(j.errs)
			continue
		}
		if err := j.write(out); err != nil {
			return WrapExitError(ExitCommandError, "write "+j.path, err)
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d type(s) failed", failed))
	}
	return nil
}

// write puts the output on disk, leaving unchanged files untouched. It never
// overwrites or removes a file that the generator did not write.
func (j *job) write(out *printer) error {
	rel := j.display()
	cur, err := j.current()
	if err != nil {
		return err
	}
	generated := false
	if cur != nil {
		if generated, err = scan.IsGenerated(j.path); err != nil {
			return err
		}
	}

	if j.src == nil {
		if !generated {
			return nil
		}
		if err := os.Remove(j.path); err != nil {
			return err
		}
		out.printf("%s %s\n", out.style(warnStyle, "removed"), rel)
		return nil
	}
	if cur != nil && !generated {
		return fmt.Errorf("%s exists and was not written by endiangen", rel)
	}

	if bytes.Equal(cur, j.src) {
		gen.Logger().Debug("output unchanged", zap.String("file", j.path))
		out.printf("%s %s\n", out.style(okStyle, "unchanged"), rel)
		return nil
	}
	if err := os.WriteFile(j.path, j.src, 0o644); err != nil {
		return err
	}
	out.printf("%s %s (%d types)\n", out.style(okStyle, "wrote"), rel, len(j.impls))
	return nil
}

// display returns the output path relative to the working directory when possible.
func (j *job) display() string {
	wd, err := os.Getwd()
	if err != nil {
		return j.path
	}
	rel, err := filepath.Rel(wd, j.path)
	if err != nil || len(rel) > len(j.path) {
		return j.path
	}
	return rel
}
