package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/wippyai/endiangen/gen"
)

// CheckOptions holds flags of the check command.
type CheckOptions struct {
	Diff bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [packages]",
		Short: "Report errors and stale output without writing",
		Long: `Check every annotated type and compare the output with the file on disk.

Exits non-zero when a type fails to generate or when a generated file is
missing or out of date. Use --diff to see what generate would change.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "print a unified diff of stale output")
	return cmd
}

func runCheck(rootOpts *RootOptions, opts *CheckOptions, cmd *cobra.Command, args []string) error {
	cfg, err := rootOpts.loadConfig(cmd)
	if err != nil {
		return err
	}
	g := gen.New(cfg.GenOptions())
	out := newPrinter(cmd.OutOrStdout())
	diag := newPrinter(cmd.ErrOrStderr())

	failed, stale := 0, 0
	for _, pattern := range patterns(cfg, args) {
		j, err := rootOpts.build(cmd.Context(), cfg, g, pattern)
		if err != nil {
			return err
		}
		if len(j.errs) > 0 {
			failed += diag.diagnostics(j.errs)
			continue
		}

		ok, err := j.upToDate()
		if err != nil {
			return WrapExitError(ExitCommandError, "read "+j.path, err)
		}
		if ok {
			out.printf("%s %s\n", out.style(okStyle, "ok"), j.res.Path)
			continue
		}
		stale++
		out.printf("%s %s\n", out.style(warnStyle, "stale"), j.display())
		if opts.Diff {
			d, err := j.diff()
			if err != nil {
				return WrapExitError(ExitCommandError, "diff "+j.path, err)
			}
			out.printf("%s", d)
		}
	}

	switch {
	case failed > 0:
		return NewExitError(ExitFailure, fmt.Sprintf("%d type(s) failed", failed))
	case stale > 0:
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) out of date", stale))
	}
	return nil
}

// diff returns the unified diff from the file on disk to the output.
func (j *job) diff() (string, error) {
	cur, err := j.current()
	if err != nil {
		return "", err
	}
	name := j.display()
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(cur)),
		B:        difflib.SplitLines(string(j.src)),
		FromFile: name,
		ToFile:   name + " (generated)",
		Context:  3,
	})
}
