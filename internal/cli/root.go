package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/scan"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath    string
	Dir           string
	Output        string
	Tags          []string
	UncheckedBool bool
	Verbose       bool
}

// NewRootCommand creates the root command for the endiangen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "endiangen",
		Short: "Generate fixed-layout binary codecs for Go types",
		Long: `endiangen writes WriteEndian and ReadEndian methods for Go types
annotated with //endian: directives. Every field is encoded in declaration
order with the byte order of its type, or of its endian struct tag.

Typical use from a package:

	//go:generate endiangen generate`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default: .endiangen.yaml in the working directory, if present)")
	flags.StringVarP(&opts.Dir, "dir", "C", "", "run as if started in this directory")
	flags.StringVarP(&opts.Output, "output", "o", "", "generated file name (default <package>_endian.go)")
	flags.StringSliceVar(&opts.Tags, "tags", nil, "comma-separated build tags used to load packages")
	flags.BoolVar(&opts.UncheckedBool, "unchecked-bool", false, "decode any nonzero boolean byte as true (set unchecked_bool in the config file so go:generate and check agree)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging to stderr")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewLayoutCommand(opts))
	cmd.AddCommand(NewExploreCommand(opts))

	return cmd
}

func setupLogging(opts *RootOptions) error {
	if !opts.Verbose {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "create logger", err)
	}
	gen.SetLogger(log.Named("gen"))
	scan.SetLogger(log.Named("scan"))
	return nil
}
