// Command encsel shows which value encoding a column gets under the current policy
// and encodes sample values with it.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arloliu/encsel/config"
	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/selector"
)

var version = "0.1.0"

type rootOptions struct {
	v *viper.Viper

	configFile         string
	logLevel           string
	logFormat          string
	pageSize           int
	dictionaryPageSize int
}

func main() {
	root, err := newRootCommand(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, error) {
	opts := &rootOptions{v: config.NewEnvViper()}

	root := &cobra.Command{
		Use:   "encsel",
		Short: "encsel - column value encoding selection",
		Long: `encsel picks the value encoding of a columnar page writer from the column's
physical type and the encoding policy, and governs dictionary fallback.

Policy values come from flags, ENCSEL_* environment variables or a config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.configFile == "" {
				return nil
			}
			opts.v.SetConfigFile(opts.configFile)
			if err := opts.v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", opts.configFile, err)
			}

			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "policy config file (yaml, json or toml)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format (console or json)")
	flags.IntVar(&opts.pageSize, "page-size", encoding.DefaultPageSizeThreshold, "data page size threshold in bytes")
	flags.IntVar(&opts.dictionaryPageSize, "dictionary-page-size", encoding.DefaultDictionaryPageSizeThreshold,
		"dictionary size in bytes past which writers fall back")

	flags.String("int-encoding", "", "int32 encoding: BP, DELTABP, RLE or PLAIN (default dictionary)")
	flags.String("string-encoding", "", "byte array encoding: DELTAL, DELTA or PLAIN (default dictionary)")
	// numeric policy flags are strings so an absent flag stays unset
	flags.String("int-bit-length", "", "bit length for BP and RLE int encodings")
	flags.String("int-bound", "", "largest value for BP int encoding")
	if err := bindPolicyFlags(opts.v, root); err != nil {
		return nil, err
	}

	root.AddCommand(
		newSelectCommand(opts),
		newEncodeCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "encsel v%s\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			},
		},
	)

	return root, nil
}

// bindPolicyFlags maps policy flags onto the viper keys. A flag only overrides the
// environment when it is set on the command line.
func bindPolicyFlags(v *viper.Viper, root *cobra.Command) error {
	flags := root.PersistentFlags()
	for key, name := range map[string]string{
		config.KeyIntEncoding:    "int-encoding",
		config.KeyStringEncoding: "string-encoding",
		config.KeyIntBitLength:   "int-bit-length",
		config.KeyIntBound:       "int-bound",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}

	return nil
}

func (o *rootOptions) newSelector(logger *zap.Logger) (*selector.Selector, error) {
	props := encoding.DefaultProperties()
	props.PageSizeThreshold = o.pageSize
	props.DictionaryPageSizeThreshold = o.dictionaryPageSize

	return selector.New(
		selector.WithProperties(props),
		selector.WithSource(config.NewViperSource(o.v)),
		selector.WithLogger(logger),
	)
}
