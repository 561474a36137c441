package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/encsel/column"
	"github.com/arloliu/encsel/config"
	"github.com/arloliu/encsel/encoding"
	"github.com/arloliu/encsel/fallback"
	"github.com/arloliu/encsel/format"
)

type columnFlags struct {
	typ        string
	path       string
	typeLength int
}

func (f *columnFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", "", "physical type: boolean, int32, int64, int96, float, double, byte_array, fixed_len_byte_array")
	cmd.Flags().StringVar(&f.path, "path", "value", "dotted column path")
	cmd.Flags().IntVar(&f.typeLength, "type-length", 0, "value width of fixed_len_byte_array columns")
	_ = cmd.MarkFlagRequired("type")
}

func (f *columnFlags) descriptor() (column.Descriptor, error) {
	typ, ok := format.ParsePhysicalType(strings.ToLower(f.typ))
	if !ok {
		return column.Descriptor{}, fmt.Errorf("unknown physical type %q", f.typ)
	}

	path := strings.Split(f.path, ".")
	if typ == format.FixedLenByteArray {
		return column.NewFixedLen(f.typeLength, path...), nil
	}

	return column.New(typ, path...), nil
}

func newSelectCommand(opts *rootOptions) *cobra.Command {
	var cf columnFlags

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Show the value writer chosen for a column",
		Example: `  encsel select --type int32 --int-encoding BP --int-bit-length 9 --int-bound 300
  ENCSEL_STRING_ENCODING=DELTA encsel select --type byte_array --path http.url`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			desc, err := cf.descriptor()
			if err != nil {
				return err
			}
			logger, err := newLogger(opts.logLevel, opts.logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sel, err := opts.newSelector(logger)
			if err != nil {
				return err
			}
			policy, err := config.NewViperSource(opts.v).Policy()
			if err != nil {
				return err
			}
			w, strategy, err := sel.Choose(desc, policy)
			if err != nil {
				return err
			}
			defer w.Finish()

			printSelection(cmd.OutOrStdout(), desc, strategy.String(), policy.String(), w)

			return nil
		},
	}
	cf.register(cmd)

	return cmd
}

func printSelection(out io.Writer, desc column.Descriptor, strategy, policy string, w encoding.ValuesWriter) {
	fmt.Fprintf(out, "column:    %s\n", desc.PathString())
	fmt.Fprintf(out, "type:      %s\n", desc.Type)
	fmt.Fprintf(out, "policy:    %s\n", policy)
	fmt.Fprintf(out, "strategy:  %s\n", strategy)
	fmt.Fprintf(out, "encoding:  %s (parquet %s)\n", w.Encoding(), w.Encoding().Parquet())
	if fw, ok := w.(*fallback.Writer); ok {
		fmt.Fprintf(out, "fallback:  %s\n", fw.Fallback().Encoding())
	}
}
