package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/encsel/fallback"
)

func newEncodeCommand(opts *rootOptions) *cobra.Command {
	var (
		cf    columnFlags
		input string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode values, one per line, with the selected writer",
		Example: `  encsel encode --type byte_array --input hosts.txt
  seq 1 100000 | encsel encode --type int64 --page-size 65536`,
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
			w, err := sel.NewValuesWriter(desc)
			if err != nil {
				return err
			}
			defer w.Finish()

			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			res, err := encodeLines(w, desc, r, sel.Properties().PageSizeThreshold)
			if err != nil {
				return err
			}

			state := ""
			if fw, ok := w.(*fallback.Writer); ok {
				state = fw.State().String()
			}
			logger.Info("encoded column",
				zap.String("column", desc.PathString()),
				zap.Int("values", res.TotalValues),
				zap.Int("pages", len(res.Pages)),
			)
			printEncodeResult(cmd.OutOrStdout(), res, state)

			return nil
		},
	}
	cf.register(cmd)
	cmd.Flags().StringVar(&input, "input", "", "input file with one value per line (default stdin)")

	return cmd
}

func printEncodeResult(out io.Writer, res encodeResult, state string) {
	encoded := 0
	for i, p := range res.Pages {
		fmt.Fprintf(out, "page %d: %s, %s values, %s\n",
			i, p.Encoding, humanize.Comma(int64(p.Values)), humanize.IBytes(uint64(p.Size)))
		encoded += p.Size
	}
	if res.Dictionary != nil {
		fmt.Fprintf(out, "dictionary: %s, %s entries, %s\n",
			res.Dictionary.Encoding, humanize.Comma(int64(res.Dictionary.Values)), humanize.IBytes(uint64(res.Dictionary.Size)))
		encoded += res.Dictionary.Size
	}
	if state != "" {
		fmt.Fprintf(out, "state: %s\n", state)
	}
	fmt.Fprintf(out, "total: %s values, %s input, %s encoded\n",
		humanize.Comma(int64(res.TotalValues)), humanize.IBytes(uint64(res.RawSize)), humanize.IBytes(uint64(encoded)))
}
