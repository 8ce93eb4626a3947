package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/parcomb/format"
	"github.com/dhamidi/parcomb/jsonvalue"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newJSONCmd() *cobra.Command {
	var outputFormat string
	var trace bool

	cmd := &cobra.Command{
		Use:   "json [file]",
		Short: "Parse a JSON document and print it",
		Long: `Parse a JSON document with the combinator grammar and print the result.

If no file is provided, or the file is "-", reads from stdin.
Syntax errors are reported as file:line:column.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "-"
			if len(args) > 0 {
				filename = args[0]
			}
			if !cmd.Flags().Changed("format") {
				outputFormat = cfg.Output.Format
			}

			encoder, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("%w (expected one of %s)", err, strings.Join(format.Names, ", "))
			}

			data, err := readInput(cmd.InOrStdin(), filename)
			if err != nil {
				return err
			}

			var opts []jsonvalue.Option
			if trace {
				opts = append(opts, jsonvalue.WithTrace(commonlog.GetLogger("parcomb.json")))
			}
			value, err := jsonvalue.NewParser(opts...).Parse(string(data))
			if err != nil {
				var se *jsonvalue.SyntaxError
				if errors.As(err, &se) {
					return fmt.Errorf("%s:%w", filename, se)
				}
				return err
			}

			if err := encoder.Encode(value); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVar(&trace, "trace", false, "log grammar rule attempts at debug level (use with -vv)")

	return cmd
}
