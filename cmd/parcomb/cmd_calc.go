package main

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/parcomb/calc"
	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	var showTree bool

	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluate arithmetic expressions such as "1 + 2 * max(3, 4)".

The arguments are joined into one expression. Without arguments every
non-empty line of stdin is evaluated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eval := func(src string) error {
				node, err := calc.Parse(src)
				if err != nil {
					return err
				}
				if showTree {
					fmt.Fprintln(cmd.OutOrStdout(), node)
					return nil
				}
				v, err := node.Eval()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
				return nil
			}

			if len(args) > 0 {
				return eval(strings.Join(args, " "))
			}

			data, err := readInput(cmd.InOrStdin(), "-")
			if err != nil {
				return err
			}
			failed := 0
			scanner := bufio.NewScanner(bytes.NewReader(data))
			for line := 1; scanner.Scan(); line++ {
				src := strings.TrimSpace(scanner.Text())
				if src == "" {
					continue
				}
				if err := eval(src); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", line, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d expressions failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTree, "tree", false, "print the parenthesized expression instead of its value")

	return cmd
}
