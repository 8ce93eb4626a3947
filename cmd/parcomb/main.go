package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/parcomb/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose int

	rootCmd := &cobra.Command{
		Use:          "parcomb",
		Short:        "Parser combinator tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.Discover()
			}
			if err != nil {
				return err
			}

			verbosity := cfg.Log.Verbosity
			if cmd.Flags().Changed("verbose") {
				verbosity = verbose
			}
			if cfg.Log.File != "" {
				commonlog.Configure(verbosity, &cfg.Log.File)
			} else {
				commonlog.Configure(verbosity, nil)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./"+config.FileName+")")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newJSONCmd())
	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
