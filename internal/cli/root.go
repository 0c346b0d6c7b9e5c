// Package cli implements the slip39 command-line tool.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shamirbackup/go-slip39/internal/config"
	"github.com/shamirbackup/go-slip39/internal/logging"
	"github.com/shamirbackup/go-slip39/internal/metrics"
)

// app is the state shared by the commands of one invocation.
type app struct {
	// Global flags
	configFile  string
	output      string
	verbose     bool
	metricsFile string

	cfg     *config.Config
	log     *logging.Logger
	metrics *metrics.Collector

	// Input shared by mnemonic and passphrase reads
	rawIn io.Reader
	in    *bufio.Reader
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{metrics: metrics.NewCollector()}

	rootCmd := &cobra.Command{
		Use:   "slip39",
		Short: "Split and recover secrets with SLIP-0039 Shamir mnemonics",
		Long: `slip39 splits a master secret into groups of mnemonic shares and
recovers it from a sufficient subset, following SLIP-0039.

A secret is recovered from GROUP-THRESHOLD groups, each with at least
its member threshold of mnemonics. An optional passphrase encrypts the
master secret before it is split.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "",
		"write Prometheus metrics to this file when done")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newCombineCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newWordsCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd, a
}

// init loads the configuration and lets explicitly set flags override it.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("verbose") && a.verbose {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = a.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.rawIn = cmd.InOrStdin()
	a.in = bufio.NewReader(a.rawIn)
	a.log = logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	a.log.Debug("configuration loaded", "file", a.configFile, "output", cfg.Output)
	return nil
}

// finish writes metrics if a textfile is configured.
func (a *app) finish() error {
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		return err
	}
	a.log.Debug("metrics written", "file", a.cfg.Metrics.Textfile)
	return nil
}

func (a *app) printer(w io.Writer) *Printer {
	format := config.OutputText
	if a.cfg != nil {
		format = a.cfg.Output
	}
	return NewPrinter(format, w)
}

// run executes the command line args with the given streams.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if ferr := a.finish(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		_ = a.printer(stderr).PrintError(err)
	}
	return err
}

// Execute runs the tool with the process arguments and streams.
func Execute() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
