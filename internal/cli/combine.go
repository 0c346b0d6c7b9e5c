package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shamirbackup/go-slip39"
	"github.com/shamirbackup/go-slip39/internal/metrics"
)

type combineOptions struct {
	file             string
	passphrase       string
	passphrasePrompt bool
	encrypted        bool
}

func newCombineCmd(a *app) *cobra.Command {
	opts := &combineOptions{}

	cmd := &cobra.Command{
		Use:   "combine [MNEMONIC...]",
		Short: "Recover a master secret from mnemonic shares",
		Long: `Recover a master secret from mnemonic shares.

Mnemonics are taken from the arguments (one quoted mnemonic each), from
--file, or from standard input, one per line. Reading standard input
stops at the first empty line so that a passphrase may follow it.`,
		Example: `  slip39 combine "duckling enlarge academic ..." "duckling enlarge academic ..."
  slip39 combine --file shares.txt --passphrase-prompt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCombine(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "",
		"read mnemonics from file, one per line")
	cmd.Flags().StringVarP(&opts.passphrase, "passphrase", "p", "",
		"passphrase the master secret was encrypted with")
	cmd.Flags().BoolVarP(&opts.passphrasePrompt, "passphrase-prompt", "P", false,
		"prompt for the passphrase")
	cmd.Flags().BoolVar(&opts.encrypted, "encrypted", false,
		"print the encrypted master secret without decrypting it")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "passphrase-prompt")
	cmd.MarkFlagsMutuallyExclusive("encrypted", "passphrase")
	cmd.MarkFlagsMutuallyExclusive("encrypted", "passphrase-prompt")

	return cmd
}

func (a *app) runCombine(cmd *cobra.Command, opts *combineOptions, args []string) (err error) {
	started := time.Now()
	defer func() { a.metrics.RecordOperation(metrics.OpCombine, started, err) }()

	mnemonics, err := a.readMnemonics(cmd, opts.file, args)
	if err != nil {
		return err
	}
	log := a.log.With("operation", metrics.OpCombine)
	log.Debug("combining mnemonics", "count", len(mnemonics))

	ems, err := slip39.RecoverEncryptedMasterSecret(mnemonics)
	if err != nil {
		return err
	}
	log.Info("recovered encrypted master secret",
		"identifier", ems.Identifier,
		"iteration_exponent", ems.IterationExponent)

	p := a.printer(cmd.OutOrStdout())
	if opts.encrypted {
		return p.PrintEncryptedSecret(ems)
	}

	passphrase, err := a.passphrase(cmd.ErrOrStderr(), opts.passphrase, opts.passphrasePrompt, false)
	if err != nil {
		return err
	}
	secret, err := ems.Decrypt(passphrase)
	if err != nil {
		return err
	}
	return p.PrintSecret(secret)
}

// readMnemonics collects mnemonics from args, a file or the input stream,
// skipping blank lines and # comments in files.
func (a *app) readMnemonics(cmd *cobra.Command, file string, args []string) ([]string, error) {
	if file != "" && len(args) > 0 {
		return nil, errors.New("mnemonics given as arguments and with --file")
	}
	if len(args) > 0 {
		return args, nil
	}

	if file != "" {
		// #nosec G304 - path is provided by the user
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open mnemonics file: %w", err)
		}
		defer f.Close()

		var mnemonics []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			mnemonics = append(mnemonics, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read mnemonics file: %w", err)
		}
		return mnemonics, nil
	}

	if _, isTerm := terminalFd(a.rawIn); isTerm {
		fmt.Fprintln(cmd.ErrOrStderr(), "Enter mnemonics, one per line, and an empty line to finish:")
	}
	var mnemonics []string
	for {
		line, err := readLine(a.in)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read mnemonics: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		mnemonics = append(mnemonics, line)
	}
	return mnemonics, nil
}
