package cli

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shamirbackup/go-slip39"
	"github.com/shamirbackup/go-slip39/internal/config"
	"github.com/shamirbackup/go-slip39/internal/metrics"
)

type generateOptions struct {
	groupThreshold    int
	groups            []string
	secret            string
	strength          int
	iterationExponent int
	passphrase        string
	passphrasePrompt  bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Split a master secret into mnemonic shares",
		Long: `Split a master secret into groups of mnemonic shares.

Each --group is given as M-of-N (or MofN, M/N): N mnemonics, any M of
which recover the group. Without --secret a random master secret of
--strength bits is generated.`,
		Example: `  slip39 generate --group-threshold 2 --group 2of3 --group 3of5 --group 1of1
  slip39 generate --secret 0c94...e0a1 --group 2of3 --passphrase-prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.groupThreshold, "group-threshold", "t", 0,
		"number of groups required to recover (default from config)")
	cmd.Flags().StringArrayVarP(&opts.groups, "group", "g", nil,
		"group as M-of-N, repeatable (default from config)")
	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "",
		"master secret in hex (default random)")
	cmd.Flags().IntVar(&opts.strength, "strength", 0,
		"random master secret strength in bits (default from config)")
	cmd.Flags().IntVarP(&opts.iterationExponent, "iteration-exponent", "e", 0,
		"PBKDF2 iteration exponent (default from config)")
	cmd.Flags().StringVarP(&opts.passphrase, "passphrase", "p", "",
		"passphrase to encrypt the master secret")
	cmd.Flags().BoolVarP(&opts.passphrasePrompt, "passphrase-prompt", "P", false,
		"prompt for the passphrase")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "passphrase-prompt")
	cmd.MarkFlagsMutuallyExclusive("secret", "strength")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) (err error) {
	started := time.Now()
	defer func() { a.metrics.RecordOperation(metrics.OpGenerate, started, err) }()

	gen, err := opts.resolve(cmd, a.cfg.Generate)
	if err != nil {
		return err
	}
	groups := gen.MemberGroups()

	passphrase, err := a.passphrase(cmd.ErrOrStderr(), opts.passphrase, opts.passphrasePrompt, true)
	if err != nil {
		return err
	}

	log := a.log.With("operation", metrics.OpGenerate)
	log.Debug("generating mnemonics",
		"group_threshold", gen.GroupThreshold,
		"groups", len(groups),
		"iteration_exponent", gen.IterationExponent)

	var mnemonics [][]string
	if opts.secret != "" {
		secret, herr := hex.DecodeString(strings.TrimSpace(opts.secret))
		if herr != nil {
			return fmt.Errorf("invalid --secret: %w", herr)
		}
		mnemonics, err = slip39.GenerateMnemonicsWithOptions(
			gen.GroupThreshold, groups, secret, passphrase, gen.IterationExponent,
		)
	} else {
		log.Debug("generating random master secret", "strength_bits", gen.StrengthBits)
		mnemonics, err = slip39.GenerateMnemonicsRandom(
			gen.GroupThreshold, groups, gen.StrengthBits, passphrase, gen.IterationExponent,
		)
	}
	if err != nil {
		return err
	}

	count := 0
	for _, g := range mnemonics {
		count += len(g)
	}
	a.metrics.RecordShares(count)
	log.Info("generated mnemonics", "shares", count)

	return a.printer(cmd.OutOrStdout()).PrintMnemonics(gen.GroupThreshold, groups, mnemonics)
}

// resolve merges explicitly set flags over the configured defaults.
func (opts *generateOptions) resolve(cmd *cobra.Command, gen config.GenerateConfig) (config.GenerateConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("group") {
		gen.Groups = nil
		for _, spec := range opts.groups {
			g, err := parseGroup(spec)
			if err != nil {
				return gen, err
			}
			gen.Groups = append(gen.Groups, g)
		}
		if !flags.Changed("group-threshold") && gen.GroupThreshold > len(gen.Groups) {
			gen.GroupThreshold = len(gen.Groups)
		}
	}
	if flags.Changed("group-threshold") {
		gen.GroupThreshold = opts.groupThreshold
	}
	if flags.Changed("strength") {
		gen.StrengthBits = opts.strength
	}
	if flags.Changed("iteration-exponent") {
		gen.IterationExponent = opts.iterationExponent
	}
	return gen, nil
}

var groupRE = regexp.MustCompile(`^(\d+)\s*(?:-?of-?|/)\s*(\d+)$`)

// parseGroup parses an M-of-N group description.
func parseGroup(spec string) (config.GroupConfig, error) {
	m := groupRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(spec)))
	if m == nil {
		return config.GroupConfig{}, fmt.Errorf("invalid group %q: expected M-of-N", spec)
	}
	threshold, err := strconv.Atoi(m[1])
	if err != nil {
		return config.GroupConfig{}, fmt.Errorf("invalid group %q: %w", spec, err)
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		return config.GroupConfig{}, fmt.Errorf("invalid group %q: %w", spec, err)
	}
	return config.GroupConfig{Threshold: threshold, Count: count}, nil
}
