package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shamirbackup/go-slip39"
)

func newWordsCmd(a *app) *cobra.Command {
	var t9 bool

	cmd := &cobra.Command{
		Use:   "words [PREFIX]",
		Short: "List wordlist entries matching a prefix",
		Long: `List wordlist entries starting with PREFIX, or every word without one.

With --t9, PREFIX is a sequence of keypad buttons 1-9 and the words
typed by that sequence are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			if !t9 {
				return a.printer(cmd.OutOrStdout()).PrintWords(slip39.WordsWithPrefix(prefix))
			}

			if strings.Trim(prefix, "123456789") != "" {
				return fmt.Errorf("invalid button sequence %q: buttons are 1-9", prefix)
			}
			a.log.Debug("button sequence", "prefix", prefix,
				"completion_mask", fmt.Sprintf("%09b", slip39.CompletionMask(prefix)))
			return a.printer(cmd.OutOrStdout()).PrintWords(slip39.ButtonSequenceCandidates(prefix))
		},
	}
	cmd.Flags().BoolVar(&t9, "t9", false, "treat PREFIX as a keypad button sequence")

	return cmd
}
