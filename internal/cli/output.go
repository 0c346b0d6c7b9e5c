package cli

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shamirbackup/go-slip39"
	"github.com/shamirbackup/go-slip39/internal/config"
)

// Printer writes command results as text or JSON.
type Printer struct {
	format string
	writer io.Writer
}

// NewPrinter creates a printer; format is config.OutputText or
// config.OutputJSON.
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{format: format, writer: writer}
}

type groupOutput struct {
	GroupIndex      int      `json:"group_index"`
	MemberThreshold int      `json:"member_threshold"`
	Mnemonics       []string `json:"mnemonics"`
}

type generateOutput struct {
	Identifier        int           `json:"identifier"`
	IterationExponent int           `json:"iteration_exponent"`
	GroupThreshold    int           `json:"group_threshold"`
	Groups            []groupOutput `json:"groups"`
}

// PrintMnemonics prints generated mnemonics, grouped.
func (p *Printer) PrintMnemonics(groupThreshold int, params []slip39.MemberGroupParameters, groups [][]string) error {
	out := generateOutput{GroupThreshold: groupThreshold}
	if len(groups) > 0 && len(groups[0]) > 0 {
		share, err := slip39.ParseShare(groups[0][0])
		if err != nil {
			return err
		}
		out.Identifier = share.Identifier
		out.IterationExponent = share.IterationExponent
	}
	for i, g := range groups {
		out.Groups = append(out.Groups, groupOutput{
			GroupIndex:      i + 1,
			MemberThreshold: params[i].MemberThreshold,
			Mnemonics:       g,
		})
	}

	switch p.format {
	case config.OutputJSON:
		return p.printJSON(out)
	case config.OutputText:
		fmt.Fprintf(p.writer, "Identifier %d, %d of %d groups required\n",
			out.Identifier, groupThreshold, len(groups))
		for _, g := range out.Groups {
			fmt.Fprintf(p.writer, "\nGroup %d of %d (%d of %d shares required):\n",
				g.GroupIndex, len(groups), g.MemberThreshold, len(g.Mnemonics))
			for _, m := range g.Mnemonics {
				fmt.Fprintln(p.writer, m)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a recovered master secret.
func (p *Printer) PrintSecret(secret []byte) error {
	switch p.format {
	case config.OutputJSON:
		return p.printJSON(map[string]any{
			"master_secret": hex.EncodeToString(secret),
		})
	case config.OutputText:
		fmt.Fprintln(p.writer, hex.EncodeToString(secret))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintEncryptedSecret prints a recovered encrypted master secret with
// the parameters needed to decrypt it.
func (p *Printer) PrintEncryptedSecret(ems slip39.EncryptedMasterSecret) error {
	switch p.format {
	case config.OutputJSON:
		return p.printJSON(map[string]any{
			"identifier":              ems.Identifier,
			"iteration_exponent":      ems.IterationExponent,
			"encrypted_master_secret": hex.EncodeToString(ems.Value),
		})
	case config.OutputText:
		fmt.Fprintf(p.writer, "Identifier:              %d\n", ems.Identifier)
		fmt.Fprintf(p.writer, "Iteration exponent:      %d\n", ems.IterationExponent)
		fmt.Fprintf(p.writer, "Encrypted master secret: %s\n", hex.EncodeToString(ems.Value))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShare prints the metadata of a decoded mnemonic. The share value is
// not printed.
func (p *Printer) PrintShare(share slip39.Share) error {
	switch p.format {
	case config.OutputJSON:
		return p.printJSON(map[string]any{
			"identifier":         share.Identifier,
			"iteration_exponent": share.IterationExponent,
			"group_index":        share.GroupIndex + 1,
			"group_threshold":    share.GroupThreshold,
			"group_count":        share.GroupCount,
			"member_index":       share.MemberIndex + 1,
			"member_threshold":   share.MemberThreshold,
			"strength_bits":      len(share.Value) * 8,
		})
	case config.OutputText:
		fmt.Fprintf(p.writer, "Identifier:         %d\n", share.Identifier)
		fmt.Fprintf(p.writer, "Iteration exponent: %d\n", share.IterationExponent)
		fmt.Fprintf(p.writer, "Group:              %d of %d (%d required)\n",
			share.GroupIndex+1, share.GroupCount, share.GroupThreshold)
		fmt.Fprintf(p.writer, "Member:             %d (%d required)\n",
			share.MemberIndex+1, share.MemberThreshold)
		fmt.Fprintf(p.writer, "Strength:           %d bits\n", len(share.Value)*8)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintWords prints word candidates, one per line.
func (p *Printer) PrintWords(words []string) error {
	switch p.format {
	case config.OutputJSON:
		if words == nil {
			words = []string{}
		}
		return p.printJSON(map[string]any{"words": words})
	case config.OutputText:
		if len(words) > 0 {
			fmt.Fprintln(p.writer, strings.Join(words, "\n"))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints err, pointing at the suspect word of a mnemonic error.
func (p *Printer) PrintError(err error) error {
	var me *slip39.MnemonicError
	if p.format == config.OutputJSON {
		out := map[string]any{"error": err.Error()}
		if errors.As(err, &me) {
			if me.WordIndex >= 0 {
				out["word"] = me.WordIndex + 1
			}
			if me.Missing > 0 {
				out["missing"] = me.Missing
			}
		}
		return p.printJSON(out)
	}
	_, werr := fmt.Fprintf(p.writer, "Error: %v\n", err)
	return werr
}

func (p *Printer) printJSON(v any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
