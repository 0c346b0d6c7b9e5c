package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrPassphraseMismatch = errors.New("passphrases do not match")

// terminalFd returns the file descriptor of r if it is a terminal.
func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// readLine reads one line from r without its line ending. A final line
// without a newline is returned as is.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// readPassphraseSecure prompts on prompter and reads a passphrase without
// echo. It falls back to a plain line read if the input is not a terminal.
func (a *app) readPassphraseSecure(prompter io.Writer, prompt string) (string, error) {
	fmt.Fprint(prompter, prompt)

	fd, isTerm := terminalFd(a.rawIn)
	if !isTerm {
		pw, err := readLine(a.in)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return pw, nil
	}

	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(prompter)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pw), nil
}

// readPassphraseInteractive prompts for a passphrase. An empty passphrase
// is valid. If confirm is true it is asked for twice.
func (a *app) readPassphraseInteractive(prompter io.Writer, confirm bool) ([]byte, error) {
	pw, err := a.readPassphraseSecure(prompter, "Passphrase: ")
	if err != nil {
		return nil, err
	}
	if confirm {
		again, err := a.readPassphraseSecure(prompter, "Confirm passphrase: ")
		if err != nil {
			return nil, err
		}
		if pw != again {
			return nil, ErrPassphraseMismatch
		}
	}
	return []byte(pw), nil
}

// passphrase resolves the --passphrase and --passphrase-prompt flags.
func (a *app) passphrase(prompter io.Writer, value string, prompt, confirm bool) ([]byte, error) {
	if prompt {
		return a.readPassphraseInteractive(prompter, confirm)
	}
	return []byte(value), nil
}
