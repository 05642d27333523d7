package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads interactive input. A single bufio.Reader is shared
// across prompts so buffered input is not lost between reads.
type prompter struct {
	raw    io.Reader
	reader *bufio.Reader
	errOut io.Writer
}

func newPrompter(in io.Reader, errOut io.Writer) *prompter {
	return &prompter{raw: in, reader: bufio.NewReader(in), errOut: errOut}
}

// Line prints the label and reads one line.
func (p *prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.errOut, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a password without echo when the input is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func (p *prompter) Password(label string) (string, error) {
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(p.errOut, "%s: ", label)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.errOut)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	return p.Line(label)
}
