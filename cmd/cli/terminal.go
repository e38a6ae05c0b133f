// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const clearScreen = "\x1b[H\x1b[2J"

// terminal is the results viewport of the command line: scrolling to the
// top clears the screen before the next page is printed
type terminal struct {
	out        io.Writer
	fd         int
	isTerminal bool
}

func newTerminal(out io.Writer) *terminal {
	t := &terminal{out: out}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		t.isTerminal = true
	}
	return t
}

// ScrollToTop implements port.Viewport
func (t *terminal) ScrollToTop(context.Context) {
	if t.isTerminal {
		fmt.Fprint(t.out, clearScreen)
	}
}

// Width returns the terminal width, 0 when out is not a terminal
func (t *terminal) Width() int {
	if !t.isTerminal {
		return 0
	}
	width, _, err := term.GetSize(t.fd)
	if err != nil {
		return 0
	}
	return width
}

// readPassword reads a password without echo when in is a terminal
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
