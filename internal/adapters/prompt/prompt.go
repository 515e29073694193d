// Package prompt implements operator confirmation.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/example/hnp/internal/ports/secondary"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var ErrNotInteractive = errors.New("confirmation required but stdin is not a terminal (use --yes)")

// lineReader is the part of *liner.State the confirmer uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

func newLiner() lineReader {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return l
}

// TerminalConfirmer asks a yes/no question on the terminal. Anything other
// than an explicit yes is a no.
type TerminalConfirmer struct {
	out        io.Writer
	isTerminal func() bool
	open       func() lineReader
}

// NewTerminalConfirmer creates a confirmer that prints questions to out.
func NewTerminalConfirmer(out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{
		out: out,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		open: newLiner,
	}
}

// Confirm prints message and reads a y/N answer.
func (c *TerminalConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !c.isTerminal() {
		return false, ErrNotInteractive
	}

	fmt.Fprintln(c.out, message)

	l := c.open()
	defer l.Close()

	answer, err := l.Prompt("Proceed? [y/N] ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return parseAnswer(answer), nil
}

// parseAnswer treats "y" and "yes" in any case as agreement.
func parseAnswer(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// AutoConfirmer agrees to everything. It backs --yes.
type AutoConfirmer struct {
	out io.Writer
}

// NewAutoConfirmer creates a confirmer that echoes questions to out, if set.
func NewAutoConfirmer(out io.Writer) *AutoConfirmer {
	return &AutoConfirmer{out: out}
}

// Confirm always returns true.
func (c *AutoConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if c.out != nil {
		fmt.Fprintf(c.out, "%s\nProceed? [y/N] y (--yes)\n", message)
	}
	return true, nil
}

var (
	_ secondary.Confirmer = (*TerminalConfirmer)(nil)
	_ secondary.Confirmer = (*AutoConfirmer)(nil)
)
