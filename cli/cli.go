// Package cli runs a command engine against a host terminal: it puts the
// terminal into raw mode, pumps input bytes into the engine, and lets the
// engine write its screen updates straight back out.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/nathoo/termcore/engine"
)

// Control bytes that terminate the session. In raw mode these arrive as
// plain input instead of signals.
const (
	ctrlC = 0x03
	ctrlD = 0x04
)

// CLI pumps a byte stream between a terminal and an engine.
type CLI struct {
	Engine *engine.Engine
	In     io.Reader
	Out    io.Writer

	// Handle is passed through to command handlers and the post-dispatch
	// hook on every processing pass.
	Handle any
}

// New creates a CLI wired to the given engine, talking to stdin/stdout.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run pumps input until EOF, Ctrl-C or Ctrl-D. When In is a terminal it is
// switched to raw mode for the duration so the engine sees every keystroke,
// escape sequences included.
func (c *CLI) Run() error {
	c.Engine.SetOutput(engine.OutputTo(c.Out))

	if f, ok := c.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		old, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("cli: enter raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), old)
	}

	// prints the invitation before the first keystroke
	c.Engine.Process(c.Handle)

	buf := make([]byte, 64)
	for {
		n, err := c.In.Read(buf)
		for _, b := range buf[:n] {
			if b == ctrlC || b == ctrlD {
				c.Engine.Process(c.Handle)
				fmt.Fprint(c.Out, "\r\n")
				return nil
			}
			c.Engine.ReceiveByte(b)
		}
		c.Engine.Process(c.Handle)

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("cli: read input: %w", err)
		}
	}
}
