// Termcore is an embedded-style command line: a fixed-memory engine that
// edits, completes and dispatches commands from a raw byte stream.
// Usage: termcore [--plain] [--script <file>] [--invitation <s>] [--no-autocomplete]
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/nathoo/termcore/cli"
	"github.com/nathoo/termcore/engine"
	"github.com/nathoo/termcore/script"
	"github.com/nathoo/termcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		plain       = flag.Bool("plain", false, "use the plain terminal front-end instead of the TUI")
		scriptFile  = flag.String("script", "", "Lua file with extra command definitions")
		invitation  = flag.String("invitation", "> ", "prompt printed before each command")
		noComplete  = flag.Bool("no-autocomplete", false, "disable live autocompletion")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("termcore %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	cfg := engine.DefaultConfig()
	cfg.Invitation = *invitation
	cfg.EnableAutoComplete = !*noComplete
	cfg.MaxBindings = 16

	eng, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registerDemoCommands(eng)

	if *scriptFile != "" {
		s, err := script.Load(*scriptFile, eng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
	}

	// Use the plain front-end when asked or when stdout is piped.
	if *plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		c := cli.New(eng)
		if err := c.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
