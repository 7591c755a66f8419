package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/termcore/engine"
	"github.com/nathoo/termcore/engine/token"
	"github.com/nathoo/termcore/types"
)

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.EnableAutoComplete = false
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	return &CLI{
		Engine: eng,
		In:     strings.NewReader(input),
		Out:    &out,
	}, &out
}

func TestRunDispatchesCommands(t *testing.T) {
	c, out := newTestCLI(t, "greet world\r")

	var got string
	c.Engine.AddBinding(engine.Binding{
		Name:         "greet",
		TokenizeArgs: true,
		Handler: func(handle, context any, args token.Args) types.Status {
			got = string(args.Get(1))
			return types.StatusOK
		},
	})

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "world" {
		t.Errorf("handler arg = %q, want %q", got, "world")
	}
	if !strings.HasPrefix(out.String(), "> ") {
		t.Errorf("output does not start with the invitation: %q", out.String())
	}
}

func TestRunStopsOnEOF(t *testing.T) {
	c, out := newTestCLI(t, "hel")

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "hel") {
		t.Errorf("typed input not echoed: %q", out.String())
	}
}

func TestRunStopsOnControlByte(t *testing.T) {
	calls := 0
	c, _ := newTestCLI(t, "ping\r\x04ping\r")
	c.Engine.AddBinding(engine.Binding{
		Name: "ping",
		Handler: func(handle, context any, args token.Args) types.Status {
			calls++
			return types.StatusOK
		},
	})

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Errorf("dispatched %d times, want 1 (session ends at Ctrl-D)", calls)
	}
}

func TestRunPassesHandle(t *testing.T) {
	type session struct{ user string }
	want := &session{user: "op"}

	c, _ := newTestCLI(t, "who\r")
	c.Handle = want

	var got any
	c.Engine.AddBinding(engine.Binding{
		Name: "who",
		Handler: func(handle, context any, args token.Args) types.Status {
			got = handle
			return types.StatusOK
		},
	})

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != want {
		t.Errorf("handler handle = %v, want %v", got, want)
	}
}
