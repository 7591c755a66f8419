package script

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/termcore/engine"
	"github.com/nathoo/termcore/types"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func newTestEngine(t *testing.T) (*engine.Engine, *bytes.Buffer) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.EnableAutoComplete = false
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var out bytes.Buffer
	eng.SetOutput(engine.OutputTo(&out))
	return eng, &out
}

func feed(eng *engine.Engine, s string) {
	eng.Receive([]byte(s))
	eng.Process(nil)
}

func TestLoadRegistersCommands(t *testing.T) {
	path := writeScript(t, `
Command "greet" {
	help = "Greet someone",
	tokenize = true,
	run = function(who)
		print("hello " .. who)
	end,
}
`)
	eng, out := newTestEngine(t)
	s, err := Load(path, eng)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()

	feed(eng, "greet crew\r")

	if !strings.Contains(out.String(), "hello crew\r\n") {
		t.Errorf("handler output missing: %q", out.String())
	}

	feed(eng, "help greet\r")
	if !strings.Contains(out.String(), "\tGreet someone\r\n") {
		t.Errorf("help text not registered: %q", out.String())
	}
}

func TestRawHandlerGetsWholeArgString(t *testing.T) {
	path := writeScript(t, `
Command "echo" {
	run = function(args)
		print(args)
	end,
}
`)
	eng, out := newTestEngine(t)
	s, err := Load(path, eng)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()

	feed(eng, "echo one \"two three\"\r")

	if !strings.Contains(out.String(), "one \"two three\"\r\n") {
		t.Errorf("raw args not passed through: %q", out.String())
	}
}

func TestHandlerStatus(t *testing.T) {
	path := writeScript(t, `
Command "nothing" {
	run = function() end,
}
Command "fail" {
	run = function()
		return 2
	end,
}
Command "veto" {
	run = function()
		return false
	end,
}
Command "boom" {
	run = function()
		error("kaput")
	end,
}
`)
	eng, out := newTestEngine(t)
	s, err := Load(path, eng)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()

	var last types.Status
	eng.SetPostDispatch(func(handle any, status types.Status) {
		last = status
	})

	feed(eng, "nothing\r")
	if last != types.StatusOK {
		t.Errorf("no return reported status %d, want ok", last)
	}

	feed(eng, "fail\r")
	if last != types.Status(2) {
		t.Errorf("integer return reported status %d, want 2", last)
	}

	feed(eng, "veto\r")
	if last != types.StatusError {
		t.Errorf("returning false reported status %d, want error", last)
	}

	feed(eng, "boom\r")
	if last != types.StatusError {
		t.Errorf("raising reported status %d, want error", last)
	}
	if !strings.Contains(out.String(), "script error:") {
		t.Errorf("raise not surfaced: %q", out.String())
	}
}

func TestLoadRejectsBadScript(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax error", `Command "x" {`},
		{"missing run", `Command "x" { help = "no handler" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine(t)
			if _, err := Load(writeScript(t, tt.body), eng); err == nil {
				t.Error("Load accepted a bad script")
			}
		})
	}
}

func TestSandboxBlocksFilesystem(t *testing.T) {
	path := writeScript(t, `
if os ~= nil or io ~= nil or dofile ~= nil then
	error("sandbox leak")
end
`)
	eng, _ := newTestEngine(t)
	s, err := Load(path, eng)
	if err != nil {
		t.Fatalf("sandbox leaked a global: %v", err)
	}
	s.Close()
}
