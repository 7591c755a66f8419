package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nathoo/termcore/engine"
)

func newDemoEngine(t *testing.T) (*engine.Engine, *bytes.Buffer) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.EnableAutoComplete = false
	cfg.MaxBindings = 16
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	registerDemoCommands(eng)
	var out bytes.Buffer
	eng.SetOutput(engine.OutputTo(&out))
	return eng, &out
}

func feed(eng *engine.Engine, s string) {
	eng.Receive([]byte(s))
	eng.Process(nil)
}

func TestLedRoundTrip(t *testing.T) {
	eng, out := newDemoEngine(t)

	feed(eng, "set-led 1 200\rget-led 1\r")

	if !strings.Contains(out.String(), "led 1: 200\r\n") {
		t.Errorf("output missing led reading: %q", out.String())
	}
}

func TestDemoUsageErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing index", "get-led\r", "usage: get-led <n>"},
		{"bad index", "get-led 9\r", "no such led"},
		{"bad brightness", "set-led 0 999\r", "brightness must be 0-255"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, out := newDemoEngine(t)
			feed(eng, tt.input)
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q does not contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestAdcAdvances(t *testing.T) {
	eng, out := newDemoEngine(t)

	feed(eng, "get-adc\rget-adc\r")

	first := strings.Index(out.String(), "adc: ")
	second := strings.LastIndex(out.String(), "adc: ")
	if first < 0 || second <= first {
		t.Fatalf("expected two adc readings: %q", out.String())
	}
}
