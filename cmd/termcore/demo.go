package main

import (
	"fmt"
	"strconv"

	"github.com/nathoo/termcore/engine"
	"github.com/nathoo/termcore/engine/token"
	"github.com/nathoo/termcore/types"
)

// board fakes a bit of peripheral state so the demo commands have
// something to read and write.
type board struct {
	leds [4]int
	adc  uint16
}

// read returns a pseudo ADC sample, different on every call.
func (b *board) read() uint16 {
	b.adc = b.adc*31 + 7
	return b.adc
}

func registerDemoCommands(eng *engine.Engine) {
	b := &board{}

	eng.AddBinding(engine.Binding{
		Name:         "get-led",
		Help:         "Read led brightness: get-led <n>",
		TokenizeArgs: true,
		Context:      b,
		Handler: func(handle, context any, args token.Args) types.Status {
			b := context.(*board)
			if args.Count() != 1 {
				eng.Print("usage: get-led <n>")
				return types.StatusError
			}
			n, err := strconv.Atoi(string(args.Get(1)))
			if err != nil || n < 0 || n >= len(b.leds) {
				eng.Print("no such led")
				return types.StatusError
			}
			eng.Print(fmt.Sprintf("led %d: %d", n, b.leds[n]))
			return types.StatusOK
		},
	})

	eng.AddBinding(engine.Binding{
		Name:         "set-led",
		Help:         "Set led brightness: set-led <n> <0-255>",
		TokenizeArgs: true,
		Context:      b,
		Handler: func(handle, context any, args token.Args) types.Status {
			b := context.(*board)
			if args.Count() != 2 {
				eng.Print("usage: set-led <n> <0-255>")
				return types.StatusError
			}
			n, err := strconv.Atoi(string(args.Get(1)))
			if err != nil || n < 0 || n >= len(b.leds) {
				eng.Print("no such led")
				return types.StatusError
			}
			v, err := strconv.Atoi(string(args.Get(2)))
			if err != nil || v < 0 || v > 255 {
				eng.Print("brightness must be 0-255")
				return types.StatusError
			}
			b.leds[n] = v
			return types.StatusOK
		},
	})

	eng.AddBinding(engine.Binding{
		Name:         "get-adc",
		Help:         "Sample the adc",
		TokenizeArgs: true,
		Context:      b,
		Handler: func(handle, context any, args token.Args) types.Status {
			b := context.(*board)
			eng.Print(fmt.Sprintf("adc: %d", b.read()))
			return types.StatusOK
		},
	})

	eng.AddBinding(engine.Binding{
		Name: "clear",
		Help: "Clear the screen",
		Handler: func(handle, context any, args token.Args) types.Status {
			eng.Print("\x1b[2J\x1b[H")
			return types.StatusOK
		},
	})
}
