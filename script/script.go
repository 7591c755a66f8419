// Package script wires Lua-defined commands into a command engine. A
// script declares commands with the curried `Command "name" { ... }`
// constructor; the Lua VM stays alive for the engine's lifetime so
// handlers can run on dispatch.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/termcore/engine"
	"github.com/nathoo/termcore/engine/token"
	"github.com/nathoo/termcore/types"
)

// Script holds the Lua VM backing a set of engine bindings. Close it once
// the engine is done dispatching.
type Script struct {
	L   *lua.LState
	eng *engine.Engine
}

// Load executes the Lua file at path in a sandboxed VM and registers every
// command it declares into eng.
func Load(path string, eng *engine.Engine) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)

	s := &Script{L: L, eng: eng}
	registerAPI(L, s)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: executing %s: %w", path, err)
	}

	return s, nil
}

// Close shuts down the Lua VM. Bindings registered from the script must
// not be dispatched afterwards.
func (s *Script) Close() {
	s.L.Close()
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
}

// registerAPI registers the Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, s *Script) {
	// Command "name" { help = "...", tokenize = true, run = function(...) end }
	// Curried: Command("name") returns a function that takes the table.
	L.SetGlobal("Command", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)

			fn, ok := tbl.RawGetString("run").(*lua.LFunction)
			if !ok {
				L.RaiseError("Command %q: run function is required", name)
				return 0
			}
			tokenize := lua.LVAsBool(tbl.RawGetString("tokenize"))

			added := s.eng.AddBinding(engine.Binding{
				Name:         name,
				Help:         lua.LVAsString(tbl.RawGetString("help")),
				TokenizeArgs: tokenize,
				Handler:      s.handler(fn, tokenize),
			})
			if !added {
				L.RaiseError("Command %q: binding table is full", name)
			}
			return 0
		}))
		return 1
	}))

	// print(text) writes through the engine so the edit line survives.
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		s.eng.Print(L.OptString(1, ""))
		return 0
	}))
}

// handler adapts a Lua function into an engine handler. Tokenized bindings
// pass each token as a separate string argument, raw bindings pass the
// single raw argument string. The handler's status is its integer return:
// absent or zero is success. Returning false or raising also reports
// failure.
func (s *Script) handler(fn *lua.LFunction, tokenize bool) engine.Handler {
	return func(handle, context any, args token.Args) types.Status {
		var in []lua.LValue
		if tokenize {
			for i := 1; i <= args.Count(); i++ {
				in = append(in, lua.LString(args.Get(i)))
			}
		} else {
			in = append(in, lua.LString(args.Raw()))
		}

		err := s.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, in...)
		if err != nil {
			s.eng.Print(fmt.Sprintf("script error: %v", err))
			return types.StatusError
		}

		ret := s.L.Get(-1)
		s.L.Pop(1)
		switch v := ret.(type) {
		case lua.LNumber:
			return types.Status(uint8(v))
		case lua.LBool:
			if !bool(v) {
				return types.StatusError
			}
		}
		return types.StatusOK
	}
}
