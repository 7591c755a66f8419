package engine

import (
	"github.com/nathoo/termcore/engine/token"
	"github.com/nathoo/termcore/types"
)

// Command submission: name/args splitting, binding lookup and handler
// invocation. Both the interactive path (line submission) and the direct
// path (ParseDirect) funnel into parse; they differ in which buffer they
// mutate and in how misses are reported.

// dispatch parses the command under composition. Called on submission of a
// non-empty line.
func (e *Engine) dispatch(handle any) {
	e.parse(e.cmd, e.cmdSize, false, handle)
}

// ParseDirect executes a command string programmatically, bypassing the
// receive buffer, line editing and history. Unmatched commands fail
// silently: no catch-all, no output. Commands longer than the configured
// command buffer fail.
func (e *Engine) ParseDirect(command string, handle any) types.Status {
	if len(command)+2 > len(e.direct) {
		return types.StatusError
	}
	n := copy(e.direct, command)
	e.direct[n] = 0
	e.direct[n+1] = 0
	return e.parse(e.direct, n, true, handle)
}

func (e *Engine) parse(buf []byte, size int, direct bool, handle any) types.Status {
	empty := true
	for i := 0; i < size; i++ {
		if buf[i] != ' ' {
			empty = false
			break
		}
	}
	// a blank line is not an error, just nothing to do
	if empty {
		return types.StatusOK
	}

	if !direct {
		// record the raw line before the buffer is carved up below
		e.hist.Put(string(buf[:size]))
	}

	// Split name from args in place: leading and separating spaces become
	// NULs so the name reads as a terminated string, args keep their raw
	// bytes for the binding to tokenize (or not).
	nameIdx, argsIdx := -1, -1
	nameFinished := false
	for i := 0; i < size; i++ {
		c := buf[i]
		switch {
		case c == ' ':
			if argsIdx < 0 {
				buf[i] = 0
			}
			if nameIdx >= 0 {
				nameFinished = true
			}
		case nameIdx < 0:
			nameIdx = i
		case argsIdx < 0 && nameFinished:
			argsIdx = i
		}
	}
	buf[size] = 0
	buf[size+1] = 0

	nameEnd := nameIdx
	for nameEnd < size && buf[nameEnd] != 0 {
		nameEnd++
	}
	name := string(buf[nameIdx:nameEnd])

	var args token.Args
	if argsIdx >= 0 {
		args = token.Args(buf[argsIdx : size+2])
	} else {
		args = token.Args(buf[size : size+2])
	}

	for i := range e.bindings {
		b := &e.bindings[i]
		if b.Name != name {
			continue
		}
		if b.Handler == nil {
			// registered but handler-less: treat as unmatched
			break
		}
		if b.TokenizeArgs {
			token.Tokenize(args)
		}
		e.invoke(handle, b, args, direct)
		// the command was matched; the handler's own status already went
		// to the post-dispatch hook
		return types.StatusOK
	}

	if direct {
		return types.StatusError
	}

	if e.catchAll != nil {
		e.directPrint = true
		e.catchAll(handle, types.Command{Name: name, Args: args.Raw()})
		e.directPrint = false
	} else {
		e.unknownCommand(name)
		if e.postDispatch != nil {
			e.postDispatch(handle, types.StatusError)
		}
	}
	return types.StatusError
}

// invoke runs a matched handler. On the interactive path the direct-print
// flag is held for the duration so handler output lands on the already
// vacated line; the flag is dropped again on every exit path.
func (e *Engine) invoke(handle any, b *Binding, args token.Args, direct bool) {
	if !direct {
		e.directPrint = true
		defer func() { e.directPrint = false }()
	}
	status := b.Handler(handle, b.Context, args)
	if e.postDispatch != nil {
		e.postDispatch(handle, status)
	}
}

func (e *Engine) unknownCommand(name string) {
	e.writeString("Unknown command: \"")
	e.writeString(name)
	e.writeString("\". Write \"help\" for a list of available commands")
	e.writeString(lineBreak)
}

// onHelp implements the built-in help command: with no argument it lists
// every binding, with one argument it shows that binding's help text.
func (e *Engine) onHelp(handle, context any, args token.Args) types.Status {
	switch args.Count() {
	case 0:
		for i := range e.bindings {
			e.printHelpEntry(&e.bindings[i])
		}

	case 1:
		name := string(args.Get(1))
		for i := range e.bindings {
			b := &e.bindings[i]
			if b.Name != name {
				continue
			}
			if b.Help == "" {
				e.writeString("Help is not available")
				e.writeString(lineBreak)
				return types.StatusError
			}
			e.printHelpEntry(b)
			return types.StatusOK
		}
		e.unknownCommand(name)
		return types.StatusError

	default:
		e.writeString("Command \"help\" receives one or zero arguments")
		e.writeString(lineBreak)
		return types.StatusError
	}
	return types.StatusOK
}

func (e *Engine) printHelpEntry(b *Binding) {
	e.writeString(" * ")
	e.writeString(b.Name)
	e.writeString(lineBreak)
	if b.Help != "" {
		e.writeChar('\t')
		e.writeString(b.Help)
		e.writeString(lineBreak)
	}
}
