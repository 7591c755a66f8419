// Package engine implements a character-stream command-line engine for
// byte-oriented transports: it turns raw input bytes into an edited,
// tokenized command dispatched to registered handlers, while rendering a
// live command line with history navigation and autocompletion. All
// working memory is carved from a single fixed-size arena at construction;
// steady-state operation performs no buffer growth.
package engine

import (
	"fmt"
	"io"

	"github.com/nathoo/termcore/engine/arena"
	"github.com/nathoo/termcore/engine/fifo"
	"github.com/nathoo/termcore/engine/history"
	"github.com/nathoo/termcore/engine/token"
	"github.com/nathoo/termcore/types"
)

// lineBreak is what the engine writes to move to a new line. CR+LF keeps
// dumb serial terminals happy.
const lineBreak = "\r\n"

// internalBindingCount is the number of bindings the engine registers for
// itself (currently just "help").
const internalBindingCount = 1

// Handler executes a bound command. handle is the opaque value the caller
// passed to Process or ParseDirect; context is the binding's own opaque
// value. args holds the argument bytes: the raw string when the binding
// opts out of tokenization, the tokenized stream otherwise.
type Handler func(handle, context any, args token.Args) types.Status

// CatchAll is the fallback invoked when no binding matches a submitted
// command (or the matched binding has a nil handler).
type CatchAll func(handle any, cmd types.Command)

// PostDispatch is invoked after every handler execution, built-ins
// included, with the handler's status.
type PostDispatch func(handle any, status types.Status)

// Binding registers a named command. Name is matched exactly and
// case-sensitively; registration order decides lookup ties and the help
// listing order.
type Binding struct {
	Name         string
	Help         string
	TokenizeArgs bool
	Handler      Handler
	Context      any
}

// CharWriter is the minimal output sink: one byte at a time, in order.
type CharWriter interface {
	WriteChar(c byte)
}

// StringWriter is an optional upgrade of CharWriter. When the sink
// implements it, the engine writes whole strings instead of iterating.
type StringWriter interface {
	WriteString(s string)
}

// Config enumerates the construction options. All byte capacities are
// fixed for the engine's lifetime.
type Config struct {
	// RxBufferSize is the receive FIFO capacity in bytes. One slot is
	// sacrificed to full/empty disambiguation.
	RxBufferSize int

	// CmdBufferSize is the command buffer capacity in bytes, including the
	// two trailing bytes reserved for the tokenizer's double-NUL.
	CmdBufferSize int

	// HistoryBufferSize is the history store capacity in bytes.
	HistoryBufferSize int

	// MaxBindings is the number of bindings the caller may register. The
	// built-in help command does not count against it.
	MaxBindings int

	// EnableAutoComplete turns on live (per-keystroke) autocompletion
	// rendering. Explicit Tab/submission completion is always available.
	EnableAutoComplete bool

	// Invitation is the prompt printed at the start of each editable line.
	Invitation string

	// Buffer, when non-nil, is a caller-supplied memory region used in
	// place of self-allocation. It must hold at least RequiredSize(cfg)
	// bytes and must not be touched while the engine lives.
	Buffer []byte
}

// DefaultConfig returns the stock configuration: small buffers sized for a
// UART console.
func DefaultConfig() Config {
	return Config{
		RxBufferSize:       64,
		CmdBufferSize:      64,
		HistoryBufferSize:  128,
		MaxBindings:        8,
		EnableAutoComplete: true,
		Invitation:         "> ",
	}
}

// RequiredSize returns the exact byte count a caller-supplied region must
// hold for the given configuration, accounting for the alignment of each
// sub-region. The binding table is a fixed-capacity table allocated once
// at construction and is not part of the byte region.
func RequiredSize(cfg Config) int {
	return arena.Pad(cfg.RxBufferSize) +
		arena.Pad(cfg.CmdBufferSize) +
		arena.Pad(cfg.CmdBufferSize) + // direct-mode scratch
		arena.Pad(cfg.HistoryBufferSize)
}

// Engine is a single character-stream CLI instance. It is not safe for
// concurrent use except for the documented one-producer (ReceiveByte/
// Receive) one-consumer (everything else) split.
type Engine struct {
	out    CharWriter
	outStr StringWriter // non-nil when out can write whole strings

	invitation string

	rx      *fifo.Buffer
	cmd     []byte // command under composition, NUL-terminated at cmdSize
	cmdSize int
	direct  []byte // scratch for direct-mode parsing

	hist *history.Store

	bindings    []Binding
	names       []string // binding names, parallel to bindings
	marks       []bool   // autocomplete candidate marks, parallel to bindings
	maxBindings int

	// inputLine is the length of the displayed line past the invitation:
	// the command plus any live-autocompletion ghost text.
	inputLine int

	lastChar     byte
	escapeMode   bool
	overflowed   bool
	initDone     bool
	directPrint  bool
	autoComplete bool

	catchAll     CatchAll
	postDispatch PostDispatch
}

// New creates an engine from the configuration. Memory for all byte
// sub-regions comes from cfg.Buffer when supplied, otherwise from one
// self-allocated block sized by RequiredSize.
func New(cfg Config) (*Engine, error) {
	if cfg.RxBufferSize < 2 {
		return nil, fmt.Errorf("engine: rx buffer of %d bytes cannot hold input", cfg.RxBufferSize)
	}
	if cfg.CmdBufferSize < 3 {
		return nil, fmt.Errorf("engine: command buffer of %d bytes leaves no room past the reserved terminator", cfg.CmdBufferSize)
	}
	if cfg.HistoryBufferSize < 0 || cfg.MaxBindings < 0 {
		return nil, fmt.Errorf("engine: negative capacity in configuration")
	}

	required := RequiredSize(cfg)
	var a *arena.Arena
	if cfg.Buffer != nil {
		if len(cfg.Buffer) < required {
			return nil, fmt.Errorf("engine: caller buffer holds %d bytes, configuration needs %d", len(cfg.Buffer), required)
		}
		a = arena.From(cfg.Buffer)
	} else {
		a = arena.New(required)
	}

	maxBindings := cfg.MaxBindings + internalBindingCount
	e := &Engine{
		invitation:   cfg.Invitation,
		rx:           fifo.New(a.Take(cfg.RxBufferSize)),
		cmd:          a.Take(cfg.CmdBufferSize),
		direct:       a.Take(cfg.CmdBufferSize),
		hist:         history.New(a.Take(cfg.HistoryBufferSize)),
		bindings:     make([]Binding, 0, maxBindings),
		names:        make([]string, 0, maxBindings),
		marks:        make([]bool, maxBindings),
		maxBindings:  maxBindings,
		autoComplete: cfg.EnableAutoComplete,
	}

	e.AddBinding(Binding{
		Name:         "help",
		Help:         "Print list of commands",
		TokenizeArgs: true,
		Handler:      e.onHelp,
	})

	return e, nil
}

// SetOutput wires the output sink. The engine prefers whole-string writes
// when the sink implements StringWriter. With a nil sink, Process and
// Print do nothing.
func (e *Engine) SetOutput(out CharWriter) {
	e.out = out
	e.outStr, _ = out.(StringWriter)
}

// SetCatchAll installs the fallback handler for unmatched commands in
// byte-stream mode. Direct mode never invokes it.
func (e *Engine) SetCatchAll(fn CatchAll) {
	e.catchAll = fn
}

// SetPostDispatch installs the hook invoked after every handler execution
// with the handler's status.
func (e *Engine) SetPostDispatch(fn PostDispatch) {
	e.postDispatch = fn
}

// AddBinding registers a command. Returns false once the table is full.
func (e *Engine) AddBinding(b Binding) bool {
	if len(e.bindings) == e.maxBindings {
		return false
	}
	e.bindings = append(e.bindings, b)
	e.names = append(e.names, b.Name)
	return true
}

// ReceiveByte appends one raw input byte to the receive buffer. It is safe
// to call from a producer context (interrupt handler, reader goroutine):
// it never allocates, blocks, or writes output. On a full buffer the byte
// is dropped and a sticky overflow flag is raised for the next Process
// pass to consume.
func (e *Engine) ReceiveByte(c byte) {
	if !e.rx.Push(c) {
		e.overflowed = true
	}
}

// Receive appends a chunk of raw input bytes, byte by byte.
func (e *Engine) Receive(data []byte) {
	for _, c := range data {
		e.ReceiveByte(c)
	}
}

// Process drains all currently buffered input bytes through the state
// machine, then returns; it never waits for more input. handle is an
// opaque value passed through to handlers and the post-dispatch hook. The
// first call prints the invitation. Must be called from a single
// consistent consumer context.
func (e *Engine) Process(handle any) {
	if e.out == nil {
		return
	}

	if !e.initDone {
		e.initDone = true
		e.writeString(e.invitation)
	}

	for e.rx.Available() > 0 {
		c := e.rx.Pop()

		switch {
		case e.escapeMode:
			e.onEscapedInput(c)
		case e.lastChar == 0x1B && c == '[':
			e.escapeMode = true
		case isControlChar(c):
			e.onControlInput(c, handle)
		case isDisplayableChar(c):
			e.onCharInput(c)
		}

		e.renderLiveAutocompletion()
		e.lastChar = c
	}

	// A receive overflow poisons only the command still under
	// composition: discard it and carry on.
	if e.overflowed {
		e.cmdSize = 0
		e.cmd[0] = 0
		e.overflowed = false
	}
}

// Line returns the command currently under composition.
func (e *Engine) Line() string {
	return string(e.cmd[:e.cmdSize])
}

// Print writes text followed by a line break, clearing and repainting the
// live edit line around it so asynchronous output does not corrupt the
// in-progress command. During handler execution the repaint is skipped
// because no edit line is on screen.
func (e *Engine) Print(text string) {
	if e.out == nil {
		return
	}

	if !e.directPrint {
		e.clearCurrentLine()
	}

	e.writeString(text)
	e.writeString(lineBreak)

	if !e.directPrint {
		e.writeString(e.invitation)
		e.writeString(e.Line())
		e.inputLine = e.cmdSize
		e.renderLiveAutocompletion()
	}
}

// OutputTo adapts an io.Writer into an engine output sink. The adapter
// implements StringWriter, so string writes go through in one call.
func OutputTo(w io.Writer) CharWriter {
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) WriteChar(c byte) {
	s.w.Write([]byte{c})
}

func (s *writerSink) WriteString(str string) {
	io.WriteString(s.w, str)
}
