package engine

import "github.com/nathoo/termcore/engine/autocomplete"

// Screen painting. The engine owns exactly one editable line, prefixed by
// the invitation; everything here repaints that line in place using only
// \r, \b and space padding, so it works on raw serial terminals.

func (e *Engine) writeChar(c byte) {
	e.out.WriteChar(c)
}

func (e *Engine) writeString(s string) {
	if e.outStr != nil {
		e.outStr.WriteString(s)
		return
	}
	for i := 0; i < len(s); i++ {
		e.out.WriteChar(s[i])
	}
}

// clearCurrentLine blanks the invitation and everything typed or ghosted
// after it, leaving the cursor at column zero.
func (e *Engine) clearCurrentLine() {
	n := e.inputLine + len(e.invitation)
	e.writeChar('\r')
	for i := 0; i < n; i++ {
		e.writeChar(' ')
	}
	e.writeChar('\r')
	e.inputLine = 0
}

// renderLiveAutocompletion paints the common completion prefix as ghost
// text past the typed command, blanks whatever longer ghost the previous
// keystroke left, and parks the cursor back at the end of the real input.
func (e *Engine) renderLiveAutocompletion() {
	if !e.autoComplete {
		return
	}

	r := autocomplete.Compute(e.names, e.Line(), e.marks)
	if r.Count == 0 {
		r.CommonLen = e.cmdSize
	}

	for i := e.cmdSize; i < r.CommonLen; i++ {
		e.writeChar(r.FirstCandidate[i])
	}
	for i := r.CommonLen; i < e.inputLine; i++ {
		e.writeChar(' ')
	}
	e.inputLine = r.CommonLen

	// reprint the line so the cursor lands right after the typed input
	e.writeChar('\r')
	e.writeString(e.invitation)
	e.writeString(e.Line())
}

// autocompleteRequest performs explicit completion (Tab or submission).
// A unique candidate completes fully plus a trailing space; a shared
// prefix longer than the input completes to it; otherwise all candidates
// are listed and the line reprinted.
func (e *Engine) autocompleteRequest() {
	r := autocomplete.Compute(e.names, e.Line(), e.marks)
	if r.Count == 0 {
		return
	}

	if r.Count == 1 || r.CommonLen > e.cmdSize {
		// the completed command, trailing space included, must still leave
		// the two reserved terminator bytes free
		needed := r.CommonLen
		if r.Count == 1 {
			needed++
		}
		if needed+2 >= len(e.cmd) {
			return
		}
		copy(e.cmd, r.FirstCandidate[:r.CommonLen])
		if r.Count == 1 {
			e.cmd[r.CommonLen] = ' '
			r.CommonLen++
		}
		e.cmd[r.CommonLen] = 0

		e.writeString(string(e.cmd[e.cmdSize:r.CommonLen]))
		e.cmdSize = r.CommonLen
		e.inputLine = e.cmdSize
		return
	}

	// Multiple candidates and the input already covers the shared prefix:
	// list them all, then restore the edit line.
	e.clearCurrentLine()
	for i := range e.bindings {
		if !e.marks[i] {
			continue
		}
		e.writeString(e.bindings[i].Name)
		e.writeString(lineBreak)
	}
	e.writeString(e.invitation)
	e.writeString(e.Line())
	e.inputLine = e.cmdSize
}
