package engine

// Input byte classification and the per-byte state machine. Bytes arrive
// through the receive buffer and flow through exactly one of the handlers
// below per Process iteration, depending on the escape state.

func isControlChar(c byte) bool {
	return c == '\r' || c == '\n' || c == '\b' || c == '\t' || c == 0x7F
}

func isDisplayableChar(c byte) bool {
	return c >= 32 && c <= 126
}

// onCharInput appends a printable byte to the command under composition
// and echoes it. Two trailing bytes stay reserved for the tokenizer's
// terminator, so a full buffer silently drops the byte.
func (e *Engine) onCharInput(c byte) {
	if e.cmdSize+2 >= len(e.cmd) {
		return
	}
	e.cmd[e.cmdSize] = c
	e.cmdSize++
	e.cmd[e.cmdSize] = 0
	e.inputLine++
	e.writeChar(c)
}

// onControlInput handles line submission, erase, and completion requests.
func (e *Engine) onControlInput(c byte, handle any) {
	// CR+LF or LF+CR is a single submission; swallow the second byte.
	if (c == '\r' && e.lastChar == '\n') || (c == '\n' && e.lastChar == '\r') {
		return
	}

	switch {
	case c == '\r' || c == '\n':
		e.autocompleteRequest()
		e.writeString(lineBreak)
		if e.cmdSize > 0 {
			e.dispatch(handle)
		}
		e.cmdSize = 0
		e.cmd[0] = 0
		e.inputLine = 0
		e.hist.ResetCursor()
		e.writeString(e.invitation)

	case (c == '\b' || c == 0x7F) && e.cmdSize > 0:
		// Erase the character on screen, not just in the buffer.
		e.writeString("\b \b")
		e.cmdSize--
		e.cmd[e.cmdSize] = 0
		e.inputLine--

	case c == '\t':
		e.autocompleteRequest()
	}
}

// onEscapedInput consumes the body of an ANSI escape sequence. Any byte in
// 0x40..0x7E terminates the sequence; only cursor-up and cursor-down have
// an effect, everything else is swallowed.
func (e *Engine) onEscapedInput(c byte) {
	if c < 0x40 || c > 0x7E {
		return
	}
	e.escapeMode = false
	if c == 'A' || c == 'B' {
		e.navigateHistory(c == 'A')
	}
}

// navigateHistory replaces the line under composition with the next older
// (up) or newer (down) history entry. Stepping below the newest entry
// restores a fresh empty line.
func (e *Engine) navigateHistory(up bool) {
	item, moved := e.hist.Navigate(up)
	if !moved {
		return
	}

	e.clearCurrentLine()
	e.writeString(e.invitation)

	n := copy(e.cmd[:len(e.cmd)-2], item)
	e.cmd[n] = 0
	e.cmdSize = n
	e.inputLine = n
	e.writeString(e.Line())
	e.renderLiveAutocompletion()
}
