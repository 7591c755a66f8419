// Package tui provides a Bubble Tea terminal UI for a command engine.
package tui

import "strings"

// screen is a minimal terminal emulator for engine output. The engine
// paints its edit line with carriage returns, backspaces and space
// overwrites; screen interprets just that repertoire so the viewport can
// show what a serial terminal would.
type screen struct {
	lines []string // scrollback, oldest first
	cur   []byte   // line under the cursor
	col   int
}

func newScreen() *screen {
	return &screen{}
}

func (s *screen) WriteChar(c byte) {
	switch c {
	case '\r':
		s.col = 0
	case '\n':
		s.lines = append(s.lines, strings.TrimRight(string(s.cur), " "))
		s.cur = s.cur[:0]
		s.col = 0
	case '\b':
		if s.col > 0 {
			s.col--
		}
	default:
		for s.col >= len(s.cur) {
			s.cur = append(s.cur, ' ')
		}
		s.cur[s.col] = c
		s.col++
	}
}

func (s *screen) WriteString(str string) {
	for i := 0; i < len(str); i++ {
		s.WriteChar(str[i])
	}
}

// Current returns the line under the cursor with trailing blanks trimmed.
func (s *screen) Current() string {
	return strings.TrimRight(string(s.cur), " ")
}

// Lines returns the completed scrollback lines.
func (s *screen) Lines() []string {
	return s.lines
}
