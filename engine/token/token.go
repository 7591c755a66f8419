// Package token implements the in-place command tokenizer. Tokenization
// rewrites separator and quote bytes to NUL in the original buffer and
// terminates the result with two consecutive NUL bytes; tokens are the
// non-empty runs in between, addressed by 1-based position.
package token

// Args is a byte sequence holding command arguments. Before Tokenize it is
// a plain NUL-terminated string; afterwards it is the NUL-separated,
// double-NUL-terminated token stream described above. Token positions are
// stable only until the underlying buffer is mutated again.
type Args []byte

// Tokenize splits buf into tokens in place. A backslash escapes the next
// byte literally (the backslash itself is dropped), an unescaped double
// quote toggles quote mode, and outside quotes every space becomes a
// separator. Runs of separators collapse so no empty tokens are produced.
//
// The transform is destructive and one-way. buf must have at least two
// bytes of slack past its content for the double-NUL terminator; the
// engine's command buffer reserves exactly that.
func Tokenize(buf Args) {
	if len(buf) < 2 {
		return
	}

	quoted := false
	escaped := false
	insert := 0

	for i := 0; i < len(buf) && buf[i] != 0; i++ {
		c := buf[i]

		if escaped {
			escaped = false
		} else if c == '\\' {
			escaped = true
			continue
		} else if c == '"' {
			quoted = !quoted
			c = 0
		} else if !quoted && c == ' ' {
			c = 0
		}

		// NUL bytes are written only once and never at the start.
		if c != 0 || (insert > 0 && buf[insert-1] != 0) {
			buf[insert] = c
			insert++
		}
	}

	if insert > len(buf)-2 {
		insert = len(buf) - 2
	}
	buf[insert] = 0
	buf[insert+1] = 0
}

// position returns the index of the first byte of the requested token, or
// -1 when pos is 0 or past the last token.
func (a Args) position(pos int) int {
	if len(a) == 0 || pos == 0 {
		return -1
	}

	i := 0
	count := 1
	for count != pos {
		if i+1 >= len(a) {
			return -1
		}
		if a[i] == 0 {
			count++
			if a[i+1] == 0 {
				break
			}
		}
		i++
	}

	if i < len(a) && a[i] != 0 {
		return i
	}
	return -1
}

// Get returns the token at the 1-based position, or nil if pos is 0 or
// exceeds the token count. The returned slice aliases the underlying
// buffer.
func (a Args) Get(pos int) []byte {
	i := a.position(pos)
	if i < 0 {
		return nil
	}
	j := i
	for j < len(a) && a[j] != 0 {
		j++
	}
	return a[i:j]
}

// Count returns the number of tokens. Empty or nil input yields 0.
func (a Args) Count() int {
	if len(a) == 0 || a[0] == 0 {
		return 0
	}

	count := 1
	for i := 0; i < len(a); i++ {
		if a[i] == 0 {
			if i+1 >= len(a) || a[i+1] == 0 {
				break
			}
			count++
		}
	}
	return count
}

// Find returns the 1-based position of the first token equal to value, or
// 0 if no token matches.
func (a Args) Find(value string) int {
	n := a.Count()
	for i := 1; i <= n; i++ {
		if string(a.Get(i)) == value {
			return i
		}
	}
	return 0
}

// Raw returns the argument bytes up to the first NUL as a string. It is
// the untokenized view handed to handlers that opt out of tokenization.
func (a Args) Raw() string {
	for i, c := range a {
		if c == 0 {
			return string(a[:i])
		}
	}
	return string(a)
}
