package framer

// The two families of blank-line patterns ending a header or trailer block
// ("\r\n\r\n"/"\n\r\n" and "\r\n\n"/"\n\n") both reduce to: a line-ending
// LF followed by either CRLF or a bare LF. The detector therefore only has
// to remember whether the previous byte ended a line and whether a CR has
// been seen since.
type termState uint8

const (
	termNone termState = iota
	termLF
	termLFCR
)

type termKind uint8

const (
	termNotFound termKind = iota
	// termCRLF corresponds to blocks ending in "\r\n\r\n" or "\n\r\n".
	termCRLF
	// termBareLF corresponds to blocks ending in "\r\n\n" or "\n\n".
	termBareLF
)

type terminator struct {
	state termState
}

// feed advances the detector by one byte and reports whether that byte
// completed a block terminator.
func (t *terminator) feed(c byte) termKind {
	switch t.state {
	case termLF:
		switch c {
		case '\n':
			t.state = termLF
			return termBareLF
		case '\r':
			t.state = termLFCR
		default:
			t.state = termNone
		}
	case termLFCR:
		switch c {
		case '\n':
			t.state = termLF
			return termCRLF
		default:
			t.state = termNone
		}
	default:
		if c == '\n' {
			t.state = termLF
		}
	}

	return termNotFound
}

// prime puts the detector into the state it would be in right after a
// line-ending LF. Used when trailer scanning begins, as the last-chunk line
// terminator has already been consumed by the chunked machinery.
func (t *terminator) prime() {
	t.state = termLF
}

func (t *terminator) reset() {
	t.state = termNone
}
