package strutil

// IsLWS reports whether c is linear whitespace, i.e. a plain space or a
// horizontal tab.
func IsLWS(c byte) bool {
	return c == ' ' || c == '\t'
}

// TrimLeftLWS strips leading spaces and tabs.
func TrimLeftLWS(b []byte) []byte {
	for i := 0; i < len(b); i++ {
		if !IsLWS(b[i]) {
			return b[i:]
		}
	}

	return b[:0]
}

// TrimRightLWS strips trailing spaces and tabs.
func TrimRightLWS(b []byte) []byte {
	for i := len(b); i > 0; i-- {
		if !IsLWS(b[i-1]) {
			return b[:i]
		}
	}

	return b[:0]
}

// TrimLWS strips spaces and tabs from both ends.
func TrimLWS(b []byte) []byte {
	return TrimRightLWS(TrimLeftLWS(b))
}

// StripLineEnding removes a trailing LF and the CR preceding it, if any.
// A lone trailing CR is removed as well.
func StripLineEnding(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}

	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}

	return b
}
