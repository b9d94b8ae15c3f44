package framer

import (
	"math"

	"github.com/indigo-web/framer/internal/strutil"
)

// requestLine is the tokenized form of a request first line. Absent tokens
// are nil; n is the number of tokens actually found. When all three tokens
// are present, line ends right after the version token; otherwise it is the
// whole line with the terminator stripped, trailing whitespace intact.
type requestLine struct {
	line    []byte
	method  []byte
	uri     []byte
	version []byte
	n       int
}

// responseLine is the tokenized form of a status line. The reason phrase is
// the verbatim remainder after the status code separator, trailing
// whitespace included; line always spans up to the terminator.
type responseLine struct {
	line    []byte
	version []byte
	status  []byte
	reason  []byte
	n       int
}

// nextToken returns the first whitespace-delimited token of b and the
// remainder after the separating run of spaces and tabs.
func nextToken(b []byte) (token, rest []byte) {
	for i := 0; i < len(b); i++ {
		if strutil.IsLWS(b[i]) {
			return b[:i], strutil.TrimLeftLWS(b[i:])
		}
	}

	return b, nil
}

func parseRequestLine(raw []byte) (fl requestLine) {
	line := strutil.TrimLeftLWS(strutil.StripLineEnding(raw))
	fl.line = line

	if len(line) == 0 {
		return fl
	}

	fl.method, line = nextToken(line)
	fl.n = 1
	if len(line) == 0 {
		return fl
	}

	fl.uri, line = nextToken(line)
	fl.n = 2
	if len(line) == 0 {
		return fl
	}

	// the version is whatever remains, sans trailing whitespace. The raw
	// line is trimmed along with it.
	fl.version = strutil.TrimRightLWS(line)
	fl.n = 3
	end := len(fl.line) - (len(line) - len(fl.version))
	fl.line = fl.line[:end]

	return fl
}

func parseResponseLine(raw []byte) (fl responseLine) {
	line := strutil.TrimLeftLWS(strutil.StripLineEnding(raw))
	fl.line = line

	if len(line) == 0 {
		return fl
	}

	fl.version, line = nextToken(line)
	fl.n = 1
	if len(line) == 0 {
		return fl
	}

	fl.status, line = nextToken(line)
	fl.n = 2
	if line == nil {
		return fl
	}

	// the reason phrase is everything after the separator, verbatim. It may
	// be empty when the line ends right after the separating whitespace.
	fl.reason = line
	fl.n = 3

	return fl
}

// parseStatusCode converts a status token to a non-negative int. Any
// non-digit byte, sign character or overflow makes it fail.
func parseStatusCode(token []byte) (int, bool) {
	var v int64

	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, false
		}

		v = v*10 + int64(c-'0')
		if v > math.MaxInt32 {
			return 0, false
		}
	}

	return int(v), true
}
