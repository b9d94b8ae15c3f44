package headers

import (
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Span is a [Begin, End) byte range into the raw block held by a Store.
type Span struct {
	Begin, End int
}

// Pair is a parsed header or trailer entry. Continuation lines are already
// folded into Value by the framer, so one Pair corresponds to one logical
// header even when it occupied multiple physical lines.
type Pair struct {
	Key, Value string
}

// Store accumulates the raw bytes of a single header or trailer block
// together with the line boundaries and parsed entries the framer derives
// from them. The first recorded span is always the first line; the rest are
// header lines in arrival order. A Store attached as a trailer sink carries
// trailer lines only.
//
// The zero value is ready to use.
type Store struct {
	raw   []byte
	lines []Span
	pairs []Pair

	method  string
	uri     string
	version string
	code    int
	reason  string
}

func NewStore() *Store {
	return new(Store)
}

// Append adds raw block bytes originating from the framer.
func (s *Store) Append(raw []byte) {
	s.raw = append(s.raw, raw...)
}

// PushLine registers the [begin, end) span of the next physical line.
func (s *Store) PushLine(begin, end int) {
	s.lines = append(s.lines, Span{begin, end})
}

// AddPair registers the next parsed logical entry.
func (s *Store) AddPair(key, value string) {
	s.pairs = append(s.pairs, Pair{key, value})
}

func (s *Store) SetRequestLine(method, uri, version string) {
	s.method, s.uri, s.version = method, uri, version
}

func (s *Store) SetResponseLine(version string, code int, reason string) {
	s.version, s.code, s.reason = version, code, reason
}

// Reset drops all accumulated contents, keeping the underlying storage for
// reuse.
func (s *Store) Reset() {
	s.raw = s.raw[:0]
	s.lines = s.lines[:0]
	s.pairs = s.pairs[:0]
	s.method, s.uri, s.version = "", "", ""
	s.code, s.reason = 0, ""
}

// Raw returns the accumulated block bytes, line terminators included.
func (s *Store) Raw() []byte {
	return s.raw
}

// Lines returns the recorded spans in arrival order.
func (s *Store) Lines() []Span {
	return s.lines
}

// Line returns the raw bytes of the i-th recorded line.
func (s *Store) Line(i int) []byte {
	span := s.lines[i]
	return s.raw[span.Begin:span.End]
}

// Pairs returns the parsed entries in arrival order.
func (s *Store) Pairs() []Pair {
	return s.pairs
}

// Value returns the value of the first entry matching key
// case-insensitively, and whether such an entry exists at all.
func (s *Store) Value(key string) (string, bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Values returns the values of all entries matching key case-insensitively.
func (s *Store) Values(key string) (values []string) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Method returns the request method token of the first line.
func (s *Store) Method() string { return s.method }

// URI returns the request-URI token of the first line.
func (s *Store) URI() string { return s.uri }

// Version returns the protocol version token of the first line.
func (s *Store) Version() string { return s.version }

// Code returns the parsed response status code.
func (s *Store) Code() int { return s.code }

// Reason returns the response reason phrase, verbatim.
func (s *Store) Reason() string { return s.reason }

// FirstLine returns the raw first line text without its terminator.
func (s *Store) FirstLine() string {
	if len(s.lines) == 0 {
		return ""
	}

	line := s.Line(0)
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}

	return uf.B2S(line)
}
