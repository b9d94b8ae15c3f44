package framer

// Sink stores the raw bytes and line boundaries of one header or trailer
// block on behalf of the framer. headers.Store is the stock implementation.
//
// Sinks are borrowed, never owned: the framer writes into whichever sink is
// attached at the moment a block completes, and detaching a sink (attaching
// nil) merely suppresses storage. A sink is expected to be attached from the
// start of a block for its spans to line up with its raw bytes.
type Sink interface {
	// Append adds raw block bytes, line terminators included.
	Append(raw []byte)
	// PushLine registers a physical line as a [begin, end) span into the
	// appended bytes. The first span of a header block is the first line.
	PushLine(begin, end int)
	// AddPair registers one parsed logical entry, continuations folded.
	AddPair(key, value string)
	SetRequestLine(method, uri, version string)
	SetResponseLine(version string, code int, reason string)
	// Reset drops accumulated contents. Invoked by Framer.Reset on every
	// attached sink.
	Reset()
}
