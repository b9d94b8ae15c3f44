package framer

// Visitor receives structured events as the framer advances through a
// message. All methods are invoked synchronously from inside ProcessInput
// (or BytesSpliced), and any byte slice argument is only valid for the
// duration of the call.
//
// Implementations interested in a subset of events may embed NopVisitor.
type Visitor interface {
	// OnRequestFirstLine reports the parsed request line. Missing trailing
	// tokens arrive as empty strings.
	OnRequestFirstLine(line, method, uri, version string)
	// OnResponseFirstLine reports the parsed status line. The reason phrase
	// is passed verbatim, internal tabs and trailing whitespace included.
	OnResponseFirstLine(line, version string, code int, reason string)
	// OnHeader reports one logical header or trailer entry, continuation
	// lines already folded in. The strings stay valid until the framer is
	// Reset.
	OnHeader(key, value string)
	// OnHeaderInput reports the complete raw header block, terminator
	// included, once per block.
	OnHeaderInput(raw []byte)
	// OnBodyInput reports raw body-region bytes as they are consumed,
	// chunk framing included.
	OnBodyInput(raw []byte)
	// OnBodyChunk reports decoded payload bytes only.
	OnBodyChunk(data []byte)
	// OnTrailerInput reports raw trailer-block bytes as they are consumed.
	OnTrailerInput(raw []byte)
	// OnChunkLength reports the declared size of the next chunk, zero
	// included.
	OnChunkLength(length int64)
	// OnChunkExtension reports the chunk-length line remainder verbatim,
	// possibly empty, for every chunk.
	OnChunkExtension(ext []byte)
	// OnHeadersDone signals the end of the header block of a real message.
	OnHeadersDone()
	// OnContinueHeadersDone signals the end of an interim 100 Continue
	// header block. The framer then restarts header parsing for the real
	// message.
	OnContinueHeadersDone()
	// OnMessageDone signals that the message is fully read.
	OnMessageDone()
	// OnError reports a fatal code. No structural events follow.
	OnError(code ErrorCode)
	// OnWarning reports an advisory code. Parsing continues.
	OnWarning(code ErrorCode)
}

// NopVisitor ignores every event.
type NopVisitor struct{}

func (NopVisitor) OnRequestFirstLine(string, string, string, string)     {}
func (NopVisitor) OnResponseFirstLine(string, string, int, string)       {}
func (NopVisitor) OnHeader(string, string)                               {}
func (NopVisitor) OnHeaderInput([]byte)                                  {}
func (NopVisitor) OnBodyInput([]byte)                                    {}
func (NopVisitor) OnBodyChunk([]byte)                                    {}
func (NopVisitor) OnTrailerInput([]byte)                                 {}
func (NopVisitor) OnChunkLength(int64)                                   {}
func (NopVisitor) OnChunkExtension([]byte)                               {}
func (NopVisitor) OnHeadersDone()                                        {}
func (NopVisitor) OnContinueHeadersDone()                                {}
func (NopVisitor) OnMessageDone()                                        {}
func (NopVisitor) OnError(ErrorCode)                                     {}
func (NopVisitor) OnWarning(ErrorCode)                                   {}
