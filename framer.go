package framer

import (
	"math"
	"strings"

	"github.com/indigo-web/framer/config"
	"github.com/indigo-web/framer/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// UnboundedSpliceAmount is what BytesSafeToSplice reports for a message that
// is being read until connection close.
const UnboundedSpliceAmount int64 = math.MaxInt64

type span struct {
	begin, end int
}

// Framer is an incremental HTTP/1.x message framer. Feed it wire bytes via
// ProcessInput in fragments of any size; it reports structure through the
// attached Visitor, mirrors header and trailer blocks into the attached
// Sinks, and tells the caller how far into the stream it got.
//
// A Framer is not safe for concurrent use. After a message completes (or
// fails), call Reset before feeding the next one.
type Framer struct {
	cfg       *config.Config
	visitor   Visitor
	headers   Sink
	trailers  Sink
	continues Sink

	state     ParseState
	errCode   ErrorCode
	direction Direction

	maxHeaderLength int
	invalidLevel    InvalidCharsLevel
	invalidCounts   map[byte]int

	// block accumulates the raw bytes of the header or trailer block being
	// scanned, lines holds the spans of its completed physical lines. The
	// framer owns this scratch, so parsing works with no sinks attached.
	block     []byte
	lines     []span
	lineStart int
	started   bool
	term      terminator

	contentRemaining int64

	chunkLength    int64
	chunkRemaining int64
	sawChunkDigit  bool
	chunkExt       []byte
}

func New(cfg *config.Config) *Framer {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Framer{
		cfg:             cfg,
		state:           StateReadingHeaderAndFirstline,
		maxHeaderLength: cfg.Headers.MaxLength,
	}
}

func (f *Framer) SetDirection(d Direction) {
	f.direction = d
}

func (f *Framer) Direction() Direction {
	return f.direction
}

// SetMaxHeaderLength overrides the configured header block size limit. It
// applies to the block being scanned as well.
func (f *Framer) SetMaxHeaderLength(n int) {
	f.maxHeaderLength = n
}

func (f *Framer) MaxHeaderLength() int {
	return f.maxHeaderLength
}

func (f *Framer) SetInvalidCharsLevel(level InvalidCharsLevel) {
	f.invalidLevel = level
}

func (f *Framer) InvalidCharsLevel() InvalidCharsLevel {
	return f.invalidLevel
}

// SetVisitor attaches the event receiver. A nil visitor silences all events
// without disturbing parsing; the visitor may be swapped between calls.
func (f *Framer) SetVisitor(v Visitor) {
	f.visitor = v
}

// SetHeaders attaches the sink that header blocks are mirrored into. Nil
// suppresses storage.
func (f *Framer) SetHeaders(s Sink) {
	f.headers = s
}

// SetTrailers attaches the sink that trailer blocks are mirrored into.
func (f *Framer) SetTrailers(s Sink) {
	f.trailers = s
}

// SetContinueHeaders attaches the sink receiving interim 100 Continue
// blocks, keeping them apart from the real response headers.
func (f *Framer) SetContinueHeaders(s Sink) {
	f.continues = s
}

// ParseState reports where within the message the framer currently is.
func (f *Framer) ParseState() ParseState {
	return f.state
}

// Error reports whether the framer hit a fatal error.
func (f *Framer) Error() bool {
	return f.state == StateError
}

// ErrorCode returns the most recent fatal or advisory code, NoError if none
// occurred.
func (f *Framer) ErrorCode() ErrorCode {
	return f.errCode
}

func (f *Framer) MessageFullyRead() bool {
	return f.state == StateMessageFullyRead
}

// InvalidCharsCounts returns per-byte occurrence counts of invalid value
// characters seen so far. The map is nil until the first occurrence and must
// be treated as read-only; Reset clears it.
func (f *Framer) InvalidCharsCounts() map[byte]int {
	return f.invalidCounts
}

// Reset prepares the framer for the next message on the same stream.
// Configuration, direction, limits, the invalid-characters level and all
// attachments survive; attached sinks are reset along the way.
func (f *Framer) Reset() {
	f.state = StateReadingHeaderAndFirstline
	f.errCode = NoError
	f.invalidCounts = nil

	f.block = f.block[:0]
	f.lines = f.lines[:0]
	f.lineStart = 0
	f.started = false
	f.term.reset()

	f.contentRemaining = 0
	f.chunkLength = 0
	f.chunkRemaining = 0
	f.sawChunkDigit = false
	f.chunkExt = f.chunkExt[:0]

	for _, s := range []Sink{f.headers, f.trailers, f.continues} {
		if s != nil {
			s.Reset()
		}
	}
}

// ProcessInput consumes as much of data as the current state allows and
// returns the number of bytes taken. A short count is not an error: once the
// message is fully read (or parsing has failed), the remainder is left for
// the caller, and repeated calls consume nothing further until Reset.
func (f *Framer) ProcessInput(data []byte) int {
	total := 0

	for total < len(data) {
		rest := data[total:]
		var n int

		switch f.state {
		case StateError, StateMessageFullyRead:
			return total
		case StateReadingHeaderAndFirstline:
			n = f.consumeHeaders(rest)
		case StateReadingContent:
			n = f.consumeContent(rest)
		case StateReadingUntilClose:
			n = f.consumeUntilClose(rest)
		case StateReadingChunkLength, StateReadingChunkExtension,
			StateReadingChunkData, StateReadingChunkTerm:
			n = f.consumeChunked(rest)
		case StateReadingLastChunkTerm, StateReadingTrailer:
			n = f.consumeTrailers(rest)
		default:
			f.fail(InternalLogicError)
			return total
		}

		if n == 0 && f.state != StateError && f.state != StateMessageFullyRead {
			break
		}

		total += n
	}

	return total
}

func (f *Framer) v() Visitor {
	if f.visitor == nil {
		return NopVisitor{}
	}

	return f.visitor
}

func (f *Framer) warn(code ErrorCode) {
	f.errCode = code
	f.v().OnWarning(code)
}

func (f *Framer) fail(code ErrorCode) {
	f.errCode = code
	f.state = StateError
	f.v().OnError(code)
}

func (f *Framer) complete() {
	f.v().OnMessageDone()
	f.state = StateMessageFullyRead
}

func (f *Framer) countInvalidChar(c byte) {
	if f.invalidCounts == nil {
		f.invalidCounts = make(map[byte]int)
	}

	f.invalidCounts[c]++
}

func (f *Framer) lineBytes(i int) []byte {
	return f.block[f.lines[i].begin:f.lines[i].end]
}

type blockEvent uint8

const (
	blockPending blockEvent = iota
	blockDone
	blockTooLong
)

// scanBlock appends bytes to the current block until a terminator completes
// it or the length budget runs out. The offending byte of an oversized block
// is not consumed. The blank line completing a block is recorded in the raw
// bytes but not as a line span.
func (f *Framer) scanBlock(data []byte, trailer bool) (int, blockEvent) {
	for i := 0; i < len(data); i++ {
		c := data[i]

		if len(f.block) >= f.maxHeaderLength {
			return i, blockTooLong
		}

		if trailer && f.state == StateReadingLastChunkTerm && c != '\r' && c != '\n' {
			f.state = StateReadingTrailer
		}

		f.block = append(f.block, c)

		if f.term.feed(c) != termNotFound {
			return i + 1, blockDone
		}

		if c != '\n' {
			continue
		}

		f.lines = append(f.lines, span{f.lineStart, len(f.block)})
		f.lineStart = len(f.block)

		// a request first line with fewer than three tokens is a complete
		// message on its own; no header lines follow it.
		if !trailer && f.direction == Request && len(f.lines) == 1 &&
			parseRequestLine(f.lineBytes(0)).n < 3 {
			return i + 1, blockDone
		}
	}

	return len(data), blockPending
}

func (f *Framer) consumeHeaders(data []byte) int {
	skip := 0

	// empty lines in front of the first line are eaten silently. They count
	// neither against the length budget nor into the block's raw bytes.
	if !f.started {
		for skip < len(data) && (data[skip] == '\r' || data[skip] == '\n') {
			skip++
		}

		if skip == len(data) {
			return skip
		}

		f.started = true
	}

	n, ev := f.scanBlock(data[skip:], false)

	switch ev {
	case blockTooLong:
		f.fail(HeadersTooLong)
	case blockDone:
		f.finishHeaderBlock()
	}

	return skip + n
}

func (f *Framer) consumeTrailers(data []byte) int {
	n, ev := f.scanBlock(data, true)

	// whatever was consumed goes to the raw channel, even when the budget
	// ran out partway through
	if n > 0 {
		f.v().OnTrailerInput(data[:n])
	}

	switch ev {
	case blockTooLong:
		f.fail(TrailerTooLong)
	case blockDone:
		f.finishTrailerBlock()
	}

	return n
}

func (f *Framer) consumeContent(data []byte) int {
	n := f.contentRemaining
	if m := int64(len(data)); m < n {
		n = m
	}

	frag := data[:n]
	f.v().OnBodyInput(frag)
	f.v().OnBodyChunk(frag)

	f.contentRemaining -= n
	if f.contentRemaining == 0 {
		f.complete()
	}

	return int(n)
}

func (f *Framer) consumeUntilClose(data []byte) int {
	f.v().OnBodyInput(data)
	f.v().OnBodyChunk(data)

	return len(data)
}

// storeBlock mirrors the scratch block into the sink: raw bytes first, then
// every recorded line span.
func (f *Framer) storeBlock(sink Sink) {
	if sink == nil {
		return
	}

	sink.Append(f.block)
	for _, l := range f.lines {
		sink.PushLine(l.begin, l.end)
	}
}

func (f *Framer) emitPairs(pairs []pair, sink Sink) {
	for _, p := range pairs {
		f.v().OnHeader(p.key, p.value)
		if sink != nil {
			sink.AddPair(p.key, p.value)
		}
	}
}

// restartHeaderBlock discards the scratch of an interim block and arms the
// framer for the real header block that follows it.
func (f *Framer) restartHeaderBlock() {
	f.state = StateReadingHeaderAndFirstline
	// interim entries alias the old block's memory, keep it intact
	f.block = nil
	f.lines = f.lines[:0]
	f.lineStart = 0
	f.started = false
	f.term.reset()
}

func (f *Framer) finishHeaderBlock() {
	if len(f.lines) == 0 {
		// pathological: a blank terminator with no first line in front of it
		// slipped past the leading-blank eater.
		f.fail(InternalLogicError)
		return
	}

	if f.direction == Request {
		f.finishRequestBlock()
	} else {
		f.finishResponseBlock()
	}
}

func (f *Framer) finishRequestBlock() {
	fl := parseRequestLine(f.lineBytes(0))

	switch fl.n {
	case 0:
		f.fail(NoRequestLineInRequest)
		return
	case 1:
		f.warn(FailedToFindWsAfterRequestMethod)
	case 2:
		f.warn(FailedToFindWsAfterRequestRequestUri)
	}

	sink := f.headers
	method, uri, version := uf.B2S(fl.method), uf.B2S(fl.uri), uf.B2S(fl.version)
	f.v().OnRequestFirstLine(uf.B2S(fl.line), method, uri, version)
	if sink != nil {
		sink.SetRequestLine(method, uri, version)
	}

	f.v().OnHeaderInput(f.block)
	f.storeBlock(sink)

	pairs, fatal := f.parseFieldLines(1, false)
	f.emitPairs(pairs, sink)

	if fatal != NoError {
		f.fail(fatal)
		return
	}

	if fl.n < 3 {
		f.v().OnHeadersDone()
		f.complete()
		return
	}

	f.selectRequestBody(pairs, method)
}

func (f *Framer) finishResponseBlock() {
	fl := parseResponseLine(f.lineBytes(0))

	switch fl.n {
	case 0:
		f.fail(NoStatusLineInResponse)
		return
	case 1:
		f.fail(FailedToFindWsAfterResponseVersion)
		return
	case 2:
		f.fail(FailedToFindWsAfterResponseStatuscode)
		return
	}

	code, ok := parseStatusCode(fl.status)
	if !ok {
		// the raw first-line text is still recorded, but no header events
		// fire for an unusable status line.
		f.storeBlock(f.headers)
		f.fail(FailedConvertingStatusCodeToInt)
		return
	}

	sink := f.headers
	isContinue := code == 100
	if isContinue {
		sink = f.continues
	}

	version, reason := uf.B2S(fl.version), uf.B2S(fl.reason)
	f.v().OnResponseFirstLine(uf.B2S(fl.line), version, code, reason)
	if sink != nil {
		sink.SetResponseLine(version, code, reason)
	}

	f.v().OnHeaderInput(f.block)
	f.storeBlock(sink)

	pairs, fatal := f.parseFieldLines(1, false)
	f.emitPairs(pairs, sink)

	if fatal != NoError {
		f.fail(fatal)
		return
	}

	if isContinue {
		f.v().OnContinueHeadersDone()
		f.restartHeaderBlock()
		return
	}

	f.selectResponseBody(pairs, code)
}

func (f *Framer) finishTrailerBlock() {
	sink := f.trailers
	f.storeBlock(sink)

	pairs, fatal := f.parseFieldLines(0, true)
	f.emitPairs(pairs, sink)

	if fatal != NoError {
		f.fail(fatal)
		return
	}

	f.complete()
}

// framingHeaders extracts the body-framing verdict out of the parsed
// entries: whether the body is chunked, and the declared content length if
// any. Conflicting or unparsable declarations are fatal.
func (f *Framer) framingHeaders(pairs []pair) (chunked, clPresent bool, clValue int64, fatal ErrorCode) {
	var (
		te      string
		teCount int
		cls     []string
	)

	for _, p := range pairs {
		switch {
		case strcomp.EqualFold(p.key, "transfer-encoding"):
			te, teCount = p.value, teCount+1
		case strcomp.EqualFold(p.key, "content-length"):
			cls = append(cls, p.value)
		}
	}

	if teCount > 1 {
		return false, false, 0, MultipleTransferEncodingKeys
	}

	if teCount == 1 {
		tokens := splitCommaList(te)
		if len(tokens) != 1 {
			return false, false, 0, UnknownTransferEncoding
		}

		switch {
		case strcomp.EqualFold(tokens[0], "chunked"):
			chunked = true
		case strcomp.EqualFold(tokens[0], "identity"):
			// identity is the same as no transfer coding at all
		default:
			return false, false, 0, UnknownTransferEncoding
		}
	}

	for i, raw := range cls {
		n, ok := parseContentLength(raw)
		if !ok {
			return false, false, 0, UnparsableContentLength
		}

		if i > 0 && n != clValue {
			return false, false, 0, MultipleContentLengthKeys
		}

		clPresent, clValue = true, n
	}

	return chunked, clPresent, clValue, NoError
}

func (f *Framer) selectRequestBody(pairs []pair, method string) {
	chunked, clPresent, clValue, fatal := f.framingHeaders(pairs)
	if fatal != NoError {
		f.fail(fatal)
		return
	}

	switch {
	case chunked:
		f.v().OnHeadersDone()
		f.beginChunked()
	case clPresent:
		f.v().OnHeadersDone()
		if clValue == 0 {
			f.complete()
			return
		}

		f.contentRemaining = clValue
		f.state = StateReadingContent
	case methodExpectsBody(method) && !f.cfg.Policy.PermitMissingContentLength:
		f.fail(RequiredBodyButNoContentLength)
	default:
		f.v().OnHeadersDone()
		f.complete()
	}
}

func (f *Framer) selectResponseBody(pairs []pair, code int) {
	chunked, clPresent, clValue, fatal := f.framingHeaders(pairs)
	if fatal != NoError {
		f.fail(fatal)
		return
	}

	switch {
	case noBodyStatus(code):
		f.v().OnHeadersDone()
		f.complete()
	case chunked:
		f.v().OnHeadersDone()
		f.beginChunked()
	case clPresent:
		f.v().OnHeadersDone()
		if clValue == 0 {
			f.complete()
			return
		}

		f.contentRemaining = clValue
		f.state = StateReadingContent
	default:
		// with no framing declared at all, the body extends to connection
		// close. That is legal but worth flagging.
		f.warn(MaybeBodyButNoContentLength)
		f.v().OnHeadersDone()
		f.state = StateReadingUntilClose
	}
}

// BytesSafeToSplice reports how many upcoming payload bytes the caller may
// move out of band (e.g. via splice) without the framer ever seeing them.
func (f *Framer) BytesSafeToSplice() int64 {
	switch f.state {
	case StateReadingContent:
		return f.contentRemaining
	case StateReadingChunkData:
		return f.chunkRemaining
	case StateReadingUntilClose:
		return UnboundedSpliceAmount
	default:
		return 0
	}
}

// BytesSpliced informs the framer that n payload bytes were consumed out of
// band. Calling it outside a payload region, or for more than
// BytesSafeToSplice allows, is a fatal error.
func (f *Framer) BytesSpliced(n int64) {
	safe := f.BytesSafeToSplice()
	if safe == 0 {
		f.fail(CalledBytesSplicedWhenUnsafeToDoSo)
		return
	}

	if n > safe {
		f.fail(CalledBytesSplicedAndExceededSafeSpliceAmount)
		return
	}

	switch f.state {
	case StateReadingContent:
		f.contentRemaining -= n
		if f.contentRemaining == 0 {
			f.complete()
		}
	case StateReadingChunkData:
		f.chunkRemaining -= n
		if f.chunkRemaining == 0 {
			f.endChunkData()
		}
	case StateReadingUntilClose:
	}
}

func methodExpectsBody(method string) bool {
	return method == "POST" || method == "PUT"
}

func noBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == 204 || code == 304
}

// splitCommaList splits a comma separated value, trimming linear whitespace
// around each element. Empty input yields one empty element.
func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = uf.B2S(strutil.TrimLWS(uf.S2B(p)))
	}

	return parts
}

// parseContentLength accepts nothing but a plain run of decimal digits: no
// signs, no whitespace, no empty values.
func parseContentLength(raw string) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var v int64

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c < '0' || c > '9' {
			return 0, false
		}

		if v > (math.MaxInt64-int64(c-'0'))/10 {
			return 0, false
		}

		v = v*10 + int64(c-'0')
	}

	return v, true
}
