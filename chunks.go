package framer

import (
	"math"

	"github.com/indigo-web/framer/internal/hexconv"
)

// maxChunkLength bounds a declared chunk size so that accumulating one more
// hex digit can never overflow int64.
const maxChunkLength = math.MaxInt64 >> 4

func (f *Framer) beginChunked() {
	f.state = StateReadingChunkLength
	f.chunkLength = 0
	f.chunkRemaining = 0
	f.sawChunkDigit = false
	f.chunkExt = f.chunkExt[:0]
}

// beginTrailers hands control over to the trailer block scanner. The
// terminator detector is primed with the LF that ended the last-chunk line,
// so an immediately following blank line closes the message.
func (f *Framer) beginTrailers() {
	f.state = StateReadingLastChunkTerm
	f.term.prime()
	// header entries alias the old block's memory, so the trailer block gets
	// a fresh one instead of overwriting it.
	f.block = nil
	f.lines = f.lines[:0]
	f.lineStart = 0
}

// consumeChunked advances the chunked-body machine. It consumes up to the
// end of the last-chunk line; trailer bytes never enter the body channel.
func (f *Framer) consumeChunked(data []byte) int {
	i := 0

	for i < len(data) {
		switch f.state {
		case StateReadingChunkLength:
			c := data[i]
			if d := hexconv.Halfbyte[c]; d != 0xFF {
				if f.chunkLength > maxChunkLength {
					f.v().OnBodyInput(data[:i])
					f.fail(ChunkLengthOverflow)
					return i
				}

				f.chunkLength = f.chunkLength<<4 | int64(d)
				f.sawChunkDigit = true
				i++
				continue
			}

			if !f.sawChunkDigit {
				f.v().OnBodyInput(data[:i])
				f.fail(InvalidChunkLength)
				return i
			}

			// the length is complete; whatever follows, terminator included,
			// belongs to the extension. The byte is left for that state.
			f.v().OnChunkLength(f.chunkLength)
			f.state = StateReadingChunkExtension
		case StateReadingChunkExtension:
			c := data[i]
			i++

			if c != '\n' {
				f.chunkExt = append(f.chunkExt, c)
				continue
			}

			ext := f.chunkExt
			if len(ext) > 0 && ext[len(ext)-1] == '\r' {
				ext = ext[:len(ext)-1]
			}

			f.v().OnChunkExtension(ext)
			f.chunkExt = f.chunkExt[:0]

			if f.chunkLength == 0 {
				f.v().OnBodyInput(data[:i])
				f.beginTrailers()
				return i
			}

			f.chunkRemaining = f.chunkLength
			f.state = StateReadingChunkData
		case StateReadingChunkData:
			n := int64(len(data) - i)
			if n > f.chunkRemaining {
				n = f.chunkRemaining
			}

			f.v().OnBodyChunk(data[i : i+int(n)])
			f.chunkRemaining -= n
			i += int(n)

			if f.chunkRemaining == 0 {
				f.endChunkData()
			}
		case StateReadingChunkTerm:
			// anything up to the next LF is discarded, a terminator of any
			// shape (or none at all) after the chunk data is tolerated.
			if data[i] == '\n' {
				f.state = StateReadingChunkLength
			}
			i++
		default:
			f.v().OnBodyInput(data[:i])
			f.fail(InternalLogicError)
			return i
		}
	}

	f.v().OnBodyInput(data[:i])
	return i
}

func (f *Framer) endChunkData() {
	f.state = StateReadingChunkTerm
	f.chunkLength = 0
	f.sawChunkDigit = false
}
