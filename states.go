package framer

// Direction tells the framer which side of the conversation it is parsing.
type Direction uint8

const (
	Request Direction = iota
	Response
)

// InvalidCharsLevel controls what happens when a header or trailer value
// contains a byte outside the valid set (tab, LF, CR, 0x20-0xFF). Names are
// always validated strictly, regardless of the level.
type InvalidCharsLevel uint8

const (
	// InvalidCharsIgnore lets invalid value bytes pass through untouched.
	InvalidCharsIgnore InvalidCharsLevel = iota
	// InvalidCharsWarning counts each occurrence, raises one
	// InvalidHeaderCharacter warning per affected line and keeps parsing.
	InvalidCharsWarning
	// InvalidCharsError fails the message on the first invalid value byte.
	InvalidCharsError
)

// ParseState is the externally visible position of the framer within the
// current message.
type ParseState uint8

const (
	StateError ParseState = iota
	StateReadingHeaderAndFirstline
	StateReadingChunkLength
	StateReadingChunkExtension
	StateReadingChunkData
	StateReadingChunkTerm
	StateReadingLastChunkTerm
	StateReadingTrailer
	StateReadingUntilClose
	StateReadingContent
	StateMessageFullyRead
)

func (s ParseState) String() string {
	switch s {
	case StateError:
		return "ERROR"
	case StateReadingHeaderAndFirstline:
		return "READING_HEADER_AND_FIRSTLINE"
	case StateReadingChunkLength:
		return "READING_CHUNK_LENGTH"
	case StateReadingChunkExtension:
		return "READING_CHUNK_EXTENSION"
	case StateReadingChunkData:
		return "READING_CHUNK_DATA"
	case StateReadingChunkTerm:
		return "READING_CHUNK_TERM"
	case StateReadingLastChunkTerm:
		return "READING_LAST_CHUNK_TERM"
	case StateReadingTrailer:
		return "READING_TRAILER"
	case StateReadingUntilClose:
		return "READING_UNTIL_CLOSE"
	case StateReadingContent:
		return "READING_CONTENT"
	case StateMessageFullyRead:
		return "MESSAGE_FULLY_READ"
	default:
		return "UNKNOWN_STATE"
	}
}
