package framer

// ErrorCode identifies what exactly went wrong (or looked suspicious) while
// framing a message. Fatal codes arrive through Visitor.OnError and halt all
// further structural parsing; advisory codes arrive through
// Visitor.OnWarning and parsing continues. ErrorCode() reports the most
// recent code of either kind.
type ErrorCode uint8

const (
	NoError ErrorCode = iota

	// first line
	NoStatusLineInResponse
	NoRequestLineInRequest
	FailedToFindWsAfterResponseVersion
	FailedToFindWsAfterResponseStatuscode
	FailedToFindWsAfterRequestMethod
	FailedToFindWsAfterRequestRequestUri
	FailedToFindNlAfterResponseReasonPhrase
	FailedToFindNlAfterRequestHttpVersion
	FailedConvertingStatusCodeToInt

	// header/trailer blocks
	HeadersTooLong
	TrailerTooLong
	HeaderMissingColon
	TrailerMissingColon
	InvalidHeaderFormat
	InvalidTrailerFormat
	InvalidHeaderNameCharacter
	InvalidTrailerNameCharacter
	InvalidHeaderCharacter

	// body framing
	UnparsableContentLength
	MultipleContentLengthKeys
	MultipleTransferEncodingKeys
	UnknownTransferEncoding
	InvalidChunkLength
	ChunkLengthOverflow
	MaybeBodyButNoContentLength
	RequiredBodyButNoContentLength

	// splice accounting
	CalledBytesSplicedWhenUnsafeToDoSo
	CalledBytesSplicedAndExceededSafeSpliceAmount

	InternalLogicError
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NO_ERROR"
	case NoStatusLineInResponse:
		return "NO_STATUS_LINE_IN_RESPONSE"
	case NoRequestLineInRequest:
		return "NO_REQUEST_LINE_IN_REQUEST"
	case FailedToFindWsAfterResponseVersion:
		return "FAILED_TO_FIND_WS_AFTER_RESPONSE_VERSION"
	case FailedToFindWsAfterResponseStatuscode:
		return "FAILED_TO_FIND_WS_AFTER_RESPONSE_STATUSCODE"
	case FailedToFindWsAfterRequestMethod:
		return "FAILED_TO_FIND_WS_AFTER_REQUEST_METHOD"
	case FailedToFindWsAfterRequestRequestUri:
		return "FAILED_TO_FIND_WS_AFTER_REQUEST_REQUEST_URI"
	case FailedToFindNlAfterResponseReasonPhrase:
		return "FAILED_TO_FIND_NL_AFTER_RESPONSE_REASON_PHRASE"
	case FailedToFindNlAfterRequestHttpVersion:
		return "FAILED_TO_FIND_NL_AFTER_REQUEST_HTTP_VERSION"
	case FailedConvertingStatusCodeToInt:
		return "FAILED_CONVERTING_STATUS_CODE_TO_INT"
	case HeadersTooLong:
		return "HEADERS_TOO_LONG"
	case TrailerTooLong:
		return "TRAILER_TOO_LONG"
	case HeaderMissingColon:
		return "HEADER_MISSING_COLON"
	case TrailerMissingColon:
		return "TRAILER_MISSING_COLON"
	case InvalidHeaderFormat:
		return "INVALID_HEADER_FORMAT"
	case InvalidTrailerFormat:
		return "INVALID_TRAILER_FORMAT"
	case InvalidHeaderNameCharacter:
		return "INVALID_HEADER_NAME_CHARACTER"
	case InvalidTrailerNameCharacter:
		return "INVALID_TRAILER_NAME_CHARACTER"
	case InvalidHeaderCharacter:
		return "INVALID_HEADER_CHARACTER"
	case UnparsableContentLength:
		return "UNPARSABLE_CONTENT_LENGTH"
	case MultipleContentLengthKeys:
		return "MULTIPLE_CONTENT_LENGTH_KEYS"
	case MultipleTransferEncodingKeys:
		return "MULTIPLE_TRANSFER_ENCODING_KEYS"
	case UnknownTransferEncoding:
		return "UNKNOWN_TRANSFER_ENCODING"
	case InvalidChunkLength:
		return "INVALID_CHUNK_LENGTH"
	case ChunkLengthOverflow:
		return "CHUNK_LENGTH_OVERFLOW"
	case MaybeBodyButNoContentLength:
		return "MAYBE_BODY_BUT_NO_CONTENT_LENGTH"
	case RequiredBodyButNoContentLength:
		return "REQUIRED_BODY_BUT_NO_CONTENT_LENGTH"
	case CalledBytesSplicedWhenUnsafeToDoSo:
		return "CALLED_BYTES_SPLICED_WHEN_UNSAFE_TO_DO_SO"
	case CalledBytesSplicedAndExceededSafeSpliceAmount:
		return "CALLED_BYTES_SPLICED_AND_EXCEEDED_SAFE_SPLICE_AMOUNT"
	case InternalLogicError:
		return "INTERNAL_LOGIC_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}
