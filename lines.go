package framer

import (
	"bytes"

	"github.com/indigo-web/framer/internal/strutil"
	"github.com/indigo-web/utils/uf"
)

type pair struct {
	key, value string
}

// isInvalidValueChar reports whether c may not appear in a header or trailer
// value. Tab, CR and LF are tolerated; so is everything from 0x20 upwards.
func isInvalidValueChar(c byte) bool {
	return c < 0x20 && c != '\t' && c != '\n' && c != '\r'
}

func hasInvalidNameChar(name []byte) bool {
	for _, c := range name {
		if isInvalidValueChar(c) || strutil.IsLWS(c) {
			return true
		}
	}

	return false
}

// scanValueChars applies the configured invalid-characters level to one
// line's value portion. Under InvalidCharsWarning every occurrence is
// counted and a single warning is raised per affected line; under
// InvalidCharsError the first occurrence is counted and reported as fatal.
func (f *Framer) scanValueChars(value []byte) (fatal ErrorCode) {
	if f.invalidLevel == InvalidCharsIgnore {
		return NoError
	}

	affected := false

	for _, c := range value {
		if !isInvalidValueChar(c) {
			continue
		}

		f.countInvalidChar(c)
		if f.invalidLevel == InvalidCharsError {
			return InvalidHeaderCharacter
		}

		affected = true
	}

	if affected {
		f.warn(InvalidHeaderCharacter)
	}

	return NoError
}

// parseFieldLines walks the recorded physical lines starting at from and
// folds them into logical key-value entries. Advisory codes are raised
// immediately; the first fatal one is remembered and returned once the whole
// block has been scanned, so that entries past the offending line still make
// it into the result.
func (f *Framer) parseFieldLines(from int, trailer bool) (pairs []pair, fatal ErrorCode) {
	missingColon, nameChar, format := HeaderMissingColon, InvalidHeaderNameCharacter, InvalidHeaderFormat
	if trailer {
		missingColon, nameChar, format = TrailerMissingColon, InvalidTrailerNameCharacter, InvalidTrailerFormat
	}

	record := func(code ErrorCode) {
		if fatal == NoError {
			fatal = code
		}
	}

	// set while the previous entry came from a colon-less line: such an
	// entry is all name, so a continuation would extend the name itself
	bareKey := false

	for i := from; i < len(f.lines); i++ {
		content := strutil.StripLineEnding(f.lineBytes(i))
		if len(content) == 0 {
			continue
		}

		if strutil.IsLWS(content[0]) {
			// a continuation line extends the previous entry's value. With no
			// previous entry there is nothing to continue.
			if len(pairs) == 0 {
				record(nameChar)
				continue
			}

			// extending a colon-less entry would put whitespace into a name
			if bareKey {
				record(nameChar)
				continue
			}

			if ec := f.scanValueChars(content); ec != NoError {
				record(ec)
			}

			folded := strutil.TrimLWS(content)
			if len(folded) == 0 {
				continue
			}

			last := &pairs[len(pairs)-1]
			if len(last.value) == 0 {
				last.value = string(folded)
			} else {
				last.value += " " + string(folded)
			}

			continue
		}

		colon := bytes.IndexByte(content, ':')
		if colon == -1 {
			f.warn(missingColon)

			key := strutil.TrimRightLWS(content)
			if hasInvalidNameChar(key) {
				record(nameChar)
			}

			pairs = append(pairs, pair{key: uf.B2S(key)})
			bareKey = true
			continue
		}

		// the name is everything in front of the colon, verbatim: whitespace
		// right before the colon is as fatal as whitespace in the middle
		key := content[:colon]
		value := strutil.TrimLWS(content[colon+1:])
		bareKey = false

		if ec := f.scanValueChars(value); ec != NoError {
			record(ec)
		}

		if len(key) == 0 {
			// a colon with nothing in front of it cannot be attributed to any
			// entry. The value is still surfaced under an empty key.
			record(format)
		} else if hasInvalidNameChar(key) {
			record(nameChar)
		}

		pairs = append(pairs, pair{key: uf.B2S(key), value: uf.B2S(value)})
	}

	return pairs, fatal
}
