// Package encoding decodes raw source file bytes into text.
//
// Detection is statistical with a confidence threshold; below it a fixed
// candidate ladder is tried with strict decoding. The final fallback decodes
// with replacement, so resolution never fails for non-empty input.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"

	"github.com/kbase-labs/kbase-cli/internal/logger"
)

// minConfidence is the chardet confidence (0-100) required before the
// detected charset is tried ahead of the fallback ladder.
const minConfidence = 70

// candidate names understood by tryDecode.
const (
	candUTF8    = "utf-8"
	candUTF16LE = "utf-16-le"
	candUTF16BE = "utf-16-be"
	candCP1251  = "windows-1251"
	candLatin1  = "iso-8859-1"
)

// fallbackCandidates is the fixed ordered ladder tried when detection is
// inconclusive. The detected charset, when confident, is tried first.
var fallbackCandidates = []string{candUTF8, candUTF16LE, candUTF16BE, candCP1251, candLatin1}

// Resolve decodes raw file bytes into text.
//
// Empty input decodes to the empty string without invoking detection.
// Candidates are tried with strict decoding and the first success wins.
// If every candidate fails strictly, the bytes are decoded as UTF-8 with
// invalid sequences replaced, so the error return is reserved for future
// callers; decoding itself is total.
func Resolve(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	candidates := fallbackCandidates
	if name, ok := detect(raw); ok {
		candidates = append([]string{name}, fallbackCandidates...)
	}

	for _, name := range candidates {
		if text, ok := tryDecode(name, raw); ok {
			return text, nil
		}
	}

	logger.Warn("no candidate encoding decoded strictly, replacing invalid bytes")
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
}

// detect runs statistical charset detection and maps the result onto a
// candidate name. Low confidence or an unsupported charset returns false,
// leaving the fallback ladder to do the work.
func detect(raw []byte) (string, bool) {
	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil || result.Confidence < minConfidence {
		return "", false
	}

	switch strings.ToLower(result.Charset) {
	case "utf-8":
		return candUTF8, true
	case "utf-16le":
		return candUTF16LE, true
	case "utf-16be":
		return candUTF16BE, true
	case "windows-1251":
		return candCP1251, true
	case "iso-8859-1":
		return candLatin1, true
	default:
		logger.Debug("detected charset %s has no strict decoder, using fallback ladder", result.Charset)
		return "", false
	}
}

// tryDecode attempts one candidate strictly.
func tryDecode(name string, raw []byte) (string, bool) {
	switch name {
	case candUTF8:
		if utf8.Valid(raw) {
			return string(raw), true
		}
		return "", false
	case candUTF16LE, candUTF16BE:
		return decodeUTF16(raw, name == candUTF16BE)
	case candCP1251:
		return decodeCharmap(charmap.Windows1251, raw)
	case candLatin1:
		// Latin-1 maps every byte, so it cannot fail.
		return decodeCharmap(charmap.ISO8859_1, raw)
	default:
		return "", false
	}
}

// decodeUTF16 decodes UTF-16 bytes strictly. A byte-order mark, when
// present, is honoured and stripped regardless of the requested order.
// Without a BOM the requested order is tried first, then the other.
func decodeUTF16(raw []byte, bigEndian bool) (string, bool) {
	if len(raw) >= 2 {
		switch {
		case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
			return decodeUTF16Units(raw[2:], false)
		case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
			return decodeUTF16Units(raw[2:], true)
		}
	}

	if text, ok := decodeUTF16Units(raw, bigEndian); ok {
		return text, true
	}
	return decodeUTF16Units(raw, !bigEndian)
}

// decodeUTF16Units converts code units in the given byte order, rejecting
// odd lengths and unpaired surrogates.
func decodeUTF16Units(raw []byte, bigEndian bool) (string, bool) {
	if len(raw)%2 != 0 {
		return "", false
	}

	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		var u uint16
		if bigEndian {
			u = uint16(raw[i])<<8 | uint16(raw[i+1])
		} else {
			u = uint16(raw[i+1])<<8 | uint16(raw[i])
		}
		units = append(units, u)
	}

	// Validate surrogate pairing before decoding; utf16.Decode silently
	// replaces unpaired surrogates, which would defeat strict mode.
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return "", false
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return "", false
		}
	}

	return string(utf16.Decode(units)), true
}

// decodeCharmap decodes a single-byte charset strictly. Bytes without a
// mapping come back as the replacement rune, which no charmap produces
// for a valid byte, so its presence means the input was invalid.
func decodeCharmap(cm *charmap.Charmap, raw []byte) (string, bool) {
	decoded, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	text := string(decoded)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}
