package domain

import (
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// LineKind tags the variant of a LineEntry.
type LineKind uint8

const (
	// LinePlain is a shell line that is echoed before it runs.
	LinePlain LineKind = iota
	// LineQuiet is a shell line that runs without being echoed.
	LineQuiet
	// LineNamedRef runs another command in an isolated child frame.
	LineNamedRef
	// LineInlineRef splices another command into the current shell session.
	LineInlineRef
)

// Line markers, recognised only as the first character of a raw line.
const (
	NamedRefMarker  = '+'
	InlineRefMarker = '<'
	QuietMarker     = '@'
)

func (k LineKind) String() string {
	switch k {
	case LinePlain:
		return "plain"
	case LineQuiet:
		return "quiet"
	case LineNamedRef:
		return "named"
	case LineInlineRef:
		return "inline"
	default:
		return "unknown"
	}
}

// LineEntry is one parsed script line. Text holds the shell text for
// plain and quiet lines and the referenced command name for references.
type LineEntry struct {
	Kind LineKind
	Text string
}

// ParseLine classifies a raw script line by its first character. Everything
// after the marker is kept verbatim; no quoting or escaping is interpreted.
func ParseLine(raw string) (LineEntry, error) {
	if raw == "" {
		return LineEntry{Kind: LinePlain}, nil
	}

	switch raw[0] {
	case InlineRefMarker:
		name, err := refName(raw)
		if err != nil {
			return LineEntry{}, err
		}
		return LineEntry{Kind: LineInlineRef, Text: name}, nil
	case NamedRefMarker:
		name, err := refName(raw)
		if err != nil {
			return LineEntry{}, err
		}
		return LineEntry{Kind: LineNamedRef, Text: name}, nil
	case QuietMarker:
		return LineEntry{Kind: LineQuiet, Text: raw[1:]}, nil
	default:
		return LineEntry{Kind: LinePlain, Text: raw}, nil
	}
}

// refName extracts the command name following a reference marker.
// The name must start right after the marker and span the rest of the line.
func refName(raw string) (string, error) {
	name := strings.TrimRightFunc(raw[1:], unicode.IsSpace)
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", zerr.With(zerr.Wrap(ErrMalformedReference, "expected a command name after the marker"), "line", raw)
	}
	return name, nil
}
