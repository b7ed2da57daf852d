package domain

import "strings"

// Crossing describes how a breadcrumb segment was reached.
type Crossing uint8

const (
	// CrossRoot marks the first segment of a breadcrumb.
	CrossRoot Crossing = iota
	// CrossNamed marks a segment entered through a named reference.
	CrossNamed
	// CrossInline marks a segment entered through an inline reference.
	CrossInline
)

// Breadcrumb separators.
const (
	NamedSeparator  = ">"
	InlineSeparator = "<"
)

// Segment is one traversed command name.
type Segment struct {
	Name     string
	Crossing Crossing
}

// Breadcrumb is the path of command names traversed so far.
// Values are immutable: Named and Inline return extended copies.
type Breadcrumb struct {
	segments []Segment
}

// NewBreadcrumb starts a breadcrumb at the given command.
func NewBreadcrumb(name string) Breadcrumb {
	return Breadcrumb{segments: []Segment{{Name: name, Crossing: CrossRoot}}}
}

// ParseBreadcrumb reads a rendered breadcrumb back, as published to nested
// processes through DONK_COMMAND. Command names never contain a separator.
func ParseBreadcrumb(s string) Breadcrumb {
	var b Breadcrumb
	if s == "" {
		return b
	}

	crossing := CrossRoot
	start := 0
	for i := 0; i < len(s); i++ {
		var next Crossing
		switch s[i:i+1] {
		case NamedSeparator:
			next = CrossNamed
		case InlineSeparator:
			next = CrossInline
		default:
			continue
		}
		b.segments = append(b.segments, Segment{Name: s[start:i], Crossing: crossing})
		crossing = next
		start = i + 1
	}
	b.segments = append(b.segments, Segment{Name: s[start:], Crossing: crossing})
	return b
}

// Named returns the breadcrumb extended by a named crossing.
func (b Breadcrumb) Named(name string) Breadcrumb {
	return b.extend(name, CrossNamed)
}

// Inline returns the breadcrumb extended by an inline crossing.
func (b Breadcrumb) Inline(name string) Breadcrumb {
	return b.extend(name, CrossInline)
}

func (b Breadcrumb) extend(name string, crossing Crossing) Breadcrumb {
	if len(b.segments) == 0 {
		crossing = CrossRoot
	}
	segments := make([]Segment, len(b.segments), len(b.segments)+1)
	copy(segments, b.segments)
	return Breadcrumb{segments: append(segments, Segment{Name: name, Crossing: crossing})}
}

// IsZero reports whether the breadcrumb has no segments.
func (b Breadcrumb) IsZero() bool {
	return len(b.segments) == 0
}

// String renders the display path, e.g. "ci>test<setup".
func (b Breadcrumb) String() string {
	var sb strings.Builder
	for _, seg := range b.segments {
		switch seg.Crossing {
		case CrossNamed:
			sb.WriteString(NamedSeparator)
		case CrossInline:
			sb.WriteString(InlineSeparator)
		case CrossRoot:
		}
		sb.WriteString(seg.Name)
	}
	return sb.String()
}
