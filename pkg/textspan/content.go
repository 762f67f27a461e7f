package textspan

// ContentKind discriminates the payload held by a Content value.
type ContentKind uint8

// Content payload kinds.
const (
	// ContentBytes references a single span of the source buffer.
	ContentBytes ContentKind = iota

	// ContentLiteral holds an owned string (decoded entities, synthesized
	// text).
	ContentLiteral

	// ContentSequence references multiple non-contiguous spans of the
	// source buffer.
	ContentSequence
)

// Content is the textual payload stored by IR nodes: a source byte span, an
// owned literal, or a sequence of spans. The zero value is an empty Bytes
// payload. Content values are a few machine words and cheap to copy; the
// literal string is shared, never duplicated.
type Content struct {
	kind    ContentKind
	span    Range
	literal string
	seq     Sequence
}

// Bytes creates a Content referencing a single source span.
func Bytes(r Range) Content {
	return Content{kind: ContentBytes, span: r}
}

// Literal creates a Content holding an owned string.
func Literal(s string) Content {
	return Content{kind: ContentLiteral, literal: s}
}

// Spans creates a Content referencing a sequence of source spans.
func Spans(s Sequence) Content {
	return Content{kind: ContentSequence, seq: s}
}

// Kind returns the payload kind.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Span returns the underlying range for Bytes payloads and the zero Range
// otherwise.
func (c Content) Span() Range {
	return c.span
}

// Sequence returns the underlying sequence for Sequence payloads and nil
// otherwise.
func (c Content) Sequence() Sequence {
	return c.seq
}

// IsEmpty returns true if materializing the content would yield "".
func (c Content) IsEmpty() bool {
	switch c.kind {
	case ContentLiteral:
		return c.literal == ""
	case ContentSequence:
		return c.seq.IsEmpty()
	default:
		return c.span.IsEmpty()
	}
}

// String materializes the content against the given source buffer. Literal
// payloads ignore source entirely.
func (c Content) String(source []byte) string {
	switch c.kind {
	case ContentLiteral:
		return c.literal
	case ContentSequence:
		return c.seq.String(source)
	default:
		return c.span.String(source)
	}
}

// Shifted returns the content with every embedded range moved by delta.
// Literal payloads are returned unchanged.
func (c Content) Shifted(delta int) Content {
	switch c.kind {
	case ContentLiteral:
		return c
	case ContentSequence:
		return Content{kind: ContentSequence, seq: c.seq.Shifted(delta)}
	default:
		return Content{kind: ContentBytes, span: c.span.Shifted(delta)}
	}
}

// Ranges returns the source ranges embedded in the content, nil for
// literals. The result aliases internal storage for sequences; callers must
// not mutate it.
func (c Content) Ranges() []Range {
	switch c.kind {
	case ContentLiteral:
		return nil
	case ContentSequence:
		return c.seq
	default:
		return []Range{c.span}
	}
}
