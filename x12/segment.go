package x12

import (
	"strings"
)

// Element is a single field within a segment, represented as its ordered
// sub-element (component) strings. A field with no component separator
// present has exactly one component.
type Element []string

// Value returns the first component, which is the whole field value for
// the common case of a non-composite element.
func (e Element) Value() string {
	if len(e) == 0 {
		return ""
	}
	return e[0]
}

// Component returns the 1-based sub-element at idx, or "" if absent.
func (e Element) Component(idx int) string {
	if idx < 1 || idx > len(e) {
		return ""
	}
	return e[idx-1]
}

// Segment is one tokenized X12 segment: its identifier and ordered
// elements. Segment is immutable once produced by Tokenize.
type Segment struct {
	ID       string
	Elements []Element
}

// Element1 returns the element at the given 1-based position, or an
// empty Element if the segment has fewer fields.
func (s Segment) Element1(pos int) Element {
	if pos < 1 || pos > len(s.Elements) {
		return nil
	}
	return s.Elements[pos-1]
}

// Get returns the element value (first component) at a 1-based element
// position, or "" if absent.
func (s Segment) Get(pos int) string {
	return s.Element1(pos).Value()
}

// GetComponent returns the sub-element value at a 1-based element and
// component position, or "" if either is absent.
func (s Segment) GetComponent(pos, comp int) string {
	return s.Element1(pos).Component(comp)
}

// segmentIDPattern-equivalent validity check: 2-3 uppercase letters or
// digits, first character a letter. Segment ids shorter/longer than this
// still tokenize (so downstream diagnostics have something to point at)
// but are flagged by Tokenize via the returned malformed index list.
func validSegmentID(id string) bool {
	if len(id) < 2 || len(id) > 3 {
		return false
	}
	for i, r := range id {
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// Malformed records a segment index whose identifier failed validity
// checks, for the tokenizer's non-fatal MalformedSegment diagnostic.
type Malformed struct {
	Index int
	ID    string
}

// Tokenize splits a raw document body into segments using the supplied
// delimiters. Empty segments (produced by
// two consecutive terminators) are silently skipped per the documented
// policy. Segment ids outside the 2-3 character uppercase/alnum shape are
// still emitted — with their raw, possibly-empty id — so the caller can
// still navigate the structure; their indices are returned separately so
// the caller can raise MalformedSegment diagnostics without aborting.
func Tokenize(data []byte, d *Delimiters) ([]Segment, []Malformed) {
	if d == nil {
		d = DefaultDelimiters()
	}

	raw := splitOn(string(data), d.Terminator)
	segments := make([]Segment, 0, len(raw))
	var malformed []Malformed

	for _, chunk := range raw {
		chunk = strings.TrimRight(chunk, "\r\n")
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		fields := splitOn(chunk, d.Element)
		id := fields[0]
		elements := make([]Element, 0, len(fields)-1)
		for _, f := range fields[1:] {
			elements = append(elements, splitComponents(f, d.Component))
		}

		idx := len(segments)
		if !validSegmentID(id) {
			malformed = append(malformed, Malformed{Index: idx, ID: id})
		}

		segments = append(segments, Segment{ID: strings.ToUpper(id), Elements: elements})
	}

	return segments, malformed
}

func splitComponents(field string, sep rune) Element {
	parts := splitOn(field, sep)
	return Element(parts)
}

// splitOn splits s on sep without the surprising behavior of
// strings.Split for an empty separator (never occurs here, since X12
// delimiters are always a single declared rune, but keeps the helper
// total).
func splitOn(s string, sep rune) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, string(sep))
}
