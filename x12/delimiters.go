package x12

// ISAHeaderLength is the fixed byte length of the ISA header segment,
// including its trailing terminator.
const ISAHeaderLength = 106

// Fixed offsets within the 106-byte ISA header (0-based byte positions).
const (
	isaHeaderLength       = ISAHeaderLength
	isaElementSepOffset   = 3
	isaRepetitionOffset   = 82
	isaComponentSepOffset = 104
	isaTerminatorOffset   = 105
)

// Default delimiters, used only when a caller tokenizes a segment body
// without an ISA header to detect from (e.g. constructing fixtures by
// hand in tests) rather than as a parsing fallback: a real ISA header
// always declares its own.
const (
	DefaultElementSeparator    = '*'
	DefaultComponentSeparator  = ':'
	DefaultRepetitionSeparator = '^'
	DefaultSegmentTerminator   = '~'
)

// Delimiters holds the four characters an X12 interchange declares for
// itself in its ISA header. Unlike EDIFACT or HL7, X12 has no universal
// default; every document is self-describing.
type Delimiters struct {
	Element    rune // ISA header byte 3: separates elements within a segment
	Component  rune // ISA header byte 104 (ISA16): separates sub-elements
	Repetition rune // ISA header byte 82 (ISA11), version-dependent
	Terminator rune // ISA header byte 105: separates segments
}

// DefaultDelimiters returns the conventional delimiter set used when no
// ISA header is available to detect from (e.g. constructing a document by
// hand in tests).
func DefaultDelimiters() *Delimiters {
	return &Delimiters{
		Element:    DefaultElementSeparator,
		Component:  DefaultComponentSeparator,
		Repetition: DefaultRepetitionSeparator,
		Terminator: DefaultSegmentTerminator,
	}
}

// DetectDelimiters reads the fixed-width ISA header and extracts the
// element separator, component separator, and segment terminator, plus
// the repetition separator when ISA11 carries one. Component C1 in the
// design: this must run before any segment can be tokenized, since every
// later split depends on these runes.
func DetectDelimiters(data []byte) (*Delimiters, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(data) < 3 || string(data[:3]) != "ISA" {
		return nil, ErrNotISA
	}
	if len(data) < isaHeaderLength {
		return nil, ErrHeaderTooShort
	}

	d := &Delimiters{
		Element:    rune(data[isaElementSepOffset]),
		Component:  rune(data[isaComponentSepOffset]),
		Terminator: rune(data[isaTerminatorOffset]),
	}

	rep := rune(data[isaRepetitionOffset])
	if isPlausibleRepetitionSeparator(rep, d.Element, d.Component) {
		d.Repetition = rep
	} else {
		d.Repetition = d.Component
	}

	return d, nil
}

// isPlausibleRepetitionSeparator rejects alphanumeric bytes, which in
// 4010-era interchanges occupy ISA11's position (the "repetition
// separator" slot did not yet exist) and so are never a real delimiter.
func isPlausibleRepetitionSeparator(r, element, component rune) bool {
	if r == element || r == component {
		return false
	}
	if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		return false
	}
	return true
}

// Equal returns true if two Delimiters instances have the same values.
func (d *Delimiters) Equal(other *Delimiters) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Element == other.Element &&
		d.Component == other.Component &&
		d.Repetition == other.Repetition &&
		d.Terminator == other.Terminator
}
