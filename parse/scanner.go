package parse

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/x12"
)

// Scanner-specific errors.
var (
	// ErrInterchangeTooLarge is returned when an interchange exceeds the
	// configured maximum size.
	ErrInterchangeTooLarge = errors.New("interchange exceeds maximum size")
)

// Default scanner configuration values.
const (
	defaultMaxInterchangeSize = 10 * 1024 * 1024 // 10 MB max interchange size
	defaultBufferSize         = 64 * 1024        // 64 KB buffer
)

// Scanner provides streaming parsing of a batch file containing one or
// more concatenated interchanges (ISA...IEA) from an io.Reader. Batch
// files of this shape are common when a trading partner delivers a
// day's worth of transactions in a single file.
type Scanner interface {
	// Scan advances to the next interchange. Returns true if one was
	// found and parsed.
	Scan() bool

	// Document returns the result of parsing the most recently scanned
	// interchange. Returns the zero Document if Scan hasn't been called
	// or returned false.
	Document() x12.Document

	// Diagnostics returns the collector produced while parsing the most
	// recently scanned interchange.
	Diagnostics() *diagnostic.Collector

	// Err returns any error encountered during scanning. Returns nil if
	// no error occurred, including at normal end of input.
	Err() error
}

// scanner is the concrete implementation of Scanner.
type scanner struct {
	reader         *bufio.Reader
	parser         Parser
	doc            x12.Document
	diag           *diagnostic.Collector
	err            error
	maxInterchange int
}

// ScannerOption is a functional option for configuring the scanner.
type ScannerOption func(*scanner)

// WithMaxInterchangeSize sets the maximum allowed interchange size in
// bytes. Default is 10 MB.
func WithMaxInterchangeSize(size int) ScannerOption {
	return func(s *scanner) {
		if size > 0 {
			s.maxInterchange = size
		}
	}
}

// NewScanner creates a Scanner that reads from r, parsing each
// interchange it finds using a Parser built from opts.
func NewScanner(r io.Reader, opts ...Option) Scanner {
	return &scanner{
		reader:         bufio.NewReaderSize(r, defaultBufferSize),
		parser:         New(opts...),
		maxInterchange: defaultMaxInterchangeSize,
	}
}

// NewScannerWithOptions creates a Scanner with additional scanner-level
// options alongside the parser options.
func NewScannerWithOptions(r io.Reader, parserOpts []Option, scannerOpts ...ScannerOption) Scanner {
	s := NewScanner(r, parserOpts...).(*scanner)
	for _, opt := range scannerOpts {
		opt(s)
	}
	return s
}

// Scan advances to the next interchange.
func (s *scanner) Scan() bool {
	s.doc = x12.Document{}
	s.diag = nil

	data, err := s.readInterchange()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	if len(data) == 0 {
		return false
	}

	doc, diag, parseErr := s.parser.Parse(data)
	if parseErr != nil {
		s.err = parseErr
		return false
	}

	s.doc = doc
	s.diag = diag
	return true
}

// Document returns the most recently parsed interchange's document.
func (s *scanner) Document() x12.Document {
	return s.doc
}

// Diagnostics returns the most recently parsed interchange's collector.
func (s *scanner) Diagnostics() *diagnostic.Collector {
	return s.diag
}

// Err returns any error encountered during scanning.
func (s *scanner) Err() error {
	return s.err
}

// readInterchange reads one complete ISA...IEA interchange from the
// reader. It locates the terminator character from the fixed-width ISA
// header, then scans forward segment by segment until it sees an IEA
// segment close, at which point the interchange is complete and the
// reader is left positioned at the start of the next one, if any.
func (s *scanner) readInterchange() ([]byte, error) {
	prefix, err := s.reader.Peek(x12.ISAHeaderLength)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(prefix) == 0 {
		return nil, io.EOF
	}
	if !bytes.HasPrefix(prefix, []byte("ISA")) {
		return nil, x12.ErrNotISA
	}
	if len(prefix) < x12.ISAHeaderLength {
		return nil, x12.ErrHeaderTooShort
	}

	delims, err := x12.DetectDelimiters(prefix)
	if err != nil {
		return nil, err
	}
	terminator := byte(delims.Terminator)

	var buf bytes.Buffer
	var segment bytes.Buffer
	size := 0

	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				if buf.Len() > 0 {
					return buf.Bytes(), nil
				}
				return nil, io.EOF
			}
			return nil, err
		}

		buf.WriteByte(b)
		size++
		if size > s.maxInterchange {
			return nil, ErrInterchangeTooLarge
		}

		if b == terminator {
			closed := bytes.HasPrefix(bytes.TrimLeft(segment.Bytes(), "\r\n"), []byte("IEA"))
			segment.Reset()
			if closed {
				return buf.Bytes(), nil
			}
			continue
		}
		segment.WriteByte(b)
	}
}
