// Package testdata provides embedded X12 test documents covering the
// supported healthcare transaction sets, plus deliberately malformed
// inputs for exercising the parser's failure paths.
package testdata

import (
	"embed"
	"fmt"
	"path"
)

//go:embed *.x12 malformed/*.x12
var FS embed.FS

// Document file names.
const (
	File835Minimal      = "835_minimal.x12"
	File835PLBImbalance = "835_plb_imbalance.x12"
	File835Services     = "835_services.x12"
	File837P            = "837p.x12"
	File270             = "270.x12"
	File271             = "271.x12"
	File276             = "276.x12"
	File277             = "277.x12"
	FileUnknown997      = "unknown_997.x12"
	FileEmpty           = "malformed/empty.x12"
	FileNotISA          = "malformed/not_isa.x12"
	FileTruncated       = "malformed/truncated.x12"
	FileControlMismatch = "malformed/control_mismatch.x12"
)

// Load835Minimal loads the minimal 835 (ACH payment, one paid claim)
// test document.
func Load835Minimal() ([]byte, error) {
	return FS.ReadFile(File835Minimal)
}

// Load835PLBImbalance loads the 835 whose provider-level adjustment
// throws the payment out of balance.
func Load835PLBImbalance() ([]byte, error) {
	return FS.ReadFile(File835PLBImbalance)
}

// Load835Services loads the 835 with service lines and multi-triplet
// claim adjustments.
func Load835Services() ([]byte, error) {
	return FS.ReadFile(File835Services)
}

// Load837P loads the 837 Professional claim test document.
func Load837P() ([]byte, error) {
	return FS.ReadFile(File837P)
}

// Load270 loads the 270 Eligibility Inquiry test document.
func Load270() ([]byte, error) {
	return FS.ReadFile(File270)
}

// Load271 loads the 271 Eligibility Benefit Response test document.
func Load271() ([]byte, error) {
	return FS.ReadFile(File271)
}

// Load276 loads the 276 Claim Status Inquiry test document.
func Load276() ([]byte, error) {
	return FS.ReadFile(File276)
}

// Load277 loads the 277 Claim Status Response test document.
func Load277() ([]byte, error) {
	return FS.ReadFile(File277)
}

// LoadUnknown997 loads a 997 Functional Acknowledgment, which the
// dispatcher has no projector for.
func LoadUnknown997() ([]byte, error) {
	return FS.ReadFile(FileUnknown997)
}

// LoadMalformed loads one of the malformed documents by its base name
// ("empty", "not_isa", "truncated", "control_mismatch").
func LoadMalformed(name string) ([]byte, error) {
	return FS.ReadFile(path.Join("malformed", name+".x12"))
}

// MustLoad loads any embedded document by file name, panicking on a
// missing file. Intended for test setup where a missing fixture is a
// programming error.
func MustLoad(name string) []byte {
	data, err := FS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("testdata: %v", err))
	}
	return data
}

// Documents returns the names of every well-formed (non-malformed)
// embedded document.
func Documents() []string {
	return []string{
		File835Minimal,
		File835PLBImbalance,
		File835Services,
		File837P,
		File270,
		File271,
		File276,
		File277,
		FileUnknown997,
	}
}
