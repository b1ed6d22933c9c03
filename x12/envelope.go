package x12

import (
	"fmt"

	"github.com/genformai/edi-cli/diagnostic"
)

// Interchange is the outermost envelope (ISA/IEA).
type Interchange struct {
	SenderQualifier    string
	SenderID           string
	ReceiverQualifier  string
	ReceiverID         string
	Date               string
	Time               string
	StandardsID        string
	Version            string
	ControlNumber      string
	UsageIndicator     string
	FunctionalGroups   []*FunctionalGroup
	TrailerControlNum  string
	TrailerGroupCount  int
}

// FunctionalGroup is a GS/GE envelope containing one or more transaction
// sets of the same functional identifier code.
type FunctionalGroup struct {
	FunctionalIDCode        string
	ApplicationSenderCode   string
	ApplicationReceiverCode string
	Date                    string
	Time                    string
	ControlNumber           string
	ResponsibleAgencyCode   string
	VersionCode             string
	TransactionSets         []*TransactionSet
	TrailerControlNum       string
	TrailerTxnCount         int
}

// TransactionSet is an ST/SE envelope. Segments holds every segment from
// ST through SE inclusive, in source order; Data is populated by the
// transaction dispatcher with the projected semantic tree, or left nil
// when the transaction-set code is unrecognized.
type TransactionSet struct {
	Code                 string
	ControlNumber        string
	Segments             []Segment
	TrailerControlNum    string
	TrailerSegmentCount  int
	Data                 interface{}
}

// assembler level states, per the pushdown described in the design.
type envelopeState int

const (
	stateOutside envelopeState = iota
	stateInInterchange
	stateInGroup
	stateInTransaction
)

// AssembleEnvelope folds a flat segment stream into the interchange ->
// functional-group -> transaction-set tree. Structural mismatches
// (control-number or count disagreements) are recorded as
// diagnostics rather than aborting. A stream with no ISA at all yields
// zero interchanges: segments outside an interchange are dropped, and
// stray envelope markers raise *_UNEXPECTED warnings. ISA-absence is
// rejected fatally upstream by DetectDelimiters.
func AssembleEnvelope(segments []Segment, diag *diagnostic.Collector) []Interchange {
	var interchanges []*Interchange
	var currentInterchange *Interchange
	var currentGroup *FunctionalGroup
	var currentTxn *TransactionSet
	state := stateOutside

	for i, seg := range segments {
		switch seg.ID {
		case "ISA":
			if state != stateOutside {
				diag.Warnf("NESTED_ISA", fmt.Sprintf("segments[%d]", i), "nested ISA segment encountered before matching IEA")
			}
			currentInterchange = newInterchange(seg)
			state = stateInInterchange

		case "GS":
			if state != stateInInterchange {
				diag.Warnf("GS_UNEXPECTED", fmt.Sprintf("segments[%d]", i), "GS segment encountered outside an interchange")
				continue
			}
			currentGroup = newFunctionalGroup(seg)
			state = stateInGroup

		case "ST":
			if state != stateInGroup {
				diag.Warnf("ST_UNEXPECTED", fmt.Sprintf("segments[%d]", i), "ST segment encountered outside a functional group")
				continue
			}
			currentTxn = &TransactionSet{
				Code:          seg.Get(1),
				ControlNumber: seg.Get(2),
				Segments:      []Segment{seg},
			}
			state = stateInTransaction

		case "SE":
			if state != stateInTransaction {
				diag.Warnf("SE_UNEXPECTED", fmt.Sprintf("segments[%d]", i), "SE segment encountered outside a transaction set")
				continue
			}
			currentTxn.Segments = append(currentTxn.Segments, seg)
			currentTxn.TrailerSegmentCount = atoiSafe(seg.Get(1))
			currentTxn.TrailerControlNum = seg.Get(2)
			finalizeTransaction(currentTxn, currentGroup, diag)
			currentGroup.TransactionSets = append(currentGroup.TransactionSets, currentTxn)
			currentTxn = nil
			state = stateInGroup

		case "GE":
			if state != stateInGroup {
				diag.Warnf("GE_UNEXPECTED", fmt.Sprintf("segments[%d]", i), "GE segment encountered outside a functional group")
				continue
			}
			currentGroup.TrailerTxnCount = atoiSafe(seg.Get(1))
			currentGroup.TrailerControlNum = seg.Get(2)
			finalizeGroup(currentGroup, diag)
			currentInterchange.FunctionalGroups = append(currentInterchange.FunctionalGroups, currentGroup)
			currentGroup = nil
			state = stateInInterchange

		case "IEA":
			if state != stateInInterchange {
				diag.Warnf("IEA_UNEXPECTED", fmt.Sprintf("segments[%d]", i), "IEA segment encountered outside an interchange")
				continue
			}
			currentInterchange.TrailerGroupCount = atoiSafe(seg.Get(1))
			currentInterchange.TrailerControlNum = seg.Get(2)
			finalizeInterchange(currentInterchange, diag)
			interchanges = append(interchanges, currentInterchange)
			currentInterchange = nil
			state = stateOutside

		default:
			switch state {
			case stateInTransaction:
				currentTxn.Segments = append(currentTxn.Segments, seg)
			case stateOutside:
				// stray segment before any ISA; nothing to attach it to
			default:
				// between envelope markers with no open transaction; ignore
			}
		}
	}

	out := make([]Interchange, len(interchanges))
	for i, ic := range interchanges {
		out[i] = *ic
	}
	return out
}

func newInterchange(seg Segment) *Interchange {
	return &Interchange{
		SenderQualifier:   seg.Get(5),
		SenderID:          seg.Get(6),
		ReceiverQualifier: seg.Get(7),
		ReceiverID:        seg.Get(8),
		Date:              seg.Get(9),
		Time:              seg.Get(10),
		StandardsID:       seg.Get(11),
		Version:           seg.Get(12),
		ControlNumber:     seg.Get(13),
		UsageIndicator:    seg.Get(15),
	}
}

func newFunctionalGroup(seg Segment) *FunctionalGroup {
	return &FunctionalGroup{
		FunctionalIDCode:        seg.Get(1),
		ApplicationSenderCode:   seg.Get(2),
		ApplicationReceiverCode: seg.Get(3),
		Date:                    seg.Get(4),
		Time:                    seg.Get(5),
		ControlNumber:           seg.Get(6),
		ResponsibleAgencyCode:   seg.Get(7),
		VersionCode:             seg.Get(8),
	}
}

func finalizeTransaction(txn *TransactionSet, group *FunctionalGroup, diag *diagnostic.Collector) {
	path := fmt.Sprintf("transactions[control_number=%s]", txn.ControlNumber)
	if txn.ControlNumber != txn.TrailerControlNum {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "ST02_SE02_MISMATCH",
			Path:     path,
			Message:  "ST02 control number does not match SE02",
			Context: map[string]string{
				"st02": txn.ControlNumber,
				"se02": txn.TrailerControlNum,
			},
		})
	}
	actual := len(txn.Segments)
	if txn.TrailerSegmentCount != actual {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "SE01_COUNT_INVALID",
			Path:     path,
			Message:  "SE01 declared segment count does not match the actual count",
			Context: map[string]string{
				"declared": fmt.Sprintf("%d", txn.TrailerSegmentCount),
				"actual":   fmt.Sprintf("%d", actual),
			},
		})
	}
	_ = group // group currently unused beyond ownership; kept for symmetry/future cross-checks
}

func finalizeGroup(group *FunctionalGroup, diag *diagnostic.Collector) {
	path := fmt.Sprintf("functional_groups[control_number=%s]", group.ControlNumber)
	if group.ControlNumber != group.TrailerControlNum {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "GS06_GE02_MISMATCH",
			Path:     path,
			Message:  "GS06 control number does not match GE02",
			Context: map[string]string{
				"gs06": group.ControlNumber,
				"ge02": group.TrailerControlNum,
			},
		})
	}
	actual := len(group.TransactionSets)
	if group.TrailerTxnCount != actual {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "GE01_COUNT_MISMATCH",
			Path:     path,
			Message:  "GE01 declared transaction count does not match the actual count",
			Context: map[string]string{
				"declared": fmt.Sprintf("%d", group.TrailerTxnCount),
				"actual":   fmt.Sprintf("%d", actual),
			},
		})
	}
}

func finalizeInterchange(ic *Interchange, diag *diagnostic.Collector) {
	path := fmt.Sprintf("interchanges[control_number=%s]", ic.ControlNumber)
	if ic.ControlNumber != ic.TrailerControlNum {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "ISA13_IEA02_MISMATCH",
			Path:     path,
			Message:  "ISA13 control number does not match IEA02",
			Context: map[string]string{
				"isa13": ic.ControlNumber,
				"iea02": ic.TrailerControlNum,
			},
		})
	}
	actual := len(ic.FunctionalGroups)
	if ic.TrailerGroupCount != actual {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "IEA01_COUNT_MISMATCH",
			Path:     path,
			Message:  "IEA01 declared group count does not match the actual count",
			Context: map[string]string{
				"declared": fmt.Sprintf("%d", ic.TrailerGroupCount),
				"actual":   fmt.Sprintf("%d", actual),
			},
		})
	}
}

func atoiSafe(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}
