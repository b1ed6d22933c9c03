package transaction

import (
	"fmt"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/segments"
	"github.com/genformai/edi-cli/x12"
)

func claimStatusParty(nm1 segments.NM1) ClaimStatusParty {
	return ClaimStatusParty{Name: nm1.Name(), IdentificationCode: nm1.IDCode}
}

// Project276 walks a 276 Claim Status Inquiry transaction set. Shared
// skeleton with 277: information_source/receiver/subscriber/dependent
// via NM1 loops, diverging at TRN/AMT: each TRN opens one claim inquiry,
// and an AMT sets the total claim charge of the open inquiry.
func Project276(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	t := &T276{}
	pathPrefix := fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber)
	var current *ClaimInquiry
	var sawSubscriber bool

	flush := func() {
		if current != nil {
			t.Inquiries = append(t.Inquiries, *current)
			current = nil
		}
	}

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "NM1":
			nm1 := segments.ParseNM1(seg)
			switch nm1.EntityIdentifier {
			case "PR":
				t.InformationSource = claimStatusParty(nm1)
			case "41":
				t.InformationReceiver = claimStatusParty(nm1)
			case "IL":
				sawSubscriber = true
				t.Subscriber = claimStatusParty(nm1)
			case "QC":
				p := claimStatusParty(nm1)
				t.Dependent = &p
			}
		case "TRN":
			flush()
			current = &ClaimInquiry{ClaimControlNumber: segments.ParseTRN(seg).ReferenceID}
		case "AMT":
			if current != nil {
				amt := segments.ParseAMT(seg)
				current.TotalClaimCharge = parseMoney(amt.Amount, fmt.Sprintf("%s.claim_inquiries[%d].total_claim_charge", pathPrefix, len(t.Inquiries)), diag)
			}
		}
	}
	flush()
	requireSubscriber(sawSubscriber, ts.ControlNumber, diag)
	ts.Data = t
}

// Project277 walks a 277 Claim Status Response transaction set.
func Project277(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	t := &T277{}
	var sawSubscriber bool

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "NM1":
			nm1 := segments.ParseNM1(seg)
			switch nm1.EntityIdentifier {
			case "PR":
				t.InformationSource = claimStatusParty(nm1)
			case "41":
				t.InformationReceiver = claimStatusParty(nm1)
			case "IL":
				sawSubscriber = true
				t.Subscriber = claimStatusParty(nm1)
			case "QC":
				p := claimStatusParty(nm1)
				t.Dependent = &p
			}
		case "STC":
			stc := segments.ParseSTC(seg)
			t.StatusInfo = append(t.StatusInfo, ClaimStatusInfo{
				CategoryCode: stc.CategoryCode,
				StatusCode:   stc.StatusCode,
			})
		case "MSG":
			if msg := segments.ParseMSG(seg).Text; msg != "" {
				t.Messages = append(t.Messages, msg)
			}
		}
	}
	requireSubscriber(sawSubscriber, ts.ControlNumber, diag)
	ts.Data = t
}
