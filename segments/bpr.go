package segments

import (
	"github.com/genformai/edi-cli/x12"
)

// BPR represents the Beginning Segment for Payment Order/Remittance
// Advice. It opens the financial header of an 835 and carries the total
// payment amount, payment method, and effective date.
type BPR struct {
	// TransactionHandlingCode is BPR01: how the transaction is to be
	// handled (e.g. "I" = remittance information only).
	TransactionHandlingCode string

	// MonetaryAmount is BPR02: the total actual provider payment amount,
	// as the raw decimal string from the wire.
	MonetaryAmount string

	// CreditDebitFlag is BPR03: "C" (credit) or "D" (debit).
	CreditDebitFlag string

	// PaymentMethod is BPR04: payment method code (ACH, CHK, BOP, FWT, NON).
	PaymentMethod string

	// PaymentFormat is BPR05: payment format code (e.g. "CCP", "CTX").
	PaymentFormat string

	// EffectiveDate is BPR16: the payment effective date (CCYYMMDD).
	EffectiveDate string
}

// ParseBPR builds a BPR view from a tokenized segment.
func ParseBPR(seg x12.Segment) BPR {
	return BPR{
		TransactionHandlingCode: seg.Get(1),
		MonetaryAmount:          seg.Get(2),
		CreditDebitFlag:         seg.Get(3),
		PaymentMethod:           seg.Get(4),
		PaymentFormat:           seg.Get(5),
		EffectiveDate:           seg.Get(16),
	}
}

// TRN represents the Reassociation Trace Number segment, which ties an
// 835 payment to its corresponding funds transfer, or identifies a claim
// inquiry in a 276.
type TRN struct {
	// TraceTypeCode is TRN01: "1" = current transaction trace number.
	TraceTypeCode string

	// ReferenceID is TRN02: the trace (check or EFT) number.
	ReferenceID string

	// OriginatingCompanyID is TRN03: the payer's company identifier.
	OriginatingCompanyID string
}

// ParseTRN builds a TRN view from a tokenized segment.
func ParseTRN(seg x12.Segment) TRN {
	return TRN{
		TraceTypeCode:        seg.Get(1),
		ReferenceID:          seg.Get(2),
		OriginatingCompanyID: seg.Get(3),
	}
}
