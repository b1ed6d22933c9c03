package x12

import "encoding/json"

// Document is the root of the canonical document model: the
// envelope tree produced by AssembleEnvelope, plus whatever semantic
// trees the transaction dispatcher attached to each TransactionSet.
type Document struct {
	Interchanges []Interchange
}

// interchangeHeaderJSON and friends give the document model an explicit,
// centrally-defined JSON shape instead of deriving it from struct tags
// via reflection over the domain types directly: Interchange/
// FunctionalGroup/TransactionSet carry parsing-oriented field names
// (TrailerControlNum, etc) that don't belong in the wire format, so each
// level's MarshalJSON method builds its own small wire struct explicitly.
type interchangeHeaderJSON struct {
	SenderQualifier   string `json:"sender_qualifier"`
	SenderID          string `json:"sender_id"`
	ReceiverQualifier string `json:"receiver_qualifier"`
	ReceiverID        string `json:"receiver_id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	StandardsID       string `json:"standards_id"`
	Version           string `json:"version"`
	ControlNumber     string `json:"control_number"`
	UsageIndicator    string `json:"usage_indicator"`
}

type interchangeJSON struct {
	Header           interchangeHeaderJSON `json:"header"`
	FunctionalGroups []FunctionalGroup     `json:"functional_groups"`
}

// MarshalJSON renders the interchange as { header, functional_groups }.
func (ic Interchange) MarshalJSON() ([]byte, error) {
	groups := ic.FunctionalGroups
	flat := make([]FunctionalGroup, len(groups))
	for i, g := range groups {
		flat[i] = *g
	}
	return json.Marshal(interchangeJSON{
		Header: interchangeHeaderJSON{
			SenderQualifier:   ic.SenderQualifier,
			SenderID:          ic.SenderID,
			ReceiverQualifier: ic.ReceiverQualifier,
			ReceiverID:        ic.ReceiverID,
			Date:              ic.Date,
			Time:              ic.Time,
			StandardsID:       ic.StandardsID,
			Version:           ic.Version,
			ControlNumber:     ic.ControlNumber,
			UsageIndicator:    ic.UsageIndicator,
		},
		FunctionalGroups: flat,
	})
}

type functionalGroupHeaderJSON struct {
	FunctionalIDCode        string `json:"functional_id_code"`
	ApplicationSenderCode   string `json:"application_sender_code"`
	ApplicationReceiverCode string `json:"application_receiver_code"`
	Date                    string `json:"date"`
	Time                    string `json:"time"`
	ControlNumber           string `json:"control_number"`
	ResponsibleAgencyCode   string `json:"responsible_agency_code"`
	VersionCode             string `json:"version_code"`
}

type functionalGroupJSON struct {
	Header       functionalGroupHeaderJSON `json:"header"`
	Transactions []TransactionSet          `json:"transactions"`
}

// MarshalJSON renders the functional group as { header, transactions }.
func (fg FunctionalGroup) MarshalJSON() ([]byte, error) {
	txns := fg.TransactionSets
	flat := make([]TransactionSet, len(txns))
	for i, t := range txns {
		flat[i] = *t
	}
	return json.Marshal(functionalGroupJSON{
		Header: functionalGroupHeaderJSON{
			FunctionalIDCode:        fg.FunctionalIDCode,
			ApplicationSenderCode:   fg.ApplicationSenderCode,
			ApplicationReceiverCode: fg.ApplicationReceiverCode,
			Date:                    fg.Date,
			Time:                    fg.Time,
			ControlNumber:           fg.ControlNumber,
			ResponsibleAgencyCode:   fg.ResponsibleAgencyCode,
			VersionCode:             fg.VersionCode,
		},
		Transactions: flat,
	})
}

type transactionSetHeaderJSON struct {
	TransactionSetCode string `json:"transaction_set_code"`
	ControlNumber      string `json:"control_number"`
}

type transactionSetJSON struct {
	Header          transactionSetHeaderJSON `json:"header"`
	TransactionData interface{}              `json:"transaction_data"`
}

// MarshalJSON renders the transaction set as { header, transaction_data }.
// TransactionData is the projected semantic tree (see the transaction
// package) when the code was recognized, or the raw segment list
// otherwise.
func (ts TransactionSet) MarshalJSON() ([]byte, error) {
	data := ts.Data
	if data == nil {
		data = ts.Segments
	}
	return json.Marshal(transactionSetJSON{
		Header: transactionSetHeaderJSON{
			TransactionSetCode: ts.Code,
			ControlNumber:      ts.ControlNumber,
		},
		TransactionData: data,
	})
}

type documentJSON struct {
	Interchanges []Interchange `json:"interchanges"`
}

// MarshalJSON renders the document as { interchanges: [...] }.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{Interchanges: d.Interchanges})
}
