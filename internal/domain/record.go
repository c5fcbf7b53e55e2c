package domain

import "time"

// DateLayout is the single calendar format the dataset uses after upstream
// cleaning. Values not conforming to it are treated as missing.
const DateLayout = "2006-01-02"

// Record is one tender lot (sub-contract) of a contract award notice.
// A notice may span several records sharing the same PublicationNumber;
// TotalValue is repeated across all lots of a notice.
type Record struct {
	PublicationNumber        string    `json:"publication_number"`
	PublicationDate          time.Time `json:"publication_date"`
	NoticeTitle              string    `json:"notice_title"`
	NoticeDescription        string    `json:"notice_description"`
	CPVCode                  string    `json:"cpv_code"`
	AdditionalClassification string    `json:"additional_classification"`
	TenderLotIdentifier      string    `json:"tender_lot_identifier"`
	TenderValue              *int64    `json:"tender_value"`
	TotalValue               *int64    `json:"total_value"`
	BuyerName                string    `json:"buyer_name"`
	BuyerCountry             string    `json:"buyer_country"`
	WinnerName               string    `json:"winner_name"`
	WinnerCountry            string    `json:"winner_country"`
	WinnerEmail              string    `json:"winner_email"`
	TEDLinkEng               string    `json:"ted_link_eng"`
}

// HasDate reports whether the record carries a parseable publication date.
func (r Record) HasDate() bool {
	return !r.PublicationDate.IsZero()
}

// LotKey identifies a sub-contract within the whole dataset.
func (r Record) LotKey() string {
	return r.PublicationNumber + "\x00" + r.TenderLotIdentifier
}

// Columns enumerates the required CSV header names in canonical order.
// Export reproduces exactly this layout.
var Columns = []string{
	"publication_number",
	"publication_date",
	"notice_title",
	"notice_description",
	"cpv_code",
	"additional_classification",
	"tender_lot_identifier",
	"tender_value",
	"total_value",
	"buyer_name",
	"buyer_country",
	"winner_name",
	"winner_country",
	"winner_email",
	"ted_link_eng",
}

// Table is the loaded dataset. It is read-only shared state after load:
// filtering derives new slices and never mutates Records.
type Table struct {
	Records []Record

	// MinDate and MaxDate bound the non-missing publication dates; both are
	// zero when no record carries a valid date.
	MinDate time.Time
	MaxDate time.Time

	// MalformedDates counts values that did not conform to DateLayout.
	MalformedDates int
}

// ObserveDate widens the table's date bounds with a non-missing date.
func (t *Table) ObserveDate(d time.Time) {
	if d.IsZero() {
		return
	}
	if t.MinDate.IsZero() || d.Before(t.MinDate) {
		t.MinDate = d
	}
	if t.MaxDate.IsZero() || d.After(t.MaxDate) {
		t.MaxDate = d
	}
}
