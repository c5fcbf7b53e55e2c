package metrics

import "TenderBoard/internal/domain"

// Summary holds the eight headline statistics of a filtered record set.
// Every average is 0 when its denominator is 0; nothing here ever divides by
// zero or yields NaN.
type Summary struct {
	UniqueNotices      int     `json:"unique_notices"`
	TotalValueNotices  int64   `json:"total_value_notices"`
	UniqueSubContracts int     `json:"unique_subcontracts"`
	TotalValueTenders  int64   `json:"total_value_tenders"`
	AvgValuePerNotice  float64 `json:"avg_value_per_notice"`
	UniqueWinners      int     `json:"unique_winners"`
	AvgLotsPerNotice   float64 `json:"avg_lots_per_notice"`
	AvgTenderValue     float64 `json:"avg_tender_value"`
}

// Compute aggregates a filtered record set into a Summary.
//
// total_value is repeated across all lots of a notice, so it is summed once
// per distinct publication_number (first non-missing occurrence), never
// per lot. tender_value is summed over all rows.
func Compute(records []domain.Record) Summary {
	var s Summary

	noticeValue := make(map[string]*int64)
	noticeOrder := make([]string, 0)
	lots := make(map[string]bool)
	winners := make(map[string]bool)

	for _, rec := range records {
		if _, seen := noticeValue[rec.PublicationNumber]; !seen {
			noticeOrder = append(noticeOrder, rec.PublicationNumber)
			noticeValue[rec.PublicationNumber] = nil
		}
		if noticeValue[rec.PublicationNumber] == nil && rec.TotalValue != nil {
			noticeValue[rec.PublicationNumber] = rec.TotalValue
		}

		lots[rec.LotKey()] = true

		if rec.WinnerName != "" {
			winners[rec.WinnerName] = true
		}

		if rec.TenderValue != nil {
			s.TotalValueTenders += *rec.TenderValue
		}
	}

	s.UniqueNotices = len(noticeOrder)
	s.UniqueSubContracts = len(lots)
	s.UniqueWinners = len(winners)

	for _, pub := range noticeOrder {
		if v := noticeValue[pub]; v != nil {
			s.TotalValueNotices += *v
		}
	}

	if s.UniqueNotices > 0 {
		s.AvgValuePerNotice = float64(s.TotalValueNotices) / float64(s.UniqueNotices)
		s.AvgLotsPerNotice = float64(s.UniqueSubContracts) / float64(s.UniqueNotices)
	}
	if s.UniqueSubContracts > 0 {
		s.AvgTenderValue = float64(s.TotalValueTenders) / float64(s.UniqueSubContracts)
	}

	return s
}
