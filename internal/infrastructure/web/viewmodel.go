package web

import (
	"time"

	"TenderBoard/internal/domain"
	"TenderBoard/internal/filter"
	"TenderBoard/internal/metrics"
	"TenderBoard/internal/usecase"
	"TenderBoard/pkg/format"
)

// dashboardResponse is the /api/dashboard payload.
type dashboardResponse struct {
	Metrics        metrics.Summary `json:"metrics"`
	Charts         chartSet        `json:"charts"`
	Filters        filtersEcho     `json:"filters"`
	MatchedRecords int             `json:"matched_records"`
}

type chartSet struct {
	NoticesOverTime metrics.Chart `json:"notices_over_time"`
	TopWinners      metrics.Chart `json:"top_winners"`
	TopBuyers       metrics.Chart `json:"top_buyers"`
}

// filtersEcho mirrors the active filter values back for display.
type filtersEcho struct {
	CPVCodes string `json:"cpv_codes,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	MatchAll bool   `json:"match_all,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

func echoFilters(in filter.Input) filtersEcho {
	return filtersEcho{
		CPVCodes: in.CPVCodes,
		Keywords: in.Keywords,
		MatchAll: in.MatchAll,
		From:     formatDate(in.From),
		To:       formatDate(in.To),
	}
}

// metricCard is one headline figure on the dashboard page.
type metricCard struct {
	Label string
	Value string
	Help  string
}

// noticeRow is one table line: one row per unique notice.
type noticeRow struct {
	NoticeID    string
	Date        string
	Title       string
	Buyer       string
	Winner      string
	TotalValue  string
	TenderValue string
	CPVCode     string
	TEDLink     string
}

// indexData feeds the server-rendered dashboard template.
type indexData struct {
	Filters        filtersEcho
	FiltersActive  bool
	MatchedRecords string
	MinDate        string
	MaxDate        string
	Cards          []metricCard
	Rows           []noticeRow
	HasData        bool
}

func (s *Server) indexData(view *usecase.View) indexData {
	summary := view.Summary

	cards := []metricCard{
		{Label: "Unique Notices", Value: format.Int(int64(summary.UniqueNotices)),
			Help: "Total number of unique contract award notices"},
		{Label: "Total Value (Notices)", Value: format.Currency(summary.TotalValueNotices, s.currency),
			Help: "Sum of total values, counted once per notice"},
		{Label: "Unique Sub-Contracts", Value: format.Int(int64(summary.UniqueSubContracts)),
			Help: "Total number of unique tender lots"},
		{Label: "Total Value (Tenders)", Value: format.Currency(summary.TotalValueTenders, s.currency),
			Help: "Sum of all tender values"},
		{Label: "Avg Value per Notice", Value: format.CurrencyFloat(summary.AvgValuePerNotice, s.currency),
			Help: "Total notice value divided by unique notices"},
		{Label: "Unique Winners", Value: format.Int(int64(summary.UniqueWinners)),
			Help: "Number of unique companies that won contracts"},
		{Label: "Avg Lots per Notice", Value: format.Float(summary.AvgLotsPerNotice),
			Help: "Unique sub-contracts divided by unique notices"},
		{Label: "Avg Tender Value", Value: format.CurrencyFloat(summary.AvgTenderValue, s.currency),
			Help: "Total tender value divided by unique sub-contracts"},
	}

	return indexData{
		Filters:        echoFilters(view.Filters),
		FiltersActive:  !view.Filters.IsEmpty(),
		MatchedRecords: format.Int(int64(len(view.Records))),
		MinDate:        formatDate(view.MinDate),
		MaxDate:        formatDate(view.MaxDate),
		Cards:          cards,
		Rows:           s.noticeRows(view.Records),
		HasData:        len(view.Records) > 0,
	}
}

// noticeRows keeps the first record per publication_number, mirroring the
// one-row-per-notice detail table.
func (s *Server) noticeRows(records []domain.Record) []noticeRow {
	seen := make(map[string]bool, len(records))
	rows := make([]noticeRow, 0, len(records))

	for _, rec := range records {
		if seen[rec.PublicationNumber] {
			continue
		}
		seen[rec.PublicationNumber] = true

		date := "n/a"
		if rec.HasDate() {
			date = rec.PublicationDate.Format(domain.DateLayout)
		}

		rows = append(rows, noticeRow{
			NoticeID:    rec.PublicationNumber,
			Date:        date,
			Title:       rec.NoticeTitle,
			Buyer:       rec.BuyerName,
			Winner:      rec.WinnerName,
			TotalValue:  format.MaybeCurrency(rec.TotalValue, s.currency),
			TenderValue: format.MaybeCurrency(rec.TenderValue, s.currency),
			CPVCode:     rec.CPVCode,
			TEDLink:     rec.TEDLinkEng,
		})
	}

	return rows
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
