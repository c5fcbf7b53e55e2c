package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"TenderBoard/internal/domain"
)

// WriteCSV re-encodes records with the exact column layout of the input file.
// It is a pure pass-through: dates back to the dataset layout, absent numeric
// values as empty cells, no transformation of text fields.
func WriteCSV(w io.Writer, records []domain.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(domain.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		if err := writer.Write(row(rec)); err != nil {
			return fmt.Errorf("write record %s: %w", rec.PublicationNumber, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func row(rec domain.Record) []string {
	date := ""
	if rec.HasDate() {
		date = rec.PublicationDate.Format(domain.DateLayout)
	}

	return []string{
		rec.PublicationNumber,
		date,
		rec.NoticeTitle,
		rec.NoticeDescription,
		rec.CPVCode,
		rec.AdditionalClassification,
		rec.TenderLotIdentifier,
		cellValue(rec.TenderValue),
		cellValue(rec.TotalValue),
		rec.BuyerName,
		rec.BuyerCountry,
		rec.WinnerName,
		rec.WinnerCountry,
		rec.WinnerEmail,
		rec.TEDLinkEng,
	}
}

func cellValue(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
