package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"TenderBoard/internal/domain"
)

var (
	// ErrDatasetUnavailable means the source file is missing or unreadable.
	// Nothing can render without data, so this is fatal to the session.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrSchemaMismatch means a required column is absent from the header.
	ErrSchemaMismatch = errors.New("dataset schema mismatch")
)

// Loader reads the source CSV into a typed, validated table.
type Loader struct {
	logger *slog.Logger
}

// NewLoader wires an optional logger for load diagnostics.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads path once and returns a typed table. Columns are located by
// header name, not position. Unparseable dates become missing values and are
// tallied; a missing file or header column is an error.
func (l *Loader) Load(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDatasetUnavailable, path, err)
	}
	defer file.Close()

	table, err := l.parse(file)
	if err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"path", path,
		"records", len(table.Records),
		"malformed_dates", table.MalformedDates)

	return table, nil
}

func (l *Loader) parse(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDatasetUnavailable, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	table := &domain.Table{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read row: %v", ErrDatasetUnavailable, err)
		}

		rec := l.parseRow(row, index, table)
		table.Records = append(table.Records, rec)
	}

	if table.MalformedDates > 0 {
		l.logger.Warn("dates not matching expected layout treated as missing",
			"layout", domain.DateLayout,
			"count", table.MalformedDates)
	}

	return table, nil
}

// columnIndex maps the required column names to their header positions.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range domain.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	return index, nil
}

func (l *Loader) parseRow(row []string, index map[string]int, table *domain.Table) domain.Record {
	cell := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := domain.Record{
		PublicationNumber:        cell("publication_number"),
		NoticeTitle:              cell("notice_title"),
		NoticeDescription:        cell("notice_description"),
		CPVCode:                  cell("cpv_code"),
		AdditionalClassification: cell("additional_classification"),
		TenderLotIdentifier:      cell("tender_lot_identifier"),
		BuyerName:                cell("buyer_name"),
		BuyerCountry:             cell("buyer_country"),
		WinnerName:               cell("winner_name"),
		WinnerCountry:            cell("winner_country"),
		WinnerEmail:              cell("winner_email"),
		TEDLinkEng:               cell("ted_link_eng"),
	}

	rec.PublicationDate = l.parseDate(cell("publication_date"), table)
	table.ObserveDate(rec.PublicationDate)

	rec.TenderValue = parseValue(cell("tender_value"))
	rec.TotalValue = parseValue(cell("total_value"))

	return rec
}

// parseDate applies the single expected layout; anything else is missing.
func (l *Loader) parseDate(raw string, table *domain.Table) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		table.MalformedDates++
		return time.Time{}
	}
	return parsed
}

// parseValue reads the pre-cleaned integer values; an empty or non-integer
// cell is absent, not an error.
func parseValue(raw string) *int64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
