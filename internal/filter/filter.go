package filter

import (
	"strings"
	"time"

	"TenderBoard/internal/domain"
)

// Input carries the raw user-entered filter values. Zero values mean the
// corresponding predicate passes everything.
type Input struct {
	// CPVCodes is a comma-separated list of classification codes. A record
	// passes when any supplied code occurs as a substring of its cpv_code or
	// of any comma-token of its additional_classification.
	CPVCodes string

	// Keywords is a comma-separated list of free-text terms matched
	// case-insensitively as substrings of the notice title or description.
	// Plain substring semantics: "IT" matches inside "EDIT".
	Keywords string

	// MatchAll requires every keyword to match (AND); the default is any (OR).
	MatchAll bool

	// From and To bound publication_date inclusively. A zero time leaves that
	// side unbounded; when either side is set the predicate is active and
	// records with a missing date fail it.
	From time.Time
	To   time.Time
}

// DateActive reports whether the date-range predicate restricts anything.
func (in Input) DateActive() bool {
	return !in.From.IsZero() || !in.To.IsZero()
}

// IsEmpty reports whether no predicate is supplied at all.
func (in Input) IsEmpty() bool {
	return strings.TrimSpace(in.CPVCodes) == "" &&
		strings.TrimSpace(in.Keywords) == "" &&
		!in.DateActive()
}

// Normalize deactivates a date range that does not narrow the dataset's own
// bounds: selecting the full [min, max] span filters nothing, so records with
// missing dates must keep passing.
func (in Input) Normalize(minDate, maxDate time.Time) Input {
	if !in.DateActive() {
		return in
	}
	fromAtMin := in.From.IsZero() || (!minDate.IsZero() && !in.From.After(minDate))
	toAtMax := in.To.IsZero() || (!maxDate.IsZero() && !in.To.Before(maxDate))
	if fromAtMin && toAtMax {
		in.From = time.Time{}
		in.To = time.Time{}
	}
	return in
}

// Apply returns the records satisfying every supplied predicate. The result
// is always a subset of records; the input slice is never mutated.
func Apply(records []domain.Record, in Input) []domain.Record {
	codes := SplitTokens(in.CPVCodes)
	keywords := lowerTokens(SplitTokens(in.Keywords))

	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if !matchCPV(rec, codes) {
			continue
		}
		if !matchKeywords(rec, keywords, in.MatchAll) {
			continue
		}
		if !inDateRange(rec, in) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SplitTokens splits comma-separated input, trims surrounding whitespace and
// drops empty entries.
func SplitTokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func lowerTokens(tokens []string) []string {
	for i := range tokens {
		tokens[i] = strings.ToLower(tokens[i])
	}
	return tokens
}

// matchCPV checks the supplied codes against cpv_code and each token of
// additional_classification. Matching is textual substring matching on the
// raw code string; CPV hierarchy semantics are deliberately not applied.
func matchCPV(rec domain.Record, codes []string) bool {
	if len(codes) == 0 {
		return true
	}

	primary := strings.ToLower(rec.CPVCode)
	additional := SplitTokens(strings.ToLower(rec.AdditionalClassification))

	for _, code := range codes {
		code = strings.ToLower(code)
		if strings.Contains(primary, code) {
			return true
		}
		for _, token := range additional {
			if strings.Contains(token, code) {
				return true
			}
		}
	}
	return false
}

func matchKeywords(rec domain.Record, keywords []string, matchAll bool) bool {
	if len(keywords) == 0 {
		return true
	}

	title := strings.ToLower(rec.NoticeTitle)
	description := strings.ToLower(rec.NoticeDescription)

	for _, kw := range keywords {
		hit := strings.Contains(title, kw) || strings.Contains(description, kw)
		if matchAll && !hit {
			return false
		}
		if !matchAll && hit {
			return true
		}
	}
	return matchAll
}

func inDateRange(rec domain.Record, in Input) bool {
	if !in.DateActive() {
		return true
	}
	if !rec.HasDate() {
		return false
	}
	if !in.From.IsZero() && rec.PublicationDate.Before(in.From) {
		return false
	}
	if !in.To.IsZero() && rec.PublicationDate.After(in.To) {
		return false
	}
	return true
}
