package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TenderBoard/internal/domain"
)

func day(value string) time.Time {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{
			PublicationNumber: "100-2025",
			PublicationDate:   day("2025-01-10"),
			NoticeTitle:       "IT Services Renewal",
			NoticeDescription: "Managed operation of municipal IT systems",
			CPVCode:           "45111200",
		},
		{
			PublicationNumber:        "101-2025",
			PublicationDate:          day("2025-02-20"),
			NoticeTitle:              "Road maintenance",
			NoticeDescription:        "Winter road maintenance, northern region",
			CPVCode:                  "90620000",
			AdditionalClassification: "48000000, 72000000",
		},
		{
			PublicationNumber: "102-2025",
			NoticeTitle:       "Editorial services",
			NoticeDescription: "EDIT and proofread annual reports",
			CPVCode:           "79821000",
		},
	}
}

func TestApplyNoFiltersReturnsEverything(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	got := Apply(records, Input{})

	assert.Equal(t, records, got)
}

func TestApplyResultIsSubset(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	byKey := make(map[string]bool, len(records))
	for _, rec := range records {
		byKey[rec.PublicationNumber] = true
	}

	inputs := []Input{
		{CPVCodes: "45"},
		{Keywords: "maintenance"},
		{From: day("2025-02-01"), To: day("2025-03-01")},
		{CPVCodes: "48", Keywords: "road", From: day("2025-01-01")},
	}

	for _, in := range inputs {
		for _, rec := range Apply(records, in) {
			assert.True(t, byKey[rec.PublicationNumber], "filter invented record %s", rec.PublicationNumber)
		}
	}
}

func TestCPVFilterMatchesPrimaryAndAdditional(t *testing.T) {
	t.Parallel()

	got := Apply(sampleRecords(), Input{CPVCodes: "45,48"})

	require.Len(t, got, 2)
	assert.Equal(t, "100-2025", got[0].PublicationNumber) // substring "45" in 45111200
	assert.Equal(t, "101-2025", got[1].PublicationNumber) // substring "48" in additional token 48000000
}

func TestCPVFilterTrimsTokens(t *testing.T) {
	t.Parallel()

	got := Apply(sampleRecords(), Input{CPVCodes: " 45 ,  , 99 "})

	require.Len(t, got, 1)
	assert.Equal(t, "100-2025", got[0].PublicationNumber)
}

func TestCPVFilterIsPureSubstring(t *testing.T) {
	t.Parallel()

	// "45" also matches mid-string; the match is textual, not hierarchy-aware.
	records := []domain.Record{{PublicationNumber: "A", CPVCode: "145111"}}
	got := Apply(records, Input{CPVCodes: "45"})

	assert.Len(t, got, 1)
}

func TestKeywordFilterCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := Apply(sampleRecords(), Input{Keywords: "it services"})

	require.Len(t, got, 1)
	assert.Equal(t, "100-2025", got[0].PublicationNumber)
}

func TestKeywordFilterSubstringFalsePositive(t *testing.T) {
	t.Parallel()

	// "IT" inside "EDIT" matches as documented plain-substring behavior.
	got := Apply(sampleRecords(), Input{Keywords: "IT"})

	require.Len(t, got, 2)
	assert.Equal(t, "100-2025", got[0].PublicationNumber)
	assert.Equal(t, "102-2025", got[1].PublicationNumber)
}

func TestKeywordFilterMatchAll(t *testing.T) {
	t.Parallel()

	records := sampleRecords()

	anyOf := Apply(records, Input{Keywords: "road, proofread"})
	assert.Len(t, anyOf, 2)

	allOf := Apply(records, Input{Keywords: "road, winter", MatchAll: true})
	require.Len(t, allOf, 1)
	assert.Equal(t, "101-2025", allOf[0].PublicationNumber)

	none := Apply(records, Input{Keywords: "road, proofread", MatchAll: true})
	assert.Empty(t, none)
}

func TestDateRangeExcludesMissingDatesOnlyWhenActive(t *testing.T) {
	t.Parallel()

	records := sampleRecords() // 102-2025 has no date

	active := Apply(records, Input{From: day("2025-01-01"), To: day("2025-12-31")})
	require.Len(t, active, 2)
	for _, rec := range active {
		assert.True(t, rec.HasDate())
	}

	inactive := Apply(records, Input{})
	assert.Len(t, inactive, 3)
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	t.Parallel()

	got := Apply(sampleRecords(), Input{From: day("2025-01-10"), To: day("2025-02-20")})

	require.Len(t, got, 2)
	assert.Equal(t, "100-2025", got[0].PublicationNumber)
	assert.Equal(t, "101-2025", got[1].PublicationNumber)
}

func TestNormalizeDeactivatesFullRange(t *testing.T) {
	t.Parallel()

	minDate, maxDate := day("2025-01-10"), day("2025-02-20")

	full := Input{From: minDate, To: maxDate}.Normalize(minDate, maxDate)
	assert.False(t, full.DateActive())

	narrowed := Input{From: day("2025-02-01"), To: maxDate}.Normalize(minDate, maxDate)
	assert.True(t, narrowed.DateActive())

	wider := Input{From: day("2024-06-01"), To: day("2026-01-01")}.Normalize(minDate, maxDate)
	assert.False(t, wider.DateActive())
}

func TestCombinedFiltersAreConjunctive(t *testing.T) {
	t.Parallel()

	records := sampleRecords()

	got := Apply(records, Input{CPVCodes: "48", Keywords: "road"})
	require.Len(t, got, 1)
	assert.Equal(t, "101-2025", got[0].PublicationNumber)

	got = Apply(records, Input{CPVCodes: "48", Keywords: "proofread"})
	assert.Empty(t, got)
}
