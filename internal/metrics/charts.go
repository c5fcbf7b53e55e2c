package metrics

import (
	"sort"

	"TenderBoard/internal/domain"
)

// Point is a single labelled chart value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is render-ready series data for the presentation layer.
type Chart struct {
	ChartType string  `json:"chartType"`
	Title     string  `json:"title"`
	XAxis     string  `json:"xAxis,omitempty"`
	YAxis     string  `json:"yAxis,omitempty"`
	Points    []Point `json:"points"`
}

// NoticesOverTime counts distinct notices per publication day, in
// chronological order. Records with a missing date are skipped.
func NoticesOverTime(records []domain.Record) Chart {
	perDay := make(map[string]map[string]bool)
	for _, rec := range records {
		if !rec.HasDate() {
			continue
		}
		day := rec.PublicationDate.Format(domain.DateLayout)
		if perDay[day] == nil {
			perDay[day] = make(map[string]bool)
		}
		perDay[day][rec.PublicationNumber] = true
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]Point, 0, len(days))
	for _, day := range days {
		points = append(points, Point{Label: day, Value: float64(len(perDay[day]))})
	}

	return Chart{
		ChartType: "line",
		Title:     "Contract Award Notices Over Time",
		XAxis:     "Date",
		YAxis:     "Number of Unique Notices",
		Points:    points,
	}
}

// TopWinners ranks winners by distinct lot count, descending. Records with an
// empty winner_name are skipped.
func TopWinners(records []domain.Record, limit int) Chart {
	lotsPerWinner := make(map[string]map[string]bool)
	for _, rec := range records {
		if rec.WinnerName == "" {
			continue
		}
		if lotsPerWinner[rec.WinnerName] == nil {
			lotsPerWinner[rec.WinnerName] = make(map[string]bool)
		}
		lotsPerWinner[rec.WinnerName][rec.LotKey()] = true
	}

	points := rankCounts(lotsPerWinner, limit)

	return Chart{
		ChartType: "bar",
		Title:     "Top Winners by Number of Contracts",
		XAxis:     "Number of Contracts",
		YAxis:     "Winner",
		Points:    points,
	}
}

// TopBuyers ranks buyers by distinct notice count, descending. Records with
// an empty buyer_name are skipped.
func TopBuyers(records []domain.Record, limit int) Chart {
	noticesPerBuyer := make(map[string]map[string]bool)
	for _, rec := range records {
		if rec.BuyerName == "" {
			continue
		}
		if noticesPerBuyer[rec.BuyerName] == nil {
			noticesPerBuyer[rec.BuyerName] = make(map[string]bool)
		}
		noticesPerBuyer[rec.BuyerName][rec.PublicationNumber] = true
	}

	points := rankCounts(noticesPerBuyer, limit)

	return Chart{
		ChartType: "bar",
		Title:     "Top Buyers by Number of Notices",
		XAxis:     "Number of Notices",
		YAxis:     "Buyer",
		Points:    points,
	}
}

// rankCounts turns name→set maps into points sorted by count descending,
// names ascending on ties so the ranking is deterministic.
func rankCounts(sets map[string]map[string]bool, limit int) []Point {
	points := make([]Point, 0, len(sets))
	for name, set := range sets {
		points = append(points, Point{Label: name, Value: float64(len(set))})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})

	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}
