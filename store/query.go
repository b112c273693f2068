package store

import (
	"sort"
	"strings"
	"time"

	"backend/entity"
)

// Pure, non-mutating queries over a ListReports snapshot. Deterministic for
// identical inputs; none of them ever panic on bad data.

// ReportSummary is the lightweight shape used by the public recent-reports
// widget and the live admin feed.
type ReportSummary struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	CrimeType string              `json:"crimeType"`
	Location  string              `json:"location"`
	Status    entity.ReportStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}

// MapPoint is the projection handed to map consumers. No view needs the
// full entity for read-only display.
type MapPoint struct {
	ID          string              `json:"id"`
	CrimeType   string              `json:"crimeType"`
	Location    string              `json:"location"`
	Status      entity.ReportStatus `json:"status"`
	Coordinates entity.Coordinates  `json:"coordinates"`
	Timestamp   time.Time           `json:"timestamp"`
}

func FilterByStatus(reports []entity.CrimeReport, status entity.ReportStatus) []entity.CrimeReport {
	out := make([]entity.CrimeReport, 0, len(reports))
	for _, r := range reports {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func FilterByType(reports []entity.CrimeReport, crimeType string) []entity.CrimeReport {
	out := make([]entity.CrimeReport, 0, len(reports))
	for _, r := range reports {
		if r.CrimeType == crimeType {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDate keeps reports submitted on the same calendar day as day.
func FilterByDate(reports []entity.CrimeReport, day time.Time) []entity.CrimeReport {
	y, m, d := day.Date()
	out := make([]entity.CrimeReport, 0, len(reports))
	for _, r := range reports {
		ry, rm, rd := r.Timestamp.Date()
		if ry == y && rm == m && rd == d {
			out = append(out, r)
		}
	}
	return out
}

// Search matches the term case-insensitively against title, description
// and location. An empty term matches everything.
func Search(reports []entity.CrimeReport, term string) []entity.CrimeReport {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]entity.CrimeReport(nil), reports...)
	}
	out := make([]entity.CrimeReport, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Description), term) ||
			strings.Contains(strings.ToLower(r.Location), term) {
			out = append(out, r)
		}
	}
	return out
}

// SortByRecency returns a new slice sorted newest first. Reports with a
// missing (zero) timestamp always sort after every valid one.
func SortByRecency(reports []entity.CrimeReport) []entity.CrimeReport {
	out := append([]entity.CrimeReport(nil), reports...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Timestamp, out[j].Timestamp
		switch {
		case a.IsZero() && b.IsZero():
			return false
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
	return out
}

func Summaries(reports []entity.CrimeReport) []ReportSummary {
	out := make([]ReportSummary, 0, len(reports))
	for _, r := range reports {
		out = append(out, Summarize(r))
	}
	return out
}

func Summarize(r entity.CrimeReport) ReportSummary {
	return ReportSummary{
		ID:        r.ID,
		Title:     r.Title,
		CrimeType: r.CrimeType,
		Location:  r.Location,
		Status:    r.Status,
		Timestamp: r.Timestamp,
	}
}

func MapPoints(reports []entity.CrimeReport) []MapPoint {
	out := make([]MapPoint, 0, len(reports))
	for _, r := range reports {
		out = append(out, MapPoint{
			ID:          r.ID,
			CrimeType:   r.CrimeType,
			Location:    r.Location,
			Status:      r.Status,
			Coordinates: r.Coordinates,
			Timestamp:   r.Timestamp,
		})
	}
	return out
}

func CountByStatus(reports []entity.CrimeReport) map[entity.ReportStatus]int {
	out := make(map[entity.ReportStatus]int)
	for _, r := range reports {
		out[r.Status]++
	}
	return out
}

func CountByType(reports []entity.CrimeReport) map[string]int {
	out := make(map[string]int)
	for _, r := range reports {
		t := r.CrimeType
		if t == "" {
			t = "Unknown"
		}
		out[t]++
	}
	return out
}

// CountByRegion groups by the segment of the location before the first
// comma ("Lagos, Nigeria" counts under "Lagos").
func CountByRegion(reports []entity.CrimeReport) map[string]int {
	out := make(map[string]int)
	for _, r := range reports {
		region := r.Location
		if i := strings.Index(region, ","); i >= 0 {
			region = region[:i]
		}
		region = strings.TrimSpace(region)
		if region == "" {
			region = "Unknown"
		}
		out[region]++
	}
	return out
}

// MonthlyTrend counts reports per month for the last n months including the
// current one, keyed "2006-01", oldest first. Zero timestamps are skipped.
func MonthlyTrend(reports []entity.CrimeReport, n int, now time.Time) []MonthCount {
	if n <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, r := range reports {
		if r.Timestamp.IsZero() {
			continue
		}
		counts[r.Timestamp.Format("2006-01")]++
	}
	out := make([]MonthCount, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, MonthCount{Month: key, Count: counts[key]})
	}
	return out
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
