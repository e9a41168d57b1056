package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"golang.org/x/exp/slices"
)

type TrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// TrendLabel contoh: "Jan 24", "Agu 24".
func TrendLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %02d", constants.BulanSingkat[month-1], year%100)
}

// MonthlyTrend mengelompokkan waktu pembuatan per bulan, urut naik.
func MonthlyTrend(times []time.Time) []TrendPoint {
	type key struct {
		y int
		m time.Month
	}
	counts := map[key]int{}
	for _, t := range times {
		counts[key{t.Year(), t.Month()}]++
	}

	points := make([]TrendPoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, TrendPoint{
			Label: TrendLabel(k.y, k.m),
			Count: n,
			Year:  k.y,
			Month: int(k.m),
		})
	}
	slices.SortFunc(points, func(a, b TrendPoint) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Month - b.Month
	})
	return points
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CountByStatus menghitung jumlah per status. Status yang diharapkan selalu
// muncul lebih dulu (nilai 0 bila tidak ada); NULL atau kosong dihitung
// sebagai Menunggu; nilai lain dicatat apa adanya di akhir, urut abjad.
func CountByStatus(statuses []*string, expected []string) []StatusCount {
	counts := map[string]int{}
	for _, s := range statuses {
		v := ""
		if s != nil {
			v = strings.TrimSpace(*s)
		}
		if v == "" {
			v = "Menunggu"
		}
		counts[v]++
	}

	out := make([]StatusCount, 0, len(expected)+len(counts))
	seen := map[string]bool{}
	for _, e := range expected {
		out = append(out, StatusCount{Status: e, Count: counts[e]})
		seen[e] = true
	}

	var extra []string
	for k := range counts {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		out = append(out, StatusCount{Status: k, Count: counts[k]})
	}
	return out
}

// StringPtrs memudahkan pemanggil yang kolom statusnya NOT NULL.
func StringPtrs(values []string) []*string {
	out := make([]*string, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
