// Package reports berisi agregasi untuk dashboard dan pembuatan file Excel.
package reports

import (
	"strconv"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
)

// Period adalah rentang waktu setengah terbuka [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// PeriodWindow mengubah filter tahun dan bulan menjadi rentang tanggal.
// Tahun kosong berarti tanpa filter (nil). Bulan kosong berarti satu tahun penuh.
func PeriodWindow(year, month string) (*Period, error) {
	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)
	if year == "" {
		if month != "" {
			return nil, apperror.Wrap(apperror.ErrValidation, "filter bulan memerlukan tahun")
		}
		return nil, nil
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 1900 || y > 9999 {
		return nil, apperror.Wrap(apperror.ErrValidation, "tahun tidak valid: %s", year)
	}

	if month == "" {
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local)
		return &Period{Start: start, End: start.AddDate(1, 0, 0)}, nil
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return nil, apperror.Wrap(apperror.ErrValidation, "bulan tidak valid: %s", month)
	}
	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.Local)
	return &Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
}
