package reports

import (
	"errors"
	"testing"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodWindow(t *testing.T) {
	p, err := PeriodWindow("2024", "03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), p.Start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local), p.End)

	p, err = PeriodWindow("2024", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), p.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), p.End)

	p, err = PeriodWindow("2024", "12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local), p.End)
	assert.True(t, p.Contains(time.Date(2024, 12, 31, 23, 59, 0, 0, time.Local)))
	assert.False(t, p.Contains(p.End))

	p, err = PeriodWindow("", "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPeriodWindowRejectsBadInput(t *testing.T) {
	for _, tc := range [][2]string{{"abcd", ""}, {"2024", "13"}, {"2024", "x"}, {"", "03"}} {
		_, err := PeriodWindow(tc[0], tc[1])
		assert.True(t, errors.Is(err, apperror.ErrValidation), "input %v", tc)
	}
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend([]time.Time{
		time.Date(2024, 2, 1, 8, 0, 0, 0, time.Local),
		time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local),
		time.Date(2024, 1, 20, 8, 0, 0, 0, time.Local),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Jan 24", got[0].Label)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Feb 24", got[1].Label)
	assert.Equal(t, 1, got[1].Count)
}

func TestMonthlyTrendOrdersAcrossYears(t *testing.T) {
	got := MonthlyTrend([]time.Time{
		time.Date(2025, 1, 3, 0, 0, 0, 0, time.Local),
		time.Date(2024, 8, 3, 0, 0, 0, 0, time.Local),
		time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local),
	})
	labels := []string{}
	for _, p := range got {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Mei 24", "Agu 24", "Jan 25"}, labels)
}

func TestMonthlyTrendEmpty(t *testing.T) {
	got := MonthlyTrend(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountByStatus(t *testing.T) {
	diterima := "Diterima"
	kosong := ""
	aneh := "Dibatalkan"
	got := CountByStatus(
		[]*string{nil, &diterima, &kosong, &aneh, &diterima},
		[]string{"Menunggu", "Diterima", "Ditolak"},
	)
	assert.Equal(t, []StatusCount{
		{Status: "Menunggu", Count: 2},
		{Status: "Diterima", Count: 2},
		{Status: "Ditolak", Count: 0},
		{Status: "Dibatalkan", Count: 1},
	}, got)
}

func TestStringPtrs(t *testing.T) {
	got := CountByStatus(StringPtrs([]string{"Disetujui", "Menunggu"}), []string{"Menunggu", "Disetujui", "Ditolak"})
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, 0, got[2].Count)
}
