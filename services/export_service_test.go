package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedExport(pf *pengajuanFixture, mf *monitoringFixture) *ExportService {
	s := NewExportService(pf.store, mf.store)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local) }
	return s
}

func TestExportPengajuan(t *testing.T) {
	pf := newPengajuanFixture()
	mf := newMonitoringFixture()
	pf.create(t)
	pf.create(t)
	s := fixedExport(pf, mf)

	out, err := s.Pengajuan(context.Background(), pf.admin, PengajuanQuery{})
	require.NoError(t, err)
	defer out.File.Close()
	assert.Equal(t, 2, out.Rows)
	assert.Equal(t, "rekap-pengajuan-20240501-083000.xlsx", out.Filename)

	v, err := out.File.GetCellValue("Pengajuan", "C6")
	require.NoError(t, err)
	assert.Equal(t, "KUB Bahari", v)

	_, err = s.Pengajuan(context.Background(), pf.owner, PengajuanQuery{})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestExportNothingToExport(t *testing.T) {
	pf := newPengajuanFixture()
	mf := newMonitoringFixture()
	s := fixedExport(pf, mf)

	_, err := s.Pengajuan(context.Background(), pf.kadis, PengajuanQuery{})
	assert.ErrorIs(t, err, apperror.ErrNothingToExport)

	mf.create(t)
	_, err = s.Monitoring(context.Background(), pf.kabid, MonitoringQuery{})
	assert.ErrorIs(t, err, apperror.ErrNothingToExport, "laporan belum disetujui tidak ikut diekspor")
}

func TestExportFetchErrorProducesNoFile(t *testing.T) {
	pf := newPengajuanFixture()
	mf := newMonitoringFixture()
	pf.create(t)
	pf.store.listErr = errors.New("connection reset")
	mf.store.listErr = errors.New("connection reset")
	s := fixedExport(pf, mf)

	out, err := s.Pengajuan(context.Background(), pf.admin, PengajuanQuery{})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.False(t, errors.Is(err, apperror.ErrNothingToExport))

	out, err = s.Monitoring(context.Background(), pf.kadis, MonitoringQuery{})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.False(t, errors.Is(err, apperror.ErrNothingToExport))
}

func TestExportMonitoringApprovedOnly(t *testing.T) {
	pf := newPengajuanFixture()
	mf := newMonitoringFixture()
	ctx := context.Background()
	approved := mf.create(t)
	mf.create(t)
	_, err := mf.svc.Verify(ctx, mf.kabid, approved.ID, verify("Disetujui"))
	require.NoError(t, err)
	s := fixedExport(pf, mf)

	out, err := s.Monitoring(ctx, mf.kadis, MonitoringQuery{Tahun: 2024, Bulan: 3})
	require.NoError(t, err)
	defer out.File.Close()
	assert.Equal(t, 1, out.Rows)
	assert.Equal(t, "laporan-akhir-monitoring-20240501-083000.xlsx", out.Filename)

	_, err = s.Monitoring(ctx, mf.admin, MonitoringQuery{})
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Semua Periode", describe("", "", ""))
	assert.Equal(t, "Tahun 2024", describe("2024", "", ""))
	assert.Equal(t, "Periode Maret 2024 - Banyuasin", describe("2024", "3", "Banyuasin"))
}
