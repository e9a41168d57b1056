package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/reports"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	pengajuan  PengajuanReader
	monitoring MonitoringReader
	now        func() time.Time
}

func NewExportService(pengajuan PengajuanReader, monitoring MonitoringReader) *ExportService {
	return &ExportService{pengajuan: pengajuan, monitoring: monitoring, now: time.Now}
}

// Export adalah file siap kirim beserta nama filenya.
type Export struct {
	File     *excelize.File
	Filename string
	Rows     int
}

// Pengajuan membuat rekap pengajuan. Tidak ada data menghasilkan
// ErrNothingToExport; kegagalan memuat data tidak menghasilkan file.
func (s *ExportService) Pengajuan(ctx context.Context, p Principal, q PengajuanQuery) (*Export, error) {
	if err := p.require(roles.ExportPengajuan); err != nil {
		return nil, err
	}
	f, err := q.Filter(p)
	if err != nil {
		return nil, err
	}
	rows, err := s.pengajuan.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("export pengajuan: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperror.ErrNothingToExport
	}

	keterangan := describe(q.Tahun, q.Bulan, f.Domisili)
	file, err := reports.BuildPengajuanWorkbook(rows, keterangan)
	if err != nil {
		return nil, fmt.Errorf("export pengajuan: %w", err)
	}
	return &Export{
		File:     file,
		Filename: fmt.Sprintf("rekap-pengajuan-%s.xlsx", s.now().Format("20060102-150405")),
		Rows:     len(rows),
	}, nil
}

// Monitoring mengekspor laporan akhir (hanya yang sudah disetujui). Filter
// diterapkan di query, bukan setelah baris dibuat.
func (s *ExportService) Monitoring(ctx context.Context, p Principal, q MonitoringQuery) (*Export, error) {
	if err := p.require(roles.ExportMonitoring); err != nil {
		return nil, err
	}
	f, err := q.FinalFilter()
	if err != nil {
		return nil, err
	}
	rows, err := s.monitoring.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("export monitoring: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperror.ErrNothingToExport
	}

	tahun, bulan := "", ""
	if q.Tahun > 0 {
		tahun = fmt.Sprint(q.Tahun)
	}
	if q.Bulan > 0 {
		bulan = fmt.Sprint(q.Bulan)
	}
	file, err := reports.BuildMonitoringWorkbook(rows, describe(tahun, bulan, f.Domisili))
	if err != nil {
		return nil, fmt.Errorf("export monitoring: %w", err)
	}
	return &Export{
		File:     file,
		Filename: fmt.Sprintf("laporan-akhir-monitoring-%s.xlsx", s.now().Format("20060102-150405")),
		Rows:     len(rows),
	}, nil
}

// describe menyusun baris keterangan judul, misalnya "Periode Maret 2024 - Banyuasin".
func describe(tahun, bulan, domisili string) string {
	periode := "Semua Periode"
	if tahun != "" {
		periode = "Tahun " + strings.TrimSpace(tahun)
		if bulan != "" {
			m, _ := strconv.Atoi(strings.TrimSpace(bulan))
			if nama := constants.NamaBulan(m); nama != "" {
				periode = fmt.Sprintf("Periode %s %s", nama, strings.TrimSpace(tahun))
			}
		}
	}
	if domisili != "" {
		return periode + " - " + domisili
	}
	return periode
}
