package workflow

import (
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
)

type ReportStatus string

const (
	ReportMenunggu  ReportStatus = "Menunggu"
	ReportDisetujui ReportStatus = "Disetujui"
	ReportDitolak   ReportStatus = "Ditolak"
)

// KabidApprovedStatus adalah satu-satunya status yang masuk Laporan Akhir.
const KabidApprovedStatus = ReportDisetujui

var ReportStatuses = []ReportStatus{ReportMenunggu, ReportDisetujui, ReportDitolak}

func ParseReportStatus(s string) (ReportStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ReportMenunggu, nil
	}
	for _, st := range ReportStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", apperror.Wrap(apperror.ErrValidation, "status laporan tidak dikenal: %s", s)
}

func (r ReportStatus) Final() bool {
	return r == ReportDisetujui || r == ReportDitolak
}

// VerifyReport hanya berlaku untuk laporan yang masih Menunggu.
func VerifyReport(current, target ReportStatus) (ReportStatus, error) {
	if current.Final() {
		return current, apperror.Wrap(apperror.ErrInvalidTransition,
			"laporan sudah diverifikasi (%s)", current)
	}
	if !target.Final() {
		return current, apperror.Wrap(apperror.ErrValidation,
			"status verifikasi harus Disetujui atau Ditolak")
	}
	return target, nil
}

func (r ReportStatus) Editable() bool {
	return r != ReportDisetujui
}

// AfterEdit: laporan Ditolak yang diperbaiki kembali menunggu verifikasi.
func (r ReportStatus) AfterEdit() (ReportStatus, error) {
	if !r.Editable() {
		return r, apperror.Wrap(apperror.ErrInvalidTransition,
			"laporan yang sudah disetujui tidak dapat diubah")
	}
	return ReportMenunggu, nil
}

func (r ReportStatus) Deletable() bool {
	return r != ReportDisetujui
}
