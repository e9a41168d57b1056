// Package workflow memodelkan dua jalur status pengajuan (verifikasi admin dan
// verifikasi kepala bidang) serta status laporan monitoring sebagai tipe
// eksplisit. Semua legalitas perpindahan status diputuskan di sini.
//
//	           verifikasi admin            verifikasi kabid (hanya jika Diterima)
//	Menunggu ─────────────────► Diterima ─────────────────► {Disetujui Sepenuhnya | Disetujui Sebagian | Ditolak}
//	   │
//	   ├──► Ditolak
//	   └──► Perlu Revisi ──(diedit pemilik)──► Menunggu
package workflow

import (
	"strings"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
)

type AdminStatus string

const (
	AdminMenunggu    AdminStatus = "Menunggu"
	AdminDiterima    AdminStatus = "Diterima"
	AdminDitolak     AdminStatus = "Ditolak"
	AdminPerluRevisi AdminStatus = "Perlu Revisi"
)

var AdminStatuses = []AdminStatus{AdminMenunggu, AdminDiterima, AdminDitolak, AdminPerluRevisi}

type KabidStatus string

const (
	KabidMenunggu            KabidStatus = "Menunggu"
	KabidDisetujuiSepenuhnya KabidStatus = "Disetujui Sepenuhnya"
	KabidDisetujuiSebagian   KabidStatus = "Disetujui Sebagian"
	KabidDitolak             KabidStatus = "Ditolak"
)

var KabidStatuses = []KabidStatus{KabidMenunggu, KabidDisetujuiSepenuhnya, KabidDisetujuiSebagian, KabidDitolak}

func ParseAdminStatus(s string) (AdminStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AdminMenunggu, nil
	}
	for _, st := range AdminStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", apperror.Wrap(apperror.ErrValidation, "status verifikasi tidak dikenal: %s", s)
}

// ParseKabidStatus menerima nilai kolom yang boleh NULL. NULL dan string
// kosong berarti Menunggu.
func ParseKabidStatus(s *string) (KabidStatus, error) {
	if s == nil {
		return KabidMenunggu, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return KabidMenunggu, nil
	}
	for _, st := range KabidStatuses {
		if strings.EqualFold(v, string(st)) {
			return st, nil
		}
	}
	return "", apperror.Wrap(apperror.ErrValidation, "status verifikasi kepala bidang tidak dikenal: %s", v)
}

// Final bernilai true untuk keputusan kepala bidang yang tidak bisa diubah lagi.
func (k KabidStatus) Final() bool {
	switch k {
	case KabidDisetujuiSepenuhnya, KabidDisetujuiSebagian, KabidDitolak:
		return true
	}
	return false
}

func (k KabidStatus) Approved() bool {
	return k == KabidDisetujuiSepenuhnya || k == KabidDisetujuiSebagian
}

// Column mengubah status ke nilai kolom; Menunggu disimpan sebagai NULL.
func (k KabidStatus) Column() *string {
	if k == KabidMenunggu || k == "" {
		return nil
	}
	s := string(k)
	return &s
}

func (a AdminStatus) decision() bool {
	switch a {
	case AdminDiterima, AdminDitolak, AdminPerluRevisi:
		return true
	}
	return false
}

type SubmissionState struct {
	Admin AdminStatus
	Kabid KabidStatus
}

// NewSubmissionState adalah status awal pengajuan baru.
func NewSubmissionState() SubmissionState {
	return SubmissionState{Admin: AdminMenunggu, Kabid: KabidMenunggu}
}

func (s SubmissionState) VerifyAdmin(target AdminStatus) (SubmissionState, error) {
	if s.Kabid.Final() {
		return s, apperror.Wrap(apperror.ErrInvalidTransition,
			"pengajuan sudah diputuskan kepala bidang (%s)", s.Kabid)
	}
	if !target.decision() {
		return s, apperror.Wrap(apperror.ErrValidation,
			"status verifikasi harus Diterima, Ditolak, atau Perlu Revisi")
	}
	if s.Admin != AdminMenunggu {
		return s, apperror.Wrap(apperror.ErrInvalidTransition,
			"hanya pengajuan berstatus Menunggu yang dapat diverifikasi (status saat ini %s)", s.Admin)
	}
	return SubmissionState{Admin: target, Kabid: s.Kabid}, nil
}

func (s SubmissionState) VerifyKabid(target KabidStatus) (SubmissionState, error) {
	if s.Kabid.Final() {
		return s, apperror.Wrap(apperror.ErrInvalidTransition,
			"pengajuan sudah diputuskan kepala bidang (%s)", s.Kabid)
	}
	if s.Admin != AdminDiterima {
		return s, apperror.Wrap(apperror.ErrInvalidTransition,
			"pengajuan belum diterima admin (status saat ini %s)", s.Admin)
	}
	if !target.Final() {
		return s, apperror.Wrap(apperror.ErrValidation,
			"keputusan harus Disetujui Sepenuhnya, Disetujui Sebagian, atau Ditolak")
	}
	return SubmissionState{Admin: s.Admin, Kabid: target}, nil
}

// Editable bernilai true selama pemilik masih boleh mengubah isi pengajuan.
func (s SubmissionState) Editable() bool {
	return !s.Kabid.Final() && (s.Admin == AdminMenunggu || s.Admin == AdminPerluRevisi)
}

// Resubmit dipakai saat pemilik menyimpan perubahan; pengajuan Perlu Revisi
// kembali ke antrean Menunggu.
func (s SubmissionState) Resubmit() (SubmissionState, error) {
	if !s.Editable() {
		return s, apperror.Wrap(apperror.ErrInvalidTransition,
			"pengajuan berstatus %s tidak dapat diubah", s.Admin)
	}
	return SubmissionState{Admin: AdminMenunggu, Kabid: s.Kabid}, nil
}

// CanDelete: kabid belum memutuskan dan admin belum menerima.
func CanDelete(admin AdminStatus, kabid KabidStatus) bool {
	if kabid.Final() {
		return false
	}
	switch admin {
	case AdminMenunggu, AdminDitolak, AdminPerluRevisi:
		return true
	}
	return false
}

func (s SubmissionState) CanDelete() bool {
	return CanDelete(s.Admin, s.Kabid)
}
