package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/notify"
	"github.com/Annisa878/perikanan-tangkap-sub001/repositories"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MonitoringStore interface {
	Create(ctx context.Context, m *models.Monitoring, history *models.StatusHistory) error
	Replace(ctx context.Context, m *models.Monitoring, expectedVersion int, history *models.StatusHistory) error
	UpdateStatus(ctx context.Context, id types.SnowflakeID, expectedVersion int, fields map[string]interface{}, history *models.StatusHistory) error
	Delete(ctx context.Context, id types.SnowflakeID, expectedVersion int) error
	GetByID(ctx context.Context, id types.SnowflakeID) (*models.Monitoring, error)
	List(ctx context.Context, f repositories.MonitoringFilter) ([]models.Monitoring, error)
	Count(ctx context.Context, f repositories.MonitoringFilter) (int64, error)
	CreatedAt(ctx context.Context, f repositories.MonitoringFilter) ([]time.Time, error)
	Statuses(ctx context.Context, f repositories.MonitoringFilter) ([]*string, error)
	History(ctx context.Context, id types.SnowflakeID) ([]models.StatusHistory, error)
}

type MonitoringService struct {
	store  MonitoringStore
	kubs   KubReader
	users  UserReader
	mailer notify.Mailer
}

func NewMonitoringService(store MonitoringStore, kubs KubReader, users UserReader, mailer notify.Mailer) *MonitoringService {
	if mailer == nil {
		mailer = notify.NopMailer{}
	}
	return &MonitoringService{store: store, kubs: kubs, users: users, mailer: mailer}
}

type ProduksiInput struct {
	JenisIkan  string          `json:"jenis_ikan" validate:"required"`
	JumlahKg   decimal.Decimal `json:"jumlah_kg"`
	HargaPerKg decimal.Decimal `json:"harga_per_kg"`
}

type MonitoringInput struct {
	KubID             uint            `json:"kub_id" validate:"required"`
	NamaAnggota       string          `json:"nama_anggota" validate:"required"`
	Domisili          string          `json:"domisili" validate:"required,domisili"`
	Bulan             int             `json:"bulan" validate:"min=1,max=12"`
	Tahun             int             `json:"tahun" validate:"min=2000,max=2100"`
	JumlahTrip        int             `json:"jumlah_trip" validate:"min=0"`
	JenisBBM          string          `json:"jenis_bbm"`
	VolumeBBM         decimal.Decimal `json:"volume_bbm"`
	DaerahPenangkapan string          `json:"daerah_penangkapan"`
	Keterangan        string          `json:"keterangan"`
	Produksi          []ProduksiInput `json:"produksi" validate:"dive"`
	Version           int             `json:"version"`
}

func (in MonitoringInput) fill(m *models.Monitoring) error {
	nama := strings.TrimSpace(in.NamaAnggota)
	if nama == "" {
		return fieldError("nama_anggota", "required")
	}
	domisili, ok := constants.NormalizeDomisili(in.Domisili)
	if !ok {
		return fieldError("domisili", "domisili")
	}
	if in.Bulan < 1 || in.Bulan > 12 {
		return fieldError("bulan", "min")
	}
	if in.Tahun < 2000 || in.Tahun > 2100 {
		return fieldError("tahun", "min")
	}
	if in.JumlahTrip < 0 {
		return fieldError("jumlah_trip", "min")
	}
	if in.VolumeBBM.IsNegative() {
		return fieldError("volume_bbm", "gte")
	}

	produksi := make([]models.MonitoringProduksi, 0, len(in.Produksi))
	for _, d := range in.Produksi {
		jenis := strings.TrimSpace(d.JenisIkan)
		if jenis == "" {
			return fieldError("produksi", "required")
		}
		if !d.JumlahKg.IsPositive() {
			return fieldError("produksi", "gt")
		}
		if d.HargaPerKg.IsNegative() {
			return fieldError("produksi", "gte")
		}
		produksi = append(produksi, models.MonitoringProduksi{JenisIkan: jenis, JumlahKg: d.JumlahKg, HargaPerKg: d.HargaPerKg})
	}

	m.KubID = in.KubID
	m.NamaAnggota = nama
	m.Domisili = domisili
	m.Bulan = in.Bulan
	m.Tahun = in.Tahun
	m.JumlahTrip = in.JumlahTrip
	m.JenisBBM = strings.TrimSpace(in.JenisBBM)
	m.VolumeBBM = in.VolumeBBM
	m.DaerahPenangkapan = strings.TrimSpace(in.DaerahPenangkapan)
	m.Keterangan = strings.TrimSpace(in.Keterangan)
	m.Produksi = produksi
	return nil
}

func (s *MonitoringService) Create(ctx context.Context, p Principal, in MonitoringInput) (*models.Monitoring, error) {
	if err := p.require(roles.SubmitMonitoring); err != nil {
		return nil, err
	}
	kub, err := ownedKub(ctx, s.kubs, p, in.KubID)
	if err != nil {
		return nil, err
	}
	row := &models.Monitoring{UserID: p.UserID, StatusVerifikasiKabid: string(workflow.ReportMenunggu)}
	if err := in.fill(row); err != nil {
		return nil, err
	}
	history := repositories.NewStatusHistory(models.HistoryMonitoring, 0, "kabid", "", row.StatusVerifikasiKabid, "laporan dibuat", p.UserID, nil)
	if err := s.store.Create(ctx, row, history); err != nil {
		return nil, err
	}
	row.Kub = kub
	return row, nil
}

// Update: laporan Disetujui terkunci; laporan Ditolak kembali ke Menunggu.
func (s *MonitoringService) Update(ctx context.Context, p Principal, id types.SnowflakeID, in MonitoringInput) (*models.Monitoring, error) {
	if err := p.require(roles.SubmitMonitoring); err != nil {
		return nil, err
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.mustOwn(row.UserID); err != nil {
		return nil, err
	}
	if err := checkVersion(in.Version, row.Version); err != nil {
		return nil, err
	}
	current, err := row.Status()
	if err != nil {
		return nil, err
	}
	next, err := current.AfterEdit()
	if err != nil {
		return nil, err
	}
	kub, err := ownedKub(ctx, s.kubs, p, in.KubID)
	if err != nil {
		return nil, err
	}
	if err := in.fill(row); err != nil {
		return nil, err
	}

	var history *models.StatusHistory
	if next != current {
		history = repositories.NewStatusHistory(models.HistoryMonitoring, row.ID, "kabid", string(current), string(next), "diperbaiki pemilik", p.UserID, nil)
		row.CatatanKabid = ""
	}
	row.StatusVerifikasiKabid = string(next)

	if err := s.store.Replace(ctx, row, row.Version, history); err != nil {
		return nil, err
	}
	row.Kub = kub
	return row, nil
}

func (s *MonitoringService) Verify(ctx context.Context, p Principal, id types.SnowflakeID, in VerifyInput) (*models.Monitoring, error) {
	if err := p.require(roles.VerifyMonitoring); err != nil {
		return nil, err
	}
	target, err := workflow.ParseReportStatus(in.Status)
	if err != nil {
		return nil, err
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(in.Version, row.Version); err != nil {
		return nil, err
	}
	current, err := row.Status()
	if err != nil {
		return nil, err
	}
	next, err := workflow.VerifyReport(current, target)
	if err != nil {
		return nil, err
	}

	catatan := strings.TrimSpace(in.Catatan)
	fields := map[string]interface{}{
		"status_verifikasi_kabid": string(next),
		"catatan_kabid":           catatan,
	}
	history := repositories.NewStatusHistory(models.HistoryMonitoring, row.ID, "kabid", string(current), string(next), catatan, p.UserID, nil)
	if err := s.store.UpdateStatus(ctx, row.ID, row.Version, fields, history); err != nil {
		return nil, err
	}

	row.StatusVerifikasiKabid = string(next)
	row.CatatanKabid = catatan
	row.Version++
	s.notifyOwner(ctx, row, catatan)
	return row, nil
}

func (s *MonitoringService) Delete(ctx context.Context, p Principal, id types.SnowflakeID) error {
	if err := p.require(roles.SubmitMonitoring); err != nil {
		return err
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.mustOwn(row.UserID); err != nil {
		return err
	}
	st, err := row.Status()
	if err != nil {
		return err
	}
	if !st.Deletable() {
		return apperror.Wrap(apperror.ErrInvalidTransition, "laporan yang sudah disetujui tidak dapat dihapus")
	}
	return s.store.Delete(ctx, row.ID, row.Version)
}

func (s *MonitoringService) Get(ctx context.Context, p Principal, id types.SnowflakeID) (*models.Monitoring, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.mayView(row.UserID, roles.ViewAllMonitoring); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *MonitoringService) History(ctx context.Context, p Principal, id types.SnowflakeID) ([]models.StatusHistory, error) {
	if _, err := s.Get(ctx, p, id); err != nil {
		return nil, err
	}
	return s.store.History(ctx, id)
}

type MonitoringQuery struct {
	NamaKub  string `query:"nama_kub"`
	KubID    uint   `query:"kub_id"`
	Domisili string `query:"domisili"`
	Bulan    int    `query:"bulan"`
	Tahun    int    `query:"tahun"`
	Status   string `query:"status"`
}

func (q MonitoringQuery) filter() (repositories.MonitoringFilter, error) {
	f := repositories.MonitoringFilter{
		NamaKub: strings.TrimSpace(q.NamaKub),
		KubID:   q.KubID,
		Bulan:   q.Bulan,
		Tahun:   q.Tahun,
		Status:  strings.TrimSpace(q.Status),
	}
	if q.Bulan < 0 || q.Bulan > 12 {
		return f, fieldError("bulan", "max")
	}
	if q.Domisili != "" {
		d, ok := constants.NormalizeDomisili(q.Domisili)
		if !ok {
			return f, fieldError("domisili", "domisili")
		}
		f.Domisili = d
	}
	return f, nil
}

func (s *MonitoringService) List(ctx context.Context, p Principal, q MonitoringQuery) ([]models.Monitoring, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	switch {
	case p.Can(roles.ViewAllMonitoring):
	case p.Can(roles.SubmitMonitoring):
		f.UserID = p.UserID
	default:
		return nil, p.require(roles.ViewAllMonitoring)
	}
	return s.store.List(ctx, f)
}

// FinalReport hanya memuat laporan yang statusnya persis KabidApprovedStatus.
func (s *MonitoringService) FinalReport(ctx context.Context, p Principal, q MonitoringQuery) ([]models.Monitoring, error) {
	if err := p.require(roles.ViewFinalReport); err != nil {
		return nil, err
	}
	f, err := q.FinalFilter()
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, f)
}

// FinalFilter mengabaikan status yang diminta dan memaksa status disetujui.
func (q MonitoringQuery) FinalFilter() (repositories.MonitoringFilter, error) {
	f, err := q.filter()
	if err != nil {
		return f, err
	}
	f.Status = string(workflow.KabidApprovedStatus)
	return f, nil
}

func (s *MonitoringService) notifyOwner(ctx context.Context, row *models.Monitoring, catatan string) {
	owner, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		logger.Warn("notifikasi monitoring dilewati", zap.String("monitoring_id", row.ID.String()), zap.Error(err))
		return
	}
	namaKub := ""
	if row.Kub != nil {
		namaKub = row.Kub.NamaKub
	}
	periode := fmt.Sprintf("%s %d", constants.NamaBulan(row.Bulan), row.Tahun)
	msg := notify.MonitoringDecision(owner.Email, namaKub, periode, row.StatusVerifikasiKabid, catatan)
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Warn("gagal mengirim notifikasi monitoring", zap.String("monitoring_id", row.ID.String()), zap.Error(err))
	}
}
