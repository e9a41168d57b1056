package services

import (
	"context"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/constants"
	"github.com/Annisa878/perikanan-tangkap-sub001/logger"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/notify"
	"github.com/Annisa878/perikanan-tangkap-sub001/reports"
	"github.com/Annisa878/perikanan-tangkap-sub001/repositories"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/Annisa878/perikanan-tangkap-sub001/workflow"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PengajuanStore interface {
	Create(ctx context.Context, p *models.Pengajuan, history *models.StatusHistory) error
	Replace(ctx context.Context, p *models.Pengajuan, expectedVersion int, history *models.StatusHistory) error
	UpdateStatus(ctx context.Context, id types.SnowflakeID, expectedVersion int, fields map[string]interface{}, history *models.StatusHistory) error
	Delete(ctx context.Context, id types.SnowflakeID, expectedVersion int) error
	GetByID(ctx context.Context, id types.SnowflakeID) (*models.Pengajuan, error)
	List(ctx context.Context, f repositories.PengajuanFilter) ([]models.Pengajuan, error)
	Count(ctx context.Context, f repositories.PengajuanFilter) (int64, error)
	CreatedAt(ctx context.Context, f repositories.PengajuanFilter) ([]time.Time, error)
	Statuses(ctx context.Context, f repositories.PengajuanFilter, column string) ([]*string, error)
	History(ctx context.Context, id types.SnowflakeID) ([]models.StatusHistory, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type PengajuanService struct {
	store  PengajuanStore
	kubs   KubReader
	users  UserReader
	mailer notify.Mailer
	now    func() time.Time
}

func NewPengajuanService(store PengajuanStore, kubs KubReader, users UserReader, mailer notify.Mailer) *PengajuanService {
	if mailer == nil {
		mailer = notify.NopMailer{}
	}
	return &PengajuanService{store: store, kubs: kubs, users: users, mailer: mailer, now: time.Now}
}

type ItemInput struct {
	NamaAlat    string          `json:"nama_alat" validate:"required"`
	Jumlah      int             `json:"jumlah" validate:"gt=0"`
	HargaSatuan decimal.Decimal `json:"harga_satuan"`
}

type PengajuanInput struct {
	KubID            uint        `json:"kub_id" validate:"required"`
	ZonaTangkap      string      `json:"zona_tangkap" validate:"required,zona"`
	TanggalPengajuan string      `json:"tanggal_pengajuan"`
	DokumenPendukung string      `json:"dokumen_pendukung"`
	Items            []ItemInput `json:"items" validate:"required,min=1,dive"`
	// Version dikirim saat edit; 0 berarti tidak diperiksa.
	Version int `json:"version"`
}

type VerifyInput struct {
	Status  string `json:"status" validate:"required"`
	Catatan string `json:"catatan"`
	Version int    `json:"version"`
}

type BASTInput struct {
	NoBAST      string `json:"no_bast" validate:"required"`
	TanggalBAST string `json:"tanggal_bast" validate:"required"`
	Version     int    `json:"version"`
}

// ParseTanggal menerima "2006-01-02" atau RFC3339.
func ParseTanggal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (s *PengajuanService) fill(p *models.Pengajuan, in PengajuanInput) error {
	zona := strings.TrimSpace(in.ZonaTangkap)
	if !constants.IsZonaTangkap(zona) {
		return fieldError("zona_tangkap", "zona")
	}
	if len(in.Items) == 0 {
		return fieldError("items", "min")
	}

	tanggal := s.now()
	if in.TanggalPengajuan != "" {
		t, err := ParseTanggal(in.TanggalPengajuan)
		if err != nil {
			return fieldError("tanggal_pengajuan", "datetime")
		}
		tanggal = t
	}

	items := make([]models.PengajuanItem, 0, len(in.Items))
	for _, it := range in.Items {
		nama := strings.TrimSpace(it.NamaAlat)
		if nama == "" {
			return fieldError("items", "required")
		}
		if it.Jumlah <= 0 {
			return fieldError("items", "gt")
		}
		if it.HargaSatuan.IsNegative() {
			return fieldError("items", "gte")
		}
		items = append(items, models.PengajuanItem{
			NamaAlat:    nama,
			Jumlah:      it.Jumlah,
			HargaSatuan: it.HargaSatuan,
			TotalHarga:  it.HargaSatuan.Mul(decimal.NewFromInt(int64(it.Jumlah))),
		})
	}

	p.KubID = in.KubID
	p.ZonaTangkap = zona
	p.TanggalPengajuan = tanggal
	p.DokumenPendukung = strings.TrimSpace(in.DokumenPendukung)
	p.Items = items
	return nil
}

func (s *PengajuanService) Create(ctx context.Context, p Principal, in PengajuanInput) (*models.Pengajuan, error) {
	if err := p.require(roles.SubmitPengajuan); err != nil {
		return nil, err
	}
	kub, err := ownedKub(ctx, s.kubs, p, in.KubID)
	if err != nil {
		return nil, err
	}

	st := workflow.NewSubmissionState()
	row := &models.Pengajuan{
		UserID:                p.UserID,
		StatusVerifikasi:      string(st.Admin),
		StatusVerifikasiKabid: st.Kabid.Column(),
	}
	if err := s.fill(row, in); err != nil {
		return nil, err
	}

	history := repositories.NewStatusHistory(models.HistoryPengajuan, 0, "admin", "", string(st.Admin), "pengajuan dibuat", p.UserID, nil)
	if err := s.store.Create(ctx, row, history); err != nil {
		return nil, err
	}
	row.Kub = kub
	return row, nil
}

func checkVersion(sent, current int) error {
	if sent != 0 && sent != current {
		return apperror.ErrConflict
	}
	return nil
}

// Update mengganti isi pengajuan milik sendiri. Pengajuan Perlu Revisi
// kembali ke Menunggu.
func (s *PengajuanService) Update(ctx context.Context, p Principal, id types.SnowflakeID, in PengajuanInput) (*models.Pengajuan, error) {
	if err := p.require(roles.SubmitPengajuan); err != nil {
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
	st, err := row.State()
	if err != nil {
		return nil, err
	}
	next, err := st.Resubmit()
	if err != nil {
		return nil, err
	}
	kub, err := ownedKub(ctx, s.kubs, p, in.KubID)
	if err != nil {
		return nil, err
	}
	if err := s.fill(row, in); err != nil {
		return nil, err
	}

	var history *models.StatusHistory
	if next.Admin != st.Admin {
		history = repositories.NewStatusHistory(models.HistoryPengajuan, row.ID, "admin", string(st.Admin), string(next.Admin), "diajukan ulang setelah revisi", p.UserID, nil)
		row.CatatanVerifikasi = ""
	}
	row.StatusVerifikasi = string(next.Admin)

	if err := s.store.Replace(ctx, row, row.Version, history); err != nil {
		return nil, err
	}
	row.Kub = kub
	return row, nil
}

func (s *PengajuanService) VerifyAdmin(ctx context.Context, p Principal, id types.SnowflakeID, in VerifyInput) (*models.Pengajuan, error) {
	if err := p.require(roles.VerifyPengajuanAdmin); err != nil {
		return nil, err
	}
	target, err := workflow.ParseAdminStatus(in.Status)
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
	st, err := row.State()
	if err != nil {
		return nil, err
	}
	next, err := st.VerifyAdmin(target)
	if err != nil {
		return nil, err
	}

	catatan := strings.TrimSpace(in.Catatan)
	fields := map[string]interface{}{
		"status_verifikasi":  string(next.Admin),
		"catatan_verifikasi": catatan,
	}
	history := repositories.NewStatusHistory(models.HistoryPengajuan, row.ID, "admin", string(st.Admin), string(next.Admin), catatan, p.UserID, nil)
	if err := s.store.UpdateStatus(ctx, row.ID, row.Version, fields, history); err != nil {
		return nil, err
	}

	row.StatusVerifikasi = string(next.Admin)
	row.CatatanVerifikasi = catatan
	row.Version++
	s.notifyOwner(ctx, row, "Admin", string(next.Admin), catatan)
	return row, nil
}

func (s *PengajuanService) VerifyKabid(ctx context.Context, p Principal, id types.SnowflakeID, in VerifyInput) (*models.Pengajuan, error) {
	if err := p.require(roles.VerifyPengajuanKabid); err != nil {
		return nil, err
	}
	v := in.Status
	target, err := workflow.ParseKabidStatus(&v)
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
	st, err := row.State()
	if err != nil {
		return nil, err
	}
	next, err := st.VerifyKabid(target)
	if err != nil {
		return nil, err
	}

	catatan := strings.TrimSpace(in.Catatan)
	fields := map[string]interface{}{
		"status_verifikasi_kabid": next.Kabid.Column(),
		"catatan_kabid":           catatan,
	}
	history := repositories.NewStatusHistory(models.HistoryPengajuan, row.ID, "kabid", string(st.Kabid), string(next.Kabid), catatan, p.UserID, nil)
	if err := s.store.UpdateStatus(ctx, row.ID, row.Version, fields, history); err != nil {
		return nil, err
	}

	row.StatusVerifikasiKabid = next.Kabid.Column()
	row.CatatanKabid = catatan
	row.Version++
	s.notifyOwner(ctx, row, "Kepala Bidang", string(next.Kabid), catatan)
	return row, nil
}

// RecordBAST mencatat berita acara serah terima untuk pengajuan yang sudah
// disetujui kepala bidang. Tidak mengubah status.
func (s *PengajuanService) RecordBAST(ctx context.Context, p Principal, id types.SnowflakeID, in BASTInput) (*models.Pengajuan, error) {
	if err := p.require(roles.RecordBAST); err != nil {
		return nil, err
	}
	no := strings.TrimSpace(in.NoBAST)
	if no == "" {
		return nil, fieldError("no_bast", "required")
	}
	tanggal, err := ParseTanggal(in.TanggalBAST)
	if err != nil {
		return nil, fieldError("tanggal_bast", "datetime")
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkVersion(in.Version, row.Version); err != nil {
		return nil, err
	}
	st, err := row.State()
	if err != nil {
		return nil, err
	}
	if !st.Kabid.Approved() {
		return nil, apperror.Wrap(apperror.ErrInvalidTransition, "BAST hanya untuk pengajuan yang disetujui kepala bidang")
	}

	fields := map[string]interface{}{"no_bast": no, "tanggal_bast": tanggal}
	history := repositories.NewStatusHistory(models.HistoryPengajuan, row.ID, "bast", string(st.Kabid), string(st.Kabid), "BAST "+no, p.UserID,
		map[string]string{"no_bast": no, "tanggal_bast": tanggal.Format("2006-01-02")})
	if err := s.store.UpdateStatus(ctx, row.ID, row.Version, fields, history); err != nil {
		return nil, err
	}
	row.NoBAST = no
	row.TanggalBAST = &tanggal
	row.Version++
	return row, nil
}

// Delete hanya untuk pemilik, dan hanya selama kepala bidang belum memutuskan
// dan admin belum menerima.
func (s *PengajuanService) Delete(ctx context.Context, p Principal, id types.SnowflakeID) error {
	if err := p.require(roles.SubmitPengajuan); err != nil {
		return err
	}
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.mustOwn(row.UserID); err != nil {
		return err
	}
	st, err := row.State()
	if err != nil {
		return err
	}
	if !st.CanDelete() {
		return apperror.Wrap(apperror.ErrInvalidTransition, "pengajuan berstatus %s tidak dapat dihapus", st.Admin)
	}
	return s.store.Delete(ctx, row.ID, row.Version)
}

func (s *PengajuanService) Get(ctx context.Context, p Principal, id types.SnowflakeID) (*models.Pengajuan, error) {
	row, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.mayView(row.UserID, roles.ViewAllPengajuan); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *PengajuanService) History(ctx context.Context, p Principal, id types.SnowflakeID) ([]models.StatusHistory, error) {
	if _, err := s.Get(ctx, p, id); err != nil {
		return nil, err
	}
	return s.store.History(ctx, id)
}

type PengajuanQuery struct {
	NamaKub          string `query:"nama_kub"`
	Domisili         string `query:"domisili"`
	Tahun            string `query:"tahun"`
	Bulan            string `query:"bulan"`
	StatusVerifikasi string `query:"status_verifikasi"`
	StatusKabid      string `query:"status_verifikasi_kabid"`
	// Inbox menampilkan antrean kepala bidang.
	Inbox bool `query:"inbox"`
}

// Filter mengubah query menjadi filter repository sesuai peran pemanggil.
func (q PengajuanQuery) Filter(p Principal) (repositories.PengajuanFilter, error) {
	period, err := reports.PeriodWindow(q.Tahun, q.Bulan)
	if err != nil {
		return repositories.PengajuanFilter{}, err
	}
	f := repositories.PengajuanFilter{
		NamaKub:          strings.TrimSpace(q.NamaKub),
		Period:           period,
		StatusVerifikasi: strings.TrimSpace(q.StatusVerifikasi),
		StatusKabid:      strings.TrimSpace(q.StatusKabid),
		KabidInbox:       q.Inbox,
	}
	if q.Domisili != "" {
		d, ok := constants.NormalizeDomisili(q.Domisili)
		if !ok {
			return f, fieldError("domisili", "domisili")
		}
		f.Domisili = d
	}
	switch {
	case p.Can(roles.ViewAllPengajuan):
	case p.Can(roles.SubmitPengajuan):
		f.UserID = p.UserID
	default:
		return f, p.require(roles.ViewAllPengajuan)
	}
	return f, nil
}

func (s *PengajuanService) List(ctx context.Context, p Principal, q PengajuanQuery) ([]models.Pengajuan, error) {
	f, err := q.Filter(p)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, f)
}

func (s *PengajuanService) notifyOwner(ctx context.Context, row *models.Pengajuan, tahap, status, catatan string) {
	owner, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		logger.Warn("notifikasi pengajuan dilewati", zap.String("pengajuan_id", row.ID.String()), zap.Error(err))
		return
	}
	namaKub := ""
	if row.Kub != nil {
		namaKub = row.Kub.NamaKub
	}
	msg := notify.PengajuanDecision(owner.Email, namaKub, tahap, status, catatan)
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Warn("gagal mengirim notifikasi pengajuan", zap.String("pengajuan_id", row.ID.String()), zap.Error(err))
	}
}
