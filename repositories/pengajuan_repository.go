package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/reports"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"gorm.io/gorm"
)

type PengajuanFilter struct {
	UserID           uint
	KubID            uint
	NamaKub          string
	Domisili         string
	Period           *reports.Period
	StatusVerifikasi string
	// StatusKabid "Menunggu" dicocokkan dengan kolom NULL.
	StatusKabid string
	// KabidInbox: sudah Diterima admin, belum diputuskan kepala bidang.
	KabidInbox bool
	// KabidApproved: Disetujui Sepenuhnya atau Disetujui Sebagian.
	KabidApproved bool
	Limit         int
}

type PengajuanRepository struct {
	DB *gorm.DB
}

func NewPengajuanRepository(DB *gorm.DB) *PengajuanRepository {
	return &PengajuanRepository{DB: DB}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("urutan ASC, id ASC")
}

func (r *PengajuanRepository) scoped(ctx context.Context, f PengajuanFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Pengajuan{})

	if f.NamaKub != "" || f.Domisili != "" {
		q = q.Joins("JOIN kub ON kub.id = pengajuan.kub_id")
		if f.NamaKub != "" {
			q = q.Where("LOWER(kub.nama_kub) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(f.NamaKub))+"%")
		}
		if f.Domisili != "" {
			q = q.Where("kub.domisili = ?", f.Domisili)
		}
	}
	if f.UserID > 0 {
		q = q.Where("pengajuan.user_id = ?", f.UserID)
	}
	if f.KubID > 0 {
		q = q.Where("pengajuan.kub_id = ?", f.KubID)
	}
	if f.Period != nil {
		q = q.Where("pengajuan.tanggal_pengajuan >= ? AND pengajuan.tanggal_pengajuan < ?", f.Period.Start, f.Period.End)
	}
	if f.StatusVerifikasi != "" {
		q = q.Where("pengajuan.status_verifikasi = ?", f.StatusVerifikasi)
	}
	if f.StatusKabid != "" {
		if strings.EqualFold(f.StatusKabid, "Menunggu") {
			q = q.Where("(pengajuan.status_verifikasi_kabid IS NULL OR pengajuan.status_verifikasi_kabid = '')")
		} else {
			q = q.Where("pengajuan.status_verifikasi_kabid = ?", f.StatusKabid)
		}
	}
	if f.KabidInbox {
		q = q.Where("pengajuan.status_verifikasi = ?", "Diterima").
			Where("(pengajuan.status_verifikasi_kabid IS NULL OR pengajuan.status_verifikasi_kabid = '')")
	}
	if f.KabidApproved {
		q = q.Where("pengajuan.status_verifikasi_kabid IN ?", []string{"Disetujui Sepenuhnya", "Disetujui Sebagian"})
	}
	return q
}

// Create menyimpan pengajuan beserta alat-alatnya dalam satu transaksi.
func (r *PengajuanRepository) Create(ctx context.Context, p *models.Pengajuan, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := p.Items
		if err := tx.Omit("Items", "Kub").Create(p).Error; err != nil {
			return err
		}
		if err := createItems(tx, p.ID, items); err != nil {
			return err
		}
		p.Items = items
		if history != nil {
			history.RefID = p.ID
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

func createItems(tx *gorm.DB, id types.SnowflakeID, items []models.PengajuanItem) error {
	for i := range items {
		items[i].ID = 0
		items[i].PengajuanID = id
		items[i].Urutan = i + 1
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Replace memperbarui isi pengajuan dan mengganti daftar alat. Gagal dengan
// ErrConflict bila versi di database sudah berubah.
func (r *PengajuanRepository) Replace(ctx context.Context, p *models.Pengajuan, expectedVersion int, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Pengajuan{}).
			Where("id = ? AND version = ?", p.ID, expectedVersion).
			Updates(map[string]interface{}{
				"kub_id":             p.KubID,
				"zona_tangkap":       p.ZonaTangkap,
				"tanggal_pengajuan":  p.TanggalPengajuan,
				"dokumen_pendukung":  p.DokumenPendukung,
				"status_verifikasi":  p.StatusVerifikasi,
				"catatan_verifikasi": p.CatatanVerifikasi,
				"version":            expectedVersion + 1,
				"updated_at":         time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("pengajuan")
		}
		if err := tx.Where("pengajuan_id = ?", p.ID).Delete(&models.PengajuanItem{}).Error; err != nil {
			return err
		}
		if err := createItems(tx, p.ID, p.Items); err != nil {
			return err
		}
		p.Version = expectedVersion + 1
		if history != nil {
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

// UpdateStatus menulis kolom status dengan pemeriksaan versi lalu mencatat
// riwayatnya dalam transaksi yang sama.
func (r *PengajuanRepository) UpdateStatus(ctx context.Context, id types.SnowflakeID, expectedVersion int, fields map[string]interface{}, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields["version"] = expectedVersion + 1
		fields["updated_at"] = time.Now()
		res := tx.Model(&models.Pengajuan{}).Where("id = ? AND version = ?", id, expectedVersion).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("pengajuan")
		}
		if history != nil {
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

// Delete menghapus alat lalu induknya dalam satu transaksi.
func (r *PengajuanRepository) Delete(ctx context.Context, id types.SnowflakeID, expectedVersion int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pengajuan_id = ?", id).Delete(&models.PengajuanItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND version = ?", id, expectedVersion).Delete(&models.Pengajuan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("pengajuan")
		}
		return nil
	})
}

func (r *PengajuanRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.Pengajuan, error) {
	var p models.Pengajuan
	err := r.DB.WithContext(ctx).
		Preload("Kub").
		Preload("Kub.Anggota", orderedAnggota).
		Preload("Items", orderedItems).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "pengajuan")
	}
	return &p, nil
}

// List memuat pengajuan beserta KUB dan alat. Kegagalan memuat relasi alat
// menggagalkan seluruh pemanggilan.
func (r *PengajuanRepository) List(ctx context.Context, f PengajuanFilter) ([]models.Pengajuan, error) {
	var rows []models.Pengajuan
	q := r.scoped(ctx, f).
		Select("pengajuan.*").
		Preload("Kub").
		Preload("Kub.Anggota", orderedAnggota).
		Preload("Items", orderedItems).
		Order("pengajuan.tanggal_pengajuan DESC, pengajuan.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *PengajuanRepository) Count(ctx context.Context, f PengajuanFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

func (r *PengajuanRepository) CreatedAt(ctx context.Context, f PengajuanFilter) ([]time.Time, error) {
	var out []time.Time
	err := r.scoped(ctx, f).Pluck("pengajuan.created_at", &out).Error
	return out, err
}

// Statuses mengambil nilai satu kolom status; NULL dikembalikan sebagai nil.
func (r *PengajuanRepository) Statuses(ctx context.Context, f PengajuanFilter, column string) ([]*string, error) {
	var raw []sql.NullString
	if err := r.scoped(ctx, f).Pluck("pengajuan."+column, &raw).Error; err != nil {
		return nil, err
	}
	return nullStrings(raw), nil
}

func (r *PengajuanRepository) History(ctx context.Context, id types.SnowflakeID) ([]models.StatusHistory, error) {
	return listHistory(r.DB.WithContext(ctx), models.HistoryPengajuan, id)
}

func listHistory(db *gorm.DB, refType string, id types.SnowflakeID) ([]models.StatusHistory, error) {
	var rows []models.StatusHistory
	err := db.Where("type = ? AND ref_id = ?", refType, id).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func nullStrings(raw []sql.NullString) []*string {
	out := make([]*string, len(raw))
	for i := range raw {
		if raw[i].Valid {
			v := raw[i].String
			out[i] = &v
		}
	}
	return out
}
