package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"gorm.io/gorm"
)

type MonitoringFilter struct {
	UserID   uint
	KubID    uint
	NamaKub  string
	Domisili string
	Bulan    int
	Tahun    int
	Status   string
	Limit    int
}

type MonitoringRepository struct {
	DB *gorm.DB
}

func NewMonitoringRepository(DB *gorm.DB) *MonitoringRepository {
	return &MonitoringRepository{DB: DB}
}

func orderedProduksi(db *gorm.DB) *gorm.DB {
	return db.Order("urutan ASC, id ASC")
}

func (r *MonitoringRepository) scoped(ctx context.Context, f MonitoringFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Monitoring{})
	if f.NamaKub != "" {
		q = q.Joins("JOIN kub ON kub.id = monitoring.kub_id").
			Where("LOWER(kub.nama_kub) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(f.NamaKub))+"%")
	}
	if f.UserID > 0 {
		q = q.Where("monitoring.user_id = ?", f.UserID)
	}
	if f.KubID > 0 {
		q = q.Where("monitoring.kub_id = ?", f.KubID)
	}
	if f.Domisili != "" {
		q = q.Where("monitoring.domisili = ?", f.Domisili)
	}
	if f.Bulan > 0 {
		q = q.Where("monitoring.bulan = ?", f.Bulan)
	}
	if f.Tahun > 0 {
		q = q.Where("monitoring.tahun = ?", f.Tahun)
	}
	if f.Status != "" {
		q = q.Where("monitoring.status_verifikasi_kabid = ?", f.Status)
	}
	return q
}

func createProduksi(tx *gorm.DB, id types.SnowflakeID, rows []models.MonitoringProduksi) error {
	for i := range rows {
		rows[i].ID = 0
		rows[i].MonitoringID = id
		rows[i].Urutan = i + 1
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *MonitoringRepository) Create(ctx context.Context, m *models.Monitoring, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		produksi := m.Produksi
		if err := tx.Omit("Produksi", "Kub").Create(m).Error; err != nil {
			return err
		}
		if err := createProduksi(tx, m.ID, produksi); err != nil {
			return err
		}
		m.Produksi = produksi
		if history != nil {
			history.RefID = m.ID
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

func (r *MonitoringRepository) Replace(ctx context.Context, m *models.Monitoring, expectedVersion int, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Monitoring{}).
			Where("id = ? AND version = ?", m.ID, expectedVersion).
			Updates(map[string]interface{}{
				"kub_id":                  m.KubID,
				"nama_anggota":            m.NamaAnggota,
				"domisili":                m.Domisili,
				"bulan":                   m.Bulan,
				"tahun":                   m.Tahun,
				"jumlah_trip":             m.JumlahTrip,
				"jenis_bbm":               m.JenisBBM,
				"volume_bbm":              m.VolumeBBM,
				"daerah_penangkapan":      m.DaerahPenangkapan,
				"keterangan":              m.Keterangan,
				"status_verifikasi_kabid": m.StatusVerifikasiKabid,
				"catatan_kabid":           m.CatatanKabid,
				"version":                 expectedVersion + 1,
				"updated_at":              time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("laporan monitoring")
		}
		if err := tx.Where("monitoring_id = ?", m.ID).Delete(&models.MonitoringProduksi{}).Error; err != nil {
			return err
		}
		if err := createProduksi(tx, m.ID, m.Produksi); err != nil {
			return err
		}
		m.Version = expectedVersion + 1
		if history != nil {
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

func (r *MonitoringRepository) UpdateStatus(ctx context.Context, id types.SnowflakeID, expectedVersion int, fields map[string]interface{}, history *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields["version"] = expectedVersion + 1
		fields["updated_at"] = time.Now()
		res := tx.Model(&models.Monitoring{}).Where("id = ? AND version = ?", id, expectedVersion).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("laporan monitoring")
		}
		if history != nil {
			return InsertStatusHistory(tx, history)
		}
		return nil
	})
}

// Delete menghapus rincian produksi lalu laporannya dalam satu transaksi.
func (r *MonitoringRepository) Delete(ctx context.Context, id types.SnowflakeID, expectedVersion int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("monitoring_id = ?", id).Delete(&models.MonitoringProduksi{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND version = ?", id, expectedVersion).Delete(&models.Monitoring{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleWrite("laporan monitoring")
		}
		return nil
	})
}

func (r *MonitoringRepository) GetByID(ctx context.Context, id types.SnowflakeID) (*models.Monitoring, error) {
	var m models.Monitoring
	err := r.DB.WithContext(ctx).
		Preload("Kub").
		Preload("Produksi", orderedProduksi).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "laporan monitoring")
	}
	return &m, nil
}

func (r *MonitoringRepository) List(ctx context.Context, f MonitoringFilter) ([]models.Monitoring, error) {
	var rows []models.Monitoring
	q := r.scoped(ctx, f).
		Select("monitoring.*").
		Preload("Kub").
		Preload("Produksi", orderedProduksi).
		Order("monitoring.tahun DESC, monitoring.bulan DESC, monitoring.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *MonitoringRepository) Count(ctx context.Context, f MonitoringFilter) (int64, error) {
	var n int64
	err := r.scoped(ctx, f).Count(&n).Error
	return n, err
}

func (r *MonitoringRepository) CreatedAt(ctx context.Context, f MonitoringFilter) ([]time.Time, error) {
	var out []time.Time
	err := r.scoped(ctx, f).Pluck("monitoring.created_at", &out).Error
	return out, err
}

func (r *MonitoringRepository) Statuses(ctx context.Context, f MonitoringFilter) ([]*string, error) {
	var raw []sql.NullString
	if err := r.scoped(ctx, f).Pluck("monitoring.status_verifikasi_kabid", &raw).Error; err != nil {
		return nil, err
	}
	return nullStrings(raw), nil
}

func (r *MonitoringRepository) History(ctx context.Context, id types.SnowflakeID) ([]models.StatusHistory, error) {
	return listHistory(r.DB.WithContext(ctx), models.HistoryMonitoring, id)
}
