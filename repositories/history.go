package repositories

import (
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/types"
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InsertStatusHistory menambahkan satu baris riwayat status. Dipanggil di dalam
// transaksi yang sama dengan perubahan statusnya.
func InsertStatusHistory(db *gorm.DB, h *models.StatusHistory) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	return db.Create(h).Error
}

// NewStatusHistory menyusun baris riwayat; detail boleh nil.
func NewStatusHistory(refType string, refID types.SnowflakeID, track, from, to, catatan string, actor uint, detail interface{}) *models.StatusHistory {
	h := &models.StatusHistory{
		RefID:      refID,
		Type:       refType,
		Track:      track,
		FromStatus: from,
		ToStatus:   to,
		Catatan:    catatan,
		CreatedBy:  actor,
	}
	if detail != nil {
		if b, err := sonic.Marshal(detail); err == nil {
			h.Detail = datatypes.JSON(b)
		}
	}
	return h
}
